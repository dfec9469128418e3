package student

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *httptest.Server {
	repo := &fakeRepository{students: map[string]*Student{
		"ADM0001": {SchoolCode: "GHS", AdmissionNo: "ADM0001", Name: "Asha Rao", Class: "5", Section: "A"},
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := chi.NewRouter()
	NewHandler(NewService(repo), logger).RegisterRoutes(router)
	return httptest.NewServer(router)
}

func TestHandler_GetAll(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/schools/GHS/students")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var students []Student
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&students))
	assert.Len(t, students, 1)
}

func TestHandler_Get(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/schools/GHS/students/ADM0001")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var s Student
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&s))
	assert.Equal(t, "Asha Rao", s.Name)
}

func TestHandler_GetNotFound(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/schools/GHS/students/ADM0099")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
