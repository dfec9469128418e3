package provision

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"school-service/internal/tenant"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTenantRepo struct {
	tenants map[string]*tenant.Tenant
}

func (r *fakeTenantRepo) GetByCode(_ context.Context, code string) (*tenant.Tenant, error) {
	t, ok := r.tenants[code]
	if !ok {
		return nil, tenant.ErrTenantNotFound
	}
	return t, nil
}

func (r *fakeTenantRepo) Create(_ context.Context, t *tenant.Tenant) (*tenant.Tenant, error) {
	r.tenants[t.Code] = t
	return t, nil
}

func newTestServer(store Store) (*httptest.Server, *fakeTenantRepo) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	controller := newTestController(store, testConfig())
	tenants := &fakeTenantRepo{tenants: map[string]*tenant.Tenant{
		"GHS": testTenant(),
	}}

	router := chi.NewRouter()
	NewHandler(controller, tenants, logger).RegisterRoutes(router)
	return httptest.NewServer(router), tenants
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	resp, err := http.Post(url, "application/json", &buf)
	require.NoError(t, err)
	return resp
}

func decodeResult(t *testing.T, resp *http.Response) *Result {
	t.Helper()
	defer resp.Body.Close()
	var res Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	return &res
}

func TestHandler_Import(t *testing.T) {
	store := newFakeStore()
	srv, _ := newTestServer(store)
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/schools/GHS/staff/import", ImportRequest{
		Rows: []ImportRow{
			staffRow("Meena Iyer", "9876543210"),
			staffRow("Bad Phone", "12345"),
		},
		Reveal: true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	res := decodeResult(t, resp)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1, res.Success)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Credentials, 1)
	assert.Equal(t, "STF001", res.Credentials[0].UserID)
	assert.NotEmpty(t, res.Credentials[0].Password)
}

func TestHandler_ImportEmptyRows(t *testing.T) {
	srv, _ := newTestServer(newFakeStore())
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/schools/GHS/staff/import", ImportRequest{Rows: nil})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_ImportBadBody(t *testing.T) {
	srv, _ := newTestServer(newFakeStore())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/schools/GHS/staff/import", "application/json",
		bytes.NewBufferString("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_UnknownSchool(t *testing.T) {
	srv, _ := newTestServer(newFakeStore())
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/schools/NOPE/staff/import", ImportRequest{
		Rows: []ImportRow{staffRow("Meena Iyer", "9876543210")},
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandler_UnknownKind(t *testing.T) {
	srv, _ := newTestServer(newFakeStore())
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/schools/GHS/parents/import", ImportRequest{
		Rows: []ImportRow{staffRow("Meena Iyer", "9876543210")},
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_FillMissing(t *testing.T) {
	store := newFakeStore()
	store.addIdentity("STF001")
	store.addIdentity("STF002")
	store.addCredential("STF001")
	srv, _ := newTestServer(store)
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/schools/GHS/staff/credentials/fill?reveal=true", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	res := decodeResult(t, resp)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, 1, res.Created)
	require.Len(t, res.Credentials, 1)
	assert.Equal(t, "STF002", res.Credentials[0].UserID)
}

func TestHandler_FillMissingWithoutReveal(t *testing.T) {
	store := newFakeStore()
	store.addIdentity("STF001")
	srv, _ := newTestServer(store)
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/schools/GHS/staff/credentials/fill", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	res := decodeResult(t, resp)
	assert.Equal(t, 1, res.Created)
	assert.Empty(t, res.Credentials)
}

func TestHandler_Regenerate(t *testing.T) {
	store := newFakeStore()
	store.addIdentity("STF001")
	store.addCredential("STF001")
	srv, _ := newTestServer(store)
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/schools/GHS/staff/STF001/credentials/regenerate", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	var cred IssuedCredential
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cred))
	assert.Equal(t, "STF001", cred.UserID)
	assert.NotEmpty(t, cred.Password)
}

func TestHandler_RegenerateUnknownIdentity(t *testing.T) {
	srv, _ := newTestServer(newFakeStore())
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/schools/GHS/staff/STF999/credentials/regenerate", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
