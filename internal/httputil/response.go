package httputil

import (
	"encoding/json"
	"net/http"
)

// RespondWithError writes {"error": message} with the given status. Row-level
// import problems never go through here; they travel as data on the result.
func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, map[string]string{"error": message})
}

// RespondWithJSON marshals payload and writes it with the given status.
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
