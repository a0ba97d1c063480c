package httpx

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
)

// DecodeJSON decodes a JSON request body into dst, rejecting unknown fields.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// WriteJSON writes v as a JSON response with the given status code. The
// body is buffered so encoding failures never produce a half-written
// response.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Default().Error("failed to write JSON response", "error", err)
	}
}

// ErrorParams describes a JSON error response.
type ErrorParams struct {
	Code    int    // HTTP status code
	ErrCode string // machine-readable error code
	Err     error  // error whose message becomes the detail
}

// WriteError writes a standard JSON error body.
func WriteError(w http.ResponseWriter, p ErrorParams) {
	detail := ""
	if p.Err != nil {
		detail = p.Err.Error()
	}
	WriteJSON(w, p.Code, map[string]string{
		"error":  p.ErrCode,
		"detail": detail,
	})
}
