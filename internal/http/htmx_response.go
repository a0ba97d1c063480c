package httpx

import "net/http"

// HTMXResponse provides a fluent wrapper for common htmx response headers.
type HTMXResponse struct {
	w http.ResponseWriter
}

// HTMX wraps a ResponseWriter for chained htmx header calls.
func HTMX(w http.ResponseWriter) *HTMXResponse {
	return &HTMXResponse{w: w}
}

// Redirect sets a client-side redirect and returns the wrapper.
func (h *HTMXResponse) Redirect(url string) *HTMXResponse {
	SetHXRedirect(h.w, url)
	return h
}

// PushURL pushes a new browser history entry and returns the wrapper.
func (h *HTMXResponse) PushURL(url string) *HTMXResponse {
	SetHXPushURL(h.w, url)
	return h
}

// Trigger emits a client-side event with a payload and returns the wrapper.
func (h *HTMXResponse) Trigger(event string, detail any) *HTMXResponse {
	SetHXTrigger(h.w, event, detail)
	return h
}
