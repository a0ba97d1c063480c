package httpx

import (
	"encoding/json"
	"net/http"
	"strings"
)

// HTMX request headers (canonical Go header form).
const (
	headerHXRequest        = "Hx-Request"
	headerHXBoosted        = "Hx-Boosted"
	headerHXHistoryRestore = "Hx-History-Restore-Request"
)

// HTMX response headers.
const (
	headerHXRedirect = "Hx-Redirect"
	headerHXPushURL  = "Hx-Push-Url"
	headerHXTrigger  = "Hx-Trigger"
)

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get(headerHXRequest), "true")
}

// IsBoosted reports whether the request came from an hx-boost navigation.
func IsBoosted(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get(headerHXBoosted), "true")
}

// IsHistoryRestore reports whether htmx is restoring a page from history.
// History restores need the full page, not a fragment.
func IsHistoryRestore(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get(headerHXHistoryRestore), "true")
}

// WantsPartial reports whether the response should be a content fragment.
// Boosted navigations and history restores still get the full layout.
func WantsPartial(r *http.Request) bool {
	return IsHTMX(r) && !IsBoosted(r) && !IsHistoryRestore(r)
}

// SetHXRedirect instructs htmx to perform a full-page client-side redirect.
func SetHXRedirect(w http.ResponseWriter, url string) {
	w.Header().Set(headerHXRedirect, url)
}

// SetHXPushURL pushes a new URL onto the browser history after the swap.
func SetHXPushURL(w http.ResponseWriter, url string) {
	w.Header().Set(headerHXPushURL, url)
}

// SetHXTrigger sets an Hx-Trigger header with a JSON event payload so
// client-side listeners fire after the swap.
func SetHXTrigger(w http.ResponseWriter, event string, detail any) {
	payload := map[string]any{event: detail}
	b, err := json.Marshal(payload)
	if err != nil {
		// An unmarshalable detail is a programming error; fall back to
		// the bare event name so the listener still fires.
		w.Header().Set(headerHXTrigger, event)
		return
	}
	w.Header().Set(headerHXTrigger, string(b))
}
