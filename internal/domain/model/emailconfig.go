//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// EmailConfigStatus is the backend's verdict on its SMTP configuration.
type EmailConfigStatus string

const (
	EmailConfigSuccess       EmailConfigStatus = "success"
	EmailConfigNotConfigured EmailConfigStatus = "not_configured"
	EmailConfigError         EmailConfigStatus = "error"
)

// EmailConfigResult is the backend's email configuration test response.
// Details carries provider settings keyed by field name; the backend
// mixes strings, numbers and booleans in the values (smtp_port is a
// number, username_set a boolean), and some entries are sensitive and
// must not be rendered.
type EmailConfigResult struct {
	Status  EmailConfigStatus `json:"status"`
	Message string            `json:"message"`
	Details map[string]any    `json:"details,omitempty"`
	Help    string            `json:"help,omitempty"`
}

// detail keys that never reach the page as plain settings
const (
	detailKeyPassword = "password"
	detailKeyError    = "error"
)

// CanSendTest reports whether the configuration supports sending a
// test email. Only a successful check enables the send button.
func (r EmailConfigResult) CanSendTest() bool {
	return r.Status == EmailConfigSuccess
}

// ErrorDetail returns the error entry from Details, if any. It is
// displayed separately from the settings list.
func (r EmailConfigResult) ErrorDetail() string {
	v, ok := r.Details[detailKeyError]
	if !ok {
		return ""
	}
	return detailString(v)
}

// DisplayDetail is one renderable configuration setting.
type DisplayDetail struct {
	Key   string
	Value string
}

// DisplayDetails returns the detail entries safe to render, sorted by
// key for stable output. Password and error entries are withheld.
func (r EmailConfigResult) DisplayDetails() []DisplayDetail {
	if len(r.Details) == 0 {
		return nil
	}
	out := make([]DisplayDetail, 0, len(r.Details))
	for k, v := range r.Details {
		if k == detailKeyPassword || k == detailKeyError {
			continue
		}
		out = append(out, DisplayDetail{Key: k, Value: detailString(v)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// detailString renders one detail value for display. JSON numbers decode
// as float64; a port of 587 must render as "587", not "587.000000".
func detailString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
