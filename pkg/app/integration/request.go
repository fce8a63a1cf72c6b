package integration

import "strings"

// Controller names the storefront controller that handled the request.
type Controller string

const (
	ControllerContact Controller = "contact"
	ControllerOrder   Controller = "order"
	ControllerOther   Controller = ""
)

const (
	FieldEventToken    = "ct_bot_detector_event_token"
	FieldSubmitMessage = "submitMessage"
)

// Request is the host's view of the incoming storefront request.
type Request struct {
	Values        map[string]string
	Controller    Controller
	IP            string
	XForwardedFor string
	XRealIP       string
	Referer       string
	UserAgent     string
}

func (r *Request) Value(name string) string {
	if r == nil || r.Values == nil {
		return ""
	}
	return r.Values[name]
}

// Has reports whether the field was submitted, even with an empty value.
func (r *Request) Has(name string) bool {
	if r == nil || r.Values == nil {
		return false
	}
	_, ok := r.Values[name]
	return ok
}

func (r *Request) EventToken() string {
	return strings.TrimSpace(r.Value(FieldEventToken))
}
