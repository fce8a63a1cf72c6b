// Package submission describes a storefront form submission as seen by the
// antispam check.
package submission

import (
	"fmt"
	"strings"
)

// Type tags the storefront form that produced a submission.
type Type string

const (
	TypeRegistration Type = "registration"
	TypeContact      Type = "contact"
	TypeOrder        Type = "order"
	TypeNewsletter   Type = "newsletter"
)

// Mode selects the remote verdict operation.
type Mode string

const (
	ModeMessage Mode = "message"
	ModeUser    Mode = "user"
)

func (t Type) Valid() bool {
	switch t {
	case TypeRegistration, TypeContact, TypeOrder, TypeNewsletter:
		return true
	}
	return false
}

// CommentType is the post_info.comment_type reported to the verdict service.
// Registrations carry none.
func (t Type) CommentType() string {
	switch t {
	case TypeContact:
		return "contact_form_prestashop_contact"
	case TypeOrder:
		return "order"
	case TypeNewsletter:
		return "contact_form_prestashop_newsletter"
	default:
		return ""
	}
}

func (m Mode) Valid() bool {
	return m == ModeMessage || m == ModeUser
}

// Context is built once per incoming form event and passed by value.
type Context struct {
	Email         string
	Nickname      string
	Message       string
	PageURL       string
	IP            string
	XForwardedFor string
	XRealIP       string
	UserAgent     string
	EventToken    string
	Type          Type
}

// Sender carries the raw identity fields of a form before normalization.
type Sender struct {
	Email     string
	Nickname  string
	FirstName string
	LastName  string
}

// Origin carries the request metadata of the submission.
type Origin struct {
	Referer       string
	IP            string
	XForwardedFor string
	XRealIP       string
	UserAgent     string
}

func New(t Type, sender Sender, message, eventToken string, origin Origin) (Context, error) {
	if !t.Valid() {
		return Context{}, fmt.Errorf("invalid submission type %q", t)
	}
	return Context{
		Email:         strings.TrimSpace(sender.Email),
		Nickname:      DisplayName(sender.Nickname, sender.FirstName, sender.LastName),
		Message:       message,
		PageURL:       origin.Referer,
		IP:            origin.IP,
		XForwardedFor: origin.XForwardedFor,
		XRealIP:       origin.XRealIP,
		UserAgent:     origin.UserAgent,
		EventToken:    eventToken,
		Type:          t,
	}, nil
}

// DisplayName joins nickname, first name and last name with single spaces.
func DisplayName(nickname, firstName, lastName string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{nickname, firstName, lastName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
