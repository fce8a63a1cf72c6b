package verdict

import (
	"errors"
	"fmt"
)

// ErrRemoteUnavailable marks any failure to obtain a verdict from the remote service.
var ErrRemoteUnavailable = errors.New("verdict service unavailable")

// Verdict is the remote allow/block decision.
type Verdict struct {
	Allow   bool   `json:"allow"`
	Comment string `json:"comment,omitempty"`
}

func Allowed() *Verdict {
	return &Verdict{Allow: true}
}

func (v *Verdict) Blocked() bool {
	return v != nil && !v.Allow
}

// RemoteUnavailableError wraps the transport or protocol cause of a failed check.
type RemoteUnavailableError struct {
	Reason string
	Err    error
}

func NewRemoteUnavailable(reason string, err error) error {
	return &RemoteUnavailableError{Reason: reason, Err: err}
}

func (e *RemoteUnavailableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", ErrRemoteUnavailable.Error(), e.Reason)
	}
	return fmt.Sprintf("%s: %s: %v", ErrRemoteUnavailable.Error(), e.Reason, e.Err)
}

func (e *RemoteUnavailableError) Unwrap() error {
	return e.Err
}

func (e *RemoteUnavailableError) Is(target error) bool {
	return target == ErrRemoteUnavailable
}
