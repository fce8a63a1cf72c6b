package integration

import "errors"

// BlockedError halts the request. Page is the complete response body.
type BlockedError struct {
	Comment string
	Page    string
}

func (e *BlockedError) Error() string {
	if e.Comment == "" {
		return "submission blocked"
	}
	return "submission blocked: " + e.Comment
}

func AsBlocked(err error) (*BlockedError, bool) {
	var blocked *BlockedError
	if errors.As(err, &blocked) {
		return blocked, true
	}
	return nil, false
}
