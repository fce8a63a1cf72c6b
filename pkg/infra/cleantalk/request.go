package cleantalk

import (
	"encoding/json"

	"github.com/NeuralTrust/SpamShield/pkg/domain/submission"
)

const (
	MethodCheckMessage = "check_message"
	MethodCheckNewUser = "check_newuser"
)

// Request is the body of a verdict call. post_info and sender_info travel as
// JSON-encoded strings, the way the service expects them.
type Request struct {
	MethodName     string `json:"method_name"`
	AuthKey        string `json:"auth_key"`
	Agent          string `json:"agent"`
	SenderIP       string `json:"sender_ip"`
	XForwardedFor  string `json:"x_forwarded_for"`
	XRealIP        string `json:"x_real_ip"`
	SenderEmail    string `json:"sender_email"`
	SenderNickname string `json:"sender_nickname"`
	Message        string `json:"message"`
	PostInfo       string `json:"post_info"`
	SenderInfo     string `json:"sender_info"`
	EventToken     string `json:"event_token"`
}

type PostInfo struct {
	PostURL     string `json:"post_url"`
	CommentType string `json:"comment_type,omitempty"`
}

type SenderInfo struct {
	Referrer  string `json:"REFFERRER"`
	UserAgent string `json:"USER_AGENT,omitempty"`
}

func MethodFor(mode submission.Mode) string {
	if mode == submission.ModeUser {
		return MethodCheckNewUser
	}
	return MethodCheckMessage
}

// NewRequest assembles a verdict request for one submission.
func NewRequest(sc submission.Context, mode submission.Mode, authKey, agent string) (*Request, error) {
	postInfo, err := json.Marshal(PostInfo{
		PostURL:     sc.PageURL,
		CommentType: sc.Type.CommentType(),
	})
	if err != nil {
		return nil, err
	}
	senderInfo, err := json.Marshal(SenderInfo{
		Referrer:  sc.PageURL,
		UserAgent: sc.UserAgent,
	})
	if err != nil {
		return nil, err
	}
	return &Request{
		MethodName:     MethodFor(mode),
		AuthKey:        authKey,
		Agent:          agent,
		SenderIP:       sc.IP,
		XForwardedFor:  sc.XForwardedFor,
		XRealIP:        sc.XRealIP,
		SenderEmail:    sc.Email,
		SenderNickname: sc.Nickname,
		Message:        sc.Message,
		PostInfo:       string(postInfo),
		SenderInfo:     string(senderInfo),
		EventToken:     sc.EventToken,
	}, nil
}
