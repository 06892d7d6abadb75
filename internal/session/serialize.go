package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/fathom/internal/wire"
)

// DeserializeError reports a malformed serialized session: missing fields
// or unparsable JSON.
type DeserializeError struct {
	Message string
}

// Error implements the error interface.
func (e *DeserializeError) Error() string {
	return e.Message
}

// IsDeserializeError returns true if the error is a malformed serialized
// session. Uses errors.As to handle wrapped errors.
func IsDeserializeError(err error) bool {
	var de *DeserializeError
	return errors.As(err, &de)
}

// serializedSession is the persisted JSON shape.
type serializedSession struct {
	BaseURL     string         `json:"base_url"`
	DataView    string         `json:"data_view"`
	SessionID   string         `json:"session_id"`
	AccessToken string         `json:"access_token"`
	User        serializedUser `json:"user"`
	System      string         `json:"system"`
}

type serializedUser struct {
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	Surname      string `json:"surname"`
	EmailAddress string `json:"email_address"`
}

// Serialize renders the session's credentials as JSON. The table tree and
// catalog are not persisted; restoring re-runs bootstrap.
func (s *Session) Serialize() ([]byte, error) {
	out := serializedSession{
		BaseURL:     s.client.BaseURL(),
		DataView:    s.client.DataView(),
		SessionID:   s.sessionID,
		AccessToken: s.accessToken,
		User: serializedUser{
			Username:     s.user.Username,
			FirstName:    s.user.FirstName,
			Surname:      s.user.Surname,
			EmailAddress: s.user.EmailAddress,
		},
		System: s.client.System(),
	}
	return json.Marshal(out)
}

// Restore rebuilds a session from its serialized form, re-running
// bootstrap against the server.
func Restore(ctx context.Context, data []byte, opts ...Option) (*Session, error) {
	var in serializedSession
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, &DeserializeError{Message: fmt.Sprintf("unparsable serialized session: %v", err)}
	}
	for _, field := range []struct{ name, value string }{
		{"base_url", in.BaseURL},
		{"data_view", in.DataView},
		{"session_id", in.SessionID},
		{"access_token", in.AccessToken},
		{"system", in.System},
	} {
		if field.value == "" {
			return nil, &DeserializeError{Message: fmt.Sprintf(
				"serialized session is missing required field %q", field.name)}
		}
	}

	user := wire.User{
		Username:     in.User.Username,
		FirstName:    in.User.FirstName,
		Surname:      in.User.Surname,
		EmailAddress: in.User.EmailAddress,
	}
	return Resume(ctx, in.BaseURL, in.DataView, in.System, in.SessionID, in.AccessToken,
		user, opts...)
}
