package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/llehouerou/xiamiu/internal/catalog"
)

// Session is the credential returned by Login. It is passed explicitly to
// every call that needs authentication.
type Session struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Username    string `json:"-"`
}

// Valid reports whether the session carries a token.
func (s *Session) Valid() bool {
	return s != nil && s.AccessToken != ""
}

func (s *Session) authorize(req *http.Request) {
	if !s.Valid() {
		return
	}
	req.Header.Set("Authorization", "Bearer "+s.AccessToken)
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, username, password string) (Session, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var sess Session
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/token",
		body:   strings.NewReader(form.Encode()),
		ctype:  "application/x-www-form-urlencoded",
	}, &sess)
	if err != nil {
		return Session{}, fmt.Errorf("login: %w", err)
	}
	if sess.AccessToken == "" {
		return Session{}, fmt.Errorf("login: %w", ErrUnauthorized)
	}
	sess.Username = username
	return sess, nil
}

// CurrentUser returns the user the session belongs to.
func (c *Client) CurrentUser(ctx context.Context, sess *Session) (catalog.User, error) {
	if !sess.Valid() {
		return catalog.User{}, ErrUnauthorized
	}
	var u catalog.User
	err := c.do(ctx, request{method: http.MethodGet, path: "/users/me", session: sess}, &u)
	return u, err
}
