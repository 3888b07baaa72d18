package api

import (
	"context"
	"net/http"

	"github.com/jonathan/jobboard/internal/types"
)

// Login exchanges credentials for a token and the user record.
// It is not an authenticated call, so a 401 here does not redirect.
func (c *Client) Login(ctx context.Context, email, password string) (*types.LoginResponse, error) {
	body, err := jsonBody(types.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	var out types.LoginResponse
	err = c.call(ctx, request{
		op:          "login",
		method:      http.MethodPost,
		path:        "/auth/login",
		body:        body,
		contentType: "application/json",
	}, "", &out)
	if err != nil {
		return nil, err
	}
	if out.Token == "" || out.User == nil {
		return nil, &Error{Op: "login", Kind: KindContract, Message: "response is missing token or user"}
	}
	return &out, nil
}
