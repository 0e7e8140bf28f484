// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v60/github"
	"github.com/julieqiu/derrors"
	"golang.org/x/oauth2"

	"github.com/similigh/taskclone/internal/core/tasks"
)

// NewClient creates a new GitHub client using the provided token.
// If token is empty, it returns an unauthenticated client.
func NewClient(ctx context.Context, token string) *Client {
	var tc *http.Client

	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		tc = oauth2.NewClient(ctx, ts)
	}

	client := github.NewClient(tc)

	return &Client{
		client: client,
	}
}

// Authenticate checks the token by fetching the authenticated user.
// A rejected token yields tasks.ErrAuthentication.
func (c *Client) Authenticate(ctx context.Context) (_ string, err error) {
	defer derrors.Wrap(&err, "Authenticate(ctx)")

	user, _, err := c.client.Users.Get(ctx, "")
	if err != nil {
		switch statusCode(err) {
		case http.StatusUnauthorized, http.StatusForbidden:
			return "", fmt.Errorf("%w: %v", tasks.ErrAuthentication, err)
		}
		return "", fmt.Errorf("failed to fetch authenticated user: %w", err)
	}

	return user.GetLogin(), nil
}

// statusCode extracts the HTTP status from a go-github error, or 0.
func statusCode(err error) int {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return errResp.Response.StatusCode
	}
	return 0
}
