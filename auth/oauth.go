package auth

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
)

// BearerTokenSource wraps a user OAuth access token as an oauth2 token
// source for Bearer-authenticated API calls.
func BearerTokenSource(accessToken string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	})
}

// HTTPClient builds an HTTP client that attaches the given access token to
// every request.
func HTTPClient(ctx context.Context, accessToken string) *http.Client {
	return oauth2.NewClient(ctx, BearerTokenSource(accessToken))
}
