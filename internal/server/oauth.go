package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"

	"crossfade/internal/auth"
	"crossfade/internal/services"
)

// ProfileFetcher resolves the authenticated user's profile from an access token.
//
// Satisfied by [services.SpotifyService].
type ProfileFetcher interface {
	UserProfile(ctx context.Context, accessToken string) (*services.SpotifyUser, error)
}

// OAuthHandler drives the Spotify authorization code flow for the web service.
//
// On a successful callback the exchanged access token is stored in the
// [auth.TokenStore] keyed by the Spotify account ID, making the account
// usable for conversion jobs.
type OAuthHandler struct {
	config  *oauth2.Config
	state   string
	tokens  auth.TokenStore
	profile ProfileFetcher
	logger  *log.Logger
}

// NewOAuthHandler creates an OAuth handler with the given OAuth2 config and state token.
// The state token should be cryptographically random for CSRF protection.
func NewOAuthHandler(config *oauth2.Config, state string, tokens auth.TokenStore, profile ProfileFetcher, logger *log.Logger) *OAuthHandler {
	return &OAuthHandler{
		config:  config,
		state:   state,
		tokens:  tokens,
		profile: profile,
		logger:  logger,
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *OAuthHandler) Routes() []string {
	return []string{"/login", "/callback"}
}

// ServeHTTP dispatches between the login redirect and the authorization callback.
func (h *OAuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/login":
		h.login(w, r)
	case "/callback":
		h.callback(w, r)
	default:
		http.NotFound(w, r)
	}
}

// login redirects the browser to the provider's consent page.
func (h *OAuthHandler) login(w http.ResponseWriter, r *http.Request) {
	url := h.config.AuthCodeURL(h.state, oauth2.AccessTypeOffline)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// callback validates the state parameter, exchanges the authorization code for
// tokens, resolves the account profile and stores the access token.
func (h *OAuthHandler) callback(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	if state != h.state {
		h.logger.Warn("oauth callback with invalid state")
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		errParam := r.URL.Query().Get("error")
		errDesc := r.URL.Query().Get("error_description")
		h.logger.Warn("oauth authorization failed", "error", errParam, "description", errDesc)
		http.Error(w, "Authorization failed", http.StatusBadRequest)
		return
	}

	token, err := h.config.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("token exchange failed", "error", err)
		http.Error(w, "Token exchange failed", http.StatusInternalServerError)
		return
	}

	profile, err := h.profile.UserProfile(r.Context(), token.AccessToken)
	if err != nil {
		h.logger.Error("profile lookup failed", "error", err)
		http.Error(w, "Profile lookup failed", http.StatusInternalServerError)
		return
	}

	h.tokens.Put(profile.ID, token.AccessToken)

	principal := auth.NewSessionPrincipal(profile.ID, profile.DisplayName)
	h.logger.Info("account authorized", "account", principal.AccountID())

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `
<!DOCTYPE html>
<html>
<head>
    <title>Authorization Successful</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #1DB954; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>✓ Connected as %s</h1>
        <p>You can close this window. Conversions for this account are now enabled.</p>
    </div>
</body>
</html>
`, principal.DisplayName())
}
