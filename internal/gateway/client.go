package gateway

import (
	"net/http"
	"strings"

	"zurnaWorkshop/internal/repository"
	"zurnaWorkshop/internal/session"
	"zurnaWorkshop/internal/storage"
)

// Client is the single handle to the backend: auth, tables, object storage
// and the per-browser session store.
type Client struct {
	Auth     AuthProvider
	Tables   *repository.Repository
	Storage  storage.Storage
	Sessions *session.Store
}

func NewClient(auth AuthProvider, tables *repository.Repository, storage storage.Storage, sessions *session.Store) *Client {
	return &Client{
		Auth:     auth,
		Tables:   tables,
		Storage:  storage,
		Sessions: sessions,
	}
}

// GetSession returns the caller's session, or nil when there is none or the
// token is no longer valid. A bearer header takes precedence over the cookie.
func (c *Client) GetSession(r *http.Request) *Session {
	token := bearerToken(r)
	if token == "" {
		token = c.Sessions.Token(r)
	}
	if token == "" {
		return nil
	}

	session, err := c.Auth.ParseToken(token)
	if err != nil {
		return nil
	}

	return session
}

func (c *Client) PersistSession(w http.ResponseWriter, r *http.Request, session *Session) error {
	return c.Sessions.SetToken(w, r, session.AccessToken)
}

func (c *Client) SignOut(w http.ResponseWriter, r *http.Request) error {
	return c.Sessions.ClearToken(w, r)
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
