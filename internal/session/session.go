package session

import (
	"encoding/gob"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"

	"zurnaWorkshop/internal/models"
)

const (
	cookieName = "zurna_session"
	tokenKey   = "access_token"
	maxAge     = 86400 * 7
)

func init() {
	gob.Register(models.Notice{})
}

// Store keeps the access token and pending notices of one browser in a signed
// cookie.
type Store struct {
	cookies *sessions.CookieStore
}

func NewStore(secret string, secure bool) *Store {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &Store{cookies: store}
}

// Token returns the stored access token or "" when none is present. A cookie
// that fails verification counts as absent.
func (s *Store) Token(r *http.Request) string {
	sess, err := s.cookies.Get(r, cookieName)
	if err != nil {
		return ""
	}

	token, _ := sess.Values[tokenKey].(string)
	return token
}

func (s *Store) SetToken(w http.ResponseWriter, r *http.Request, token string) error {
	sess, _ := s.cookies.Get(r, cookieName)
	sess.Values[tokenKey] = token

	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// ClearToken drops the access token but keeps pending notices.
func (s *Store) ClearToken(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.cookies.Get(r, cookieName)
	delete(sess.Values, tokenKey)

	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (s *Store) AddNotice(w http.ResponseWriter, r *http.Request, notice models.Notice) error {
	sess, _ := s.cookies.Get(r, cookieName)
	sess.AddFlash(notice)

	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("failed to save notice: %w", err)
	}

	return nil
}

// Notices pops every pending notice.
func (s *Store) Notices(w http.ResponseWriter, r *http.Request) ([]models.Notice, error) {
	sess, _ := s.cookies.Get(r, cookieName)

	flashes := sess.Flashes()
	if len(flashes) == 0 {
		return nil, nil
	}

	notices := make([]models.Notice, 0, len(flashes))
	for _, flash := range flashes {
		if notice, ok := flash.(models.Notice); ok {
			notices = append(notices, notice)
		}
	}

	if err := sess.Save(r, w); err != nil {
		return notices, fmt.Errorf("failed to save session: %w", err)
	}

	return notices, nil
}
