package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"zurnaWorkshop/internal/config"
	"zurnaWorkshop/internal/mailer"
	"zurnaWorkshop/internal/models"
	"zurnaWorkshop/internal/repository"
)

const MinPasswordLength = 6

var (
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrAlreadyRegistered  = errors.New("user already registered")
	ErrEmailNotConfirmed  = errors.New("email not confirmed")
	ErrInvalidToken       = errors.New("token has expired or is invalid")
	ErrWeakPassword       = errors.New("password should be at least 6 characters")
)

const (
	methodPassword = "password"
	methodRecovery = "recovery"
)

// Session is an authenticated browser session. Recovery sessions come from a
// password reset link and only allow setting a new password.
type Session struct {
	AccessToken string       `json:"accessToken"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        *models.User `json:"user"`
	Recovery    bool         `json:"recovery"`

	// RecoverySentAt ties a recovery session to the reset request it came
	// from. Once the password is changed the request is spent.
	RecoverySentAt time.Time `json:"-"`
}

type AuthProvider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password, redirectTo string) (*models.User, *Session, error)
	ConfirmEmail(ctx context.Context, token string) (*Session, error)
	ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error
	VerifyRecovery(ctx context.Context, token string) (*Session, error)
	UpdatePassword(ctx context.Context, session *Session, password string) (*Session, error)
	ParseToken(accessToken string) (*Session, error)
	GetUser(ctx context.Context, accessToken string) (*models.User, error)
}

type authProvider struct {
	users repository.UserRepository
	mail  mailer.Sender
	cfg   config.Auth
	now   func() time.Time
}

func NewAuthProvider(users repository.UserRepository, mail mailer.Sender, cfg config.Auth) AuthProvider {
	return &authProvider{
		users: users,
		mail:  mail,
		cfg:   cfg,
		now:   time.Now,
	}
}

// NormalizeEmail is the canonical form addresses are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (p *authProvider) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	email = NormalizeEmail(email)
	user, err := p.users.VerifyPassword(ctx, email, password)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrWrongPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("sign in failed: %w", err)
	}

	if user.ConfirmedAt == nil {
		return nil, ErrEmailNotConfirmed
	}

	return p.issue(user, methodPassword)
}

// SignUp creates the account. When email confirmation is enabled the
// returned session is nil and a confirmation link pointing at redirectTo is
// mailed instead.
func (p *authProvider) SignUp(ctx context.Context, email, password, redirectTo string) (*models.User, *Session, error) {
	if len([]rune(password)) < MinPasswordLength {
		return nil, nil, ErrWeakPassword
	}

	email = NormalizeEmail(email)
	_, err := p.users.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, nil, ErrAlreadyRegistered
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, nil, fmt.Errorf("sign up failed: %w", err)
	}

	user := &models.User{Email: email}

	var token string
	if p.cfg.ConfirmEmail {
		token = uuid.New().String()
		user.ConfirmationToken = &token
	} else {
		now := p.now()
		user.ConfirmedAt = &now
	}

	if err := p.users.CreateUser(ctx, user, password); err != nil {
		return nil, nil, fmt.Errorf("sign up failed: %w", err)
	}

	if !p.cfg.ConfirmEmail {
		session, err := p.issue(user, methodPassword)
		return user, session, err
	}

	link := redirectTo + "?token=" + token
	body := fmt.Sprintf("Hesabınızı etkinleştirmek için bağlantıya tıklayın:\n%s\n", link)
	if err := p.mail.Send(ctx, email, "E-posta adresinizi doğrulayın", body); err != nil {
		zap.S().Errorw("confirmation mail failed", "email", email, "error", err)
		return nil, nil, fmt.Errorf("error sending confirmation email: %w", err)
	}

	return user, nil, nil
}

func (p *authProvider) ConfirmEmail(ctx context.Context, token string) (*Session, error) {
	user, err := p.users.ConfirmEmail(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	return p.issue(user, methodPassword)
}

// ResetPasswordForEmail mails a single-use recovery link. Unknown addresses
// succeed silently so the form cannot be used to probe for accounts.
func (p *authProvider) ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error {
	email = NormalizeEmail(email)
	user, err := p.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			zap.S().Infow("password reset requested for unknown email", "email", email)
			return nil
		}
		return fmt.Errorf("password reset failed: %w", err)
	}

	token := uuid.New().String()
	if err := p.users.SetRecoveryToken(ctx, user.UserID, token, p.now()); err != nil {
		return fmt.Errorf("password reset failed: %w", err)
	}

	link := redirectTo + "?token=" + token
	body := fmt.Sprintf("Şifrenizi sıfırlamak için bağlantıya tıklayın:\n%s\n\nBu isteği siz yapmadıysanız bu e-postayı yok sayabilirsiniz.\n", link)
	if err := p.mail.Send(ctx, email, "Şifre sıfırlama", body); err != nil {
		return fmt.Errorf("error sending recovery email: %w", err)
	}

	return nil
}

func (p *authProvider) VerifyRecovery(ctx context.Context, token string) (*Session, error) {
	user, err := p.users.ConsumeRecoveryToken(ctx, token, p.now().Add(-p.cfg.RecoveryTokenDuration))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	return p.issue(user, methodRecovery)
}

// UpdatePassword sets a new password for the session's user and returns a
// fresh normal session. A recovery session works once: the update clears the
// reset request it was issued for.
func (p *authProvider) UpdatePassword(ctx context.Context, session *Session, password string) (*Session, error) {
	if session == nil || session.User == nil {
		return nil, ErrInvalidToken
	}

	if len([]rune(password)) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	if session.Recovery {
		if err := p.checkRecovery(ctx, session); err != nil {
			return nil, err
		}
	}

	if err := p.users.UpdatePassword(ctx, session.User.UserID, password); err != nil {
		return nil, fmt.Errorf("password update failed: %w", err)
	}

	return p.issue(session.User, methodPassword)
}

func (p *authProvider) ParseToken(accessToken string) (*Session, error) {
	token, err := jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(p.cfg.JWTSecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, _ := claims["userId"].(string)
	email, _ := claims["email"].(string)
	amr, _ := claims["amr"].(string)
	if userID == "" {
		return nil, ErrInvalidToken
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrInvalidToken
	}

	session := &Session{
		AccessToken: accessToken,
		ExpiresAt:   exp.Time,
		User:        &models.User{UserID: userID, Email: email},
		Recovery:    amr == methodRecovery,
	}
	if sentAt, ok := claims["rsa"].(float64); ok && session.Recovery {
		session.RecoverySentAt = time.Unix(int64(sentAt), 0)
	}

	return session, nil
}

func (p *authProvider) checkRecovery(ctx context.Context, session *Session) error {
	user, err := p.users.GetUserByID(ctx, session.User.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("password update failed: %w", err)
	}

	if user.RecoverySentAt == nil || user.RecoverySentAt.Unix() != session.RecoverySentAt.Unix() {
		zap.S().Warnw("spent recovery session rejected", "userId", user.UserID)
		return ErrInvalidToken
	}

	return nil
}

// GetUser validates the token and loads the current user row behind it.
func (p *authProvider) GetUser(ctx context.Context, accessToken string) (*models.User, error) {
	session, err := p.ParseToken(accessToken)
	if err != nil {
		return nil, err
	}

	user, err := p.users.GetUserByID(ctx, session.User.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	return user, nil
}

func (p *authProvider) issue(user *models.User, method string) (*Session, error) {
	now := p.now()
	expiresAt := now.Add(p.cfg.AccessTokenDuration)
	if method == methodRecovery {
		expiresAt = now.Add(p.cfg.RecoveryTokenDuration)
	}

	claims := jwt.MapClaims{
		"userId": user.UserID,
		"email":  user.Email,
		"amr":    method,
		"exp":    expiresAt.Unix(),
		"iat":    now.Unix(),
	}

	var recoverySentAt time.Time
	if method == methodRecovery && user.RecoverySentAt != nil {
		recoverySentAt = *user.RecoverySentAt
		claims["rsa"] = recoverySentAt.Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(p.cfg.JWTSecretKey))
	if err != nil {
		return nil, fmt.Errorf("error signing token: %w", err)
	}

	return &Session{
		AccessToken:    tokenString,
		ExpiresAt:      expiresAt,
		User:           user,
		Recovery:       method == methodRecovery,
		RecoverySentAt: recoverySentAt,
	}, nil
}
