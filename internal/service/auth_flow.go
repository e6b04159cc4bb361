package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"zurnaWorkshop/internal/gateway"
	"zurnaWorkshop/internal/models"
)

type AuthState string

const (
	StateSignedOut AuthState = "signed-out"
	StateSigningIn AuthState = "signing-in"
	StateSignedIn  AuthState = "signed-in-normal"
	StateRecovery  AuthState = "recovery-session"
)

type AuthEvent string

const (
	EventSignedIn         AuthEvent = "SIGNED_IN"
	EventSignedOut        AuthEvent = "SIGNED_OUT"
	EventPasswordRecovery AuthEvent = "PASSWORD_RECOVERY"
	EventUserUpdated      AuthEvent = "USER_UPDATED"
)

type AuthMode string

const (
	ModeSignIn AuthMode = "signin"
	ModeSignUp AuthMode = "signup"
	ModeReset  AuthMode = "reset"
)

var ErrPasswordMismatch = errors.New("passwords do not match")

// Transition applies a provider event to the auth state. A recovery event
// wins from any state, and only a password update leaves recovery.
func Transition(state AuthState, event AuthEvent) AuthState {
	switch event {
	case EventPasswordRecovery:
		return StateRecovery
	case EventSignedOut:
		return StateSignedOut
	case EventUserUpdated:
		if state == StateRecovery {
			return StateSignedIn
		}
		return state
	case EventSignedIn:
		if state == StateRecovery {
			return StateRecovery
		}
		return StateSignedIn
	}
	return state
}

// StateOf derives the auth state from a stored session.
func StateOf(session *gateway.Session) AuthState {
	switch {
	case session == nil:
		return StateSignedOut
	case session.Recovery:
		return StateRecovery
	default:
		return StateSignedIn
	}
}

// AuthView says what the auth page shows for a state.
type AuthView struct {
	State              AuthState `json:"state"`
	Mode               AuthMode  `json:"mode,omitempty"`
	Redirect           string    `json:"redirect,omitempty"`
	ShowPasswordUpdate bool      `json:"showPasswordUpdate"`
}

func View(state AuthState, mode AuthMode) AuthView {
	switch mode {
	case ModeSignIn, ModeSignUp, ModeReset:
	default:
		mode = ModeSignIn
	}

	switch state {
	case StateSignedIn:
		return AuthView{State: state, Redirect: "/admin"}
	case StateRecovery:
		return AuthView{State: state, ShowPasswordUpdate: true}
	default:
		return AuthView{State: state, Mode: mode}
	}
}

// AuthResult is the outcome of one auth action. Session, when set, replaces
// the browser's session; ClearSession drops it.
type AuthResult struct {
	State        AuthState        `json:"state"`
	Redirect     string           `json:"redirect,omitempty"`
	Notice       *models.Notice   `json:"notice,omitempty"`
	Session      *gateway.Session `json:"-"`
	ClearSession bool             `json:"-"`
}

type AuthFlowService interface {
	SignIn(ctx context.Context, email, password string) (*AuthResult, error)
	SignUp(ctx context.Context, email, password string) (*AuthResult, error)
	RequestPasswordReset(ctx context.Context, email string) (*AuthResult, error)
	ConfirmEmail(ctx context.Context, current *gateway.Session, token string) (*AuthResult, error)
	Recover(ctx context.Context, current *gateway.Session, token string) (*AuthResult, error)
	CompleteRecovery(ctx context.Context, current *gateway.Session, password, confirmPassword string) (*AuthResult, error)
	SignOut(ctx context.Context, current *gateway.Session) *AuthResult
}

type authFlowService struct {
	auth    gateway.AuthProvider
	baseURL string
}

func NewAuthFlowService(auth gateway.AuthProvider, baseURL string) AuthFlowService {
	return &authFlowService{auth: auth, baseURL: baseURL}
}

func (s *authFlowService) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	state := StateSigningIn

	session, err := s.auth.SignInWithPassword(ctx, email, password)
	if err != nil {
		state = Transition(state, EventSignedOut)
		if errors.Is(err, gateway.ErrInvalidCredentials) {
			return &AuthResult{State: state}, failure("Giriş Hatası", "Email veya şifre hatalı.", err)
		}
		return &AuthResult{State: state}, s.providerFailure("Giriş Hatası", err)
	}

	state = Transition(state, EventSignedIn)

	return &AuthResult{
		State:    state,
		Redirect: View(state, "").Redirect,
		Notice:   success("Başarılı", "Giriş yapıldı."),
		Session:  session,
	}, nil
}

func (s *authFlowService) SignUp(ctx context.Context, email, password string) (*AuthResult, error) {
	_, session, err := s.auth.SignUp(ctx, email, password, s.baseURL+"/auth/confirm")
	if err != nil {
		if errors.Is(err, gateway.ErrAlreadyRegistered) {
			return &AuthResult{State: StateSignedOut}, failure("Kullanıcı Zaten Kayıtlı",
				"Bu email adresi ile zaten kayıt olunmuş. Giriş yapmayı deneyin.", err)
		}
		return &AuthResult{State: StateSignedOut}, s.providerFailure("Kayıt Hatası", err)
	}

	if session == nil {
		return &AuthResult{
			State:  StateSignedOut,
			Notice: success("Email Doğrulama Gerekli", "Email doğrulama linkini kontrol edin."),
		}, nil
	}

	state := Transition(StateSignedOut, EventSignedIn)

	return &AuthResult{
		State:    state,
		Redirect: View(state, "").Redirect,
		Notice:   success("Başarılı", "Kayıt işlemi tamamlandı."),
		Session:  session,
	}, nil
}

func (s *authFlowService) RequestPasswordReset(ctx context.Context, email string) (*AuthResult, error) {
	err := s.auth.ResetPasswordForEmail(ctx, email, s.baseURL+"/auth/recover")
	if err != nil {
		return &AuthResult{State: StateSignedOut}, s.providerFailure("Şifre Sıfırlama Hatası", err)
	}

	return &AuthResult{
		State:  StateSignedOut,
		Notice: success("Email Gönderildi", "Şifre sıfırlama linki email adresinize gönderildi."),
	}, nil
}

func (s *authFlowService) ConfirmEmail(ctx context.Context, current *gateway.Session, token string) (*AuthResult, error) {
	state := StateOf(current)

	session, err := s.auth.ConfirmEmail(ctx, token)
	if err != nil {
		return &AuthResult{State: state}, s.providerFailure("Doğrulama Hatası", err)
	}

	state = Transition(state, EventSignedIn)

	return &AuthResult{
		State:    state,
		Redirect: View(state, "").Redirect,
		Notice:   success("Başarılı", "Email adresiniz doğrulandı."),
		Session:  session,
	}, nil
}

// Recover exchanges a reset link token for a recovery session. Whatever
// session the browser had before is replaced.
func (s *authFlowService) Recover(ctx context.Context, current *gateway.Session, token string) (*AuthResult, error) {
	state := StateOf(current)

	session, err := s.auth.VerifyRecovery(ctx, token)
	if err != nil {
		return &AuthResult{State: state}, s.providerFailure("Şifre Sıfırlama Hatası", err)
	}

	return &AuthResult{
		State:   Transition(state, EventPasswordRecovery),
		Session: session,
	}, nil
}

func (s *authFlowService) CompleteRecovery(ctx context.Context, current *gateway.Session, password, confirmPassword string) (*AuthResult, error) {
	state := StateOf(current)

	if password != confirmPassword {
		return &AuthResult{State: state}, failure("Şifre Hatası", "Şifreler eşleşmiyor.", ErrPasswordMismatch)
	}

	if len([]rune(password)) < gateway.MinPasswordLength {
		return &AuthResult{State: state}, failure("Şifre Hatası", "Şifre en az 6 karakter olmalı.", gateway.ErrWeakPassword)
	}

	session, err := s.auth.UpdatePassword(ctx, current, password)
	if err != nil {
		return &AuthResult{State: state}, s.providerFailure("Şifre Güncelleme Hatası", err)
	}

	state = Transition(state, EventUserUpdated)

	return &AuthResult{
		State:    state,
		Redirect: View(state, "").Redirect,
		Notice:   success("Başarılı", "Şifreniz başarıyla güncellendi."),
		Session:  session,
	}, nil
}

func (s *authFlowService) SignOut(_ context.Context, _ *gateway.Session) *AuthResult {
	return &AuthResult{
		State:        Transition(StateSignedIn, EventSignedOut),
		Redirect:     "/",
		Notice:       success("Başarılı", "Çıkış yapıldı."),
		ClearSession: true,
	}
}

// providerFailure shows the provider's own message for auth errors and a
// generic one for anything unexpected.
func (s *authFlowService) providerFailure(title string, err error) *NoticeError {
	if IsAuthError(err) {
		return failure(title, err.Error(), err)
	}

	zap.S().Errorw("auth provider call failed", "error", err)
	return failure("Hata", "Beklenmeyen bir hata oluştu.", err)
}

// IsAuthError reports whether err is an expected outcome of an auth call
// rather than an infrastructure failure.
func IsAuthError(err error) bool {
	for _, target := range []error{
		gateway.ErrInvalidCredentials,
		gateway.ErrAlreadyRegistered,
		gateway.ErrEmailNotConfirmed,
		gateway.ErrInvalidToken,
		gateway.ErrWeakPassword,
		ErrPasswordMismatch,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
