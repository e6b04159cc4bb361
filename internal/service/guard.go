package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"zurnaWorkshop/internal/gateway"
	"zurnaWorkshop/internal/models"
	"zurnaWorkshop/internal/repository"
)

// GuardDecision is the verdict for one visit to the admin area. Callers write
// admin content only when Allowed is true.
type GuardDecision struct {
	Allowed  bool
	Redirect string
	Notice   *models.Notice
	User     *models.User
}

type AccessGuard interface {
	Check(ctx context.Context, session *gateway.Session) GuardDecision
}

type accessGuard struct {
	roles repository.RoleRepository
}

func NewAccessGuard(roles repository.RoleRepository) AccessGuard {
	return &accessGuard{roles: roles}
}

func (g *accessGuard) Check(ctx context.Context, session *gateway.Session) GuardDecision {
	if session == nil || session.User == nil {
		return GuardDecision{Redirect: "/auth"}
	}

	isAdmin, err := g.roles.HasRole(ctx, session.User.UserID, models.RoleAdmin)
	if err != nil {
		zap.S().Errorw("admin role check failed", "user_id", session.User.UserID, "error", err)
		return GuardDecision{
			Redirect: "/",
			Notice: &models.Notice{
				Title:       "Hata",
				Description: "Admin yetkisi kontrol edilirken hata oluştu.",
				Destructive: true,
			},
		}
	}

	if !isAdmin {
		return GuardDecision{
			Redirect: "/",
			Notice: &models.Notice{
				Title:       "Yetkisiz Erişim",
				Description: "Bu sayfaya erişim yetkiniz bulunmamaktadır.",
				Destructive: true,
			},
		}
	}

	return GuardDecision{Allowed: true, User: session.User}
}

// GrantAdmin gives the admin role to the account registered under email.
// Granting twice is a no-op.
func GrantAdmin(ctx context.Context, users repository.UserRepository, roles repository.RoleRepository, email string) error {
	user, err := users.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("admin bootstrap for %s: %w", email, err)
	}

	if err := roles.Grant(ctx, user.UserID, models.RoleAdmin); err != nil {
		return err
	}

	zap.S().Infow("admin role granted", "user_id", user.UserID, "email", email)
	return nil
}
