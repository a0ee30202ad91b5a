package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/saasadmin/internal/admin/domain"
	"github.com/aussiebroadwan/saasadmin/internal/admin/store"
	"github.com/aussiebroadwan/saasadmin/pkg/cryptox"
	"github.com/aussiebroadwan/saasadmin/pkg/idx"
	"github.com/aussiebroadwan/saasadmin/pkg/slogx"
)

const (
	msgCreateAccountRequired = "All fields (username, email, password, role, tenant_name) are required"
	msgPasswordTooShort      = "Password must be a string and at least 8 characters long"
	msgInvalidEmail          = "Email must be a valid email address"
)

// AccountService owns user lifecycle. Every write runs in one transaction
// spanning tenant, role, user, role assignment and refresh token rows.
type AccountService struct {
	Store   store.Store
	Tokens  *TokenService
	Tenants *TenantService
	Roles   *RolesService
}

type CreateAccountInput struct {
	Username   string `validate:"required"`
	Email      string `validate:"required,email"`
	Password   string `validate:"required,min=8"`
	Role       string `validate:"required"`
	TenantName string `validate:"required"`
}

// UpdateAccountInput fields left nil keep their stored value.
type UpdateAccountInput struct {
	Username   *string
	Email      *string `validate:"omitempty,email"`
	Role       *string
	TenantName *string
}

// normalize trims every field and drops the blank ones so they keep their
// stored value.
func (in UpdateAccountInput) normalize() UpdateAccountInput {
	trim := func(p *string) *string {
		if p == nil {
			return nil
		}
		v := strings.TrimSpace(*p)
		if v == "" {
			return nil
		}
		return &v
	}
	return UpdateAccountInput{
		Username:   trim(in.Username),
		Email:      trim(in.Email),
		Role:       trim(in.Role),
		TenantName: trim(in.TenantName),
	}
}

type AccountResult struct {
	User         domain.User
	AccessToken  string
	RefreshToken string
}

// Create registers a user, resolving (or creating) its tenant and checking
// its role, then issues a token pair. Nothing is persisted unless every step
// succeeds.
func (s *AccountService) Create(ctx context.Context, in CreateAccountInput) (AccountResult, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input before touching the store
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.Role = strings.TrimSpace(in.Role)
	in.TenantName = strings.TrimSpace(in.TenantName)
	if err := check(in, messages{
		"required": msgCreateAccountRequired,
		"min":      msgPasswordTooShort,
		"email":    msgInvalidEmail,
	}); err != nil {
		return AccountResult{}, err
	}

	var result AccountResult
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 2. Resolve tenant, creating it on first use
		tenant, err := s.Tenants.Resolve(ctx, tx, in.TenantName)
		if err != nil {
			return fmt.Errorf("resolve tenant: %w", err)
		}

		// 3. Resolve role; unknown roles abort everything
		role, err := s.Roles.Resolve(ctx, tx, in.Role)
		if err != nil {
			return err
		}

		// 4. Hash the password
		hash, err := cryptox.HashPassword(in.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		// 5. Insert the user with the denormalized role name
		now := time.Now().UTC()
		user := domain.User{
			ID:           idx.New().String(),
			TenantID:     tenant.ID,
			Username:     in.Username,
			Email:        in.Email,
			PasswordHash: hash,
			Role:         role.Name,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			return err
		}

		// 6. Record the role assignment
		if err := tx.UserRoles().AssignRole(ctx, domain.UserRole{UserID: user.ID, RoleID: role.ID}); err != nil {
			return fmt.Errorf("assign role: %w", err)
		}

		// 7. Issue and persist the token pair
		pair, err := s.Tokens.IssuePair(ctx, tx, user)
		if err != nil {
			return err
		}

		result = AccountResult{User: user, AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrRoleNotFound) && !errors.Is(err, store.ErrAlreadyExists) {
			log.Error("failed to create account", slog.Any("error", err))
		}
		return AccountResult{}, err
	}

	log.Info("account created",
		slog.String("user_id", result.User.ID),
		slog.String("username", result.User.Username),
		slog.String("tenant_id", result.User.TenantID),
		slog.String("role", result.User.Role),
	)
	return result, nil
}

// Update applies the non-nil fields of in to user id.
func (s *AccountService) Update(ctx context.Context, id string, in UpdateAccountInput) (domain.User, error) {
	log := slogx.FromContext(ctx)

	in = in.normalize()
	if err := check(in, messages{"email": msgInvalidEmail}); err != nil {
		return domain.User{}, err
	}

	var updated domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		user, err := tx.Users().GetUserByID(ctx, id)
		if err != nil {
			return err
		}

		if in.Username != nil {
			user.Username = *in.Username
		}
		if in.Email != nil {
			user.Email = *in.Email
		}

		if in.TenantName != nil {
			tenant, err := s.Tenants.Resolve(ctx, tx, *in.TenantName)
			if err != nil {
				return fmt.Errorf("resolve tenant: %w", err)
			}
			user.TenantID = tenant.ID
		}

		if in.Role != nil {
			role, err := s.Roles.Resolve(ctx, tx, *in.Role)
			if err != nil {
				return err
			}
			if role.Name != user.Role {
				if err := tx.UserRoles().DeleteUserRoles(ctx, user.ID); err != nil {
					return fmt.Errorf("clear roles: %w", err)
				}
				if err := tx.UserRoles().AssignRole(ctx, domain.UserRole{UserID: user.ID, RoleID: role.ID}); err != nil {
					return fmt.Errorf("assign role: %w", err)
				}
				user.Role = role.Name
			}
		}

		user.UpdatedAt = time.Now().UTC()
		if err := tx.Users().UpdateUser(ctx, user); err != nil {
			return err
		}

		updated = user
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	log.Info("account updated", slog.String("user_id", updated.ID))
	return updated, nil
}

// Delete removes user id together with its role assignments and refresh
// tokens, and returns the row as it was.
func (s *AccountService) Delete(ctx context.Context, id string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	var deleted domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		user, err := tx.Users().GetUserByID(ctx, id)
		if err != nil {
			return err
		}

		if err := tx.UserRoles().DeleteUserRoles(ctx, id); err != nil {
			return fmt.Errorf("delete user roles: %w", err)
		}
		if err := tx.RefreshTokens().DeleteUserRefreshTokens(ctx, id); err != nil {
			return fmt.Errorf("delete refresh tokens: %w", err)
		}
		if err := tx.Users().DeleteUser(ctx, id); err != nil {
			return err
		}

		deleted = user
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	log.Info("account deleted", slog.String("user_id", deleted.ID))
	return deleted, nil
}

func (s *AccountService) Get(ctx context.Context, id string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, id)
}

func (s *AccountService) List(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}
