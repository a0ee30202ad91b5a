package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/saasadmin/internal/admin/domain"
	"github.com/aussiebroadwan/saasadmin/internal/admin/store"
	"github.com/aussiebroadwan/saasadmin/pkg/idx"
	"github.com/aussiebroadwan/saasadmin/pkg/slogx"
)

const msgSidebarRequired = "tenant_id and config_json are required"

// SidebarService stores per-user sidebar documents. Every operation is scoped
// to the calling user.
type SidebarService struct {
	Store store.Store
}

type CreateSidebarConfigInput struct {
	TenantID   string `validate:"required"`
	UserID     string `validate:"required"`
	ConfigJSON json.RawMessage
}

// Create stores a config for the caller under an existing tenant.
func (s *SidebarService) Create(ctx context.Context, in CreateSidebarConfigInput) (domain.SidebarConfig, error) {
	in.TenantID = strings.TrimSpace(in.TenantID)
	if err := check(in, messages{"required": msgSidebarRequired}); err != nil {
		return domain.SidebarConfig{}, err
	}
	doc, err := normalizeConfig(in.ConfigJSON, msgSidebarRequired)
	if err != nil {
		return domain.SidebarConfig{}, err
	}

	now := time.Now().UTC()
	cfg := domain.SidebarConfig{
		ID:         idx.New().String(),
		TenantID:   in.TenantID,
		UserID:     in.UserID,
		ConfigJSON: doc,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Tenants().GetTenantByID(ctx, cfg.TenantID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrTenantNotFound
			}
			return err
		}
		return tx.SidebarConfigs().CreateSidebarConfig(ctx, cfg)
	})
	if err != nil {
		return domain.SidebarConfig{}, err
	}

	slogx.FromContext(ctx).Info("sidebar config created",
		slog.String("sidebar_config_id", cfg.ID),
		slog.String("user_id", cfg.UserID),
	)
	return cfg, nil
}

// List returns the caller's configs, oldest first.
func (s *SidebarService) List(ctx context.Context, userID string) ([]domain.SidebarConfig, error) {
	return s.Store.SidebarConfigs().ListSidebarConfigs(ctx, userID)
}

// Update replaces the document of one of the caller's configs.
func (s *SidebarService) Update(ctx context.Context, id, userID string, config json.RawMessage) (domain.SidebarConfig, error) {
	doc, err := normalizeConfig(config, "config_json is required")
	if err != nil {
		return domain.SidebarConfig{}, err
	}

	var updated domain.SidebarConfig
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.SidebarConfigs().UpdateSidebarConfig(ctx, id, userID, doc, time.Now().UTC()); err != nil {
			return err
		}
		cfg, err := tx.SidebarConfigs().GetSidebarConfig(ctx, id, userID)
		if err != nil {
			return err
		}
		updated = cfg
		return nil
	})
	if err != nil {
		return domain.SidebarConfig{}, err
	}
	return updated, nil
}

// Delete removes one of the caller's configs and returns it.
func (s *SidebarService) Delete(ctx context.Context, id, userID string) (domain.SidebarConfig, error) {
	var deleted domain.SidebarConfig
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		cfg, err := tx.SidebarConfigs().GetSidebarConfig(ctx, id, userID)
		if err != nil {
			return err
		}
		if err := tx.SidebarConfigs().DeleteSidebarConfig(ctx, id, userID); err != nil {
			return err
		}
		deleted = cfg
		return nil
	})
	if err != nil {
		return domain.SidebarConfig{}, err
	}
	return deleted, nil
}

// normalizeConfig rejects absent, null or malformed documents and compacts
// the rest.
func normalizeConfig(raw json.RawMessage, requiredMsg string) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, &ValidationError{Field: "ConfigJSON", Message: requiredMsg}
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return nil, &ValidationError{Field: "ConfigJSON", Message: "config_json must be valid JSON"}
	}
	return json.RawMessage(buf.Bytes()), nil
}
