package adminsdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// CreateSidebarConfig stores a config document for the session's user.
func (s *Session) CreateSidebarConfig(ctx context.Context, tenantID string, config json.RawMessage) (*SidebarConfig, error) {
	var out SidebarConfigResponse
	req := CreateSidebarConfigRequest{TenantID: tenantID, ConfigJSON: config}
	if err := s.doAuth(ctx, http.MethodPost, "/sidebar-configs", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out.Sidebar, nil
}

// ListSidebarConfigs returns the session user's configs.
func (s *Session) ListSidebarConfigs(ctx context.Context) ([]SidebarConfig, error) {
	var out []SidebarConfig
	if err := s.doAuth(ctx, http.MethodGet, "/sidebar-configs", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) UpdateSidebarConfig(ctx context.Context, id string, config json.RawMessage) (*SidebarConfig, error) {
	var out SidebarConfigResponse
	req := UpdateSidebarConfigRequest{ConfigJSON: config}
	if err := s.doAuth(ctx, http.MethodPut, "/sidebar-configs/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Sidebar, nil
}

func (s *Session) DeleteSidebarConfig(ctx context.Context, id string) (*SidebarConfig, error) {
	var out SidebarConfigResponse
	if err := s.doAuth(ctx, http.MethodDelete, "/sidebar-configs/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Sidebar, nil
}
