package admin_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/saasadmin/pkg/adminsdk"
	"github.com/stretchr/testify/require"
)

func TestTenantsAndOrganizations(t *testing.T) {
	baseURL, cleanup := setupAdminContainer(t)
	defer cleanup()

	client := adminsdk.NewSDKClient(baseURL)
	ctx := t.Context()

	created, session := registerUser(t, client, "admin")

	tenants, err := session.ListTenants(ctx)
	require.NoError(t, err)
	require.Len(t, tenants, 1)
	require.Equal(t, testTenant, tenants[0].Name)
	require.Equal(t, tenants[0].ID, created.User.TenantID)

	_, err = client.CreateTenant(ctx, testTenant)
	assertStatus(t, err, http.StatusConflict)

	org, err := client.CreateOrganization(ctx, adminsdk.CreateOrganizationRequest{
		Name:      "Platform",
		TenantID:  created.User.TenantID,
		CreatedBy: &created.User.ID,
	})
	require.NoError(t, err)
	require.Equal(t, "Platform", org.Name)

	orgs, err := session.ListOrganizations(ctx)
	require.NoError(t, err)
	require.Len(t, orgs, 1)
	require.Equal(t, org.ID, orgs[0].ID)
}

// TestSidebarConfigs checks sidebar documents are private to their owner.
func TestSidebarConfigs(t *testing.T) {
	baseURL, cleanup := setupAdminContainer(t)
	defer cleanup()

	client := adminsdk.NewSDKClient(baseURL)
	ctx := t.Context()

	owner, session := registerUser(t, client, "user")
	_, stranger := registerUser(t, client, "user")

	cfg, err := session.CreateSidebarConfig(ctx, owner.User.TenantID, json.RawMessage(`{"items":["home","users"]}`))
	require.NoError(t, err)
	require.JSONEq(t, `{"items":["home","users"]}`, string(cfg.ConfigJSON))

	_, err = stranger.UpdateSidebarConfig(ctx, cfg.ID, json.RawMessage(`{"items":[]}`))
	assertStatus(t, err, http.StatusNotFound)

	updated, err := session.UpdateSidebarConfig(ctx, cfg.ID, json.RawMessage(`{"items":["home"]}`))
	require.NoError(t, err)
	require.JSONEq(t, `{"items":["home"]}`, string(updated.ConfigJSON))

	mine, err := session.ListSidebarConfigs(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	theirs, err := stranger.ListSidebarConfigs(ctx)
	require.NoError(t, err)
	require.Empty(t, theirs)

	_, err = session.DeleteSidebarConfig(ctx, cfg.ID)
	require.NoError(t, err)
}
