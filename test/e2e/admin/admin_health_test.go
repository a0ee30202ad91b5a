package admin_test

import (
	"testing"

	"github.com/aussiebroadwan/saasadmin/pkg/adminsdk"
	"github.com/stretchr/testify/require"
)

// TestLivezEndpoint verifies the liveness check on a fresh container.
func TestLivezEndpoint(t *testing.T) {
	baseURL, cleanup := setupAdminContainer(t)
	defer cleanup()

	client := adminsdk.NewSDKClient(baseURL)

	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)
	require.NotEmpty(t, health.Version)
}

// TestReadyzEndpoint verifies readiness reports the database.
func TestReadyzEndpoint(t *testing.T) {
	baseURL, cleanup := setupAdminContainer(t)
	defer cleanup()

	client := adminsdk.NewSDKClient(baseURL)

	health, err := client.GetReadiness(t.Context())
	assertHealthy(t, health, err)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
}

func TestTestDBEndpoint(t *testing.T) {
	baseURL, cleanup := setupAdminContainer(t)
	defer cleanup()

	client := adminsdk.NewSDKClient(baseURL)

	resp, err := client.TestDB(t.Context())
	require.NoError(t, err)
	require.Equal(t, "Database connected", resp.Message)
	require.False(t, resp.Time.IsZero())
}
