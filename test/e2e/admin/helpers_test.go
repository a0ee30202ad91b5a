package admin_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/saasadmin/pkg/adminsdk"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Container setup and shared helpers for the admin service end-to-end tests.
 */

const (
	testImageName = "saasadmin-test:latest"

	accessSecret  = "e2e-access-secret-0123456789"
	refreshSecret = "e2e-refresh-secret-0123456789"
	testPassword  = "Str0ngPassw0rd!"
	testTenant    = "e2e-tenant"
)

// TestMain builds the service image once, runs the suite, then removes it.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Admin Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Admin Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/admin/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	cmd := exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // image may already be gone
}

// setupAdminContainer starts the admin service and returns its base URL.
func setupAdminContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"DATABASE_FILE":  "/data/admin.db",
			"PEPPER_FILE":    "/data/pepper",
			"JWT_SECRET":     accessSecret,
			"REFRESH_SECRET": refreshSecret,
			"ENV":            "test",
			"LOG_LEVEL":      "info",
			"LOG_FORMAT":     "json",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// registerUser creates a uniquely named account in testTenant and returns
// the authenticated session.
func registerUser(t *testing.T, client *adminsdk.SDKClient, role string) (*adminsdk.CreateUserResponse, *adminsdk.Session) {
	t.Helper()

	name := "user-" + uuid.NewString()[:8]
	resp, session, err := client.CreateUser(t.Context(), adminsdk.CreateUserRequest{
		Username:   name,
		Email:      name + "@example.com",
		Password:   testPassword,
		Role:       role,
		TenantName: testTenant,
	})
	require.NoError(t, err, "CreateUser should succeed")
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	require.Equal(t, role, resp.User.Role)

	return resp, session
}

// assertStatus checks err is an APIError with the given status code.
func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)

	var apiErr *adminsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *adminsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
