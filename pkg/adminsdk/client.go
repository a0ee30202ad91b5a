package adminsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the SaaS admin service. It provides the
// unauthenticated operations and creates authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new admin service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ============================================================================
// Accounts and sessions
// ============================================================================

// CreateUser registers an account. The returned Session is already
// authenticated with the tokens minted for the new user.
func (c *SDKClient) CreateUser(ctx context.Context, req CreateUserRequest) (*CreateUserResponse, *Session, error) {
	var out CreateUserResponse
	if err := c.call(ctx, http.MethodPost, "/users", "", req, &out, http.StatusCreated); err != nil {
		return nil, nil, err
	}
	return &out, c.NewSessionFromTokens(out.AccessToken, out.RefreshToken), nil
}

// Login authenticates with email and password.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*Session, error) {
	out, err := c.LoginRaw(ctx, LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return c.NewSessionFromTokens(out.AccessToken, out.RefreshToken), nil
}

// LoginRaw is Login without the Session wrapper.
func (c *SDKClient) LoginRaw(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.call(ctx, http.MethodPost, "/login", "", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// RefreshAccessToken exchanges a refresh token for a new access token.
func (c *SDKClient) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	var out RefreshTokenResponse
	req := RefreshTokenRequest{RefreshToken: refreshToken}
	if err := c.call(ctx, http.MethodPost, "/refresh-token", "", req, &out, http.StatusOK); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

// Logout deletes the stored refresh token.
func (c *SDKClient) Logout(ctx context.Context, refreshToken string) error {
	req := RefreshTokenRequest{RefreshToken: refreshToken}
	return c.call(ctx, http.MethodPost, "/logout", "", req, &MessageResponse{}, http.StatusOK)
}

// NewSessionFromTokens creates a session from tokens obtained elsewhere.
func (c *SDKClient) NewSessionFromTokens(accessToken, refreshToken string) *Session {
	return &Session{
		client:       c,
		accessToken:  accessToken,
		refreshToken: refreshToken,
	}
}

// ============================================================================
// Tenants and organizations
// ============================================================================

func (c *SDKClient) CreateTenant(ctx context.Context, name string) (*Tenant, error) {
	var out TenantResponse
	if err := c.call(ctx, http.MethodPost, "/tenants", "", CreateTenantRequest{Name: name}, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out.Tenant, nil
}

func (c *SDKClient) CreateOrganization(ctx context.Context, req CreateOrganizationRequest) (*Organization, error) {
	var out OrganizationResponse
	if err := c.call(ctx, http.MethodPost, "/organizations", "", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out.Organization, nil
}

// ============================================================================
// Health
// ============================================================================

func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.call(ctx, http.MethodGet, "/livez", "", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.call(ctx, http.MethodGet, "/readyz", "", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// TestDB asks the server to round-trip a query to its database.
func (c *SDKClient) TestDB(ctx context.Context) (*TestDBResponse, error) {
	var out TestDBResponse
	if err := c.call(ctx, http.MethodGet, "/test-db", "", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
