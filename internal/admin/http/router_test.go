package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/saasadmin/internal/admin/realtime"
	"github.com/aussiebroadwan/saasadmin/internal/admin/service"
	"github.com/aussiebroadwan/saasadmin/internal/admin/store"
	"github.com/aussiebroadwan/saasadmin/internal/admin/store/drivers/sqlite"
	"github.com/aussiebroadwan/saasadmin/pkg/adminsdk"
	"github.com/aussiebroadwan/saasadmin/pkg/cryptox"
	"github.com/aussiebroadwan/saasadmin/pkg/jwtx"
	"github.com/aussiebroadwan/saasadmin/pkg/slogx"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "adminhttp")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type testServer struct {
	URL    string
	Client *adminsdk.SDKClient
	Store  store.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "admin.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	accessKey, err := jwtx.NewHMACKey([]byte("access-secret-for-tests-0123"), 0)
	require.NoError(t, err)
	refreshKey, err := jwtx.NewHMACKey([]byte("refresh-secret-for-tests-0123"), 0)
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	hub := realtime.NewHub(reg)
	tokens := &service.TokenService{Store: st, AccessKey: accessKey, RefreshKey: refreshKey}
	tenants := &service.TenantService{Store: st}
	roles := &service.RolesService{Store: st}

	r := NewRouter("test", st, slogx.Discard())
	r.TokenService = tokens
	r.AccountService = &service.AccountService{Store: st, Tokens: tokens, Tenants: tenants, Roles: roles}
	r.SessionService = &service.SessionService{Store: st, Tokens: tokens}
	r.TenantService = tenants
	r.OrganizationService = &service.OrganizationService{Store: st}
	r.SidebarService = &service.SidebarService{Store: st}
	r.NotificationService = &service.NotificationService{Store: st, Sink: hub}
	r.Hub = hub
	r.EnableMetrics(reg, reg)
	r.EnableCORS([]string{"*"})
	r.ApplyRoutes()

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testServer{URL: srv.URL, Client: adminsdk.NewSDKClient(srv.URL), Store: st}
}

func (s *testServer) createUser(t *testing.T, username, role string) (*adminsdk.CreateUserResponse, *adminsdk.Session) {
	t.Helper()
	res, sess, err := s.Client.CreateUser(context.Background(), adminsdk.CreateUserRequest{
		Username:   username,
		Email:      username + "@example.com",
		Password:   "correct-horse",
		Role:       role,
		TenantName: "acme",
	})
	require.NoError(t, err)
	return res, sess
}

// rawJSON performs a request without the SDK so status and body are visible.
func (s *testServer) rawJSON(t *testing.T, method, path, token, body string) (int, string) {
	t.Helper()

	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, s.URL+path, rdr)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func requireAPIError(t *testing.T, err error, status int, msg string) {
	t.Helper()
	var apiErr *adminsdk.APIError
	require.True(t, errors.As(err, &apiErr), "expected APIError, got %v", err)
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, msg, apiErr.Message)
}

func TestCreateUser_ResolvesTenantByName(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	res, _, err := srv.Client.CreateUser(ctx, adminsdk.CreateUserRequest{
		Username:   "ana",
		Email:      "ana@example.com",
		Password:   "hunter2hunter2",
		Role:       "admin",
		TenantName: "acme",
	})
	require.NoError(t, err)
	require.Equal(t, "User created successfully", res.Message)
	require.Equal(t, "ana", res.User.Username)
	require.Equal(t, "admin", res.User.Role)
	require.NotEmpty(t, res.AccessToken)
	require.NotEmpty(t, res.RefreshToken)

	acme, err := srv.Store.Tenants().GetTenantByName(ctx, "acme")
	require.NoError(t, err)
	require.Equal(t, acme.ID, res.User.TenantID)
}

func TestCreateUser_Rejects(t *testing.T) {
	srv := newTestServer(t)
	srv.createUser(t, "ana", "admin")

	cases := []struct {
		name   string
		body   string
		status int
		msg    string
	}{
		{"missing fields", `{"username":"bo"}`, 400, "All fields (username, email, password, role, tenant_name) are required"},
		{"short password", `{"username":"bo","email":"bo@example.com","password":"short","role":"user","tenant_name":"acme"}`, 400, "Password must be a string and at least 8 characters long"},
		{"unknown role", `{"username":"bo","email":"bo@example.com","password":"long-enough","role":"wizard","tenant_name":"acme"}`, 400, "Role not found"},
		{"duplicate", `{"username":"ana","email":"ana@example.com","password":"long-enough","role":"user","tenant_name":"acme"}`, 409, "Username or email already exists"},
		{"bad json", `{"username":`, 400, "Invalid request body"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := srv.rawJSON(t, http.MethodPost, "/users", "", tc.body)
			require.Equal(t, tc.status, status)
			require.JSONEq(t, `{"error":`+mustJSON(t, tc.msg)+`}`, body)
		})
	}
}

func TestLogin(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	srv.createUser(t, "ana", "user")

	res, err := srv.Client.LoginRaw(ctx, adminsdk.LoginRequest{Email: "ana@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	require.Equal(t, "Login successful", res.Message)
	require.NotEmpty(t, res.AccessToken)
	require.NotEmpty(t, res.RefreshToken)

	wrongStatus, wrongBody := srv.rawJSON(t, http.MethodPost, "/login", "", `{"email":"ana@example.com","password":"wrong-password"}`)
	unknownStatus, unknownBody := srv.rawJSON(t, http.MethodPost, "/login", "", `{"email":"nobody@example.com","password":"wrong-password"}`)
	require.Equal(t, http.StatusUnauthorized, wrongStatus)
	require.JSONEq(t, `{"error":"Invalid email or password"}`, wrongBody)
	require.Equal(t, wrongStatus, unknownStatus)
	require.Equal(t, wrongBody, unknownBody)

	status, body := srv.rawJSON(t, http.MethodPost, "/login", "", `{}`)
	require.Equal(t, http.StatusBadRequest, status)
	require.JSONEq(t, `{"error":"Email and password are required"}`, body)
}

func TestRefreshAndLogout(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	res, _ := srv.createUser(t, "ana", "user")

	access, err := srv.Client.RefreshAccessToken(ctx, res.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, access)

	_, err = srv.Client.RefreshAccessToken(ctx, "not-a-token")
	requireAPIError(t, err, http.StatusUnauthorized, "Invalid or expired refresh token")

	_, err = srv.Client.RefreshAccessToken(ctx, "")
	requireAPIError(t, err, http.StatusBadRequest, "Refresh token is required")

	require.NoError(t, srv.Client.Logout(ctx, res.RefreshToken))

	// Still signature-valid, but the row is gone.
	_, err = srv.Client.RefreshAccessToken(ctx, res.RefreshToken)
	requireAPIError(t, err, http.StatusUnauthorized, "Invalid or expired refresh token")

	err = srv.Client.Logout(ctx, res.RefreshToken)
	requireAPIError(t, err, http.StatusNotFound, "Refresh token not found")
}

func TestProtectedRoutes_RequireBearer(t *testing.T) {
	srv := newTestServer(t)

	status, body := srv.rawJSON(t, http.MethodGet, "/users", "", "")
	require.Equal(t, http.StatusUnauthorized, status)
	require.JSONEq(t, `{"error":"Authorization token required"}`, body)

	status, body = srv.rawJSON(t, http.MethodGet, "/users", "garbage", "")
	require.Equal(t, http.StatusUnauthorized, status)
	require.JSONEq(t, `{"error":"Invalid or expired token"}`, body)

	// A refresh token is not an access token.
	res, _ := srv.createUser(t, "ana", "user")
	status, _ = srv.rawJSON(t, http.MethodGet, "/users", res.RefreshToken, "")
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestAnyTokenReadsAllUsers(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	srv.createUser(t, "ana", "admin")
	_, plain := srv.createUser(t, "bo", "user")

	users, err := plain.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
}

func TestUserLifecycle(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	_, admin := srv.createUser(t, "ana", "admin")
	bo, _ := srv.createUser(t, "bo", "user")

	got, err := admin.GetUser(ctx, bo.User.ID)
	require.NoError(t, err)
	require.Equal(t, "bo", got.Username)

	_, err = admin.GetUser(ctx, "missing")
	requireAPIError(t, err, http.StatusNotFound, "User not found")

	role := "admin"
	tenant := "globex"
	updated, err := admin.UpdateUser(ctx, bo.User.ID, adminsdk.UpdateUserRequest{Role: &role, TenantName: &tenant})
	require.NoError(t, err)
	require.Equal(t, "admin", updated.Role)
	require.NotEqual(t, bo.User.TenantID, updated.TenantID)

	taken := "ana"
	_, err = admin.UpdateUser(ctx, bo.User.ID, adminsdk.UpdateUserRequest{Username: &taken})
	requireAPIError(t, err, http.StatusConflict, "Username or email already exists")

	deleted, err := admin.DeleteUser(ctx, bo.User.ID)
	require.NoError(t, err)
	require.Equal(t, bo.User.ID, deleted.ID)

	_, err = srv.Client.RefreshAccessToken(ctx, bo.RefreshToken)
	requireAPIError(t, err, http.StatusUnauthorized, "Invalid or expired refresh token")

	_, err = admin.DeleteUser(ctx, bo.User.ID)
	requireAPIError(t, err, http.StatusNotFound, "User not found")
}

func TestTenantsAndOrganizations(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	ana, sess := srv.createUser(t, "ana", "admin")

	tenant, err := srv.Client.CreateTenant(ctx, "globex")
	require.NoError(t, err)
	require.Equal(t, "globex", tenant.Name)

	_, err = srv.Client.CreateTenant(ctx, "globex")
	requireAPIError(t, err, http.StatusConflict, "Tenant already exists")

	_, err = srv.Client.CreateTenant(ctx, "  ")
	requireAPIError(t, err, http.StatusBadRequest, "Tenant name is required")

	tenants, err := sess.ListTenants(ctx)
	require.NoError(t, err)
	require.Len(t, tenants, 2)

	org, err := srv.Client.CreateOrganization(ctx, adminsdk.CreateOrganizationRequest{
		Name:      "Research",
		TenantID:  tenant.ID,
		CreatedBy: &ana.User.ID,
	})
	require.NoError(t, err)
	require.Equal(t, tenant.ID, org.TenantID)
	require.Equal(t, ana.User.ID, *org.CreatedBy)

	_, err = srv.Client.CreateOrganization(ctx, adminsdk.CreateOrganizationRequest{Name: "Orphan"})
	requireAPIError(t, err, http.StatusInternalServerError, "Organization requires an existing tenant")

	_, err = srv.Client.CreateOrganization(ctx, adminsdk.CreateOrganizationRequest{TenantID: tenant.ID})
	requireAPIError(t, err, http.StatusBadRequest, "Organization name is required")

	orgs, err := sess.ListOrganizations(ctx)
	require.NoError(t, err)
	require.Len(t, orgs, 1)
}

func TestSidebarConfigs(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	ana, sess := srv.createUser(t, "ana", "user")
	_, other := srv.createUser(t, "bo", "user")

	doc := json.RawMessage(`{"items":[{"label":"Home","href":"/"},{"label":"Billing","children":[{"label":"Invoices"}]}],"collapsed":false}`)
	created, err := sess.CreateSidebarConfig(ctx, ana.User.TenantID, doc)
	require.NoError(t, err)
	require.Equal(t, ana.User.ID, created.UserID)
	require.JSONEq(t, string(doc), string(created.ConfigJSON))

	list, err := sess.ListSidebarConfigs(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.JSONEq(t, string(doc), string(list[0].ConfigJSON))

	mine, err := other.ListSidebarConfigs(ctx)
	require.NoError(t, err)
	require.Empty(t, mine)

	_, err = other.UpdateSidebarConfig(ctx, created.ID, json.RawMessage(`{"stolen":true}`))
	requireAPIError(t, err, http.StatusNotFound, "Sidebar config not found or access denied")

	updated, err := sess.UpdateSidebarConfig(ctx, created.ID, json.RawMessage(`{"collapsed":true}`))
	require.NoError(t, err)
	require.JSONEq(t, `{"collapsed":true}`, string(updated.ConfigJSON))

	_, err = sess.CreateSidebarConfig(ctx, "no-such-tenant", doc)
	requireAPIError(t, err, http.StatusNotFound, "Tenant not found")

	_, err = sess.CreateSidebarConfig(ctx, "", nil)
	requireAPIError(t, err, http.StatusBadRequest, "tenant_id and config_json are required")

	_, err = other.DeleteSidebarConfig(ctx, created.ID)
	requireAPIError(t, err, http.StatusNotFound, "Sidebar config not found or access denied")

	deleted, err := sess.DeleteSidebarConfig(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, deleted.ID)
}

func TestNotifications(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	_, sess := srv.createUser(t, "ana", "user")
	_, other := srv.createUser(t, "bo", "user")

	first, err := sess.CreateNotification(ctx, adminsdk.CreateNotificationRequest{Message: "first"})
	require.NoError(t, err)
	require.False(t, first.IsRead)
	time.Sleep(5 * time.Millisecond)
	_, err = sess.CreateNotification(ctx, adminsdk.CreateNotificationRequest{Message: "second"})
	require.NoError(t, err)

	_, err = sess.CreateNotification(ctx, adminsdk.CreateNotificationRequest{})
	requireAPIError(t, err, http.StatusBadRequest, "Message is required")

	list, err := sess.ListNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "second", list[0].Message)

	_, err = other.MarkNotificationRead(ctx, first.ID)
	requireAPIError(t, err, http.StatusNotFound, "Notification not found or access denied")

	read, err := sess.MarkNotificationRead(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, read.IsRead)

	_, err = other.DeleteNotification(ctx, first.ID)
	requireAPIError(t, err, http.StatusNotFound, "Notification not found or access denied")

	deleted, err := sess.DeleteNotification(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, first.ID, deleted.ID)
}

func TestWebSocket_PushesCreatedNotifications(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	_, sess := srv.createUser(t, "ana", "user")

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?access_token=" + sess.AccessToken()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// The subscription is registered after the upgrade completes; keep
	// creating until one arrives.
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	got := make(chan adminsdk.NotificationEvent, 1)
	go func() {
		var ev adminsdk.NotificationEvent
		if err := conn.ReadJSON(&ev); err == nil {
			got <- ev
		}
	}()

	deadline := time.After(5 * time.Second)
	for {
		_, err := sess.CreateNotification(ctx, adminsdk.CreateNotificationRequest{Message: "ping"})
		require.NoError(t, err)

		select {
		case ev := <-got:
			require.Equal(t, adminsdk.EventNotificationCreated, ev.Type)
			require.Equal(t, "ping", ev.Notification.Message)
			return
		case <-time.After(50 * time.Millisecond):
		case <-deadline:
			t.Fatal("no realtime event received")
		}
	}
}

func TestWebSocket_RequiresToken(t *testing.T) {
	srv := newTestServer(t)

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSystemEndpoints(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	live, err := srv.Client.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := srv.Client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks.Database)

	db, err := srv.Client.TestDB(ctx)
	require.NoError(t, err)
	require.Equal(t, "Database connected", db.Message)
	require.WithinDuration(t, time.Now(), db.Time, time.Minute)

	status, body := srv.rawJSON(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, `saasadmin_http_requests_total{method="GET",path="GET /test-db",status="200"} 1`)
	require.Contains(t, body, "saasadmin_realtime_connections")

	status, body = srv.rawJSON(t, http.MethodGet, "/swagger/doc.json", "", "")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, `"title": "SaaS Admin API"`)
	require.Contains(t, body, `"/sidebar-configs/{id}"`)
}

func TestSystemEndpoints_DatabaseDown(t *testing.T) {
	srv := newTestServer(t)
	require.NoError(t, srv.Store.Close())

	status, body := srv.rawJSON(t, http.MethodGet, "/test-db", "", "")
	require.Equal(t, http.StatusInternalServerError, status)
	require.JSONEq(t, `{"error":"Database connection failed"}`, body)

	status, _ = srv.rawJSON(t, http.MethodGet, "/readyz", "", "")
	require.Equal(t, http.StatusServiceUnavailable, status)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/users", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestToAPIError_HidesUnexpectedErrors(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	apiErr := toAPIError(r, errors.New("disk on fire"), opErrors{Internal: "Error fetching users"})
	require.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	require.Equal(t, "Error fetching users", apiErr.Message)

	apiErr = toAPIError(r, service.ErrExpiredToken, opErrors{})
	require.Equal(t, adminsdk.ErrInvalidToken, apiErr)

	// Without a resource message a not-found is unexpected.
	apiErr = toAPIError(r, service.ErrNotFound, opErrors{Internal: "Error creating user"})
	require.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}
