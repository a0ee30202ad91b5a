package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aussiebroadwan/saasadmin/internal/admin/realtime"
	"github.com/aussiebroadwan/saasadmin/internal/admin/service"
	"github.com/aussiebroadwan/saasadmin/internal/admin/store"
	"github.com/aussiebroadwan/saasadmin/pkg/httpx"
	"github.com/aussiebroadwan/saasadmin/pkg/slogx"

	_ "github.com/aussiebroadwan/saasadmin/api/admin" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	TokenService        *service.TokenService
	AccountService      *service.AccountService
	SessionService      *service.SessionService
	TenantService       *service.TenantService
	OrganizationService *service.OrganizationService
	SidebarService      *service.SidebarService
	NotificationService *service.NotificationService
	Hub                 *realtime.Hub

	// WSPingInterval overrides the realtime keepalive; zero uses the default.
	WSPingInterval time.Duration
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// EnableMetrics records request metrics on reg and serves g on /metrics.
// Call it before EnableCORS so CORS preflights are measured too.
func (r *Router) EnableMetrics(reg prometheus.Registerer, g prometheus.Gatherer) {
	m := httpx.NewMetrics("saasadmin", reg)
	r.middlewares = append(r.middlewares, m.Middleware())
	r.Mux.Handle("GET /metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
}

// EnableCORS answers cross-origin requests from origins. "*" allows any.
func (r *Router) EnableCORS(origins []string) {
	r.middlewares = append(r.middlewares, cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
}

func (r *Router) ApplyRoutes() {
	r.registerAccounts()
	r.registerTenants()
	r.registerSidebar()
	r.registerNotifications()
	r.registerRealtime()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			SaaS Admin API
//	@version		0.1.0
//	@description	Multi-tenant administration backend: accounts, tenants, organizations, sidebar configs and notifications.
//	@description
//	@description				Access and refresh tokens are HS256 JWTs signed with separate secrets.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/saasadmin
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) authn(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h, httpx.AuthnMiddleware(r.TokenService))
}

func (r *Router) registerAccounts() {
	users := &UsersHandler{AccountService: r.AccountService}
	session := &SessionHandler{SessionService: r.SessionService}

	// Public: registration and session endpoints
	r.Mux.HandleFunc("POST /users", users.HandleCreate)
	r.Mux.HandleFunc("POST /login", session.HandleLogin)
	r.Mux.HandleFunc("POST /refresh-token", session.HandleRefresh)
	r.Mux.HandleFunc("POST /logout", session.HandleLogout)

	// Any valid access token may manage any user; there is no role check.
	r.Mux.Handle("GET /users", r.authn(users.HandleList))
	r.Mux.Handle("GET /users/{id}", r.authn(users.HandleGet))
	r.Mux.Handle("PUT /users/{id}", r.authn(users.HandleUpdate))
	r.Mux.Handle("DELETE /users/{id}", r.authn(users.HandleDelete))
}

func (r *Router) registerTenants() {
	h := &TenantsHandler{
		TenantService:       r.TenantService,
		OrganizationService: r.OrganizationService,
	}

	r.Mux.HandleFunc("POST /tenants", h.HandleCreate)
	r.Mux.Handle("GET /tenants", r.authn(h.HandleList))
	r.Mux.HandleFunc("POST /organizations", h.HandleCreateOrganization)
	r.Mux.Handle("GET /organizations", r.authn(h.HandleListOrganizations))
}

func (r *Router) registerSidebar() {
	h := &SidebarHandler{SidebarService: r.SidebarService}

	r.Mux.Handle("POST /sidebar-configs", r.authn(h.HandleCreate))
	r.Mux.Handle("GET /sidebar-configs", r.authn(h.HandleList))
	r.Mux.Handle("PUT /sidebar-configs/{id}", r.authn(h.HandleUpdate))
	r.Mux.Handle("DELETE /sidebar-configs/{id}", r.authn(h.HandleDelete))
}

func (r *Router) registerNotifications() {
	h := &NotificationsHandler{NotificationService: r.NotificationService}

	r.Mux.Handle("POST /notifications", r.authn(h.HandleCreate))
	r.Mux.Handle("GET /notifications", r.authn(h.HandleList))
	r.Mux.Handle("PUT /notifications/{id}/read", r.authn(h.HandleMarkRead))
	r.Mux.Handle("DELETE /notifications/{id}", r.authn(h.HandleDelete))
}

func (r *Router) registerRealtime() {
	if r.Hub == nil {
		return
	}
	h := &realtime.Handler{Hub: r.Hub, PingInterval: r.WSPingInterval}

	// Browsers cannot set headers on the handshake, so the token may also
	// arrive as ?access_token=.
	r.Mux.Handle("GET /ws", httpx.Chain(h,
		httpx.AuthnMiddleware(r.TokenService, httpx.WithQueryToken("access_token")),
	))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
	r.Mux.Handle("GET /test-db", TestDBHandler(r.store))
}
