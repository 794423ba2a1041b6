package httpx

import (
	"log/slog"
	"net/http"

	"github.com/roktoseba/ui-gateway/internal/backend"
	domainauth "github.com/roktoseba/ui-gateway/internal/domain/auth"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth         AuthServiceInterface
	Backend      *backend.Client
	Uploader     ImageUploader // Optional; uploads 503 when nil
	CookieDomain string
	Logger       *slog.Logger
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		Svc:          services.Auth,
		CookieDomain: services.CookieDomain,
		Logger:       services.Logger,
	}
	donationHandlers := &DonationHandlers{Backend: services.Backend}
	donorHandlers := &DonorHandlers{Backend: services.Backend}
	fundingHandlers := &FundingHandlers{Backend: services.Backend}
	profileHandlers := &ProfileHandlers{Backend: services.Backend}
	adminHandlers := &AdminHandlers{Backend: services.Backend}
	uploadHandlers := &UploadHandlers{Uploader: services.Uploader}

	registerAuthRoutes(mux, authHandlers)
	registerPublicRoutes(mux, donationHandlers, donorHandlers, fundingHandlers)
	registerDonorAPIRoutes(mux, donationHandlers, fundingHandlers, profileHandlers, uploadHandlers)
	registerVolunteerRoutes(mux, donationHandlers)
	registerAdminRoutes(mux, adminHandlers)
	registerPageRoutes(mux)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var handler http.Handler = mux
	handler = SessionLoader(services.Auth)(handler)
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("GET /auth/login", h.Login)
	mux.HandleFunc("GET /auth/callback", h.Callback)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)
}

// registerPublicRoutes wires endpoints that serve anonymous visitors.
func registerPublicRoutes(mux *http.ServeMux, d *DonationHandlers, dn *DonorHandlers, f *FundingHandlers) {
	mux.HandleFunc("GET /api/donation-requests/public", d.PublicList)
	mux.HandleFunc("GET /api/donors/search", dn.Search)
	mux.HandleFunc("GET /api/fundings/public", f.PublicList)
}

// registerDonorAPIRoutes wires endpoints available to any signed-in user.
func registerDonorAPIRoutes(mux *http.ServeMux, d *DonationHandlers, f *FundingHandlers, p *ProfileHandlers, u *UploadHandlers) {
	auth := RequireAuth()
	mux.Handle("GET /api/donation-requests/my/recent", auth(http.HandlerFunc(d.MyRecent)))
	mux.Handle("POST /api/donation-requests", auth(http.HandlerFunc(d.Create)))
	mux.Handle("GET /api/donation-requests/{id}", auth(http.HandlerFunc(d.Get)))
	mux.Handle("PATCH /api/donation-requests/{id}/confirm", auth(http.HandlerFunc(d.Confirm)))
	mux.Handle("GET /api/users/me", auth(http.HandlerFunc(p.Me)))
	mux.Handle("PATCH /api/users/me", auth(http.HandlerFunc(p.Update)))
	mux.Handle("POST /api/fundings", auth(http.HandlerFunc(f.Create)))
	mux.Handle("POST /api/uploads/image", auth(http.HandlerFunc(u.Image)))
}

// registerVolunteerRoutes wires endpoints that need volunteer-level access.
func registerVolunteerRoutes(mux *http.ServeMux, d *DonationHandlers) {
	volunteer := RequireRole(domainauth.RoleVolunteer)
	mux.Handle("GET /api/donation-requests/all", volunteer(http.HandlerFunc(d.All)))
	mux.Handle("PATCH /api/donation-requests/{id}/status", volunteer(http.HandlerFunc(d.SetStatus)))
}

// registerAdminRoutes wires endpoints restricted to admins.
func registerAdminRoutes(mux *http.ServeMux, a *AdminHandlers) {
	admin := RequireRole(domainauth.RoleAdmin)
	mux.Handle("GET /api/admin/users", admin(http.HandlerFunc(a.Users)))
	mux.Handle("PATCH /api/admin/users/{id}/role", admin(http.HandlerFunc(a.SetUserRole)))
	mux.Handle("PATCH /api/admin/users/{id}/status", admin(http.HandlerFunc(a.SetUserStatus)))
	mux.Handle("GET /api/admin/fundings", admin(http.HandlerFunc(a.Fundings)))
	mux.Handle("PATCH /api/admin/fundings/{id}/status", admin(http.HandlerFunc(a.SetFundingStatus)))
	mux.Handle("GET /api/admin/donation-requests", admin(http.HandlerFunc(a.DonationRequests)))
	mux.Handle("GET /api/admin/stats", admin(http.HandlerFunc(a.Stats)))
}

// registerPageRoutes wires the browser-facing dashboard shell behind the
// browser-aware guards: resolving sessions see a loading page, anonymous
// visitors are sent to login, and users whose role is too low land on their
// own dashboard instead of an error.
func registerPageRoutes(mux *http.ServeMux) {
	authBrowser := RequireAuthBrowser()
	volunteerBrowser := RequireRoleBrowser(domainauth.RoleVolunteer)
	adminBrowser := RequireRoleBrowser(domainauth.RoleAdmin)

	mux.Handle("GET /dashboard", authBrowser(http.HandlerFunc(appShell)))
	mux.Handle("GET /dashboard/profile", authBrowser(http.HandlerFunc(appShell)))
	mux.Handle("GET /dashboard/my-requests", authBrowser(http.HandlerFunc(appShell)))
	mux.Handle("GET /dashboard/all-requests", volunteerBrowser(http.HandlerFunc(appShell)))
	mux.Handle("GET /dashboard/admin", adminBrowser(http.HandlerFunc(appShell)))
	mux.Handle("GET /dashboard/admin/{rest...}", adminBrowser(http.HandlerFunc(appShell)))
}

// appShell serves the single-page application shell; the frontend router
// takes over from here.
func appShell(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Donor Coordination</title></head>
<body><div id="root"></div><script src="/static/app.js"></script></body>
</html>`))
}
