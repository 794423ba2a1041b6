package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	domainauth "github.com/roktoseba/ui-gateway/internal/domain/auth"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// SessionLoader returns a middleware that attaches the gateway session and
// its runtime to the request context when a valid session cookie is present.
// Requests without one continue as anonymous.
func SessionLoader(authSvc AuthServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rs := requestSessionFor(r, authSvc); rs != nil {
				r = r.WithContext(SetSessionInContext(r.Context(), rs))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestSessionFor retrieves and validates a session from the request.
func requestSessionFor(r *http.Request, authSvc AuthServiceInterface) *RequestSession {
	sessionCookie, err := r.Cookie("session_id")
	if err != nil {
		return nil
	}

	session, err := authSvc.GetSession(r.Context(), sessionCookie.Value)
	if err != nil {
		return nil
	}

	return &RequestSession{
		Session: session,
		Runtime: authSvc.Runtime(session),
	}
}

// RequireAuth returns a middleware that requires an authenticated session for
// API requests. While the session is still resolving it answers 202 so the
// caller retries; it never treats an in-flight resolution as signed out.
func RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			snap := SnapshotFromContext(r.Context())
			switch {
			case snap.Resolving:
				writeResolving(w)
			case !snap.Authenticated():
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errors.New("authentication required"),
				})
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// RequireAuthBrowser returns a middleware that requires an authenticated
// session with browser-aware behavior. While the session is still resolving
// it renders a loading page instead of redirecting; a redirect decided during
// that window would bounce a signed-in user to the login page.
func RequireAuthBrowser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			snap := SnapshotFromContext(r.Context())
			switch {
			case snap.Resolving:
				writeLoadingPage(w)
			case !snap.Authenticated():
				redirectToLogin(w, r)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// RequireRole returns a middleware that requires a minimum role for API
// requests. The role check only runs once the session has settled; callers
// with an insufficient role get 403.
func RequireRole(requiredRole domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			snap := SnapshotFromContext(r.Context())
			switch {
			case snap.Resolving:
				writeResolving(w)
				return
			case !snap.Authenticated():
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errors.New("authentication required"),
				})
				return
			}

			if !hasRequiredRole(roleForRequest(r), requiredRole) {
				WriteError(w, ErrorParams{
					Code:    http.StatusForbidden,
					ErrCode: "insufficient_permissions",
					Err:     errors.New("insufficient permissions"),
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRoleBrowser returns a middleware that requires a minimum role with
// browser-aware behavior: unauthenticated visitors go to the login page, and
// signed-in users whose role is insufficient go to their dashboard rather
// than an error page.
func RequireRoleBrowser(requiredRole domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			snap := SnapshotFromContext(r.Context())
			switch {
			case snap.Resolving:
				writeLoadingPage(w)
				return
			case !snap.Authenticated():
				redirectToLogin(w, r)
				return
			}

			if !hasRequiredRole(roleForRequest(r), requiredRole) {
				http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// roleForRequest resolves the caller's role through the session runtime. A
// missing runtime reads as the lowest-privilege role.
func roleForRequest(r *http.Request) domainauth.Role {
	rs, ok := GetSessionFromContext(r.Context())
	if !ok || rs.Runtime == nil {
		return domainauth.RoleDonor
	}
	if role := rs.Runtime.Roles.Role(r.Context()); role != nil {
		return *role
	}
	return domainauth.RoleDonor
}

// hasRequiredRole checks if the user's role meets the required role.
// Role hierarchy: Donor < Volunteer < Admin.
func hasRequiredRole(userRole, requiredRole domainauth.Role) bool {
	roleHierarchy := map[domainauth.Role]int{
		domainauth.RoleDonor:     0,
		domainauth.RoleVolunteer: 1,
		domainauth.RoleAdmin:     2,
	}

	userLevel, userExists := roleHierarchy[userRole]
	requiredLevel, requiredExists := roleHierarchy[requiredRole]

	if !userExists || !requiredExists {
		return false
	}

	return userLevel >= requiredLevel
}

// writeResolving answers an API request made while the identity session is
// still settling. 202 tells the caller the outcome is pending, not denied.
func writeResolving(w http.ResponseWriter) {
	WriteJSON(w, http.StatusAccepted, map[string]string{"status": "resolving"})
}

// writeLoadingPage renders a minimal page for browser requests that arrive
// mid-resolution. The page reloads itself once the session settles.
func writeLoadingPage(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><meta http-equiv="refresh" content="1"><title>Loading</title></head>
<body><p>Signing you in&hellip;</p></body>
</html>`))
}

// redirectToLogin redirects browser requests to the login page with the current URL as redirect_uri.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	redirectPath := safeRedirectPath(r.URL.RequestURI())
	loginURL := "/auth/login?redirect_uri=" + url.QueryEscape(redirectPath)
	http.Redirect(w, r, loginURL, http.StatusSeeOther)
}

// safeRedirectPath ensures the provided redirect is a same-origin relative path
// starting with "/" and not an absolute URL. Returns "/" when invalid.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return candidate
}
