package httpapi

import (
	"net/http"

	"github.com/riskibarqy/gamewatchr/internal/platform/id"
	"github.com/riskibarqy/gamewatchr/internal/platform/logging"
)

type route struct {
	pattern string
	handler http.HandlerFunc
	auth    bool
}

func routes(h *Handler) []route {
	return []route{
		{pattern: "GET /healthz", handler: h.Healthz},

		{pattern: "GET /v1/sports", handler: h.ListSports},
		{pattern: "GET /v1/sports/{categoryID}/teams", handler: h.ListCategoryTeams},
		{pattern: "GET /v1/leagues", handler: h.ListLeagues},
		{pattern: "GET /v1/teams", handler: h.ListTeams},
		{pattern: "POST /v1/teams/batch", handler: h.BatchTeams},
		{pattern: "GET /v1/teams/search", handler: h.SearchTeams},

		{pattern: "GET /v1/me/preferences", handler: h.GetMyPreference, auth: true},
		{pattern: "POST /v1/me/preferences", handler: h.SaveMyPreference, auth: true},
		{pattern: "PUT /v1/me/preferences", handler: h.UpdateMyPreference, auth: true},
		{pattern: "DELETE /v1/me/preferences", handler: h.ClearMyPreference, auth: true},
	}
}

// NewRouter mounts every route and wraps the mux, outermost first, in
// tracing, request ids, access logs, CORS and panic recovery.
func NewRouter(
	handler *Handler,
	verifier TokenVerifier,
	logger *logging.Logger,
	corsAllowedOrigins []string,
	requestIDs id.Generator,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	for _, rt := range routes(handler) {
		var h http.Handler = rt.handler
		if rt.auth {
			h = RequireAuth(verifier, h)
		}
		mux.Handle(rt.pattern, h)
	}

	chain := []func(http.Handler) http.Handler{
		RequestTracing,
		func(next http.Handler) http.Handler { return RequestID(requestIDs, next) },
		func(next http.Handler) http.Handler { return RequestLogging(logger, next) },
		func(next http.Handler) http.Handler { return CORS(corsAllowedOrigins, next) },
		func(next http.Handler) http.Handler { return recoverPanic(logger, next) },
	}
	var out http.Handler = mux
	for i := len(chain) - 1; i >= 0; i-- {
		out = chain[i](out)
	}
	return out
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
