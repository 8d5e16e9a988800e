package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/ads-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/ads-dashboard-api/internal/config"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/credentialing"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/optimizing"
	"github.com/vfg2006/ads-dashboard-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

func Authentication(service authenticating.Authenticator, resolver *credentialing.Resolver, cookies *credentialing.CookieWriter, cfg config.Session) []router.Route {
	return []router.Route{
		{
			Path:    "/api/auth/login",
			Method:  http.MethodGet,
			Handler: Login(service),
		},
		{
			Path:    "/api/auth/callback",
			Method:  http.MethodGet,
			Handler: Callback(service, cookies, cfg),
		},
		{
			Path:    "/api/auth/logout",
			Method:  http.MethodPost,
			Handler: Logout(service, cookies),
		},
		{
			Path:    "/api/auth/status",
			Method:  http.MethodGet,
			Handler: Status(service, resolver),
		},
		{
			Path:    "/api/accounts/list",
			Method:  http.MethodGet,
			Handler: ListAccounts(service, resolver),
		},
		{
			Path:    "/api/accounts/select",
			Method:  http.MethodPost,
			Handler: SelectAccount(service, resolver, cookies),
		},
	}
}

// getAndPost registra o mesmo handler para GET (query) e POST (corpo JSON).
func getAndPost(path string, handler http.Handler) []router.Route {
	return []router.Route{
		{Path: path, Method: http.MethodGet, Handler: handler},
		{Path: path, Method: http.MethodPost, Handler: handler},
	}
}

func Insights(service insighting.Insighter, resolver *credentialing.Resolver, cfg config.Stream) []router.Route {
	var routes []router.Route
	routes = append(routes, getAndPost("/api/campaigns/list", ListCampaigns(service, resolver))...)
	routes = append(routes, getAndPost("/api/campaigns/adsets", ListAdSets(service, resolver))...)
	routes = append(routes, getAndPost("/api/adsets/ads", ListAds(service, resolver))...)
	routes = append(routes, getAndPost("/api/insights/account", AccountInsights(service, resolver))...)

	return append(routes,
		router.Route{
			Path:    "/api/insights/compare",
			Method:  http.MethodPost,
			Handler: ComparePresets(service, resolver),
		},
		router.Route{
			Path:    "/api/campaigns/export",
			Method:  http.MethodPost,
			Handler: ExportReport(service, resolver),
		},
		router.Route{
			Path:    "/api/campaigns/stream",
			Method:  http.MethodGet,
			Handler: StreamCampaigns(service, resolver, cfg),
		},
		router.Route{
			Path:    "/api/debug/lifetime-spend",
			Method:  http.MethodPost,
			Handler: LifetimeSpend(service, resolver),
		},
	)
}

func Snapshots(
	accounts repository.AccountRepository,
	snapshots repository.SnapshotRepository,
	verifier AccessVerifier,
	resolver *credentialing.Resolver,
	cookies *credentialing.CookieWriter,
) []router.Route {
	return getAndPost("/api/insights/snapshots", InsightSnapshots(accounts, snapshots, verifier, resolver, cookies))
}

func Optimization(optimizer optimizing.Optimizer, resolver *credentialing.Resolver) []router.Route {
	return []router.Route{
		{
			Path:    "/api/optimization/suggestions",
			Method:  http.MethodPost,
			Handler: OptimizationSuggestions(optimizer, resolver),
		},
	}
}

func Sync(jobs SyncJobs, adminToken string) []router.Route {
	adminOnly := []func(http.Handler) http.Handler{middleware.AdminOnly(adminToken)}

	return []router.Route{
		{
			Path:        "/api/sync/run/:type",
			Method:      http.MethodPost,
			Handler:     RunSyncJob(jobs),
			Middlewares: adminOnly,
		},
		{
			Path:        "/api/sync/status",
			Method:      http.MethodGet,
			Handler:     SyncStatus(jobs),
			Middlewares: adminOnly,
		},
	}
}
