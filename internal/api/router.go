package api

import (
	"net/http"

	"github.com/npslab/npsboard/internal/config"
	"github.com/npslab/npsboard/internal/middleware"
	"github.com/npslab/npsboard/internal/services"
)

type Router struct {
	cfg       config.Config
	store     Store
	tokens    *middleware.TokenManager
	auth      *services.AuthService
	campaigns *services.CampaignService
	responses *services.ResponseService
	stats     *services.StatsService
	export    *services.ExportService
}

func NewRouter(cfg config.Config, store Store) *Router {
	tokens := middleware.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	return &Router{
		cfg:       cfg,
		store:     store,
		tokens:    tokens,
		auth:      services.NewAuthService(store, tokens.SignToken),
		campaigns: services.NewCampaignService(store, cfg.PublicBaseURL),
		responses: services.NewResponseService(store),
		stats:     services.NewStatsService(store),
		export:    services.NewExportService(store),
	}
}

// Tokens exposes the token manager so main can install WithAuth around the
// whole mux.
func (rt *Router) Tokens() *middleware.TokenManager { return rt.tokens }

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/register", rt.handleRegister)
	mux.HandleFunc("POST /api/auth/login", rt.handleLogin)
	mux.HandleFunc("GET /api/auth/exists", rt.handleAuthExists)

	mux.Handle("GET /api/campaigns", requireAuth(rt.handleListCampaigns))
	mux.Handle("POST /api/campaigns", requireAuth(rt.handleCreateCampaign))
	mux.HandleFunc("GET /api/campaigns/public/{id}", rt.handleGetPublicCampaign)
	mux.Handle("GET /api/campaigns/{id}", requireAuth(rt.handleGetCampaign))
	mux.Handle("PUT /api/campaigns/{id}", requireAuth(rt.handleUpdateCampaign))
	mux.Handle("DELETE /api/campaigns/{id}", requireAuth(rt.handleDeleteCampaign))

	mux.HandleFunc("POST /api/responses", rt.handleSubmitResponse)
	mux.Handle("GET /api/responses", requireAuth(rt.handleListResponses))
	mux.HandleFunc("GET /api/responses/stats/{campaignId}", rt.handleCampaignStats)
	mux.Handle("GET /api/responses/overview", requireAuth(rt.handleOverview))
	mux.Handle("GET /api/responses/export", requireAuth(rt.handleExportCSV))
}

func requireAuth(h http.HandlerFunc) http.Handler {
	return middleware.RequireAuth(h)
}
