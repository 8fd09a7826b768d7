package api

import (
	"net/http"

	"github.com/npslab/npsboard/internal/services"
)

// GET /api/campaigns
func (rt *Router) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := rt.campaigns.List()
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, campaigns)
}

// POST /api/campaigns
func (rt *Router) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req services.CreateCampaignInput
	if err := decodeJSON(r, &req); err != nil {
		rt.writeError(w, r, err)
		return
	}
	c, err := rt.campaigns.Create(req)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// GET /api/campaigns/public/{id}, the survey page view, no auth.
func (rt *Router) handleGetPublicCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := rt.campaigns.GetPublic(r.PathValue("id"))
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// GET /api/campaigns/{id}
func (rt *Router) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := rt.campaigns.Get(r.PathValue("id"))
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// PUT /api/campaigns/{id}, partial update.
func (rt *Router) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if err := decodeJSON(r, &raw); err != nil {
		rt.writeError(w, r, err)
		return
	}
	c, err := rt.campaigns.Update(r.PathValue("id"), raw)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// DELETE /api/campaigns/{id}
func (rt *Router) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	if err := rt.campaigns.Delete(r.PathValue("id")); err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Campaign deleted"})
}
