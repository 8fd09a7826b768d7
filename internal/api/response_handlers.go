package api

import (
	"net/http"
	"strconv"

	"github.com/npslab/npsboard/internal/services"
)

// POST /api/responses, the public submission endpoint.
func (rt *Router) handleSubmitResponse(w http.ResponseWriter, r *http.Request) {
	var req services.SubmitInput
	if err := decodeJSON(r, &req); err != nil {
		rt.writeError(w, r, err)
		return
	}
	resp, err := rt.responses.Submit(req)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// GET /api/responses, the dashboard listing with embedded campaign summaries.
func (rt *Router) handleListResponses(w http.ResponseWriter, r *http.Request) {
	responses, err := rt.responses.ListAll()
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, responses)
}

// GET /api/responses/stats/{campaignId}
func (rt *Router) handleCampaignStats(w http.ResponseWriter, r *http.Request) {
	st, err := rt.stats.CampaignStats(r.PathValue("campaignId"))
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// GET /api/responses/overview, cross-campaign aggregates for the
// analytics dashboard.
func (rt *Router) handleOverview(w http.ResponseWriter, r *http.Request) {
	ov, err := rt.stats.Overview()
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ov)
}

// GET /api/responses/export, CSV download of all responses.
func (rt *Router) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	res, err := rt.export.ExportCSV()
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+res.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
	_, _ = w.Write(res.Data)
}
