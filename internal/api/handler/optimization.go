package handler

import (
	"net/http"

	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/credentialing"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/optimizing"
)

type suggestionsResponse struct {
	Success bool `json:"success"`
	*optimizing.SuggestionReport
}

func OptimizationSuggestions(optimizer optimizing.Optimizer, resolver *credentialing.Resolver) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, req, err := reportRequest(r, resolver)
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		level := domain.EntityLevel(payload.Level)
		switch level {
		case domain.EntityLevelAdSet:
			req.ParentID = payload.CampaignID
		case domain.EntityLevelAd:
			req.ParentID = payload.AdSetID
		}

		report, err := optimizer.Suggest(r.Context(), optimizing.SuggestionRequest{
			ReportRequest: req,
			Level:         level,
			TargetCPA:     payload.TargetCPA,
		})
		if err != nil {
			writeFailure(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, suggestionsResponse{Success: true, SuggestionReport: report})
	})
}
