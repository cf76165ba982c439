package server

import (
	"net/http"

	"github.com/mmynk/planboard/internal/models"
)

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := s.planSvc.GetPlan(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleUpdateAllocation(w http.ResponseWriter, r *http.Request) {
	var settings models.AllocationSettings
	if !s.decodeJSON(w, r, &settings) {
		return
	}

	if err := s.planSvc.UpdateAllocation(r.Context(), settings); err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleResetAllocation(w http.ResponseWriter, r *http.Request) {
	settings, err := s.planSvc.ResetAllocation(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, settings)
}

type updateDivisionsRequest struct {
	Divisions []models.Division `json:"divisions"`
}

func (s *Server) handleUpdateDivisions(w http.ResponseWriter, r *http.Request) {
	var req updateDivisionsRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	if err := s.planSvc.UpdateDivisions(r.Context(), req.Divisions); err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"status": "divisions updated"})
}

func (s *Server) handleRecompute(w http.ResponseWriter, r *http.Request) {
	recomputation, err := s.planSvc.Recompute(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, recomputation)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.planSvc.Summary(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, summary)
}
