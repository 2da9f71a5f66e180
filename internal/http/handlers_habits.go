package http

import (
	"encoding/json"
	"net/http"

	"climb/internal/auth"
	"climb/internal/core"
	"climb/internal/tracker"
)

type createHabitRequest struct {
	Name          string       `json:"name"`
	WeeklyTarget  int64        `json:"weeklyTarget"`
	Unit          unitDTO      `json:"unit"`
	DefaultAmount *amountValue `json:"defaultAmount"`
}

type updateHabitRequest struct {
	Name          *string      `json:"name"`
	WeeklyTarget  *int64       `json:"weeklyTarget"`
	Unit          *unitDTO     `json:"unit"`
	DefaultAmount *amountValue `json:"defaultAmount"`
}

func (s *Server) handleListHabits(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	habits, err := s.svc.ListHabits(r.Context(), principal)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	dtos := make([]habitDTO, 0, len(habits))
	for _, h := range habits {
		dtos = append(dtos, toHabitDTO(h))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (s *Server) handleCreateHabit(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	var req createHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	unit, err := core.NewHabitUnit(core.UnitKind(req.Unit.Kind), req.Unit.Label)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var defaultAmount *int64
	if req.DefaultAmount != nil {
		defaultAmount = req.DefaultAmount.ptr()
	}

	id, err := s.svc.CreateHabit(r.Context(), principal, req.Name, req.WeeklyTarget, unit, defaultAmount)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleUpdateHabit(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())
	habitID := r.PathValue("id")

	var req updateHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := tracker.HabitPatch{
		Name:         req.Name,
		WeeklyTarget: req.WeeklyTarget,
	}
	if req.Unit != nil {
		unit, err := core.NewHabitUnit(core.UnitKind(req.Unit.Kind), req.Unit.Label)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		patch.Unit = &unit
	}
	if req.DefaultAmount != nil {
		patch.DefaultAmount = tracker.OptionalAmount{Set: true, Value: req.DefaultAmount.ptr()}
	}

	if err := s.svc.UpdateHabit(r.Context(), principal, habitID, patch); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteHabit(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	if err := s.svc.DeleteHabit(r.Context(), principal, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleLifetimeTotal(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	total, err := s.svc.LifetimeTotal(r.Context(), principal, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"total": total})
}

type setTargetRequest struct {
	Amount amountValue `json:"amount"`
	Month  int64       `json:"month"`
	Year   int64       `json:"year"`
}

func (s *Server) handleGetTarget(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())
	habitID := r.PathValue("id")
	month, year := parseMonthParams(r.URL.Query())

	override, err := s.svc.MonthlyTarget(r.Context(), principal, habitID, month, year)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	effective, err := s.svc.EffectiveMonthlyTarget(r.Context(), principal, habitID, month, year)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := struct {
		Override  *targetDTO `json:"override,omitempty"`
		Effective *int64     `json:"effective,omitempty"`
	}{Effective: effective}
	if override != nil {
		resp.Override = &targetDTO{
			HabitID: override.HabitID,
			Month:   override.Month,
			Year:    override.Year,
			Amount:  override.Amount,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetTarget(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())
	habitID := r.PathValue("id")

	var req setTargetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Amount.set {
		writeError(w, r, http.StatusBadRequest, "amount is required")
		return
	}

	if err := s.svc.SetMonthlyTarget(r.Context(), principal, habitID, req.Amount.value, req.Month, req.Year); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
