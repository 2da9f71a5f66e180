package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"climb/internal/auth"
)

func (s *Server) handleListDiary(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	entries, err := s.svc.AllDiaryEntries(r.Context(), principal)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	dtos := make([]diaryEntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, diaryEntryDTO{Date: e.Date, Title: e.Entry.Title, Content: e.Entry.Content})
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (s *Server) handleGetDiaryEntry(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())
	date := r.PathValue("date")

	entry, err := s.svc.DiaryEntry(r.Context(), principal, date)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if entry == nil {
		// No entry for this date yet; distinct from a dangling reference.
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, diaryEntryDTO{Date: date, Title: entry.Title, Content: entry.Content})
}

func (s *Server) handleSaveDiaryEntry(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())
	date := r.PathValue("date")

	var req diaryEntryDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.svc.SaveDiaryEntry(r.Context(), principal, date, req.Title, req.Content); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type goalRequest struct {
	Asset         string `json:"asset"`
	CurrentlyHeld int64  `json:"currentlyHeld"`
	Target        int64  `json:"target"`
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	goals, err := s.svc.ListInvestmentGoals(r.Context(), principal)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	dtos := make([]goalDTO, 0, len(goals))
	for _, g := range goals {
		dtos = append(dtos, toGoalDTO(g))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := s.svc.CreateInvestmentGoal(r.Context(), principal, req.Asset, req.CurrentlyHeld, req.Target)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	goalID, err := parseGoalID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid goal id")
		return
	}

	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.svc.UpdateInvestmentGoal(r.Context(), principal, goalID, req.CurrentlyHeld, req.Target); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	goalID, err := parseGoalID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid goal id")
		return
	}

	if err := s.svc.DeleteInvestmentGoal(r.Context(), principal, goalID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleGoalProgress(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	goalID, err := parseGoalID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid goal id")
		return
	}

	progress, err := s.svc.GoalProgress(r.Context(), principal, goalID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"progress": progress})
}

func (s *Server) handleTotalProgress(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	progress, err := s.svc.TotalGoalsProgress(r.Context(), principal)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"progress": progress})
}

type investmentDiaryRequest struct {
	Asset  string `json:"asset"`
	Date   int64  `json:"date"`
	Amount int64  `json:"amount"`
	Notes  string `json:"notes"`
}

func (s *Server) handleListInvestmentDiary(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	entries, err := s.svc.ListInvestmentDiaryEntries(r.Context(), principal)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	dtos := make([]investmentDiaryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, toInvestmentDiaryDTO(e))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (s *Server) handleAddInvestmentDiary(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	var req investmentDiaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := s.svc.AddInvestmentDiaryEntry(r.Context(), principal, req.Date, req.Asset, req.Amount, req.Notes)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

type profileRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	profile, err := s.svc.Profile(r.Context(), principal)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if profile == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, diaryProfileDTO{Name: profile.Name})
}

func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.svc.SaveProfile(r.Context(), principal, req.Name); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func parseGoalID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
