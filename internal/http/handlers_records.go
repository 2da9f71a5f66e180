package http

import (
	"encoding/json"
	"net/http"

	"climb/internal/auth"
	"climb/internal/core"
)

type toggleRequest struct {
	HabitID   string       `json:"habitId"`
	Day       int64        `json:"day"`
	Month     int64        `json:"month"`
	Year      int64        `json:"year"`
	Completed bool         `json:"completed"`
	Amount    *amountValue `json:"amount"`
}

func (s *Server) handleToggleRecord(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	var amount *int64
	if req.Amount != nil {
		amount = req.Amount.ptr()
	}

	err := s.svc.ToggleCompletion(r.Context(), principal, req.HabitID, req.Day, req.Month, req.Year, req.Completed, amount)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleMonthlyRecords(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())
	month, year := parseMonthParams(r.URL.Query())

	records, err := s.svc.MonthlyRecords(r.Context(), principal, month, year)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	dtos := make([]recordDTO, 0, len(records))
	for _, rec := range records {
		dtos = append(dtos, toRecordDTO(rec))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (s *Server) handleReportStats(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	dateRange, err := parseRangeParams(r.URL.Query())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	habitIDs := r.URL.Query()["habit_id"]

	stats, err := s.svc.ReportStats(r.Context(), principal, habitIDs, dateRange)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toReportStatsDTO(stats))
}

func (s *Server) handleDailyConsistency(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())
	month, year := parseMonthParams(r.URL.Query())

	consistency, err := s.svc.DailyConsistency(r.Context(), principal, month, year)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, consistency)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	dateRange, err := parseRangeParams(r.URL.Query())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	habitIDs := r.URL.Query()["habit_id"]

	data, err := s.svc.ExportRange(r.Context(), principal, habitIDs, dateRange)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toExportDTO(data))
}

type habitStatsDTO struct {
	HabitID      string `json:"habitId"`
	Name         string `json:"name"`
	Percentage   int64  `json:"percentage"`
	Completed    int64  `json:"completed"`
	Expected     int64  `json:"expected"`
	WeeklyTarget int64  `json:"weeklyTarget"`
}

type dailyStatsDTO struct {
	Day        int64 `json:"day"`
	Percentage int64 `json:"percentage"`
	Completed  int64 `json:"completed"`
}

type volumeStatsDTO struct {
	HabitID      string  `json:"habitId"`
	HabitName    string  `json:"habitName"`
	Unit         string  `json:"unit"`
	DailyVolumes []int64 `json:"dailyVolumes"`
	TotalVolume  int64   `json:"totalVolume"`
}

type reportStatsDTO struct {
	OverallPercentage int64            `json:"overallPercentage"`
	HabitStats        []habitStatsDTO  `json:"habitStats"`
	DailyStats        []dailyStatsDTO  `json:"dailyStats"`
	VolumeStats       []volumeStatsDTO `json:"volumeStats"`
	TotalCompleted    int64            `json:"totalCompleted"`
	TotalExpected     int64            `json:"totalExpected"`
}

func toReportStatsDTO(stats core.ReportStats) reportStatsDTO {
	dto := reportStatsDTO{
		OverallPercentage: stats.OverallPercentage,
		HabitStats:        make([]habitStatsDTO, 0, len(stats.HabitStats)),
		DailyStats:        make([]dailyStatsDTO, 0, len(stats.DailyStats)),
		VolumeStats:       make([]volumeStatsDTO, 0, len(stats.VolumeStats)),
		TotalCompleted:    stats.TotalCompleted,
		TotalExpected:     stats.TotalExpected,
	}
	for _, hs := range stats.HabitStats {
		dto.HabitStats = append(dto.HabitStats, habitStatsDTO(hs))
	}
	for _, ds := range stats.DailyStats {
		dto.DailyStats = append(dto.DailyStats, dailyStatsDTO(ds))
	}
	for _, vs := range stats.VolumeStats {
		dto.VolumeStats = append(dto.VolumeStats, volumeStatsDTO{
			HabitID:      vs.HabitID,
			HabitName:    vs.HabitName,
			Unit:         vs.Unit,
			DailyVolumes: vs.DailyVolumes[:],
			TotalVolume:  vs.TotalVolume,
		})
	}
	return dto
}

type exportDTO struct {
	Profile                *diaryProfileDTO     `json:"profile,omitempty"`
	Habits                 []habitDTO           `json:"habits"`
	HabitRecords           []recordDTO          `json:"habitRecords"`
	MonthlyTargets         []targetDTO          `json:"monthlyTargets"`
	DiaryEntries           []diaryEntryDTO      `json:"diaryEntries"`
	InvestmentGoals        []goalDTO            `json:"investmentGoals"`
	InvestmentDiaryEntries []investmentDiaryDTO `json:"investmentDiaryEntries"`
}

type diaryProfileDTO struct {
	Name string `json:"name"`
}

func toExportDTO(data core.ExportData) exportDTO {
	dto := exportDTO{
		Habits:                 make([]habitDTO, 0, len(data.Habits)),
		HabitRecords:           make([]recordDTO, 0, len(data.HabitRecords)),
		MonthlyTargets:         make([]targetDTO, 0, len(data.MonthlyTargets)),
		DiaryEntries:           make([]diaryEntryDTO, 0, len(data.DiaryEntries)),
		InvestmentGoals:        make([]goalDTO, 0, len(data.InvestmentGoals)),
		InvestmentDiaryEntries: make([]investmentDiaryDTO, 0, len(data.InvestmentDiaryEntries)),
	}
	if data.Profile != nil {
		dto.Profile = &diaryProfileDTO{Name: data.Profile.Name}
	}
	for _, h := range data.Habits {
		dto.Habits = append(dto.Habits, toHabitDTO(h))
	}
	for _, rec := range data.HabitRecords {
		dto.HabitRecords = append(dto.HabitRecords, toRecordDTO(rec))
	}
	for _, t := range data.MonthlyTargets {
		dto.MonthlyTargets = append(dto.MonthlyTargets, targetDTO{
			HabitID: t.HabitID,
			Month:   t.Month,
			Year:    t.Year,
			Amount:  t.Amount,
		})
	}
	for _, e := range data.DiaryEntries {
		dto.DiaryEntries = append(dto.DiaryEntries, diaryEntryDTO{
			Date:    e.Date,
			Title:   e.Entry.Title,
			Content: e.Entry.Content,
		})
	}
	for _, g := range data.InvestmentGoals {
		dto.InvestmentGoals = append(dto.InvestmentGoals, toGoalDTO(g))
	}
	for _, e := range data.InvestmentDiaryEntries {
		dto.InvestmentDiaryEntries = append(dto.InvestmentDiaryEntries, toInvestmentDiaryDTO(e))
	}
	return dto
}
