package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"wardrobe/internal/auth"
	"wardrobe/internal/quality"
)

type QualityHandler struct {
	Engine *quality.Engine
	Store  *quality.GormStore
}

type dimensionScoreDTO struct {
	Score               float64          `json:"score"`
	Weight              float64          `json:"weight"`
	Why                 string           `json:"why"`
	Confidence          float64          `json:"confidence"`
	ContributingFactors []quality.Factor `json:"contributing_factors,omitempty"`
}

type qualityScoreDTO struct {
	ID         string  `json:"id"`
	TotalScore float64 `json:"total_score"`
	Confidence float64 `json:"confidence"`

	Versatility  dimensionScoreDTO `json:"versatility"`
	Utilization  dimensionScoreDTO `json:"utilization"`
	Completeness dimensionScoreDTO `json:"completeness"`
	Balance      dimensionScoreDTO `json:"balance"`
	Diversity    dimensionScoreDTO `json:"diversity"`

	ItemsCount    int    `json:"items_count"`
	OutfitsCount  int    `json:"outfits_count"`
	WearLogsCount int    `json:"wear_logs_count"`
	ComputedAt    string `json:"computed_at"`

	Trend      *string  `json:"trend,omitempty"`
	TrendDelta *float64 `json:"trend_delta,omitempty"`
}

type qualitySummaryDTO struct {
	Current     qualityScoreDTO     `json:"current"`
	History     []qualityScoreDTO   `json:"history"`
	Preferences quality.Preferences `json:"preferences"`
}

type suggestionDTO struct {
	ID             string   `json:"id"`
	SuggestionType string   `json:"suggestion_type"`
	Dimension      string   `json:"dimension"`
	Priority       int      `json:"priority"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Why            string   `json:"why"`
	Confidence     float64  `json:"confidence"`
	ExpectedImpact float64  `json:"expected_impact"`
	RelatedItemIDs []string `json:"related_item_ids,omitempty"`
	Status         string   `json:"status"`
	CreatedAt      string   `json:"created_at"`
}

type suggestionsDTO struct {
	Suggestions []suggestionDTO            `json:"suggestions"`
	ByDimension map[string][]suggestionDTO `json:"by_dimension"`
	TotalCount  int                        `json:"total_count"`
}

func scoreToDTO(score *quality.ScoreRecord, prev *quality.ScoreRecord) qualityScoreDTO {
	var explanations map[quality.Dimension]quality.Explanation
	_ = json.Unmarshal(score.Explanations, &explanations)

	dim := func(d quality.Dimension, value, weight float64) dimensionScoreDTO {
		expl := explanations[d]
		return dimensionScoreDTO{
			Score:               value,
			Weight:              weight,
			Why:                 expl.Why,
			Confidence:          expl.Confidence,
			ContributingFactors: expl.ContributingFactors,
		}
	}

	out := qualityScoreDTO{
		ID:            score.ID.String(),
		TotalScore:    score.TotalScore,
		Confidence:    score.Confidence,
		Versatility:   dim(quality.DimVersatility, score.VersatilityScore, quality.WeightVersatility),
		Utilization:   dim(quality.DimUtilization, score.UtilizationScore, quality.WeightUtilization),
		Completeness:  dim(quality.DimCompleteness, score.CompletenessScore, quality.WeightCompleteness),
		Balance:       dim(quality.DimBalance, score.BalanceScore, quality.WeightBalance),
		Diversity:     dim(quality.DimDiversity, score.DiversityScore, quality.WeightDiversity),
		ItemsCount:    score.ItemsCount,
		OutfitsCount:  score.OutfitsCount,
		WearLogsCount: score.WearLogsCount,
		ComputedAt:    score.ComputedAt.Format(time.RFC3339),
	}

	if prev != nil {
		direction, delta := quality.Trend(score, prev)
		trend := string(direction)
		out.Trend = &trend
		out.TrendDelta = &delta
	}
	return out
}

func suggestionToDTO(sug quality.SuggestionRecord) suggestionDTO {
	return suggestionDTO{
		ID:             sug.ID.String(),
		SuggestionType: string(sug.Type),
		Dimension:      string(sug.Dimension),
		Priority:       sug.Priority,
		Title:          sug.Title,
		Description:    sug.Description,
		Why:            sug.Why,
		Confidence:     sug.Confidence,
		ExpectedImpact: sug.ExpectedImpact,
		RelatedItemIDs: sug.RelatedItemIDs,
		Status:         sug.Status,
		CreatedAt:      sug.CreatedAt.Format(time.RFC3339),
	}
}

// Summary returns the current score (computing one when absent or when
// refresh=true), recent history with trend, and the user's preferences.
func (h *QualityHandler) Summary(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	refresh := r.URL.Query().Get("refresh") == "true"

	latest, err := h.Engine.Latest(r.Context(), uid)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	if refresh || latest == nil {
		score, _, err := h.Engine.Compute(r.Context(), uid)
		if err != nil {
			http.Error(w, "server error", http.StatusInternalServerError)
			return
		}
		latest = score
	}

	history, err := h.Engine.History(r.Context(), uid, 10)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	prefs, err := h.Store.LoadPreferences(r.Context(), uid)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	var prev *quality.ScoreRecord
	if len(history) > 1 {
		prev = &history[1]
	}

	out := qualitySummaryDTO{
		Current:     scoreToDTO(latest, prev),
		History:     make([]qualityScoreDTO, 0, len(history)),
		Preferences: prefs,
	}
	for i := 1; i < len(history); i++ {
		out.History = append(out.History, scoreToDTO(&history[i], nil))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

func (h *QualityHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	status := strings.TrimSpace(r.URL.Query().Get("status"))
	if status == "" {
		status = quality.StatusPending
	}
	switch status {
	case quality.StatusPending, quality.StatusDismissed, quality.StatusCompleted, "all":
	default:
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	limit := 10
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= 50 {
			limit = n
		}
	}

	// make sure a suggestion batch exists
	latest, err := h.Engine.Latest(r.Context(), uid)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	if latest == nil {
		if _, _, err := h.Engine.Compute(r.Context(), uid); err != nil {
			http.Error(w, "server error", http.StatusInternalServerError)
			return
		}
	}

	suggestions, err := h.Store.Suggestions(r.Context(), uid, status, limit)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	out := suggestionsDTO{
		Suggestions: make([]suggestionDTO, 0, len(suggestions)),
		ByDimension: make(map[string][]suggestionDTO),
	}
	for _, sug := range suggestions {
		dto := suggestionToDTO(sug)
		out.Suggestions = append(out.Suggestions, dto)
		out.ByDimension[string(sug.Dimension)] = append(out.ByDimension[string(sug.Dimension)], dto)
	}
	out.TotalCount = len(out.Suggestions)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

type suggestionStatusReq struct {
	Status string `json:"status"`
}

func (h *QualityHandler) UpdateSuggestion(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	sugID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req suggestionStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.Status != quality.StatusDismissed && req.Status != quality.StatusCompleted {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	sug, err := h.Store.UpdateSuggestionStatus(r.Context(), uid, sugID, req.Status)
	if err != nil {
		if errors.Is(err, quality.ErrNotFound) {
			http.Error(w, "suggestion not found", http.StatusNotFound)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(suggestionToDTO(*sug))
}

func (h *QualityHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	prefs, err := h.Store.LoadPreferences(r.Context(), uid)
	if err != nil {
		if errors.Is(err, quality.ErrNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(prefs)
}

type preferencesPatchReq struct {
	Diversity *struct {
		Colors   *bool `json:"colors"`
		Patterns *bool `json:"patterns"`
		Seasons  *bool `json:"seasons"`
		Styles   *bool `json:"styles"`
	} `json:"diversity"`
	RefreshIntervalDays  *int `json:"refresh_interval_days"`
	HistoryRetentionDays *int `json:"history_retention_days"`
}

func (h *QualityHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req preferencesPatchReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.RefreshIntervalDays != nil && (*req.RefreshIntervalDays < 1 || *req.RefreshIntervalDays > 30) {
		http.Error(w, "refresh_interval_days must be 1-30", http.StatusBadRequest)
		return
	}
	if req.HistoryRetentionDays != nil && (*req.HistoryRetentionDays < 30 || *req.HistoryRetentionDays > 730) {
		http.Error(w, "history_retention_days must be 30-730", http.StatusBadRequest)
		return
	}

	prefs, err := h.Store.LoadPreferences(r.Context(), uid)
	if err != nil {
		if errors.Is(err, quality.ErrNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	// merge-patch: only provided fields change
	if req.Diversity != nil {
		if req.Diversity.Colors != nil {
			prefs.Diversity.Colors = *req.Diversity.Colors
		}
		if req.Diversity.Patterns != nil {
			prefs.Diversity.Patterns = *req.Diversity.Patterns
		}
		if req.Diversity.Seasons != nil {
			prefs.Diversity.Seasons = *req.Diversity.Seasons
		}
		if req.Diversity.Styles != nil {
			prefs.Diversity.Styles = *req.Diversity.Styles
		}
	}
	if req.RefreshIntervalDays != nil {
		prefs.RefreshIntervalDays = *req.RefreshIntervalDays
	}
	if req.HistoryRetentionDays != nil {
		prefs.HistoryRetentionDays = *req.HistoryRetentionDays
	}

	if err := h.Store.SavePreferences(r.Context(), uid, prefs); err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(prefs)
}
