package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"wardrobe/internal/auth"
	"wardrobe/internal/wardrobe"
)

type ItemHandler struct {
	Svc *wardrobe.Service
}

type createItemReq struct {
	Category   string   `json:"category"`
	Name       *string  `json:"name"`
	BaseColor  *string  `json:"base_color"`
	Pattern    *string  `json:"pattern"`
	StyleTags  []string `json:"style_tags"`
	EventTags  []string `json:"event_tags"`
	SeasonTags []string `json:"season_tags"`
	Warmth     *int     `json:"warmth"`
	Formality  *float64 `json:"formality"`
}

type itemDTO struct {
	ID         string   `json:"id"`
	Category   string   `json:"category"`
	Name       *string  `json:"name"`
	BaseColor  *string  `json:"base_color"`
	Pattern    *string  `json:"pattern"`
	StyleTags  []string `json:"style_tags"`
	EventTags  []string `json:"event_tags"`
	SeasonTags []string `json:"season_tags"`
	Warmth     *int     `json:"warmth"`
	Formality  *float64 `json:"formality"`
	IsActive   bool     `json:"is_active"`
	CreatedAt  string   `json:"created_at"`
}

func itemToDTO(item wardrobe.Item) itemDTO {
	return itemDTO{
		ID:         item.ID.String(),
		Category:   string(item.Category),
		Name:       item.Name,
		BaseColor:  item.BaseColor,
		Pattern:    item.Pattern,
		StyleTags:  item.StyleTags,
		EventTags:  item.EventTags,
		SeasonTags: item.SeasonTags,
		Warmth:     item.Warmth,
		Formality:  item.Formality,
		IsActive:   item.IsActive,
		CreatedAt:  item.CreatedAt.Format(time.RFC3339),
	}
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req createItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	item, err := h.Svc.CreateItem(r.Context(), uid, wardrobe.CreateItemInput{
		Category:   wardrobe.Category(req.Category),
		Name:       req.Name,
		BaseColor:  req.BaseColor,
		Pattern:    req.Pattern,
		StyleTags:  req.StyleTags,
		EventTags:  req.EventTags,
		SeasonTags: req.SeasonTags,
		Warmth:     req.Warmth,
		Formality:  req.Formality,
	})
	if err != nil {
		if errors.Is(err, wardrobe.ErrInvalidInput) {
			http.Error(w, "invalid input", http.StatusBadRequest)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(itemToDTO(*item))
}

func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	items, err := h.Svc.ListItems(r.Context(), uid)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	out := make([]itemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, itemToDTO(item))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}
