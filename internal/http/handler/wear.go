package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"wardrobe/internal/auth"
	"wardrobe/internal/wardrobe"
)

type WearHandler struct {
	Svc *wardrobe.Service
}

type logOutfitWearReq struct {
	OutfitID string  `json:"outfit_id"`
	WornAt   *string `json:"worn_at"` // RFC3339 optional, defaults to now
}

type logItemWearReq struct {
	ItemID string  `json:"item_id"`
	WornAt *string `json:"worn_at"`
}

func parseWornAt(raw *string) (time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return time.Now().UTC(), nil
	}
	return time.Parse(time.RFC3339, *raw)
}

func (h *WearHandler) LogOutfit(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req logOutfitWearReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	outfitID, err := uuid.Parse(req.OutfitID)
	if err != nil {
		http.Error(w, "invalid outfit_id", http.StatusBadRequest)
		return
	}
	wornAt, err := parseWornAt(req.WornAt)
	if err != nil {
		http.Error(w, "invalid worn_at (RFC3339)", http.StatusBadRequest)
		return
	}

	log, err := h.Svc.LogOutfitWear(r.Context(), uid, outfitID, wornAt)
	if err != nil {
		if errors.Is(err, wardrobe.ErrNotFound) {
			http.Error(w, "outfit not found", http.StatusNotFound)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":      log.ID.String(),
		"worn_at": log.WornAt.Format(time.RFC3339),
	})
}

func (h *WearHandler) LogItem(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req logItemWearReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		http.Error(w, "invalid item_id", http.StatusBadRequest)
		return
	}
	wornAt, err := parseWornAt(req.WornAt)
	if err != nil {
		http.Error(w, "invalid worn_at (RFC3339)", http.StatusBadRequest)
		return
	}

	log, err := h.Svc.LogItemWear(r.Context(), uid, itemID, wornAt)
	if err != nil {
		if errors.Is(err, wardrobe.ErrNotFound) {
			http.Error(w, "item not found", http.StatusNotFound)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":      log.ID.String(),
		"worn_at": log.WornAt.Format(time.RFC3339),
	})
}

func (h *WearHandler) DeleteOutfitLog(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	logID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.Svc.DeleteOutfitWearLog(r.Context(), uid, logID); err != nil {
		if errors.Is(err, wardrobe.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
