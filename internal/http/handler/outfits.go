package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"wardrobe/internal/auth"
	"wardrobe/internal/wardrobe"
)

type OutfitHandler struct {
	Svc *wardrobe.Service
}

type outfitSlotReq struct {
	ItemID string `json:"item_id"`
	Slot   string `json:"slot"`
}

type createOutfitReq struct {
	Name  *string         `json:"name"`
	Items []outfitSlotReq `json:"items"`
}

type outfitSlotDTO struct {
	ItemID string `json:"item_id"`
	Slot   string `json:"slot"`
}

type outfitDTO struct {
	ID        string          `json:"id"`
	Name      *string         `json:"name"`
	Items     []outfitSlotDTO `json:"items"`
	CreatedAt string          `json:"created_at"`
}

func outfitToDTO(o wardrobe.Outfit) outfitDTO {
	items := make([]outfitSlotDTO, 0, len(o.Items))
	for _, oi := range o.Items {
		items = append(items, outfitSlotDTO{ItemID: oi.ItemID.String(), Slot: oi.Slot})
	}
	return outfitDTO{
		ID:        o.ID.String(),
		Name:      o.Name,
		Items:     items,
		CreatedAt: o.CreatedAt.Format(time.RFC3339),
	}
}

func (h *OutfitHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req createOutfitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if len(req.Items) == 0 {
		http.Error(w, "items required", http.StatusBadRequest)
		return
	}

	in := wardrobe.CreateOutfitInput{Name: req.Name}
	for _, oi := range req.Items {
		itemID, err := uuid.Parse(oi.ItemID)
		if err != nil {
			http.Error(w, "invalid item_id", http.StatusBadRequest)
			return
		}
		in.Items = append(in.Items, wardrobe.OutfitSlotInput{ItemID: itemID, Slot: oi.Slot})
	}

	outfit, err := h.Svc.CreateOutfit(r.Context(), uid, in)
	if err != nil {
		switch {
		case errors.Is(err, wardrobe.ErrNotFound):
			http.Error(w, "item not found", http.StatusNotFound)
		case errors.Is(err, wardrobe.ErrInvalidInput):
			http.Error(w, "invalid input", http.StatusBadRequest)
		default:
			http.Error(w, "server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(outfitToDTO(*outfit))
}

func (h *OutfitHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	outfits, err := h.Svc.ListOutfits(r.Context(), uid)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	out := make([]outfitDTO, 0, len(outfits))
	for _, o := range outfits {
		out = append(out, outfitToDTO(o))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}
