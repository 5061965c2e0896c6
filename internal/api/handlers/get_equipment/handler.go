// Package get_equipment serves the static equipment catalog so the booking
// form can render devices and their slot choices.
package get_equipment

import (
	"net/http"

	"github.com/kairovix/labsched/internal/api/handlers"
	"github.com/kairovix/labsched/internal/domain"
)

// Catalog is the read surface this handler needs
type Catalog interface {
	List() []*domain.Equipment
}

// EquipmentView is one catalog entry
type EquipmentView struct {
	Name     string   `json:"name"`
	Category string   `json:"category"` // slotted | unslotted
	Slots    []string `json:"slots,omitempty"`
}

// CatalogResponse is the full catalog listing
type CatalogResponse struct {
	Equipment []EquipmentView `json:"equipment"`
}

type Handler struct {
	catalog Catalog
}

func NewHandler(catalog Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// Handle GET /api/v1/equipment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	devices := h.catalog.List()

	response := CatalogResponse{Equipment: make([]EquipmentView, 0, len(devices))}
	for _, eq := range devices {
		response.Equipment = append(response.Equipment, EquipmentView{
			Name:     eq.Name,
			Category: string(eq.Category),
			Slots:    eq.Slots,
		})
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}
