package handlers

import (
	"github.com/ersonp/kin-core/internal/domain/entities"
	"github.com/ersonp/kin-core/internal/domain/services"
)

// TreeHandler computes the derived tree views over the current snapshot.
type TreeHandler struct {
	family  *services.FamilyService
	metrics entities.Metrics
}

// NewTreeHandler creates a new TreeHandler.
func NewTreeHandler(family *services.FamilyService, metrics entities.Metrics) *TreeHandler {
	return &TreeHandler{family: family, metrics: metrics}
}

// TreeResult bundles the derived outputs for one snapshot.
type TreeResult struct {
	Units  []entities.Unit
	Links  []entities.UnitLink
	Layout *entities.TreeLayout
}

// HandleLayout derives units, unit links, and the positioned layout from the
// current snapshot.
func (h *TreeHandler) HandleLayout() *TreeResult {
	snap := h.family.Snapshot()

	units, unitOf := services.BuildUnits(snap)
	links, childrenOf := services.ProjectLinks(snap.Edges, unitOf)
	layout := services.LayoutForest(snap, units, links, childrenOf, h.metrics)

	return &TreeResult{
		Units:  units,
		Links:  links,
		Layout: layout,
	}
}

// Metrics returns the layout metrics the handler renders with.
func (h *TreeHandler) Metrics() entities.Metrics {
	return h.metrics
}
