package handlers

import (
	"github.com/ersonp/kin-core/internal/domain/entities"
	"github.com/ersonp/kin-core/internal/domain/services"
)

// RelationshipHandler handles parent edges and spouse links at the
// application layer.
type RelationshipHandler struct {
	family *services.FamilyService
}

// NewRelationshipHandler creates a new RelationshipHandler.
func NewRelationshipHandler(family *services.FamilyService) *RelationshipHandler {
	return &RelationshipHandler{family: family}
}

// HandleAddEdge inserts a parent→child edge, reporting whether it was
// accepted. Rejections (self pair, parent cap, cycle, duplicate) are silent
// store no-ops surfaced here only as false.
func (h *RelationshipHandler) HandleAddEdge(parentID, childID string) bool {
	return h.family.AddEdge(parentID, childID)
}

// HandleRemoveEdge removes the exact edge if present.
func (h *RelationshipHandler) HandleRemoveEdge(parentID, childID string) bool {
	return h.family.RemoveEdge(parentID, childID)
}

// HandleAddSpouse links two people, reporting whether the link was accepted.
func (h *RelationshipHandler) HandleAddSpouse(aID, bID string) bool {
	return h.family.AddSpouse(aID, bID)
}

// HandleRemoveSpouse removes the link matching the pair if present.
func (h *RelationshipHandler) HandleRemoveSpouse(aID, bID string) bool {
	return h.family.RemoveSpouse(aID, bID)
}

// HandleListEdges returns all parent edges in stored order.
func (h *RelationshipHandler) HandleListEdges() []entities.ParentEdge {
	return h.family.Snapshot().Edges
}

// HandleListSpouses returns all spouse links in stored order.
func (h *RelationshipHandler) HandleListSpouses() []entities.SpouseLink {
	return h.family.Snapshot().Spouses
}
