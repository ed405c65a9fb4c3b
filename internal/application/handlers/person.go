package handlers

import (
	"github.com/ersonp/kin-core/internal/domain/entities"
	"github.com/ersonp/kin-core/internal/domain/services"
)

// PersonHandler handles person operations at the application layer.
type PersonHandler struct {
	family *services.FamilyService
}

// NewPersonHandler creates a new PersonHandler.
func NewPersonHandler(family *services.FamilyService) *PersonHandler {
	return &PersonHandler{family: family}
}

// HandleAdd creates a person. The second return is false when the store
// rejected the draft (empty name).
func (h *PersonHandler) HandleAdd(draft entities.PersonDraft) (*entities.Person, bool) {
	p := h.family.AddPerson(draft)
	if p == nil {
		return nil, false
	}
	return p, true
}

// HandleUpdate replaces a person's fields, reporting whether anything changed.
func (h *PersonHandler) HandleUpdate(id string, draft entities.PersonDraft) bool {
	return h.family.UpdatePerson(id, draft)
}

// HandleRemove removes a person and cascades to their edges and spouse link.
func (h *PersonHandler) HandleRemove(id string) bool {
	return h.family.RemovePerson(id)
}

// HandleGet returns the person with the given id, or nil.
func (h *PersonHandler) HandleGet(id string) *entities.Person {
	return h.family.Snapshot().FindPerson(id)
}

// HandleList returns all people in stored order.
func (h *PersonHandler) HandleList() []entities.Person {
	return h.family.Snapshot().People
}
