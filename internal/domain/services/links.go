package services

import (
	"github.com/ersonp/kin-core/internal/domain/entities"
)

// ProjectLinks maps person-level parent edges onto the unit graph. It returns
// the flat link list (each carrying the concrete person on both sides for
// connector anchoring) and a unit→child-units adjacency, deduplicated while
// preserving edge order so downstream layout stays deterministic. Edges whose
// endpoints do not resolve to a unit are dropped; that only happens when the
// snapshot escaped the store's invariants.
func ProjectLinks(edges []entities.ParentEdge, unitOf map[string]string) ([]entities.UnitLink, map[string][]string) {
	links := make([]entities.UnitLink, 0, len(edges))
	childrenOf := make(map[string][]string)
	seen := make(map[string]bool)

	for _, e := range edges {
		fromUnit, ok := unitOf[e.ParentID]
		if !ok {
			continue
		}
		toUnit, ok := unitOf[e.ChildID]
		if !ok {
			continue
		}

		links = append(links, entities.UnitLink{
			FromUnitID:   fromUnit,
			ToUnitID:     toUnit,
			FromPersonID: e.ParentID,
			ToPersonID:   e.ChildID,
		})

		pair := fromUnit + ">>>" + toUnit
		if !seen[pair] {
			seen[pair] = true
			childrenOf[fromUnit] = append(childrenOf[fromUnit], toUnit)
		}
	}

	return links, childrenOf
}

// RootUnits returns the units with no recorded parent edge into any member,
// in unit order. An empty result for a non-empty unit list means every unit
// is somebody's child, which the layout engine treats as "all roots".
func RootUnits(units []entities.Unit, edges []entities.ParentEdge) []string {
	hasParent := make(map[string]bool, len(edges))
	for _, e := range edges {
		hasParent[e.ChildID] = true
	}

	roots := make([]string, 0, len(units))
	for _, u := range units {
		isChild := false
		for _, id := range u.Members() {
			if hasParent[id] {
				isChild = true
				break
			}
		}
		if !isChild {
			roots = append(roots, u.ID)
		}
	}
	return roots
}
