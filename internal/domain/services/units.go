package services

import (
	"github.com/ersonp/kin-core/internal/domain/entities"
)

// BuildUnits groups the snapshot's people into display units: couples for
// people whose spouse link resolves to a person that actually exists, singles
// otherwise. People are visited in stored order and each person lands in
// exactly one unit; a dangling spouse reference degrades to a single unit.
// The returned index maps person id to unit id.
func BuildUnits(snap *entities.Snapshot) ([]entities.Unit, map[string]string) {
	spouseOf := make(map[string]string, 2*len(snap.Spouses))
	for _, l := range snap.Spouses {
		spouseOf[l.AID] = l.BID
		spouseOf[l.BID] = l.AID
	}

	known := make(map[string]bool, len(snap.People))
	for _, p := range snap.People {
		known[p.ID] = true
	}

	units := make([]entities.Unit, 0, len(snap.People))
	unitOf := make(map[string]string, len(snap.People))
	assigned := make(map[string]bool, len(snap.People))

	for _, p := range snap.People {
		if assigned[p.ID] {
			continue
		}

		sp := spouseOf[p.ID]
		if sp != "" && known[sp] {
			a, b := p.ID, sp
			if b < a {
				a, b = b, a
			}
			u := entities.Unit{
				ID:   entities.CoupleUnitID(a, b),
				Kind: entities.UnitCouple,
				AID:  a,
				BID:  b,
			}
			units = append(units, u)
			unitOf[a] = u.ID
			unitOf[b] = u.ID
			assigned[a] = true
			assigned[b] = true
			continue
		}

		u := entities.Unit{
			ID:   entities.SingleUnitID(p.ID),
			Kind: entities.UnitSingle,
			AID:  p.ID,
		}
		units = append(units, u)
		unitOf[p.ID] = u.ID
		assigned[p.ID] = true
	}

	return units, unitOf
}
