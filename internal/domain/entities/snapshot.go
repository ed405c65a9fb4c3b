package entities

import "strings"

// Snapshot is the complete persisted state of a family graph. Snapshots are
// treated as immutable: every mutation builds a new one and swaps it in, so
// readers always see a single consistent state.
type Snapshot struct {
	People  []Person     `json:"people"`
	Edges   []ParentEdge `json:"edges"`
	Spouses []SpouseLink `json:"spouses"`
}

// EmptySnapshot returns a snapshot with no people, edges, or spouse links.
func EmptySnapshot() *Snapshot {
	return &Snapshot{
		People:  []Person{},
		Edges:   []ParentEdge{},
		Spouses: []SpouseLink{},
	}
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		People:  make([]Person, len(s.People)),
		Edges:   make([]ParentEdge, len(s.Edges)),
		Spouses: make([]SpouseLink, len(s.Spouses)),
	}
	copy(out.People, s.People)
	copy(out.Edges, s.Edges)
	copy(out.Spouses, s.Spouses)
	return out
}

// FindPerson returns the person with the given id, or nil.
func (s *Snapshot) FindPerson(id string) *Person {
	for i := range s.People {
		if s.People[i].ID == id {
			return &s.People[i]
		}
	}
	return nil
}

// SpouseOf returns the partner id of the given person, or "" when the person
// has no spouse link.
func (s *Snapshot) SpouseOf(id string) string {
	for _, l := range s.Spouses {
		if other := l.Other(id); other != "" {
			return other
		}
	}
	return ""
}

// ParentCount returns the number of distinct incoming edges for a child.
func (s *Snapshot) ParentCount(childID string) int {
	n := 0
	for _, e := range s.Edges {
		if e.ChildID == childID {
			n++
		}
	}
	return n
}

// Normalize coerces an untrusted snapshot (typically one read from storage)
// into a valid one: enum values fold to unknown, people with empty trimmed
// names are dropped, self-referencing pairs are discarded, and edges and
// spouse links are re-deduplicated. People referenced by edges or links are
// not required to exist; derived computations degrade gracefully instead.
func (s *Snapshot) Normalize() *Snapshot {
	out := EmptySnapshot()

	for _, p := range s.People {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			continue
		}
		out.People = append(out.People, Person{
			ID:        p.ID,
			Name:      name,
			Gender:    ParseGender(string(p.Gender)),
			BloodType: ParseBloodType(string(p.BloodType)),
			BirthDate: strings.TrimSpace(p.BirthDate),
			PhotoRef:  p.PhotoRef,
			Note:      p.Note,
		})
	}

	edgeSeen := make(map[string]bool, len(s.Edges))
	for _, e := range s.Edges {
		if e.ParentID == "" || e.ChildID == "" || e.ParentID == e.ChildID {
			continue
		}
		if edgeSeen[e.Key()] {
			continue
		}
		edgeSeen[e.Key()] = true
		out.Edges = append(out.Edges, e)
	}

	spouseSeen := make(map[string]bool, len(s.Spouses))
	for _, l := range s.Spouses {
		if l.AID == "" || l.BID == "" || l.AID == l.BID {
			continue
		}
		if spouseSeen[l.Key()] {
			continue
		}
		spouseSeen[l.Key()] = true
		out.Spouses = append(out.Spouses, l)
	}

	return out
}
