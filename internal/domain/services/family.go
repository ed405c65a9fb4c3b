package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ersonp/kin-core/internal/domain/entities"
	"github.com/ersonp/kin-core/internal/domain/ports"
	"github.com/google/uuid"
)

// FamilyService is the graph store: it owns the current snapshot and exposes
// the mutation surface. Constraint violations (empty names, self pairs, the
// parent cap, monogamy, cycle-introducing edges) are silent no-ops — the
// methods report whether state changed, but never raise for expected user
// input. After every applied mutation the new snapshot is persisted
// best-effort in the background; persistence failure never reaches callers.
type FamilyService struct {
	mu      sync.RWMutex
	snap    *entities.Snapshot
	policy  entities.Policy
	storage ports.Storage // may be nil for an in-memory-only store

	// Background saves run through a single writer draining pending, so a
	// slow save can never commit over a newer snapshot.
	saveMu  sync.Mutex
	pending *entities.Snapshot
	saving  bool
	saves   sync.WaitGroup

	// OnPersistError, when set, receives background save failures. Errors
	// are reported here and nowhere else.
	OnPersistError func(error)
}

// NewFamilyService creates a store with an empty snapshot. storage may be
// nil, in which case the store is purely in-memory.
func NewFamilyService(storage ports.Storage, policy entities.Policy) *FamilyService {
	return &FamilyService{
		snap:    entities.EmptySnapshot(),
		policy:  policy,
		storage: storage,
	}
}

// Load replaces the current state with the normalized snapshot from storage.
func (s *FamilyService) Load(ctx context.Context) error {
	if s.storage == nil {
		return nil
	}
	snap, err := s.storage.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}
	s.mu.Lock()
	s.snap = snap.Normalize()
	s.mu.Unlock()
	return nil
}

// Snapshot returns the current immutable snapshot.
func (s *FamilyService) Snapshot() *entities.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Policy returns the constraint policy the store enforces.
func (s *FamilyService) Policy() entities.Policy {
	return s.policy
}

// Flush waits for in-flight background saves to finish. Callers should flush
// before process exit so the last mutation is not lost.
func (s *FamilyService) Flush() {
	s.saves.Wait()
}

// AddPerson creates a person from the draft. The returned person is nil when
// the trimmed name is empty and the request was dropped.
func (s *FamilyService) AddPerson(draft entities.PersonDraft) *entities.Person {
	name := strings.TrimSpace(draft.Name)
	if name == "" {
		return nil
	}

	p := entities.Person{
		ID:        uuid.New().String(),
		Name:      name,
		Gender:    draft.Gender,
		BloodType: draft.BloodType,
		BirthDate: strings.TrimSpace(draft.BirthDate),
		PhotoRef:  draft.PhotoRef,
		Note:      draft.Note,
	}

	s.mutate(func(snap *entities.Snapshot) *entities.Snapshot {
		next := snap.Clone()
		next.People = append(next.People, p)
		return next
	})
	return &p
}

// UpdatePerson replaces every mutable field of the person with the draft,
// preserving the id. No-op when the trimmed name is empty or the id is not
// found.
func (s *FamilyService) UpdatePerson(id string, draft entities.PersonDraft) bool {
	name := strings.TrimSpace(draft.Name)
	if name == "" {
		return false
	}

	return s.mutate(func(snap *entities.Snapshot) *entities.Snapshot {
		if snap.FindPerson(id) == nil {
			return nil
		}
		next := snap.Clone()
		for i := range next.People {
			if next.People[i].ID != id {
				continue
			}
			next.People[i] = entities.Person{
				ID:        id,
				Name:      name,
				Gender:    draft.Gender,
				BloodType: draft.BloodType,
				BirthDate: strings.TrimSpace(draft.BirthDate),
				PhotoRef:  draft.PhotoRef,
				Note:      draft.Note,
			}
		}
		return next
	})
}

// RemovePerson removes the person and cascades: every edge and spouse link
// referencing the id goes with it, so relationships never point at a missing
// person.
func (s *FamilyService) RemovePerson(id string) bool {
	return s.mutate(func(snap *entities.Snapshot) *entities.Snapshot {
		if snap.FindPerson(id) == nil {
			return nil
		}
		next := entities.EmptySnapshot()
		for _, p := range snap.People {
			if p.ID != id {
				next.People = append(next.People, p)
			}
		}
		for _, e := range snap.Edges {
			if e.ParentID != id && e.ChildID != id {
				next.Edges = append(next.Edges, e)
			}
		}
		for _, l := range snap.Spouses {
			if l.AID != id && l.BID != id {
				next.Spouses = append(next.Spouses, l)
			}
		}
		return next
	})
}

// AddEdge inserts a parent→child edge. Rejected silently when an id is empty
// or self-referencing, the child is at the parent cap, the edge already
// exists, or the edge would make parentID its own ancestor.
func (s *FamilyService) AddEdge(parentID, childID string) bool {
	if parentID == "" || childID == "" || parentID == childID {
		return false
	}

	return s.mutate(func(snap *entities.Snapshot) *entities.Snapshot {
		if s.policy.MaxParents > 0 && snap.ParentCount(childID) >= s.policy.MaxParents {
			return nil
		}
		edge := entities.ParentEdge{ParentID: parentID, ChildID: childID}
		for _, e := range snap.Edges {
			if e.Key() == edge.Key() {
				return nil
			}
		}
		if reachable(snap.Edges, childID, parentID) {
			return nil
		}
		next := snap.Clone()
		next.Edges = append(next.Edges, edge)
		return next
	})
}

// RemoveEdge removes the exact parent→child edge if present.
func (s *FamilyService) RemoveEdge(parentID, childID string) bool {
	key := entities.ParentEdge{ParentID: parentID, ChildID: childID}.Key()
	return s.mutate(func(snap *entities.Snapshot) *entities.Snapshot {
		next := snap.Clone()
		next.Edges = next.Edges[:0]
		removed := false
		for _, e := range snap.Edges {
			if e.Key() == key {
				removed = true
				continue
			}
			next.Edges = append(next.Edges, e)
		}
		if !removed {
			return nil
		}
		return next
	})
}

// AddSpouse links two people. Rejected silently when an id is empty or
// self-referencing, the pair is already linked, or (under the monogamy
// policy) either person already has a spouse.
func (s *FamilyService) AddSpouse(aID, bID string) bool {
	if aID == "" || bID == "" || aID == bID {
		return false
	}

	return s.mutate(func(snap *entities.Snapshot) *entities.Snapshot {
		if s.policy.Monogamy {
			if snap.SpouseOf(aID) != "" || snap.SpouseOf(bID) != "" {
				return nil
			}
		} else {
			key := entities.SpouseKey(aID, bID)
			for _, l := range snap.Spouses {
				if l.Key() == key {
					return nil
				}
			}
		}
		next := snap.Clone()
		next.Spouses = append(next.Spouses, entities.SpouseLink{AID: aID, BID: bID})
		return next
	})
}

// RemoveSpouse removes the link matching the normalized pair if present.
func (s *FamilyService) RemoveSpouse(aID, bID string) bool {
	key := entities.SpouseKey(aID, bID)
	return s.mutate(func(snap *entities.Snapshot) *entities.Snapshot {
		next := snap.Clone()
		next.Spouses = next.Spouses[:0]
		removed := false
		for _, l := range snap.Spouses {
			if l.Key() == key {
				removed = true
				continue
			}
			next.Spouses = append(next.Spouses, l)
		}
		if !removed {
			return nil
		}
		return next
	})
}

// Restore replaces the whole state with the normalized form of the given
// snapshot. This is the import path; normal mutations go through the
// operation methods.
func (s *FamilyService) Restore(snap *entities.Snapshot) bool {
	return s.mutate(func(*entities.Snapshot) *entities.Snapshot {
		return snap.Normalize()
	})
}

// ResetAll clears people, edges, and spouse links entirely.
func (s *FamilyService) ResetAll() bool {
	return s.mutate(func(*entities.Snapshot) *entities.Snapshot {
		return entities.EmptySnapshot()
	})
}

// mutate applies fn to the current snapshot under the write lock. fn returns
// the replacement snapshot, or nil to signal a rejected no-op. Applied
// mutations are persisted in the background.
func (s *FamilyService) mutate(fn func(*entities.Snapshot) *entities.Snapshot) bool {
	s.mu.Lock()
	next := fn(s.snap)
	if next == nil {
		s.mu.Unlock()
		return false
	}
	s.snap = next
	s.mu.Unlock()

	s.persist(next)
	return true
}

// persist queues the snapshot for a background save without blocking the
// mutation. The pending slot always holds the newest snapshot; rapid
// mutations may coalesce, but the backend only ever advances.
func (s *FamilyService) persist(snap *entities.Snapshot) {
	if s.storage == nil {
		return
	}
	s.saveMu.Lock()
	s.pending = snap
	if s.saving {
		s.saveMu.Unlock()
		return
	}
	s.saving = true
	s.saves.Add(1)
	s.saveMu.Unlock()

	go s.drainSaves()
}

// drainSaves writes pending snapshots until the slot is empty. At most one
// drainer runs at a time.
func (s *FamilyService) drainSaves() {
	defer s.saves.Done()
	for {
		s.saveMu.Lock()
		snap := s.pending
		s.pending = nil
		if snap == nil {
			s.saving = false
			s.saveMu.Unlock()
			return
		}
		s.saveMu.Unlock()

		if err := s.storage.Save(context.Background(), snap); err != nil && s.OnPersistError != nil {
			s.OnPersistError(fmt.Errorf("saving snapshot: %w", err))
		}
	}
}

// reachable reports whether target can be reached from start by following
// parent→child edges forward. Breadth-first; this is the cycle guard that
// keeps an ancestor from becoming its own descendant.
func reachable(edges []entities.ParentEdge, start, target string) bool {
	children := make(map[string][]string, len(edges))
	for _, e := range edges {
		children[e.ParentID] = append(children[e.ParentID], e.ChildID)
	}

	queue := []string{start}
	seen := map[string]bool{start: true}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == target {
			return true
		}
		for _, next := range children[cur] {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return false
}
