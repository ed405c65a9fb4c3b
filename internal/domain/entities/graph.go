package entities

// ParentEdge is a directed parent→child connection between two people.
type ParentEdge struct {
	ParentID string `json:"parentId"`
	ChildID  string `json:"childId"`
}

// Key returns the identity of the edge for deduplication.
func (e ParentEdge) Key() string {
	return e.ParentID + ">>>" + e.ChildID
}

// SpouseLink is an undirected spousal connection between two people.
type SpouseLink struct {
	AID string `json:"aId"`
	BID string `json:"bId"`
}

// SpouseKey returns the order-independent identity of a spouse pair.
func SpouseKey(aID, bID string) string {
	if bID < aID {
		aID, bID = bID, aID
	}
	return aID + "<<<" + bID
}

// Key returns the order-independent identity of the link.
func (l SpouseLink) Key() string {
	return SpouseKey(l.AID, l.BID)
}

// Other returns the partner of id within the link, or "" if id is not part
// of the link.
func (l SpouseLink) Other(id string) string {
	switch id {
	case l.AID:
		return l.BID
	case l.BID:
		return l.AID
	default:
		return ""
	}
}

// Policy holds the constraint knobs the graph store enforces on mutation.
// The source application shipped variants with and without these caps, so
// they are configuration rather than constants.
type Policy struct {
	// MaxParents caps the distinct incoming edges per child. Zero or
	// negative means unlimited.
	MaxParents int
	// Monogamy limits every person to a single concurrent spouse link.
	Monogamy bool
}

// DefaultPolicy matches the shipped behavior: two parents, one spouse.
func DefaultPolicy() Policy {
	return Policy{MaxParents: 2, Monogamy: true}
}
