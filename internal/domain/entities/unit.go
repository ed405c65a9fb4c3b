package entities

// UnitKind discriminates the two display-unit shapes.
type UnitKind string

const (
	UnitSingle UnitKind = "single"
	UnitCouple UnitKind = "couple"
)

// Unit is a layout node: a solitary person or a monogamous couple. Units are
// derived fresh from the snapshot on every read, never persisted. For a
// couple, AID and BID hold the lexicographically smaller and larger person
// id, so the unit identity is independent of argument order.
type Unit struct {
	ID   string
	Kind UnitKind
	AID  string
	BID  string // empty for singles
}

// SingleUnitID derives the stable id of a single-person unit.
func SingleUnitID(personID string) string {
	return "u:" + personID
}

// CoupleUnitID derives the stable, order-independent id of a couple unit.
func CoupleUnitID(aID, bID string) string {
	if bID < aID {
		aID, bID = bID, aID
	}
	return "u:" + aID + "<<<" + bID
}

// Members returns the person ids belonging to the unit.
func (u Unit) Members() []string {
	if u.Kind == UnitCouple {
		return []string{u.AID, u.BID}
	}
	return []string{u.AID}
}

// UnitLink projects one person-level parent edge onto the unit graph. The
// person ids on both sides identify which half of a couple the connector
// anchors to.
type UnitLink struct {
	FromUnitID   string
	ToUnitID     string
	FromPersonID string
	ToPersonID   string
}
