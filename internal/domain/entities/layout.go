package entities

// Metrics holds the fixed dimensions the layout engine works with. The
// defaults mirror the card sizes and gaps of the shipped tree screen.
type Metrics struct {
	CardW       float64
	CardH       float64
	LevelGapY   float64
	SiblingGapX float64
	Pad         float64
	MarkW       float64 // width of the ⇄ glyph between a couple's cards
	CoupleGap   float64 // gap on each side of the mark
	TreeGapX    float64 // horizontal gap between root subtrees
	DropY       float64 // vertical offset of a connector's horizontal run
	MinCanvas   float64 // canvas floor for the empty/degenerate case
}

// DefaultMetrics returns the shipped layout dimensions.
func DefaultMetrics() Metrics {
	return Metrics{
		CardW:       170,
		CardH:       92,
		LevelGapY:   70,
		SiblingGapX: 200,
		Pad:         30,
		MarkW:       26,
		CoupleGap:   10,
		TreeGapX:    80,
		DropY:       18,
		MinCanvas:   400,
	}
}

// UnitWidth returns the box width for a unit of the given kind.
func (m Metrics) UnitWidth(kind UnitKind) float64 {
	if kind == UnitCouple {
		return 2*m.CardW + 2*m.CoupleGap + m.MarkW
	}
	return m.CardW
}

// NodeBox is a positioned unit ready for rendering. X and Y are the top-left
// corner.
type NodeBox struct {
	UnitID string
	Kind   UnitKind
	A      Person
	B      *Person // nil for singles
	X      float64
	Y      float64
	W      float64
	H      float64
}

// AnchorX resolves the horizontal connector anchor for the given person
// within the box. On a couple it is the matching card's center; singles and
// unmatched ids anchor at the box center.
func (b NodeBox) AnchorX(personID string, m Metrics) float64 {
	if b.Kind != UnitCouple {
		return b.X + b.W/2
	}
	if b.A.ID == personID {
		return b.X + m.CardW/2
	}
	if b.B != nil && b.B.ID == personID {
		return b.X + m.CardW + 2*m.CoupleGap + m.MarkW + m.CardW/2
	}
	return b.X + b.W/2
}

// Segment is one straight connector piece.
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// TreeLayout is the fully positioned output of the layout engine: one box
// per placed unit, the unit links whose endpoints were both placed, and the
// orthogonal connector segments derived from them.
type TreeLayout struct {
	Boxes  []NodeBox
	Links  []UnitLink
	Lines  []Segment
	Width  float64
	Height float64
}

// Box returns the placed box for a unit id, or nil.
func (t *TreeLayout) Box(unitID string) *NodeBox {
	for i := range t.Boxes {
		if t.Boxes[i].UnitID == unitID {
			return &t.Boxes[i]
		}
	}
	return nil
}
