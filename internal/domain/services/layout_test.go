package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/kin-core/internal/domain/entities"
)

func TestComputeLayoutEmptyGraph(t *testing.T) {
	m := entities.DefaultMetrics()

	layout := ComputeLayout(entities.EmptySnapshot(), m)

	assert.Empty(t, layout.Boxes)
	assert.Empty(t, layout.Links)
	assert.Empty(t, layout.Lines)
	assert.Equal(t, m.Pad+m.MinCanvas, layout.Width)
	assert.Equal(t, m.Pad+m.MinCanvas, layout.Height)
}

func TestComputeLayoutSinglePerson(t *testing.T) {
	m := entities.DefaultMetrics()
	snap := snapWith([]string{"a"})

	layout := ComputeLayout(snap, m)

	require.Len(t, layout.Boxes, 1)
	box := layout.Boxes[0]
	assert.Equal(t, m.Pad, box.X)
	assert.Equal(t, m.Pad, box.Y)
	assert.Equal(t, m.CardW, box.W)
	assert.Equal(t, m.CardH, box.H)
	assert.Equal(t, "p-a", box.A.Name)
	assert.Nil(t, box.B)
}

func TestComputeLayoutCoupleWithChild(t *testing.T) {
	m := entities.DefaultMetrics()
	snap := snapWith([]string{"a", "b", "c"}, entities.SpouseLink{AID: "a", BID: "b"})
	snap.Edges = []entities.ParentEdge{{ParentID: "a", ChildID: "c"}}

	layout := ComputeLayout(snap, m)

	require.Len(t, layout.Boxes, 2)

	parent := layout.Box(entities.CoupleUnitID("a", "b"))
	require.NotNil(t, parent)
	assert.Equal(t, entities.UnitCouple, parent.Kind)
	assert.Equal(t, 2*m.CardW+2*m.CoupleGap+m.MarkW, parent.W)
	// The couple box is wider than the child subtree, so the shift pass
	// pushes everything right to the padding boundary.
	assert.Equal(t, 30.0, parent.X)
	assert.Equal(t, 30.0, parent.Y)
	require.NotNil(t, parent.B)
	assert.Equal(t, "p-b", parent.B.Name)

	child := layout.Box(entities.SingleUnitID("c"))
	require.NotNil(t, child)
	assert.Equal(t, 138.0, child.X)
	assert.Equal(t, m.Pad+m.CardH+m.LevelGapY, child.Y)

	// The connector anchors at a's card, not at the couple center or b.
	require.Len(t, layout.Links, 1)
	require.Len(t, layout.Lines, 3)
	assert.Equal(t, parent.AnchorX("a", m), layout.Lines[0].X1)
	assert.Equal(t, 115.0, layout.Lines[0].X1)
	assert.Equal(t, parent.Y+parent.H, layout.Lines[0].Y1)
	assert.Equal(t, layout.Lines[0].Y1+m.DropY, layout.Lines[0].Y2)
	assert.Equal(t, child.AnchorX("c", m), layout.Lines[2].X2)
	assert.Equal(t, 223.0, layout.Lines[2].X2)
	assert.Equal(t, child.Y, layout.Lines[2].Y2)

	assert.Equal(t, 460.0, layout.Width)
	assert.Equal(t, 460.0, layout.Height)
}

func TestAnchorXCoupleSides(t *testing.T) {
	m := entities.DefaultMetrics()
	box := entities.NodeBox{
		Kind: entities.UnitCouple,
		A:    entities.Person{ID: "a"},
		B:    &entities.Person{ID: "b"},
		X:    30,
		W:    m.UnitWidth(entities.UnitCouple),
	}

	assert.Equal(t, 30+m.CardW/2, box.AnchorX("a", m))
	assert.Equal(t, 30+m.CardW+2*m.CoupleGap+m.MarkW+m.CardW/2, box.AnchorX("b", m))
	assert.Equal(t, 30+box.W/2, box.AnchorX("ghost", m), "unmatched id falls back to center")
}

func TestComputeLayoutSharedChildPlacedOnce(t *testing.T) {
	// c has two unmarried parents: two root subtrees share the child. The
	// child is placed under the first root only and both connectors stay.
	m := entities.DefaultMetrics()
	snap := snapWith([]string{"p1", "p2", "c"})
	snap.Edges = []entities.ParentEdge{
		{ParentID: "p1", ChildID: "c"},
		{ParentID: "p2", ChildID: "c"},
	}

	layout := ComputeLayout(snap, m)

	require.Len(t, layout.Boxes, 3)
	seen := make(map[string]int)
	for _, b := range layout.Boxes {
		seen[b.UnitID]++
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "unit %s placed once", id)
	}

	assert.Len(t, layout.Links, 2, "both parent connectors survive")
	assert.Len(t, layout.Lines, 6)
}

func TestComputeLayoutSiblingsLeftToRight(t *testing.T) {
	m := entities.DefaultMetrics()
	snap := snapWith([]string{"p", "c1", "c2"})
	snap.Edges = []entities.ParentEdge{
		{ParentID: "p", ChildID: "c1"},
		{ParentID: "p", ChildID: "c2"},
	}

	layout := ComputeLayout(snap, m)

	first := layout.Box(entities.SingleUnitID("c1"))
	second := layout.Box(entities.SingleUnitID("c2"))
	parent := layout.Box(entities.SingleUnitID("p"))
	require.NotNil(t, first)
	require.NotNil(t, second)
	require.NotNil(t, parent)

	assert.Equal(t, first.X+first.W+m.SiblingGapX, second.X)
	assert.Equal(t, first.Y, second.Y)

	// Parent centered between its children.
	firstCenter := first.X + first.W/2
	secondCenter := second.X + second.W/2
	assert.Equal(t, (firstCenter+secondCenter)/2, parent.X+parent.W/2)
}

func TestComputeLayoutCycleFallback(t *testing.T) {
	// A cyclic edge set cannot be produced through the store; build it by
	// hand to exercise the defensive path: no roots, so every unit starts a
	// tree, and the in-progress guard breaks the recursion.
	m := entities.DefaultMetrics()
	snap := snapWith([]string{"a", "b"})
	snap.Edges = []entities.ParentEdge{
		{ParentID: "a", ChildID: "b"},
		{ParentID: "b", ChildID: "a"},
	}

	layout := ComputeLayout(snap, m)

	require.Len(t, layout.Boxes, 2)
	seen := make(map[string]bool)
	for _, b := range layout.Boxes {
		assert.False(t, seen[b.UnitID])
		seen[b.UnitID] = true
	}
	assert.Len(t, layout.Links, 2)
}

func TestComputeLayoutIdempotent(t *testing.T) {
	m := entities.DefaultMetrics()
	snap := snapWith([]string{"a", "b", "c", "d", "e"},
		entities.SpouseLink{AID: "a", BID: "b"},
	)
	snap.Edges = []entities.ParentEdge{
		{ParentID: "a", ChildID: "c"},
		{ParentID: "b", ChildID: "d"},
		{ParentID: "c", ChildID: "e"},
	}

	first := ComputeLayout(snap, m)
	second := ComputeLayout(snap, m)

	assert.Equal(t, first, second)
}

func TestComputeLayoutForestSpacing(t *testing.T) {
	m := entities.DefaultMetrics()
	snap := snapWith([]string{"a", "b"})

	layout := ComputeLayout(snap, m)

	require.Len(t, layout.Boxes, 2)
	assert.Equal(t, m.Pad, layout.Boxes[0].X)
	assert.Equal(t, m.Pad+m.CardW+m.TreeGapX, layout.Boxes[1].X)
	assert.Equal(t, layout.Boxes[0].Y, layout.Boxes[1].Y)
}

func TestMetricsUnitWidth(t *testing.T) {
	m := entities.DefaultMetrics()

	assert.Equal(t, 170.0, m.UnitWidth(entities.UnitSingle))
	assert.Equal(t, 386.0, m.UnitWidth(entities.UnitCouple))
}
