package services

import (
	"github.com/ersonp/kin-core/internal/domain/entities"
)

// maxLayoutDepth bounds placement recursion. Tree depth equals generation
// count, so real graphs sit far below this; the guard only matters if a
// cycle ever evades the store's edge check.
const maxLayoutDepth = 512

// ComputeLayout derives units and unit links from the snapshot and positions
// them as a forest: top-down by generation, siblings left to right. The
// result is deterministic for a given snapshot and metrics, and re-running
// it has no side effects.
func ComputeLayout(snap *entities.Snapshot, m entities.Metrics) *entities.TreeLayout {
	units, unitOf := BuildUnits(snap)
	links, childrenOf := ProjectLinks(snap.Edges, unitOf)
	return LayoutForest(snap, units, links, childrenOf, m)
}

// LayoutForest positions pre-derived units and links. Roots (units none of
// whose members is a child) are processed left to right; if no unit
// qualifies — an empty graph, or a pure cycle that slipped through — every
// unit is treated as a root so nothing disappears from the output.
func LayoutForest(
	snap *entities.Snapshot,
	units []entities.Unit,
	links []entities.UnitLink,
	childrenOf map[string][]string,
	m entities.Metrics,
) *entities.TreeLayout {
	l := &layouter{
		m:          m,
		snap:       snap,
		childrenOf: childrenOf,
		unitByID:   make(map[string]entities.Unit, len(units)),
		placed:     make(map[string]bool, len(units)),
		inStack:    make(map[string]bool),
	}
	for _, u := range units {
		l.unitByID[u.ID] = u
	}

	starts := RootUnits(units, snap.Edges)
	if len(starts) == 0 {
		starts = make([]string, len(units))
		for i, u := range units {
			starts[i] = u.ID
		}
	}

	x := m.Pad
	for _, root := range starts {
		w, _ := l.place(root, 0, x)
		x += w + m.TreeGapX
	}

	out := &entities.TreeLayout{Boxes: l.boxes}

	if len(l.boxes) == 0 {
		out.Boxes = []entities.NodeBox{}
		out.Links = []entities.UnitLink{}
		out.Lines = []entities.Segment{}
		out.Width = m.Pad + m.MinCanvas
		out.Height = m.Pad + m.MinCanvas
		return out
	}

	// Keep every box inside the left padding boundary.
	minX := out.Boxes[0].X
	for _, b := range out.Boxes {
		if b.X < minX {
			minX = b.X
		}
	}
	if minX < m.Pad {
		shift := m.Pad - minX
		for i := range out.Boxes {
			out.Boxes[i].X += shift
		}
	}

	// Drop links to units that were never placed so no dangling connector
	// is drawn.
	out.Links = make([]entities.UnitLink, 0, len(links))
	for _, ln := range links {
		if l.placed[ln.FromUnitID] && l.placed[ln.ToUnitID] {
			out.Links = append(out.Links, ln)
		}
	}
	out.Lines = connectorLines(out, m)

	maxX, maxY := m.Pad+m.MinCanvas, m.Pad+m.MinCanvas
	for _, b := range out.Boxes {
		if b.X+b.W > maxX {
			maxX = b.X + b.W
		}
		if b.Y+b.H > maxY {
			maxY = b.Y + b.H
		}
	}
	out.Width = maxX + m.Pad
	out.Height = maxY + m.Pad
	return out
}

// layouter carries the working state of one forest placement.
type layouter struct {
	m          entities.Metrics
	snap       *entities.Snapshot
	childrenOf map[string][]string
	unitByID   map[string]entities.Unit
	placed     map[string]bool
	inStack    map[string]bool
	boxes      []entities.NodeBox
}

// place positions the subtree rooted at unitID with its left edge at leftX,
// returning the subtree width and the unit's horizontal center. A unit that
// was already placed (shared child of two parent units) contributes zero
// width and is not placed again. A unit found on the active recursion path,
// or one deeper than the depth guard, reserves a leaf-sized placeholder
// instead of recursing.
func (l *layouter) place(unitID string, depth int, leftX float64) (float64, float64) {
	if l.placed[unitID] {
		return 0, leftX + l.m.CardW/2
	}
	if l.inStack[unitID] || depth > maxLayoutDepth {
		return l.m.CardW, leftX + l.m.CardW/2
	}
	l.inStack[unitID] = true
	defer delete(l.inStack, unitID)

	u, ok := l.unitByID[unitID]
	if !ok {
		return l.m.CardW, leftX + l.m.CardW/2
	}

	boxW := l.m.UnitWidth(u.Kind)

	kids := make([]string, 0)
	for _, kid := range l.childrenOf[unitID] {
		if !l.placed[kid] {
			kids = append(kids, kid)
		}
	}

	var childrenTotal float64
	centers := make([]float64, 0, len(kids))
	xCursor := leftX
	for _, kid := range kids {
		w, c := l.place(kid, depth+1, xCursor)
		centers = append(centers, c)
		xCursor += w + l.m.SiblingGapX
		childrenTotal += w
	}
	if len(kids) > 0 {
		childrenTotal += l.m.SiblingGapX * float64(len(kids)-1)
	}

	subtreeW := boxW
	if len(kids) > 0 && childrenTotal > subtreeW {
		subtreeW = childrenTotal
	}
	topY := l.m.Pad + float64(depth)*(l.m.CardH+l.m.LevelGapY)

	centerX := leftX + subtreeW/2
	if len(kids) > 0 {
		centerX = (centers[0] + centers[len(centers)-1]) / 2
	}

	box := entities.NodeBox{
		UnitID: unitID,
		Kind:   u.Kind,
		X:      centerX - boxW/2,
		Y:      topY,
		W:      boxW,
		H:      l.m.CardH,
	}
	if a := l.snap.FindPerson(u.AID); a != nil {
		box.A = *a
	}
	if u.Kind == entities.UnitCouple {
		if b := l.snap.FindPerson(u.BID); b != nil {
			box.B = b
		}
	}
	l.boxes = append(l.boxes, box)
	l.placed[unitID] = true

	return subtreeW, centerX
}

// connectorLines turns each placed link into its three orthogonal segments:
// straight down from the parent anchor, across at the drop offset, straight
// down into the child anchor.
func connectorLines(t *entities.TreeLayout, m entities.Metrics) []entities.Segment {
	lines := make([]entities.Segment, 0, 3*len(t.Links))
	for _, ln := range t.Links {
		from := t.Box(ln.FromUnitID)
		to := t.Box(ln.ToUnitID)
		if from == nil || to == nil {
			continue
		}
		x1 := from.AnchorX(ln.FromPersonID, m)
		y1 := from.Y + from.H
		x2 := to.AnchorX(ln.ToPersonID, m)
		y2 := to.Y
		lines = append(lines,
			entities.Segment{X1: x1, Y1: y1, X2: x1, Y2: y1 + m.DropY},
			entities.Segment{X1: x1, Y1: y1 + m.DropY, X2: x2, Y2: y1 + m.DropY},
			entities.Segment{X1: x2, Y1: y1 + m.DropY, X2: x2, Y2: y2},
		)
	}
	return lines
}
