package heatmap

// HeatPoint is a single non-zero cell handed to a visitor.
type HeatPoint struct {
	Column int    `csv:"column"`
	Row    int    `csv:"row"`
	Value  uint32 `csv:"value"`
}

// CellVisitor receives active cells during ForEachActiveCell.
type CellVisitor interface {
	VisitCell(p HeatPoint)
}

// CellVisitorFunc adapts a plain function to CellVisitor.
type CellVisitorFunc func(p HeatPoint)

// VisitCell calls f(p).
func (f CellVisitorFunc) VisitCell(p HeatPoint) { f(p) }
