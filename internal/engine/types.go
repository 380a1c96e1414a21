package engine

// Stage is a column of the factory board. Stages are ordered and items move
// one step at a time.
type Stage string

const (
	StageBacklog Stage = "backlog"
	StageDesign  Stage = "design"
	StageUpload  Stage = "upload"
	StageLive    Stage = "live"
)

var stageOrder = []Stage{StageBacklog, StageDesign, StageUpload, StageLive}

// Stages returns the board columns in order.
func Stages() []Stage {
	out := make([]Stage, len(stageOrder))
	copy(out, stageOrder)
	return out
}

func (s Stage) IsValid() bool { return s.Index() >= 0 }

// Index is the stage position, or -1 for an unknown stage.
func (s Stage) Index() int {
	for i, st := range stageOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// Next returns the following stage; ok is false at live or for unknown stages.
func (s Stage) Next() (Stage, bool) {
	i := s.Index()
	if i < 0 || i == len(stageOrder)-1 {
		return s, false
	}
	return stageOrder[i+1], true
}

// Prev returns the preceding stage; ok is false at backlog or for unknown stages.
func (s Stage) Prev() (Stage, bool) {
	i := s.Index()
	if i <= 0 {
		return s, false
	}
	return stageOrder[i-1], true
}

// Adjacent reports whether a move from s to t is a single step (or no step).
func (s Stage) Adjacent(t Stage) bool {
	i, j := s.Index(), t.Index()
	if i < 0 || j < 0 {
		return false
	}
	d := i - j
	return d >= -1 && d <= 1
}

// Priority is cosmetic; it never affects ordering or scoring.
type Priority string

const (
	PriorityHigh Priority = "high"
	PriorityMed  Priority = "med"
	PriorityLow  Priority = "low"
)

// DefaultPriority is given to every newly added item.
const DefaultPriority Priority = PriorityMed

// Item is a board entry as the engine sees it.
type Item struct {
	ID       int64
	Title    string
	Stage    Stage
	Priority Priority
}
