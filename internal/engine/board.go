package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"empireos/internal/storage"
)

// SeedBoard is the factory board every session starts with.
var SeedBoard = []Item{
	{Title: "Batch 1: Gothmas Journals", Stage: StageBacklog, Priority: PriorityHigh},
	{Title: "Batch 2: ADHD Planners", Stage: StageDesign, Priority: PriorityMed},
	{Title: "Batch 3: Welder Flashcards", Stage: StageUpload, Priority: PriorityHigh},
	{Title: "Batch 4: Canning Labels", Stage: StageLive, Priority: PriorityLow},
}

// CheckMove applies the board's transition rule to an item. It reports whether
// the move changes anything: moving to the current stage is allowed and is a
// no-op, moving one step either way is allowed, anything else is an error.
func CheckMove(it Item, target Stage) (bool, error) {
	if !target.IsValid() {
		return false, fmt.Errorf("%w: %q", ErrUnknownStage, string(target))
	}
	if it.Stage == target {
		return false, nil
	}
	if !it.Stage.Adjacent(target) {
		return false, StageJumpError{ItemID: it.ID, From: it.Stage, To: target}
	}
	return true, nil
}

// GroupByStage buckets items into board columns, preserving order.
func GroupByStage(items []Item) map[Stage][]Item {
	out := map[Stage][]Item{}
	for _, it := range items {
		out[it.Stage] = append(out[it.Stage], it)
	}
	return out
}

func itemFromRow(r storage.KanbanItem) Item {
	return Item{ID: r.ID, Title: r.Title, Stage: Stage(r.Status), Priority: Priority(r.Priority)}
}

// Seed fills an empty board with SeedBoard.
func (s *Service) Seed(ctx context.Context) error {
	rows := make([]storage.KanbanInsert, 0, len(SeedBoard))
	for _, it := range SeedBoard {
		rows = append(rows, storage.KanbanInsert{Title: it.Title, Status: string(it.Stage), Priority: string(it.Priority)})
	}
	seeded, err := s.board.Seed(ctx, rows)
	if err != nil {
		return err
	}
	if seeded {
		s.logger.Debug("board seeded", zap.Int("items", len(rows)))
	}
	return nil
}

func (s *Service) Board(ctx context.Context) ([]Item, error) {
	rows, err := s.board.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Item, 0, len(rows))
	for _, r := range rows {
		out = append(out, itemFromRow(r))
	}
	return out, nil
}

func (s *Service) Item(ctx context.Context, id int64) (Item, error) {
	r, err := s.board.Get(ctx, id)
	if err != nil {
		return Item{}, err
	}
	if r == nil {
		return Item{}, ItemNotFoundError{ID: id}
	}
	return itemFromRow(*r), nil
}

// AddItem appends a new batch in backlog with the default priority.
func (s *Service) AddItem(ctx context.Context, title string) (Item, error) {
	t, err := normalizeTitle(title)
	if err != nil {
		return Item{}, err
	}
	id, err := s.board.Insert(ctx, storage.KanbanInsert{
		Title:    t,
		Status:   string(StageBacklog),
		Priority: string(DefaultPriority),
	})
	if err != nil {
		return Item{}, err
	}
	s.logger.Debug("board item added", zap.Int64("id", id), zap.String("title", t))
	return Item{ID: id, Title: t, Stage: StageBacklog, Priority: DefaultPriority}, nil
}

// MoveItem moves an item to target, one stage at a time. On any error the
// board is left unchanged.
func (s *Service) MoveItem(ctx context.Context, id int64, target Stage) (Item, error) {
	if !target.IsValid() {
		return Item{}, fmt.Errorf("%w: %q", ErrUnknownStage, string(target))
	}
	it, err := s.Item(ctx, id)
	if err != nil {
		return Item{}, err
	}
	changed, err := CheckMove(it, target)
	if err != nil {
		return it, err
	}
	if !changed {
		return it, nil
	}
	ok, err := s.board.UpdateStatus(ctx, id, string(it.Stage), string(target))
	if err != nil {
		return it, err
	}
	if !ok {
		return it, fmt.Errorf("board item %d changed while moving", id)
	}
	s.logger.Debug("board item moved", zap.Int64("id", id), zap.String("from", string(it.Stage)), zap.String("to", string(target)))
	it.Stage = target
	return it, nil
}

// Advance moves an item one stage toward live.
func (s *Service) Advance(ctx context.Context, id int64) (Item, error) {
	it, err := s.Item(ctx, id)
	if err != nil {
		return Item{}, err
	}
	next, ok := it.Stage.Next()
	if !ok {
		return it, ErrNoAdjacentStage
	}
	return s.MoveItem(ctx, id, next)
}

// Retreat moves an item one stage back toward backlog.
func (s *Service) Retreat(ctx context.Context, id int64) (Item, error) {
	it, err := s.Item(ctx, id)
	if err != nil {
		return Item{}, err
	}
	prev, ok := it.Stage.Prev()
	if !ok {
		return it, ErrNoAdjacentStage
	}
	return s.MoveItem(ctx, id, prev)
}

func (s *Service) CountByStage(ctx context.Context) (map[Stage]int, error) {
	raw, err := s.board.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[Stage]int, len(stageOrder))
	for _, st := range stageOrder {
		out[st] = raw[string(st)]
	}
	return out, nil
}

func (s *Service) LiveCount(ctx context.Context) (int, error) {
	counts, err := s.CountByStage(ctx)
	if err != nil {
		return 0, err
	}
	return counts[StageLive], nil
}
