package engine

import (
	"context"

	"go.uber.org/zap"
)

// ToggleActionItem flips a course action item and returns its new state.
func (s *Service) ToggleActionItem(ctx context.Context, id string) (bool, error) {
	if _, _, ok := s.catalog.ActionItem(id); !ok {
		return false, UnknownActionItemError{ID: id}
	}
	done, err := s.checklist.Toggle(ctx, id)
	if err != nil {
		return false, err
	}
	s.logger.Debug("action item toggled", zap.String("id", id), zap.Bool("done", done))
	return done, nil
}

func (s *Service) SetActionItem(ctx context.Context, id string, done bool) error {
	if _, _, ok := s.catalog.ActionItem(id); !ok {
		return UnknownActionItemError{ID: id}
	}
	return s.checklist.Set(ctx, id, done)
}

// CompletedMap is the checklist state keyed by action item id.
func (s *Service) CompletedMap(ctx context.Context) (map[string]bool, error) {
	return s.checklist.CompletedMap(ctx)
}
