package engine

import (
	"context"
	"database/sql"
	"strings"

	"go.uber.org/zap"

	"empireos/internal/content"
	"empireos/internal/storage"
)

// Generator produces text for a prompt. *gemini.Client satisfies it.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service owns one dashboard session: the course catalog, the in-memory
// checklist and board, and the generation client. The calculators it feeds
// (Progress, Project, CalculateProfit) stay pure.
type Service struct {
	catalog   *content.Catalog
	board     *storage.BoardRepo
	checklist *storage.ChecklistRepo
	gen       Generator
	logger    *zap.Logger
}

func NewService(db *sql.DB, catalog *content.Catalog, gen Generator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		catalog:   catalog,
		board:     storage.NewBoardRepo(db),
		checklist: storage.NewChecklistRepo(db),
		gen:       gen,
		logger:    logger.Named("engine"),
	}
}

func (s *Service) Catalog() *content.Catalog { return s.catalog }

// Stats computes XP, tier and course progress for the current session state.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	completed, err := s.CompletedMap(ctx)
	if err != nil {
		return Stats{}, err
	}
	live, err := s.LiveCount(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Progress(completed, s.catalog.ActionItemCount(), live), nil
}

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", ErrEmptyTitle
	}
	return t, nil
}
