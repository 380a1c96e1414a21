package engine

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"empireos/internal/prompt"
)

var ErrNoGenerator = errors.New("generation is not configured")

type GenerateResult struct {
	Tool    prompt.Tool
	Prompt  string
	Text    string
	Elapsed time.Duration
}

// Generate builds the prompt for tool and sends it to the generator. Blank
// input returns prompt.ErrEmptyInput without making a request.
func (s *Service) Generate(ctx context.Context, tool prompt.Tool, input string) (*GenerateResult, error) {
	p, err := prompt.Build(tool, input)
	if err != nil {
		return nil, err
	}
	if s.gen == nil {
		return nil, ErrNoGenerator
	}

	start := time.Now()
	text, err := s.gen.Generate(ctx, p)
	elapsed := time.Since(start)
	if err != nil {
		s.logger.Warn("generation failed", zap.String("tool", string(tool)), zap.Duration("elapsed", elapsed), zap.Error(err))
		return nil, err
	}
	s.logger.Info("generation complete", zap.String("tool", string(tool)), zap.Duration("elapsed", elapsed), zap.Int("chars", len(text)))
	return &GenerateResult{Tool: tool, Prompt: p, Text: text, Elapsed: elapsed}, nil
}
