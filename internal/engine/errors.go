package engine

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownStage = errors.New("unknown stage")
	ErrEmptyTitle   = errors.New("title is required")
)

// GenerateFailedMessage is what the dashboard shows when generation fails for any reason.
const GenerateFailedMessage = "Error: Failed to generate content. Please try again."

// StageJumpError is returned when a move would skip a stage.
type StageJumpError struct {
	ItemID int64
	From   Stage
	To     Stage
}

func (e StageJumpError) Error() string {
	return fmt.Sprintf("item %d cannot move from %s to %s: stages change one step at a time", e.ItemID, e.From, e.To)
}

type ItemNotFoundError struct {
	ID int64
}

func (e ItemNotFoundError) Error() string {
	return fmt.Sprintf("board item %d not found", e.ID)
}

type UnknownActionItemError struct {
	ID string
}

func (e UnknownActionItemError) Error() string {
	return fmt.Sprintf("action item %q is not in the course", e.ID)
}

// ErrNoAdjacentStage is returned by Advance at live and by Retreat at backlog.
var ErrNoAdjacentStage = errors.New("no stage in that direction")
