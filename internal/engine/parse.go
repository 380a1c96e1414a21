package engine

import (
	"fmt"
	"strings"
)

// ParseStage parses a board column name. Common aliases are accepted.
func ParseStage(input string) (Stage, error) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "backlog", "todo":
		return StageBacklog, nil
	case "design", "designing":
		return StageDesign, nil
	case "upload", "uploading":
		return StageUpload, nil
	case "live", "launched":
		return StageLive, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStage, input)
	}
}
