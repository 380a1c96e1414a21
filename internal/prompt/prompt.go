// Package prompt turns a selected lab tool and free-form user text into the
// prompt sent to the generation API.
package prompt

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyInput means there is nothing to generate from; callers skip the request.
	ErrEmptyInput  = errors.New("input is empty")
	ErrUnknownTool = errors.New("unknown tool")
)

type Tool string

const (
	ToolNiche   Tool = "niche"
	ToolAudit   Tool = "audit"
	ToolListing Tool = "listing"
	ToolTutor   Tool = "tutor"
)

// DefaultTool is selected when the lab opens.
const DefaultTool = ToolNiche

// Tools returns the lab tools in display order.
func Tools() []Tool {
	return []Tool{ToolNiche, ToolAudit, ToolListing, ToolTutor}
}

func (t Tool) IsValid() bool {
	switch t {
	case ToolNiche, ToolAudit, ToolListing, ToolTutor:
		return true
	default:
		return false
	}
}

func ParseTool(input string) (Tool, error) {
	t := Tool(strings.TrimSpace(strings.ToLower(input)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTool, input)
	}
	return t, nil
}

func (t Tool) Label() string {
	switch t {
	case ToolNiche:
		return "Niche Hunter"
	case ToolAudit:
		return "Listing Auditor"
	case ToolListing:
		return "Listing Architect"
	case ToolTutor:
		return "Course Tutor"
	default:
		return string(t)
	}
}

func (t Tool) Description() string {
	switch t {
	case ToolNiche:
		return "Find Blue Oceans"
	case ToolAudit:
		return "Grade Your SEO"
	case ToolListing:
		return "Generate SEO Copy"
	case ToolTutor:
		return "Generate Worksheets"
	default:
		return ""
	}
}

const (
	nicheTemplate   = `Act as an expert Etsy market researcher following the 'Micro-Niche Clustering' strategy. The user is interested in: '%s'. Suggest 3 distinct, high-utility 'Micro-Niche Clusters' that are low-competition. Format with bold headings.`
	auditTemplate   = `Act as a ruthless Etsy SEO algorithm auditor. Critique this listing title/tags string: "%s". 1. Give it a Score out of 100. 2. Identify 3 "Dead" keywords (too broad). 3. Suggest 3 "Long-Tail" replacements. 4. Rewrite the title to be perfectly optimized for the 2025 algorithm.`
	listingTemplate = `Write a high-converting Etsy listing for: '%s'. Include Title, Description (Benefit-focused), and 13 Tags.`
	tutorTemplate   = `Create a step-by-step practical worksheet for an Etsy seller to master: "%s". The output should be an actionable list of 5 steps.`
)

// Build renders the template for tool with the user's text embedded verbatim.
// Input that is blank after trimming yields ErrEmptyInput.
func Build(tool Tool, input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", ErrEmptyInput
	}
	var tmpl string
	switch tool {
	case ToolNiche:
		tmpl = nicheTemplate
	case ToolAudit:
		tmpl = auditTemplate
	case ToolListing:
		tmpl = listingTemplate
	case ToolTutor:
		tmpl = tutorTemplate
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTool, string(tool))
	}
	return fmt.Sprintf(tmpl, input), nil
}

// ForConcept returns the tool and lab input for the worksheet shortcut offered
// from a course concept.
func ForConcept(title string) (Tool, string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", "", ErrEmptyInput
	}
	return ToolTutor, title, nil
}
