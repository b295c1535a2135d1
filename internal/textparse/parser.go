// Package textparse recovers structured match records from loosely formatted
// odds-board text pasted by a user. Two layouts are supported: a tabular one
// anchored on competition tokens and a narrative one anchored on date
// headings. Everything else on the board (broadcaster listings, forecast
// commentary, rendering duplicates) is treated as noise.
package textparse

import (
	"regexp"
	"strings"
	"time"

	"github.com/avolkov/footpred/internal/competitions"
	"github.com/avolkov/footpred/internal/pkg/models"
)

// Parser extracts match records from board text. It holds no per-call state:
// Extract is safe to invoke concurrently.
type Parser struct {
	comps *competitions.Table
	now   func() time.Time // injected for deterministic year resolution in tests
}

func New(comps *competitions.Table) *Parser {
	return &Parser{comps: comps, now: time.Now}
}

// Extract runs the tabular extractor first and falls back to the narrative
// extractor when no competition anchor is found. The tabular layout has the
// stronger structural anchors and fails towards empty output, so trying it
// first cannot shadow narrative input.
func (p *Parser) Extract(text string) []models.ParsedMatch {
	if matches := p.extractTabular(text); len(matches) > 0 {
		return matches
	}
	return p.extractNarrative(text)
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

var multiSpaceRe = regexp.MustCompile(`\s{2,}`)

// splitFields splits a tabular line into its columns: by tab when the source
// kept tabs, otherwise by runs of two or more spaces.
func splitFields(line string) []string {
	var parts []string
	if strings.Contains(line, "\t") {
		parts = strings.Split(line, "\t")
	} else {
		parts = multiSpaceRe.Split(line, -1)
	}
	fields := make([]string, 0, len(parts))
	for _, f := range parts {
		f = strings.TrimSpace(f)
		if f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}
