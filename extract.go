package fundwatch

import (
	"fmt"
	"regexp"
	"strings"
)

// statementLine matches "code value gain": a 6-digit code, a market value and a
// signed gain, separated by commas or any Unicode space. Numbers may carry thousands
// separators.
var statementLine = regexp.MustCompile(`^(\d{6})[,\s\p{Zs}]+(-?[\d,]+\.?\d*)[,\s\p{Zs}]+([+-]?[\d,]+\.?\d*)$`)

// Extract scans text line by line and returns one pending [Candidate] per
// recognised holding statement, in input order.
//
// The only recognised shape is "code value gain", as produced by [Export]:
//
//	001186 14521.97 -478.03
//	002145,5,000,+120
//
// Any other line is skipped without error.
func Extract(text string) []Candidate {
	var candidates []Candidate
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		c, ok := extractLine(fmt.Sprintf("line-%d", i+1), line)
		if !ok {
			continue
		}
		candidates = append(candidates, c)
	}
	return candidates
}

// extractLine matches a single trimmed line.
func extractLine(key, line string) (Candidate, bool) {
	m := statementLine.FindStringSubmatch(line)
	if m == nil {
		return Candidate{}, false
	}
	value, err := ParseMoney(stripThousands(m[2]), Currency)
	if err != nil {
		return Candidate{}, false
	}
	gain, err := ParseMoney(stripThousands(strings.TrimPrefix(m[3], "+")), Currency)
	if err != nil {
		return Candidate{}, false
	}
	return newStatementCandidate(key, line, Code(m[1]), value, gain), true
}

func stripThousands(s string) string { return strings.ReplaceAll(s, ",", "") }
