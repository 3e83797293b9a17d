package fundwatch

import (
	"fmt"
	"io"
)

// this file contains the export format, the reverse of Extract.
// It must remain readable by Extract: "code marketValue gain", one holding per
// line, amounts with 2 decimals.

// Export writes positions to w in the format accepted by [Extract]. The market
// value is computed at the reference price, so that re-importing the text
// yields the same units.
//
// Positions without cost are skipped silently. Positions without a usable
// reference price are skipped and counted in missing.
func Export(w io.Writer, positions []Position) (missing int, err error) {
	for _, p := range positions {
		if !p.HasCost {
			continue
		}
		mv, ok := p.ReferenceValue()
		if !ok {
			missing++
			continue
		}
		mv = mv.Round(2)
		gain := mv.Sub(p.Cost.Round(2))
		if _, err := fmt.Fprintf(w, "%s %s %s\n", p.Code, mv.Fixed(), gain.Fixed()); err != nil {
			return missing, fmt.Errorf("cannot write export line for %s: %w", p.Code, err)
		}
	}
	return missing, nil
}
