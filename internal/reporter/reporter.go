// Package reporter renders a human-readable summary of a cascade,
// following the teacher's commit-summary idiom of pairing a count with
// a humanized relative duration.
package reporter

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// _timeNow is overridable in tests, mirroring the teacher's
// GIT_SPICE_NOW-style injection point for deterministic relative times.
var _timeNow = time.Now

// Summary describes the outcome of a completed or interrupted cascade.
type Summary struct {
	// Chain is the name of the chain that was rebased.
	Chain string

	// Rebased lists the branches successfully rebased, in order.
	Rebased []string

	// Skipped lists branches that were left untouched, e.g. because
	// they were squash-merged and reconciled with "skip" mode.
	Skipped []string

	// SquashReset lists branches reset directly onto their parent after
	// being detected as squash-merged.
	SquashReset []string

	// Interrupted is the branch the cascade stopped at, if it did.
	Interrupted string

	// Started is when the cascade began. Used to report elapsed time.
	Started time.Time
}

// String renders the summary as a single-line report.
func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "chain %s: ", s.Chain)

	switch {
	case s.Interrupted != "":
		fmt.Fprintf(&b, "stopped at %s", s.Interrupted)
	case len(s.Rebased) == 0:
		b.WriteString("nothing to do")
	default:
		fmt.Fprintf(&b, "rebased %s", humanize.Comma(int64(len(s.Rebased))))
		if len(s.Rebased) == 1 {
			b.WriteString(" branch")
		} else {
			b.WriteString(" branches")
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(s.Rebased, ", "))
	}

	if len(s.Skipped) > 0 {
		fmt.Fprintf(&b, "; skipped %s", strings.Join(s.Skipped, ", "))
	}

	if len(s.SquashReset) > 0 {
		fmt.Fprintf(&b, "; reset %s to parent (squash-merged)", strings.Join(s.SquashReset, ", "))
	}

	if !s.Started.IsZero() {
		fmt.Fprintf(&b, " (started %s)", humanize.RelTime(s.Started, _timeNow(), "ago", "from now"))
	}

	return b.String()
}
