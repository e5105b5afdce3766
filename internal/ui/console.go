// Package ui renders the hunt on a terminal: the column header, one echo
// line per frame, the committed line of every new best guess and the
// final summary.
package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/Amr-9/BalanceHunter/internal/pipeline"
	"github.com/Amr-9/BalanceHunter/pkg/balance"
	"github.com/Amr-9/BalanceHunter/pkg/generator"
)

var (
	green  = color.New(color.FgGreen, color.Bold)
	yellow = color.New(color.FgYellow, color.Bold)
	cyan   = color.New(color.FgCyan)
	red    = color.New(color.FgRed, color.Bold)
	dim    = color.New(color.Faint)
	bold   = color.New(color.Bold)
)

// Console writes progress and results for one network.
type Console struct {
	out   io.Writer
	codec generator.Codec
	quiet bool
}

// NewConsole creates a console. A quiet console skips the header and the
// per-frame animation but still prints notices and the summary.
func NewConsole(out io.Writer, codec generator.Codec, quiet bool) *Console {
	return &Console{out: out, codec: codec, quiet: quiet}
}

// Notice prints a plain line.
func (c *Console) Notice(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

// Loaded reports the target index that was built.
func (c *Console) Loaded(targets int, took time.Duration, strategy string, sizeBytes int) {
	fmt.Fprintf(c.out, "%s addresses read in %.2f seconds.\n", FormatNumber(uint64(targets)), took.Seconds())
	perTarget := 0.0
	if targets > 0 {
		perTarget = float64(sizeBytes) / float64(targets)
	}
	fmt.Fprintf(c.out, "Using %q strategy, consuming %s bytes (%.2f bytes/address).\n\n",
		strategy, FormatNumber(uint64(sizeBytes)), perTarget)
}

// Header prints the column names of the echo lines.
func (c *Console) Header() {
	if c.quiet {
		return
	}
	bold.Fprintf(c.out, "%-12s %-8s %-64s %-3s %-40s %-40s\n",
		"duration", "attempts", "private-key", "str", "address", "closest")
}

// Frame implements pipeline.Sink. The line is redrawn in place; committed
// lines end with a newline and stay on screen.
func (c *Console) Frame(f pipeline.Frame, commit bool) error {
	if c.quiet {
		return nil
	}

	id := f.Candidate.Identifier
	strength := min(max(f.Match.Length, 0), len(id))
	closest := f.Match.Target
	if closest == "" {
		closest = "-"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\r%012.6f %08x %-64s %3d ", f.Elapsed.Seconds(), f.Attempts, f.Candidate.PrivateKey, f.Match.Length)
	b.WriteString(green.Sprint(id[:strength]))
	b.WriteString(id[strength:])
	b.WriteString(" ")
	b.WriteString(dim.Sprint(closest))
	if commit {
		b.WriteString("\n")
	}
	_, err := io.WriteString(c.out, b.String())
	return err
}

// Summary prints the outcome of a run, the best guess and every funded
// identifier.
func (c *Console) Summary(s pipeline.Summary, targets int) {
	w := c.out
	fmt.Fprintln(w)
	fmt.Fprintln(w)
	bold.Fprintln(w, "Summary")
	fmt.Fprintln(w, "-------")
	row(w, "Outcome", s.Outcome.String())
	row(w, "Total guesses", FormatNumber(s.Attempts))
	row(w, "Duration", FormatDuration(s.Elapsed))
	row(w, "Guess / sec", FormatHashRate(s.GuessRate))
	row(w, "Num targets", FormatNumber(uint64(targets)))
	row(w, "Verified", FormatNumber(s.Verified))
	row(w, "Lookup failures", FormatNumber(s.LookupFailures))
	row(w, "Total balance", balance.Format(s.Total, c.codec.Decimals(), c.codec.Unit()))

	fmt.Fprintln(w)
	bold.Fprintln(w, "Best Guess")
	fmt.Fprintln(w, "----------")
	best := s.Best
	if best.Attempt == 0 {
		row(w, "address", "-")
	} else {
		report := map[string]string{
			"address":     c.codec.Display(best.Candidate.Identifier),
			"private-key": best.Candidate.PrivateKey,
		}
		if best.Match.Target != "" {
			report["closest"] = c.codec.ExplorerURL(best.Match.Target)
		}
		keys := make([]string, 0, len(report))
		for k := range report {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			row(w, k, report[k])
		}
	}
	row(w, "Strength", Strength(best.Match.Length, s.TargetLength))

	if len(s.Funded) == 0 {
		return
	}
	fmt.Fprintln(w)
	green.Fprintln(w, "Funded")
	fmt.Fprintln(w, "------")
	for _, rec := range s.Funded {
		row(w, c.codec.Display(rec.Identifier), balance.Format(rec.Balance, c.codec.Decimals(), c.codec.Unit()))
		row(w, "  private-key", yellow.Sprint(rec.PrivateKey))
	}
	red.Fprintln(w, "KEEP THESE PRIVATE KEYS SECRET!")
}

// Saved reports where funded records were written.
func (c *Console) Saved(dest string, n int) {
	cyan.Fprintf(c.out, "%d funded record(s) saved to %s\n", n, dest)
}

// Error prints a failure line.
func (c *Console) Error(err error) {
	red.Fprintf(c.out, "error: %v\n", err)
}

func row(w io.Writer, key, val string) {
	fmt.Fprintf(w, "%-20s: %s\n", key, val)
}

// Strength renders a match length against the identifier length.
func Strength(length, of int) string {
	pct := 0.0
	if of > 0 {
		pct = 100 * float64(length) / float64(of)
	}
	return fmt.Sprintf("%d of %d digits (%3.2f%%)", length, of, pct)
}

// FormatHashRate formats hash rate nicely
func FormatHashRate(rate float64) string {
	if rate >= 1000000 {
		return fmt.Sprintf("%.1fM/s", rate/1000000)
	}
	if rate >= 1000 {
		return fmt.Sprintf("%.1fK/s", rate/1000)
	}
	return fmt.Sprintf("%.0f/s", rate)
}

// FormatNumber adds commas to large numbers
func FormatNumber(n uint64) string {
	s := fmt.Sprintf("%d", n)
	if n < 1000 {
		return s
	}
	result := make([]byte, 0, len(s)+(len(s)-1)/3)
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return string(result)
}

// FormatDuration formats duration in a human-readable way
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", h, m)
}
