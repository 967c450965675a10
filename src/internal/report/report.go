// FILE: nsdebug/src/internal/report/report.go
package report

import (
	"fmt"
	"io"
	"strings"

	"nsdebug/src/internal/analysis"
	"nsdebug/src/internal/core"
	"nsdebug/src/internal/format"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Renderer writes analysis views as human-readable text
type Renderer struct {
	out   io.Writer
	color bool
}

// NewRenderer creates a renderer writing to out
func NewRenderer(out io.Writer, color bool) *Renderer {
	return &Renderer{out: out, color: color}
}

func (r *Renderer) paint(c text.Color, a ...any) string {
	if !r.color {
		return fmt.Sprint(a...)
	}
	return c.Sprint(a...)
}

func (r *Renderer) heading(title string) {
	fmt.Fprintf(r.out, "\n%s\n", r.paint(text.FgHiCyan, title))
}

func (r *Renderer) newTable(headers ...string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleRounded)

	row := make(table.Row, len(headers))
	for i, h := range headers {
		row[i] = r.paint(text.FgHiCyan, h)
	}
	t.AppendHeader(row)
	return t
}

func (r *Renderer) empty(msg string) {
	fmt.Fprintf(r.out, "%s\n", r.paint(text.FgYellow, msg))
}

// Summary renders the analyze view
func (r *Renderer) Summary(s analysis.Summary) {
	r.heading("Debug Log Analysis")
	fmt.Fprintf(r.out, "Total entries: %s\n", r.paint(text.FgHiWhite, s.Total))
	if s.Total == 0 {
		r.empty("No entries found")
		return
	}

	if s.TimeRange != nil {
		fmt.Fprintf(r.out, "Time range: %s -> %s (%s)\n",
			s.TimeRange.First, s.TimeRange.Last, formatSeconds(s.TimeRange.ElapsedSeconds))
	}

	r.heading("Namespaces")
	t := r.newTable("NAMESPACE", "COUNT", "SHARE")
	for _, ns := range s.Namespaces {
		t.AppendRow(table.Row{ns.Namespace, ns.Count, formatPercent(ns.Percent)})
	}
	t.Render()

	r.heading(fmt.Sprintf("Errors (%d)", s.ErrorCount))
	if s.ErrorCount == 0 {
		fmt.Fprintln(r.out, "No errors found")
	} else {
		for _, e := range s.ErrorSamples {
			fmt.Fprintf(r.out, "  %s [%s] %s\n", e.Timestamp, e.Namespace, r.paint(text.FgHiRed, e.Message))
		}
		if s.MoreErrors > 0 {
			fmt.Fprintf(r.out, "  ... and %d more\n", s.MoreErrors)
		}
	}

	r.heading(fmt.Sprintf("Performance (%d)", s.PerformanceCount))
	if s.Durations == nil {
		fmt.Fprintln(r.out, "No duration measurements")
		return
	}
	t = r.newTable("SAMPLES", "AVG", "MIN", "MAX")
	t.AppendRow(table.Row{
		s.Durations.Count,
		formatMillis(s.Durations.Avg),
		formatMillis(s.Durations.Min),
		formatMillis(s.Durations.Max),
	})
	t.Render()
}

// Statistics renders the stats view
func (r *Renderer) Statistics(st analysis.Statistics) {
	r.heading("Debug Log Statistics")
	fmt.Fprintf(r.out, "Total entries: %s\n", r.paint(text.FgHiWhite, st.Total))
	fmt.Fprintf(r.out, "Unique requests: %s\n", r.paint(text.FgHiWhite, st.UniqueRequests))
	if st.Total == 0 {
		return
	}

	r.heading("Top Namespaces")
	t := r.newTable("NAMESPACE", "COUNT", "SHARE")
	for _, ns := range st.TopNamespaces {
		t.AppendRow(table.Row{ns.Namespace, ns.Count, formatPercent(ns.Percent)})
	}
	t.Render()

	r.heading("Top Patterns")
	t = r.newTable("NAMESPACE", "MESSAGE", "COUNT")
	for _, p := range st.TopPatterns {
		t.AppendRow(table.Row{p.Namespace, p.Message, p.Count})
	}
	t.Render()
}

// Perf renders the perf view
func (r *Renderer) Perf(p analysis.PerfReport) {
	r.heading("Performance Analysis")
	fmt.Fprintf(r.out, "Performance entries: %s\n", r.paint(text.FgHiWhite, p.Total))
	if p.Total == 0 {
		r.empty("No performance entries found")
		return
	}

	t := r.newTable("OPERATION", "COUNT", "AVG", "MIN", "MAX")
	for _, g := range p.Groups {
		if !g.Timed {
			t.AppendRow(table.Row{g.Message, g.Count, "-", "-", "-"})
			continue
		}
		t.AppendRow(table.Row{
			g.Message,
			g.Count,
			formatMillis(g.Stats.Avg),
			formatMillis(g.Stats.Min),
			formatMillis(g.Stats.Max),
		})
	}
	t.Render()

	if len(p.Slowest) == 0 {
		return
	}
	r.heading("Slowest Operations")
	t = r.newTable("DURATION", "NAMESPACE", "MESSAGE", "TIMESTAMP")
	for _, s := range p.Slowest {
		t.AppendRow(table.Row{
			r.paint(text.FgHiYellow, formatMillis(s.Duration)),
			s.Entry.Namespace,
			s.Entry.Message,
			s.Entry.Timestamp,
		})
	}
	t.Render()
}

// Entries writes each entry through f, one per line
func (r *Renderer) Entries(title string, entries []core.LogEntry, f format.Formatter) error {
	r.heading(fmt.Sprintf("%s (%d)", title, len(entries)))
	if len(entries) == 0 {
		r.empty("No entries found")
		return nil
	}

	for _, e := range entries {
		line, err := f.Format(e)
		if err != nil {
			return fmt.Errorf("failed to format entry: %w", err)
		}
		if !strings.HasSuffix(string(line), "\n") {
			line = append(line, '\n')
		}
		if _, err := r.out.Write(line); err != nil {
			return err
		}
	}
	return nil
}

func formatMillis(ms float64) string {
	return fmt.Sprintf("%.2fms", ms)
}

func formatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

func formatSeconds(s float64) string {
	return fmt.Sprintf("%.1fs", s)
}
