// Package report renders aggregated activity as a plain-text report.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/goran-ethernal/ChainActivity/internal/stats"
)

// RuleWidth is the width of the rule separating report sections.
const RuleWidth = 60

var rule = strings.Repeat("=", RuleWidth)

// Input is everything a report is rendered from.
type Input struct {
	Source stats.Source

	FromBlock uint64
	ToBlock   uint64
	Partial   bool
	Skipped   int

	GeneratedAt  time.Time
	TopAddresses int
	RecentEvents int
}

// ExportError is returned when the report cannot be written. In-memory results are unaffected.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export report to %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// Export writes the report to path, creating parent directories.
func Export(path string, in Input) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
			return &ExportError{Path: path, Err: err}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return &ExportError{Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &ExportError{Path: path, Err: cerr}
		}
	}()

	w := bufio.NewWriter(f)
	if err := Render(w, in); err != nil {
		return &ExportError{Path: path, Err: err}
	}
	if err := w.Flush(); err != nil {
		return &ExportError{Path: path, Err: err}
	}

	return nil
}

// Render writes the summary section followed by one section per address in discovery order.
func Render(w io.Writer, in Input) error {
	p := &printer{w: w}

	global := stats.Global(in.Source)

	p.line(rule)
	p.line("ON-CHAIN ACTIVITY REPORT")
	p.line(rule)
	if !in.GeneratedAt.IsZero() {
		p.linef("Generated:         %s", in.GeneratedAt.UTC().Format(time.RFC3339))
	}
	p.linef("Block range:       %d - %d", in.FromBlock, in.ToBlock)
	if in.Partial {
		p.line("Status:            partial (scan stopped early)")
	} else {
		p.line("Status:            complete")
	}
	p.linef("Skipped logs:      %d", in.Skipped)
	p.line("")
	p.line("SUMMARY")
	p.linef("Total events:      %d", global.Events)
	p.linef("Unique addresses:  %d", global.Addresses)
	p.linef("Successful:        %d", global.Succeeded)
	p.linef("Failed:            %d", global.Failed)
	p.linef("Total gas used:    %s", global.GasUsed)
	p.linef("Total value (wei): %s", global.ValueSent)
	p.line("")
	p.line("Events by type:")
	p.histogram(global.Summary)

	if top := stats.MostActive(in.Source, in.TopAddresses); len(top) > 0 {
		p.line("")
		p.line("Most active addresses:")
		tw := tabwriter.NewWriter(p, 0, 0, 2, ' ', 0) //nolint:mnd
		for i, r := range top {
			fmt.Fprintf(tw, "  %d.\t%s\t%d events\n", i+1, r.Address.Hex(), r.Events)
		}
		p.check(tw.Flush())
	}

	for _, addr := range in.Source.Addresses() {
		sum := stats.ForAddress(in.Source, addr)

		p.line("")
		p.line(rule)
		p.linef("ADDRESS %s", addr.Hex())
		p.line(rule)
		p.linef("Events:            %d", sum.Events)
		p.linef("Successful:        %d", sum.Succeeded)
		p.linef("Failed:            %d", sum.Failed)
		p.linef("Gas used:          %s", sum.GasUsed)
		p.linef("Value sent (wei):  %s", sum.ValueSent)
		p.line("Events by type:")
		p.histogram(sum)

		recent := stats.Recent(in.Source, addr, in.RecentEvents)
		if len(recent) == 0 {
			continue
		}
		p.linef("Most recent %d:", len(recent))
		tw := tabwriter.NewWriter(p, 0, 0, 2, ' ', 0) //nolint:mnd
		for _, ev := range recent {
			fmt.Fprintf(tw, "  block %d\t%s\t%s\t%s\n", ev.BlockNumber, ev.Name, ev.Status, ev.Key())
		}
		p.check(tw.Flush())
	}

	return p.err
}

// printer keeps the first write error and turns later writes into no-ops.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) Write(b []byte) (int, error) {
	if p.err != nil {
		return 0, p.err
	}
	n, err := p.w.Write(b)
	p.err = err
	return n, err
}

func (p *printer) check(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *printer) line(s string) {
	_, err := io.WriteString(p, s+"\n")
	p.check(err)
}

func (p *printer) linef(format string, args ...any) {
	p.line(fmt.Sprintf(format, args...))
}

func (p *printer) histogram(sum *stats.Summary) {
	if len(sum.ByName) == 0 {
		p.line("  (none)")
		return
	}
	for _, name := range sum.Names() {
		p.linef("  %-24s %d", name, sum.ByName[name])
	}
}
