package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/kildom/xml2docx-sub000/internal/diag"
)

// diagnosticPrinter 输出诊断列表，支持 list 和 table 两种样式
type diagnosticPrinter struct {
	w     io.Writer
	style string

	fatal   *color.Color
	err     *color.Color
	warning *color.Color
	dim     *color.Color
	file    *color.Color
}

func newDiagnosticPrinter(w io.Writer, style string, colored bool) *diagnosticPrinter {
	p := &diagnosticPrinter{
		w:       w,
		style:   strings.ToLower(style),
		fatal:   color.New(color.FgRed, color.Bold),
		err:     color.New(color.FgRed),
		warning: color.New(color.FgYellow),
		dim:     color.New(color.FgHiBlack),
		file:    color.New(color.FgCyan, color.Bold),
	}
	for _, c := range []*color.Color{p.fatal, p.err, p.warning, p.dim, p.file} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *diagnosticPrinter) severity(s diag.Severity) string {
	switch s {
	case diag.SeverityFatal:
		return p.fatal.Sprint(s.String())
	case diag.SeverityError:
		return p.err.Sprint(s.String())
	default:
		return p.warning.Sprint(s.String())
	}
}

func subject(d diag.Diagnostic) string {
	switch {
	case d.Tag == "":
		return ""
	case d.Attr != "":
		return fmt.Sprintf("<%s %s>", d.Tag, d.Attr)
	default:
		return fmt.Sprintf("<%s>", d.Tag)
	}
}

// Print 输出一个文件的诊断
func (p *diagnosticPrinter) Print(name string, items []diag.Diagnostic) {
	if len(items) == 0 {
		return
	}
	if p.style == "table" {
		p.printTable(name, items)
		return
	}
	for _, d := range items {
		var b strings.Builder
		b.WriteString(p.file.Sprint(name))
		if d.Position.IsValid() {
			b.WriteString(":" + d.Position.String())
		}
		b.WriteString(": ")
		b.WriteString(p.severity(d.Severity))
		if d.Code != "" {
			b.WriteString(p.dim.Sprintf(" [%s]", d.Code))
		}
		b.WriteString(": ")
		if s := subject(d); s != "" {
			b.WriteString(s + ": ")
		}
		b.WriteString(d.Message)
		fmt.Fprintln(p.w, b.String())
	}
}

func (p *diagnosticPrinter) printTable(name string, items []diag.Diagnostic) {
	t := table.NewWriter()
	t.SetOutputMirror(p.w)
	t.SetTitle(name)
	t.AppendHeader(table.Row{"Position", "Severity", "Code", "Element", "Message"})
	for _, d := range items {
		pos := "-"
		if d.Position.IsValid() {
			pos = d.Position.String()
		}
		t.AppendRow(table.Row{pos, p.severity(d.Severity), d.Code, subject(d), d.Message})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}
