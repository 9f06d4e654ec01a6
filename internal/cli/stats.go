package cli

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/kildom/xml2docx-sub000/internal/diag"
	"github.com/kildom/xml2docx-sub000/internal/engine"
)

// fileStats 一个文件的检查结果
type fileStats struct {
	Name     string
	Failed   bool
	Warnings int
	Errors   int
	Duration time.Duration
	Codes    map[string]int
}

func newFileStats(name string, res *engine.Result) fileStats {
	st := fileStats{Name: name, Codes: make(map[string]int)}
	if res == nil {
		st.Failed = true
		return st
	}
	st.Failed = res.Failed()
	st.Warnings = res.Count(diag.SeverityWarning)
	st.Errors = res.Count(diag.SeverityError)
	st.Duration = res.Duration
	for _, d := range res.Diagnostics {
		st.Codes[d.Code]++
	}
	return st
}

// clean 没有任何诊断
func (s fileStats) clean() bool {
	return !s.Failed && s.Warnings == 0 && s.Errors == 0
}

// summary 多个文件的汇总
type summary struct {
	Files []fileStats
}

func (s *summary) add(st fileStats) {
	s.Files = append(s.Files, st)
}

func (s *summary) totals() (failed, errors, warnings int) {
	for _, f := range s.Files {
		if f.Failed {
			failed++
		}
		errors += f.Errors
		warnings += f.Warnings
	}
	return
}

// codes 按代码汇总诊断数量，按代码名排序
func (s *summary) codes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range s.Files {
		for code := range f.Codes {
			if !seen[code] {
				seen[code] = true
				out = append(out, code)
			}
		}
	}
	sort.Strings(out)
	return out
}

// print 输出汇总
func (s *summary) print(w io.Writer, style string, colored bool) {
	title := color.New(color.FgCyan, color.Bold)
	ok := color.New(color.FgGreen)
	bad := color.New(color.FgRed)
	warn := color.New(color.FgYellow)
	for _, c := range []*color.Color{title, ok, bad, warn} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	failed, errors, warnings := s.totals()
	fmt.Fprintln(w, title.Sprint("=== 检查结果 ==="))
	status := ok.Sprint("OK")
	switch {
	case failed > 0:
		status = bad.Sprint("FAILED")
	case errors+warnings > 0:
		status = warn.Sprint("ISSUES")
	}
	fmt.Fprintf(w, "%s: %d files, %d fatal, %d errors, %d warnings\n",
		status, len(s.Files), failed, errors, warnings)

	if style != "table" {
		return
	}
	codes := s.codes()
	if len(codes) == 0 {
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Code", "Count"})
	for _, code := range codes {
		n := 0
		for _, f := range s.Files {
			n += f.Codes[code]
		}
		t.AppendRow(table.Row{code, n})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}
