package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/kildom/xml2docx-sub000/internal/config"
	"github.com/kildom/xml2docx-sub000/internal/diag"
	"github.com/kildom/xml2docx-sub000/pkg/docopt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runString(t *testing.T, e *Engine, src string) (*Result, error) {
	t.Helper()
	return e.RunReader(context.Background(), strings.NewReader(src), "test.xml")
}

func paragraphRuns(t *testing.T, obj docopt.Object) []*docopt.TextRun {
	t.Helper()
	p, ok := obj.(*docopt.Paragraph)
	require.True(t, ok, "expected paragraph, got %T", obj)
	var out []*docopt.TextRun
	for _, c := range p.Children {
		if r, ok := c.(*docopt.TextRun); ok {
			out = append(out, r)
		}
	}
	return out
}

func TestRunEndToEnd(t *testing.T) {
	src := `<?xml version="1.0" encoding="UTF-8"?>
<document title="Demo">
  <DEF:Warn color="red" bold="yes"/>
  <section page-width="210mm">
    <p>Hello <span:Warn>world</span:Warn></p>
  </section>
</document>`
	res, err := runString(t, New(), src)
	require.NoError(t, err)
	assert.Empty(t, res.Diagnostics)
	assert.NotEmpty(t, res.RunID)
	assert.False(t, res.Failed())

	doc := res.Document
	assert.Equal(t, "Demo", doc.Properties.Title)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "210mm", doc.Sections[0].Properties.Page.Size.Width)

	runs := paragraphRuns(t, doc.Sections[0].Children[0])
	require.Len(t, runs, 3)
	assert.Equal(t, "Hello", runs[0].Text)
	assert.Equal(t, " ", runs[1].Text)
	assert.Equal(t, "world", runs[2].Text)
	assert.Equal(t, "#ff0000", runs[2].Options.Color)
	require.NotNil(t, runs[2].Options.Bold)
	assert.True(t, *runs[2].Options.Bold)
}

func TestRunFatalStages(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		stage string
		code  string
	}{
		{"语法错误", `<document><p></document>`, StageLoad, diag.CodeSource},
		{"别名循环", `<document><DEF:A:B/><DEF:B:A/><p:A/></document>`, StageResolve, diag.CodeAliasLoop},
		{"未定义别名", `<document><p:Missing/></document>`, StageResolve, diag.CodeAliasUndefined},
		{"错误的根元素", `<body/>`, StageTranslate, diag.CodeStructure},
		{"表格中的文本", `<document><table>text</table></document>`, StageTranslate, diag.CodeStructure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := runString(t, New(), tt.src)
			require.Error(t, err)
			assert.True(t, diag.IsFatal(err))
			assert.Equal(t, tt.stage, FailedStage(err))
			require.NotNil(t, res)
			assert.True(t, res.Failed())
			require.NotEmpty(t, res.Diagnostics)
			last := res.Diagnostics[len(res.Diagnostics)-1]
			assert.Equal(t, diag.SeverityFatal, last.Severity)
			assert.Equal(t, tt.code, last.Code)
		})
	}
}

func TestRunRecoverableDiagnostics(t *testing.T) {
	res, err := runString(t, New(), `<document><p color="nope" algn="left">x</p></document>`)
	require.NoError(t, err)
	require.NotNil(t, res.Document)
	assert.Equal(t, 1, res.Count(diag.SeverityError))
	assert.Equal(t, 1, res.Count(diag.SeverityWarning))
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := New().RunReader(ctx, strings.NewReader(`<document/>`), "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCanceled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StageNormalize, FailedStage(err))
	assert.True(t, res.Failed())
}

func TestRunNilDocument(t *testing.T) {
	_, err := New().Run(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilDocument)
}

func TestPredefinedAliasLibrary(t *testing.T) {
	lib, err := config.ParseAliasLibrary(`
[[alias]]
name = "Strong"
attributes = { bold = "yes" }

[[alias]]
name = "Warning"
inherits = ["Strong"]
xml = '<span color="red">!</span>'
`)
	require.NoError(t, err)
	defs, err := LibraryDefinitions(lib)
	require.NoError(t, err)
	require.Len(t, defs, 2)

	e := New(WithPredefined(defs...))
	res, err := runString(t, e, `<document><p:Strong>x</p:Strong><p><Warning/></p></document>`)
	require.NoError(t, err)
	assert.Empty(t, res.Diagnostics)

	children := res.Document.Sections[0].Children
	require.Len(t, children, 2)
	strong := paragraphRuns(t, children[0])
	require.Len(t, strong, 1)
	assert.True(t, *strong[0].Options.Bold)

	warning := paragraphRuns(t, children[1])
	require.Len(t, warning, 1)
	assert.Equal(t, "!", warning[0].Text)
	assert.Equal(t, "#ff0000", warning[0].Options.Color)
}

func TestLibraryDefinitionsBadFragment(t *testing.T) {
	_, err := LibraryDefinitions(&config.AliasLibrary{Aliases: []config.AliasEntry{
		{Name: "Broken", XML: "<p>"},
	}})
	assert.ErrorContains(t, err, `alias "Broken"`)
}

func TestAfterRunHookSeesEveryRun(t *testing.T) {
	var ids []string
	e := New(WithAfterRun(func(r *Result) { ids = append(ids, r.RunID) }))
	_, err := runString(t, e, `<document/>`)
	require.NoError(t, err)
	_, err = runString(t, e, `<oops`)
	require.Error(t, err)

	require.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])
}
