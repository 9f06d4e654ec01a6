package translate

import (
	"testing"

	"github.com/kildom/xml2docx-sub000/internal/diag"
	"github.com/kildom/xml2docx-sub000/internal/dom"
	"github.com/kildom/xml2docx-sub000/pkg/docopt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func el(name string, attrs map[string]string, children ...dom.Node) *dom.Element {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return &dom.Element{Name: name, Attributes: attrs, Properties: map[string]*dom.Element{}, Children: children}
}

func txt(v string) *dom.Text { return &dom.Text{Value: v} }

type attrs = map[string]string

func newTranslator() (*Translator, *diag.Sink) {
	sink := diag.NewSink(nil)
	return New(sink, nil, nil), sink
}

func translate(t *testing.T, root *dom.Element) (*docopt.Document, *diag.Sink) {
	t.Helper()
	tr, sink := newTranslator()
	doc, err := tr.Translate(root)
	require.NoError(t, err)
	return doc, sink
}

// runs 返回段落中的文本片段
func runs(t *testing.T, obj docopt.Object) []*docopt.TextRun {
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

func texts(rs []*docopt.TextRun) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Text
	}
	return out
}

func TestTableDataSpanMachine(t *testing.T) {
	d := NewTableData()
	d.DefineColumns(2, 100, true, nil)

	// 第 0 行：(0,0) 跨两行
	d.StartRow()
	assert.Equal(t, 0, d.Place(1, 2))
	assert.Equal(t, 1, d.Place(1, 1))
	d.EndRow()

	// 第 1 行：第 0 列仍被占用
	d.StartRow()
	assert.Equal(t, 1, d.Place(1, 1))
	d.EndRow()

	assert.Equal(t, 0, d.Columns[0].PendingRowSpan)
	assert.Equal(t, 0, d.Columns[1].PendingRowSpan)
}

func TestTableDataGrowsAndSumsWidths(t *testing.T) {
	d := NewTableData()
	d.DefineColumns(1, 100, true, nil)
	d.DefineColumns(1, 200, true, nil)

	d.StartRow()
	assert.Equal(t, 0, d.Place(2, 1))
	assert.Equal(t, 2, d.Place(1, 1))
	assert.Len(t, d.Columns, 3)

	w, ok := d.Width(0, 2)
	assert.True(t, ok)
	assert.Equal(t, 300, w)
	_, ok = d.Width(1, 2)
	assert.False(t, ok)
	assert.Equal(t, []int{100, 200, 0}, d.ColumnWidths())
}

func TestTableColumnWidthsEndToEnd(t *testing.T) {
	tr, sink := newTranslator()
	table := el("table", nil,
		el("tc", attrs{"width": "2cm"}),
		el("tc", attrs{"width": "3cm"}),
		el("tr", nil,
			el("td", nil, txt("A")),
			el("td", attrs{"colspan": "1"}, txt("B")),
		),
	)

	tbl, data, _, err := tr.buildTable(NewState(), table)
	require.NoError(t, err)
	assert.Equal(t, 0, sink.Len())

	require.Len(t, tbl.Rows, 1)
	cells := tbl.Rows[0].Cells
	require.Len(t, cells, 2)
	assert.Equal(t, &docopt.TableWidth{Size: 1134, Type: "dxa"}, cells[0].Width)
	assert.Equal(t, &docopt.TableWidth{Size: 1701, Type: "dxa"}, cells[1].Width)
	assert.Equal(t, []string{"A"}, texts(runs(t, cells[0].Children[0])))
	assert.Equal(t, []string{"B"}, texts(runs(t, cells[1].Children[0])))
	assert.Equal(t, []int{1134, 1701}, tbl.ColumnWidths)
	assert.Equal(t, 2, data.Cursor)
}

func TestTableRowSpanSkipsColumn(t *testing.T) {
	tr, _ := newTranslator()
	table := el("table", nil,
		el("tr", nil,
			el("td", attrs{"rowspan": "2"}, txt("A")),
			el("td", nil, txt("B")),
		),
		el("tr", nil,
			el("td", nil, txt("C")),
		),
	)

	tbl, data, _, err := tr.buildTable(NewState(), table)
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, 2, tbl.Rows[0].Cells[0].RowSpan)
	assert.Equal(t, 1, tbl.Rows[1].Cells[0].Column)
	assert.Equal(t, 0, data.Columns[0].PendingRowSpan)
}

func TestColumnSpanIsCapped(t *testing.T) {
	tests := []struct {
		name     string
		table    *dom.Element
		reported bool
	}{
		{"单元格 colspan", el("table", nil,
			el("tr", nil, el("td", attrs{"colspan": "4294967295"}, txt("A"))),
		), true},
		{"列定义 span", el("table", nil,
			el("tc", attrs{"span": "100000", "width": "1cm"}),
		), true},
		{"上限以内不报告", el("table", nil,
			el("tr", nil, el("td", attrs{"colspan": "63"}, txt("A"))),
		), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, sink := newTranslator()
			tbl, data, _, err := tr.buildTable(NewState(), tt.table)
			require.NoError(t, err)
			assert.Len(t, data.Columns, MaxGridColumns)
			if len(tbl.Rows) > 0 {
				assert.Equal(t, MaxGridColumns, tbl.Rows[0].Cells[0].ColumnSpan)
			}
			if !tt.reported {
				assert.Equal(t, 0, sink.Len())
				return
			}
			require.Equal(t, 1, sink.Len())
			assert.Equal(t, diag.CodeInvalidValue, sink.Items()[0].Code)
			assert.Contains(t, sink.Items()[0].Message, "maximum of 63 columns")
		})
	}
}

func TestCommonAttributeAppliesToNextElementOnly(t *testing.T) {
	root := el("document", nil,
		el("section", attrs{"td.align": "center"},
			el("table", nil,
				el("tr", nil,
					el("td", nil, txt("A")),
					el("td", nil, txt("B")),
				),
			),
		),
	)
	doc, sink := translate(t, root)
	assert.Equal(t, 0, sink.Len())

	tbl := doc.Sections[0].Children[0].(*docopt.Table)
	cells := tbl.Rows[0].Cells
	first := cells[0].Children[0].(*docopt.Paragraph)
	second := cells[1].Children[0].(*docopt.Paragraph)
	assert.Equal(t, "center", first.Options.Alignment)
	assert.Empty(t, second.Options.Alignment)
}

func TestCommonAttributeScoping(t *testing.T) {
	t.Run("声明只在声明元素的子树中有效", func(t *testing.T) {
		root := el("document", nil,
			el("section", nil,
				el("span", attrs{"p.align": "right"}),
				el("p", nil, txt("x")),
			),
		)
		doc, _ := translate(t, root)
		p := doc.Sections[0].Children[0].(*docopt.Paragraph)
		assert.Empty(t, p.Options.Alignment)
	})

	t.Run("子树中的使用对后续兄弟可见", func(t *testing.T) {
		root := el("document", attrs{"p.align": "right"},
			el("section", nil, el("p", nil, txt("a"))),
			el("section", nil, el("p", nil, txt("b"))),
		)
		doc, _ := translate(t, root)
		require.Len(t, doc.Sections, 2)
		assert.Equal(t, "right", doc.Sections[0].Children[0].(*docopt.Paragraph).Options.Alignment)
		assert.Empty(t, doc.Sections[1].Children[0].(*docopt.Paragraph).Options.Alignment)
	})

	t.Run("显式属性优先", func(t *testing.T) {
		root := el("document", nil,
			el("section", attrs{"p.align": "right"},
				el("p", attrs{"align": "left"}, txt("a")),
				el("p", nil, txt("b")),
			),
		)
		doc, _ := translate(t, root)
		children := doc.Sections[0].Children
		assert.Equal(t, "left", children[0].(*docopt.Paragraph).Options.Alignment)
		// 已被第一个段落使用
		assert.Empty(t, children[1].(*docopt.Paragraph).Options.Alignment)
	})
}

func TestColumnDefaults(t *testing.T) {
	tr, _ := newTranslator()
	table := el("table", nil,
		el("tc", attrs{"width": "1in", "td.valign": "center"}),
		el("tc", attrs{"width": "1in"}),
		el("tr", nil,
			el("td", nil, txt("A")),
			el("td", nil, txt("B")),
		),
		el("tr", nil,
			el("td", attrs{"valign": "bottom"}, txt("C")),
		),
	)
	tbl, _, _, err := tr.buildTable(NewState(), table)
	require.NoError(t, err)
	assert.Equal(t, "center", tbl.Rows[0].Cells[0].VerticalAlign)
	assert.Empty(t, tbl.Rows[0].Cells[1].VerticalAlign)
	assert.Equal(t, "bottom", tbl.Rows[1].Cells[0].VerticalAlign)
	assert.Equal(t, 1440, tbl.Rows[0].Cells[1].Width.Size)
}

func TestTextInTableIsFatal(t *testing.T) {
	tr, sink := newTranslator()
	root := el("document", nil, el("table", nil, txt(" "), txt("oops")))
	_, err := tr.Translate(root)
	require.Error(t, err)
	assert.True(t, diag.IsFatal(err))
	assert.True(t, sink.HasFatal())
	assert.Contains(t, err.Error(), "expecting only elements here")
}

func TestWrongRootIsFatal(t *testing.T) {
	tr, _ := newTranslator()
	_, err := tr.Translate(el("body", nil))
	require.Error(t, err)
	var fe *diag.FatalError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, diag.CodeStructure, fe.Diagnostic.Code)
}

func TestImplicitSectionAndParagraphs(t *testing.T) {
	root := el("document", attrs{"title": "T"},
		txt("Hello"),
		el("b", nil, txt("bold")),
		el("p", nil, txt("para")),
		txt("tail"),
	)
	doc, sink := translate(t, root)
	assert.Equal(t, 0, sink.Len())
	assert.Equal(t, "T", doc.Properties.Title)

	require.Len(t, doc.Sections, 1)
	children := doc.Sections[0].Children
	require.Len(t, children, 3)

	first := runs(t, children[0])
	assert.Equal(t, []string{"Hello", "bold"}, texts(first))
	assert.Nil(t, first[0].Options.Bold)
	require.NotNil(t, first[1].Options.Bold)
	assert.True(t, *first[1].Options.Bold)

	assert.Equal(t, []string{"para"}, texts(runs(t, children[1])))
	assert.Equal(t, []string{"tail"}, texts(runs(t, children[2])))
}

func TestWhitespaceModes(t *testing.T) {
	content := func() []dom.Node {
		return []dom.Node{
			txt(" "), txt("Hello"), txt(" "),
			el("i", nil, txt("big   world")),
			txt(" "),
		}
	}
	tests := []struct {
		mode string
		want []string
	}{
		{"trim", []string{"Hello", " ", "big world"}},
		{"preserve", []string{" ", "Hello", " ", "big   world", " "}},
		{"ignore", []string{"Hello", "big world"}},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			root := el("document", nil,
				el("p", attrs{"space": tt.mode}, content()...),
			)
			doc, sink := translate(t, root)
			assert.Equal(t, 0, sink.Len())
			assert.Equal(t, tt.want, texts(runs(t, doc.Sections[0].Children[0])))
		})
	}
}

func TestWhitespaceOnlyContentProducesNoParagraph(t *testing.T) {
	root := el("document", nil,
		el("section", nil, txt(" "), el("p", nil, txt("x")), txt(" ")),
	)
	doc, _ := translate(t, root)
	assert.Len(t, doc.Sections[0].Children, 1)
}

func TestFormattingOverlay(t *testing.T) {
	root := el("document", nil,
		el("p", attrs{"color": "red", "size": "12pt"},
			txt("a"),
			el("span", attrs{"color": "#00f", "bold": "yes"}, txt("b")),
			el("u", attrs{"type": "double"}, txt("c")),
		),
	)
	doc, sink := translate(t, root)
	assert.Equal(t, 0, sink.Len())

	rs := runs(t, doc.Sections[0].Children[0])
	require.Len(t, rs, 3)
	assert.Equal(t, "#ff0000", rs[0].Options.Color)
	assert.Equal(t, 24, *rs[0].Options.Size)

	// 子覆盖层优先，父层的其它字段保留
	assert.Equal(t, "#0000ff", rs[1].Options.Color)
	assert.True(t, *rs[1].Options.Bold)
	assert.Equal(t, 24, *rs[1].Options.Size)

	assert.Equal(t, "double", rs[2].Options.Underline.Type)
	assert.Equal(t, "#ff0000", rs[2].Options.Color)
}

func TestHeadingsAndBreaks(t *testing.T) {
	root := el("document", nil,
		el("h2", nil, txt("Title"), el("br", nil), txt("Sub"), el("tab", nil)),
		el("h1", attrs{"heading": "title"}),
		el("pagebreak", nil),
	)
	doc, _ := translate(t, root)
	children := doc.Sections[0].Children
	require.Len(t, children, 3)

	h2 := children[0].(*docopt.Paragraph)
	assert.Equal(t, "Heading2", h2.Options.Heading)
	require.Len(t, h2.Children, 4)
	assert.IsType(t, &docopt.Break{}, h2.Children[1])
	assert.IsType(t, &docopt.Tab{}, h2.Children[3])

	assert.Equal(t, "Title", children[1].(*docopt.Paragraph).Options.Heading)

	pb := children[2].(*docopt.Paragraph)
	require.Len(t, pb.Children, 1)
	assert.IsType(t, &docopt.PageBreak{}, pb.Children[0])
}

func TestHyperlink(t *testing.T) {
	root := el("document", nil,
		el("p", nil, el("a", attrs{"href": "https://example.com"}, txt("link"))),
	)
	doc, sink := translate(t, root)
	assert.Equal(t, 0, sink.Len())
	children := doc.Sections[0].Children

	link := children[0].(*docopt.Paragraph).Children[0].(*docopt.Hyperlink)
	assert.Equal(t, "https://example.com", link.Link)
	require.Len(t, link.Children, 1)
}

func TestMissingMandatoryAttributeIsFatal(t *testing.T) {
	tests := []struct {
		name string
		root *dom.Element
		tag  string
		attr string
	}{
		{"链接缺少 href", el("document", nil, el("p", nil, el("a", nil, txt("x")))), "a", "href"},
		{"链接 href 为空", el("document", nil, el("p", nil, el("a", attrs{"href": " "}, txt("x")))), "a", "href"},
		{"段落样式缺少 id", el("document", nil, el("paragraphstyle", attrs{"name": "Quote"})), "paragraphstyle", "id"},
		{"字符样式缺少 id", el("document", nil, el("characterstyle", nil)), "characterstyle", "id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, sink := newTranslator()
			doc, err := tr.Translate(tt.root)
			require.Error(t, err)
			assert.True(t, diag.IsFatal(err))
			assert.Nil(t, doc)

			require.Equal(t, 1, sink.Len())
			d := sink.Items()[0]
			assert.Equal(t, diag.SeverityFatal, d.Severity)
			assert.Equal(t, diag.CodeMissingAttribute, d.Code)
			assert.Equal(t, tt.tag, d.Tag)
			assert.Equal(t, tt.attr, d.Attr)
		})
	}
}

func TestSectionProperties(t *testing.T) {
	header := el("header", nil, el("p", nil, txt("H")))
	section := el("section", attrs{
		"pagewidth":   "210mm",
		"pageheight":  "1122.5px",
		"orientation": "Landscape",
		"margin":      "1in 2cm",
		"marginleft":  "3cm",
		"titlepage":   "yes",
		"type":        "continuous",
	}, el("p", nil, txt("body")))
	section.Properties["header"] = header

	doc, sink := translate(t, el("document", nil, section))
	assert.Equal(t, 0, sink.Len())
	require.Len(t, doc.Sections, 1)

	s := doc.Sections[0]
	page := s.Properties.Page
	assert.Equal(t, "210mm", page.Size.Width)
	assert.Equal(t, "841.875pt", page.Size.Height)
	assert.Equal(t, "landscape", page.Size.Orientation)
	assert.Equal(t, docopt.PageMargin{Top: "1in", Right: "2cm", Bottom: "1in", Left: "3cm"}, page.Margin)
	assert.True(t, *s.Properties.TitlePage)
	assert.Equal(t, "continuous", s.Properties.Type)

	require.NotNil(t, s.Headers)
	require.Len(t, s.Headers.Default, 1)
	assert.Equal(t, []string{"H"}, texts(runs(t, s.Headers.Default[0])))
	assert.Nil(t, s.Footers)
	assert.Len(t, s.Children, 1)
}

func TestStylesAreRouted(t *testing.T) {
	root := el("document", nil,
		el("paragraphstyle", attrs{"id": "Quote", "basedon": "Normal", "italic": "true", "indentleft": "1cm"}),
		el("characterstyle", attrs{"id": "Code", "font": "Consolas"}),
	)
	doc, sink := translate(t, root)

	require.Len(t, doc.ParagraphStyles, 1)
	ps := doc.ParagraphStyles[0]
	assert.Equal(t, "Quote", ps.ID)
	assert.Equal(t, "Normal", ps.BasedOn)
	assert.True(t, *ps.Run.Italics)
	assert.Equal(t, 567, *ps.Paragraph.Indent.Left)

	require.Len(t, doc.CharacterStyles, 1)
	assert.Equal(t, "Code", doc.CharacterStyles[0].ID)
	assert.Equal(t, "Consolas", doc.CharacterStyles[0].Run.Font)

	assert.Equal(t, 0, sink.Len())
	assert.Empty(t, doc.Sections)
}

func TestUnexpectedTagIsRecoverable(t *testing.T) {
	root := el("document", nil,
		el("section", nil,
			el("tbl", nil),
			el("p", nil, txt("after")),
		),
	)
	doc, sink := translate(t, root)
	require.Equal(t, 1, sink.Len())
	d := sink.Items()[0]
	assert.Equal(t, diag.CodeUnexpectedTag, d.Code)
	assert.Contains(t, d.Message, "did you mean <table>?")
	assert.Len(t, doc.Sections[0].Children, 1)
}

func TestUnknownAttributeWarning(t *testing.T) {
	root := el("document", nil, el("p", attrs{"algn": "center"}, txt("x")))
	_, sink := translate(t, root)
	require.Equal(t, 1, sink.Len())
	d := sink.Items()[0]
	assert.Equal(t, diag.SeverityWarning, d.Severity)
	assert.Equal(t, diag.CodeUnknownAttribute, d.Code)
	assert.Contains(t, d.Message, `did you mean "align"?`)
}

func TestInvalidValueRecovers(t *testing.T) {
	root := el("document", nil, el("p", attrs{"color": "notacolor"}, txt("x")))
	doc, sink := translate(t, root)
	require.Equal(t, 1, sink.Len())
	assert.Equal(t, diag.CodeInvalidValue, sink.Items()[0].Code)
	assert.Equal(t, "#808080", runs(t, doc.Sections[0].Children[0])[0].Options.Color)
}

func TestTableBordersAndMargins(t *testing.T) {
	borders := el("borders", attrs{"top": "double 1pt red", "insidevertical": "none"})
	table := el("table", attrs{"border": "single 0.5pt #000", "cellmargin": "2pt 4pt", "width": "100%"},
		el("tr", attrs{"height": "1cm", "heightrule": "exact", "header": "true"},
			el("td", attrs{"margin": "1pt", "textdirection": "up"}),
		),
	)
	table.Properties["borders"] = borders

	tr, sink := newTranslator()
	tbl, _, _, err := tr.buildTable(NewState(), table)
	require.NoError(t, err)
	assert.Equal(t, 0, sink.Len())

	assert.Equal(t, &docopt.TableWidth{Size: 5000, Type: "pct"}, tbl.Width)
	assert.Equal(t, &docopt.Border{Style: "double", Size: 8, Color: "#ff0000"}, tbl.Borders.Top)
	assert.Equal(t, &docopt.Border{Style: "single", Size: 4, Color: "#000000"}, tbl.Borders.Bottom)
	assert.Equal(t, "none", tbl.Borders.InsideVertical.Style)
	assert.Equal(t, 40, *tbl.Margins.Top)
	assert.Equal(t, 80, *tbl.Margins.Right)

	row := tbl.Rows[0]
	assert.Equal(t, &docopt.RowHeight{Value: 567, Rule: "exact"}, row.Height)
	assert.True(t, *row.TableHeader)

	cell := row.Cells[0]
	assert.Equal(t, 20, *cell.Margins.Left)
	assert.Equal(t, "btLr", cell.TextDirection)
	// 空单元格包含一个空段落
	require.Len(t, cell.Children, 1)
	assert.IsType(t, &docopt.Paragraph{}, cell.Children[0])
}

func TestNestedTableHasOwnColumns(t *testing.T) {
	inner := el("table", nil,
		el("tc", attrs{"width": "1cm"}),
		el("tr", nil, el("td", nil, txt("x"))),
	)
	outer := el("table", nil,
		el("tc", attrs{"width": "5cm"}),
		el("tr", nil, el("td", nil, inner)),
		el("tr", nil, el("td", nil, txt("y"))),
	)
	tr, _ := newTranslator()
	tbl, data, _, err := tr.buildTable(NewState(), outer)
	require.NoError(t, err)
	assert.Len(t, data.Columns, 1)
	assert.Equal(t, 2835, tbl.Rows[1].Cells[0].Width.Size)

	nested := tbl.Rows[0].Cells[0].Children[0].(*docopt.Table)
	assert.Equal(t, []int{567}, nested.ColumnWidths)
}
