package translate

import (
	"math"
	"strings"

	"github.com/kildom/xml2docx-sub000/internal/convert"
	"github.com/kildom/xml2docx-sub000/internal/dom"
	"github.com/kildom/xml2docx-sub000/pkg/docopt"
	"go.uber.org/zap"
)

// tableHandler 处理 <table>
func tableHandler(t *Translator, st State, el *dom.Element) ([]piece, Common, error) {
	tbl, _, common, err := t.buildTable(st, el)
	if err != nil {
		return nil, nil, err
	}
	return []piece{blockPiece(tbl)}, common, nil
}

// buildTable 翻译表格，同时返回它的列簿记
func (t *Translator) buildTable(st State, el *dom.Element) (*docopt.Table, *TableData, Common, error) {
	sc, child := t.enter(st, el)
	r := sc.attrs
	tbl := docopt.NewTable()
	tbl.Width = tableWidth(r, "width")
	tbl.Layout = r.enum("layout", tableLayoutEnum)
	tbl.Alignment = r.enum("align", alignmentEnum)
	tbl.Style = r.str("style")
	if v := r.subunits("indent", convert.Twips, -maxTwips, maxTwips); v != nil {
		tbl.Indent = &docopt.TableWidth{Size: *v, Type: "dxa"}
	}

	var borders docopt.TableBorders
	if f := r.field("border"); f.Present {
		b := border(t.conv, f)
		borders = docopt.TableBorders{Top: b, Bottom: b, Left: b, Right: b, InsideHorizontal: b, InsideVertical: b}
	}
	if p, ok := r.property("borders"); ok {
		side := sideBorders(t.conv, p, "top", "bottom", "left", "right", "insidehorizontal", "insidevertical")
		mergeBorder(&borders.Top, side["top"])
		mergeBorder(&borders.Bottom, side["bottom"])
		mergeBorder(&borders.Left, side["left"])
		mergeBorder(&borders.Right, side["right"])
		mergeBorder(&borders.InsideHorizontal, side["insidehorizontal"])
		mergeBorder(&borders.InsideVertical, side["insidevertical"])
	}
	if borders != (docopt.TableBorders{}) {
		tbl.Borders = &borders
	}
	if f := r.field("cellmargin"); f.Present {
		tbl.Margins = margins(t.conv, f)
	}

	data := NewTableData()
	child.Table = data
	ps, common, err := t.children(tableCtx, child, el)
	if err != nil {
		return nil, nil, nil, err
	}
	for _, p := range ps {
		if row, ok := p.obj.(*docopt.TableRow); ok {
			tbl.Rows = append(tbl.Rows, row)
		}
	}
	if len(data.Columns) > 0 {
		tbl.ColumnWidths = data.ColumnWidths()
	}
	t.logger.Debug("table translated",
		zap.String("position", el.Pos.String()),
		zap.Int("rows", len(tbl.Rows)),
		zap.Int("columns", len(data.Columns)))
	return tbl, data, sc.leave(common), nil
}

// tableWidth 解析宽度：长度、百分比或 auto
func tableWidth(r *attrReader, name string) *docopt.TableWidth {
	f := r.field(name)
	if !f.Present {
		return nil
	}
	v := strings.TrimSpace(f.Value)
	if strings.EqualFold(v, "auto") {
		return &docopt.TableWidth{Type: "auto"}
	}
	if pct, ok := strings.CutSuffix(v, "%"); ok {
		p := r.conv.NonNegativeFloat(convert.NewField(f.Tag, f.Name, pct, f.Pos), 100)
		// pct 单位为百分之一的五十分之一
		return &docopt.TableWidth{Size: int(math.Round(p * 50)), Type: "pct"}
	}
	return &docopt.TableWidth{Size: r.conv.Subunits(f, convert.Twips, 0, maxTwips), Type: "dxa"}
}

// columnHandler 处理 <tc width=… span=… td.attr=…>
func columnHandler(t *Translator, st State, el *dom.Element) ([]piece, Common, error) {
	sc, child := t.enter(st, el)
	r := sc.attrs
	span := r.span("span")
	width, hasWidth := 0, false
	if w := r.subunits("width", convert.Twips, 0, maxTwips); w != nil {
		width, hasWidth = *w, true
	}
	st.Table.DefineColumns(span, width, hasWidth, sc.decls["td"])
	t.noContent(el)
	return nil, sc.leave(child.Common), nil
}

// rowHandler 处理 <tr>
func rowHandler(t *Translator, st State, el *dom.Element) ([]piece, Common, error) {
	sc, child := t.enter(st, el)
	r := sc.attrs
	row := docopt.NewTableRow()
	if h := r.subunits("height", convert.Twips, 0, maxTwips); h != nil {
		row.Height = &docopt.RowHeight{Value: *h, Rule: r.enum("heightrule", heightRuleEnum)}
	}
	row.TableHeader = r.boolean("header")
	row.CantSplit = r.boolean("cantsplit")

	data := st.Table
	data.StartRow()
	ps, common, err := t.children(rowCtx, child, el)
	if err != nil {
		return nil, nil, err
	}
	data.EndRow()
	for _, p := range ps {
		if cell, ok := p.obj.(*docopt.TableCell); ok {
			row.Cells = append(row.Cells, cell)
		}
	}
	return []piece{blockPiece(row)}, sc.leave(common), nil
}

// cellHandler 处理 <td>
// 属性优先级：显式属性 > 公共属性 > 所在列的默认值
func cellHandler(t *Translator, st State, el *dom.Element) ([]piece, Common, error) {
	sc, child := t.enter(st, el)
	r := sc.attrs
	data := st.Table

	colSpan := r.span("colspan")
	rowSpan := r.unsigned("rowspan", 1)
	if rowSpan < 1 {
		rowSpan = 1
	}
	col := data.Place(colSpan, rowSpan)
	r.defaults = data.Defaults(col)

	cell := docopt.NewTableCell()
	cell.Column = col
	if colSpan > 1 {
		cell.ColumnSpan = colSpan
	}
	if rowSpan > 1 {
		cell.RowSpan = rowSpan
	}
	if w := tableWidth(r, "width"); w != nil {
		cell.Width = w
	} else if w, ok := data.Width(col, colSpan); ok {
		cell.Width = &docopt.TableWidth{Size: w, Type: "dxa"}
	}
	cell.VerticalAlign = r.enum("valign", verticalAlignEnum)
	if c := r.color("shading"); c != "" {
		cell.Shading = &docopt.Shading{Fill: c, Type: "clear"}
	}
	if f := r.field("margin"); f.Present {
		cell.Margins = margins(t.conv, f)
	}
	var borders docopt.CellBorders
	if f := r.field("border"); f.Present {
		b := border(t.conv, f)
		borders = docopt.CellBorders{Top: b, Bottom: b, Left: b, Right: b}
	}
	if p, ok := r.property("borders"); ok {
		side := sideBorders(t.conv, p, "top", "bottom", "left", "right")
		mergeBorder(&borders.Top, side["top"])
		mergeBorder(&borders.Bottom, side["bottom"])
		mergeBorder(&borders.Left, side["left"])
		mergeBorder(&borders.Right, side["right"])
	}
	if borders != (docopt.CellBorders{}) {
		cell.Borders = &borders
	}
	cell.TextDirection = r.enum("textdirection", textDirectionEnum)

	child = child.WithParagraph(paragraphFormat(r, false)).WithRun(runFormat(r))
	child.Table = nil
	objs, common, err := t.blockContent(child, el)
	if err != nil {
		return nil, nil, err
	}
	if len(objs) == 0 {
		// 单元格至少包含一个段落
		objs = []docopt.Object{docopt.NewParagraph(child.Paragraph)}
	}
	cell.Children = objs
	return []piece{blockPiece(cell)}, sc.leave(common), nil
}
