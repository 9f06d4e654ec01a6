package translate

// MaxGridColumns 单个 colspan 或 span 允许的最大列数（Word 表格网格上限）
const MaxGridColumns = 63

// Column 表格列
type Column struct {
	// Width 列宽（twip），HasWidth 为 false 时未声明
	Width    int
	HasWidth bool
	// Defaults 列定义中的 td.* 默认值
	Defaults map[string]*Pending
	// PendingRowSpan 剩余被上方单元格占用的行数，总是 ≥ 0
	PendingRowSpan int
}

// TableData 单个表格的列簿记
// 不保存网格，每行只需 O(列数) 的处理
type TableData struct {
	Cursor  int
	Columns []*Column
}

// NewTableData 创建空的列簿记
func NewTableData() *TableData {
	return &TableData{}
}

// DefineColumns 追加 span 个列定义
func (d *TableData) DefineColumns(span int, width int, hasWidth bool, defaults map[string]*Pending) {
	for i := 0; i < span; i++ {
		d.Columns = append(d.Columns, &Column{Width: width, HasWidth: hasWidth, Defaults: defaults})
	}
}

// StartRow 开始新的一行
func (d *TableData) StartRow() {
	d.Cursor = 0
}

// EndRow 结束当前行，每列剩余占用行数减一（最小为 0）
func (d *TableData) EndRow() {
	for _, c := range d.Columns {
		if c.PendingRowSpan > 0 {
			c.PendingRowSpan--
		}
	}
}

// Place 放置一个单元格并返回它的起始列
// 跳过被上方单元格占用的列，在占用的每一列记录行跨度，光标前进 colSpan 列
func (d *TableData) Place(colSpan, rowSpan int) int {
	if colSpan < 1 {
		colSpan = 1
	}
	if rowSpan < 1 {
		rowSpan = 1
	}
	for d.Cursor < len(d.Columns) && d.Columns[d.Cursor].PendingRowSpan > 0 {
		d.Cursor++
	}
	start := d.Cursor
	for len(d.Columns) < start+colSpan {
		d.Columns = append(d.Columns, &Column{})
	}
	for i := start; i < start+colSpan; i++ {
		d.Columns[i].PendingRowSpan = rowSpan
	}
	d.Cursor += colSpan
	return start
}

// Width 返回 [start, start+span) 列宽之和，任一列未声明宽度时返回 false
func (d *TableData) Width(start, span int) (int, bool) {
	total := 0
	for i := start; i < start+span; i++ {
		if i >= len(d.Columns) || !d.Columns[i].HasWidth {
			return 0, false
		}
		total += d.Columns[i].Width
	}
	return total, true
}

// ColumnWidths 返回各列宽度，未声明的为 0
func (d *TableData) ColumnWidths() []int {
	out := make([]int, len(d.Columns))
	for i, c := range d.Columns {
		out[i] = c.Width
	}
	return out
}

// Defaults 返回列的 td.* 默认值
func (d *TableData) Defaults(col int) map[string]*Pending {
	if col < 0 || col >= len(d.Columns) {
		return nil
	}
	return d.Columns[col].Defaults
}
