// Package docopt 定义翻译结果的文档选项类型
//
// 字段命名和取值与 docx 文档对象库的选项一致，长度单位为整数子单位：
// 段落缩进、间距、表格宽度为 twip，字号为半点，边框宽度为八分之一点。
// 页面尺寸和页边距保留规范化的长度字符串（例如 "210mm"）。
package docopt

// ObjectType 输出对象类型
type ObjectType string

const (
	TypeParagraph      ObjectType = "paragraph"
	TypeTextRun        ObjectType = "textRun"
	TypeBreak          ObjectType = "break"
	TypeTab            ObjectType = "tab"
	TypePageBreak      ObjectType = "pageBreak"
	TypeHyperlink      ObjectType = "hyperlink"
	TypeTable          ObjectType = "table"
	TypeTableRow       ObjectType = "tableRow"
	TypeTableCell      ObjectType = "tableCell"
	TypeSection        ObjectType = "section"
	TypeParagraphStyle ObjectType = "paragraphStyle"
	TypeCharacterStyle ObjectType = "characterStyle"
)

// Object 输出对象接口
type Object interface {
	// ObjectType 返回对象类型
	ObjectType() ObjectType
	object()
}

// Shading 底纹
type Shading struct {
	Fill  string `json:"fill,omitempty" yaml:"fill,omitempty"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
	Type  string `json:"type,omitempty" yaml:"type,omitempty"`
}

// Border 单条边框，Size 为八分之一点，Space 为点
type Border struct {
	Style string `json:"style" yaml:"style"`
	Size  int    `json:"size,omitempty" yaml:"size,omitempty"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
	Space int    `json:"space,omitempty" yaml:"space,omitempty"`
}

// Underline 下划线
type Underline struct {
	Type  string `json:"type" yaml:"type"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

// RunOptions 字符格式
// 指针和空字符串表示未设置，合并时不会覆盖下层的值
type RunOptions struct {
	Bold         *bool      `json:"bold,omitempty" yaml:"bold,omitempty"`
	Italics      *bool      `json:"italics,omitempty" yaml:"italics,omitempty"`
	Strike       *bool      `json:"strike,omitempty" yaml:"strike,omitempty"`
	DoubleStrike *bool      `json:"doubleStrike,omitempty" yaml:"doubleStrike,omitempty"`
	SmallCaps    *bool      `json:"smallCaps,omitempty" yaml:"smallCaps,omitempty"`
	AllCaps      *bool      `json:"allCaps,omitempty" yaml:"allCaps,omitempty"`
	Emboss       *bool      `json:"emboss,omitempty" yaml:"emboss,omitempty"`
	Imprint      *bool      `json:"imprint,omitempty" yaml:"imprint,omitempty"`
	Vanish       *bool      `json:"vanish,omitempty" yaml:"vanish,omitempty"`
	SuperScript  *bool      `json:"superScript,omitempty" yaml:"superScript,omitempty"`
	SubScript    *bool      `json:"subScript,omitempty" yaml:"subScript,omitempty"`
	Underline    *Underline `json:"underline,omitempty" yaml:"underline,omitempty"`
	Color        string     `json:"color,omitempty" yaml:"color,omitempty"`
	Highlight    string     `json:"highlight,omitempty" yaml:"highlight,omitempty"`
	Shading      *Shading   `json:"shading,omitempty" yaml:"shading,omitempty"`
	// Size 半点
	Size *int   `json:"size,omitempty" yaml:"size,omitempty"`
	Font string `json:"font,omitempty" yaml:"font,omitempty"`
	// CharacterSpacing twip
	CharacterSpacing *int   `json:"characterSpacing,omitempty" yaml:"characterSpacing,omitempty"`
	Style            string `json:"style,omitempty" yaml:"style,omitempty"`
}

// Indent 段落缩进（twip）
type Indent struct {
	Left      *int `json:"left,omitempty" yaml:"left,omitempty"`
	Right     *int `json:"right,omitempty" yaml:"right,omitempty"`
	FirstLine *int `json:"firstLine,omitempty" yaml:"firstLine,omitempty"`
	Hanging   *int `json:"hanging,omitempty" yaml:"hanging,omitempty"`
}

// Spacing 段落间距，Before/After 为 twip，Line 为 240 分之一行
type Spacing struct {
	Before *int `json:"before,omitempty" yaml:"before,omitempty"`
	After  *int `json:"after,omitempty" yaml:"after,omitempty"`
	Line   *int `json:"line,omitempty" yaml:"line,omitempty"`
}

// ParagraphBorders 段落边框
type ParagraphBorders struct {
	Top     *Border `json:"top,omitempty" yaml:"top,omitempty"`
	Bottom  *Border `json:"bottom,omitempty" yaml:"bottom,omitempty"`
	Left    *Border `json:"left,omitempty" yaml:"left,omitempty"`
	Right   *Border `json:"right,omitempty" yaml:"right,omitempty"`
	Between *Border `json:"between,omitempty" yaml:"between,omitempty"`
}

// ParagraphOptions 段落格式
type ParagraphOptions struct {
	Alignment       string            `json:"alignment,omitempty" yaml:"alignment,omitempty"`
	Heading         string            `json:"heading,omitempty" yaml:"heading,omitempty"`
	Style           string            `json:"style,omitempty" yaml:"style,omitempty"`
	Indent          *Indent           `json:"indent,omitempty" yaml:"indent,omitempty"`
	Spacing         *Spacing          `json:"spacing,omitempty" yaml:"spacing,omitempty"`
	KeepNext        *bool             `json:"keepNext,omitempty" yaml:"keepNext,omitempty"`
	KeepLines       *bool             `json:"keepLines,omitempty" yaml:"keepLines,omitempty"`
	PageBreakBefore *bool             `json:"pageBreakBefore,omitempty" yaml:"pageBreakBefore,omitempty"`
	Border          *ParagraphBorders `json:"border,omitempty" yaml:"border,omitempty"`
	Shading         *Shading          `json:"shading,omitempty" yaml:"shading,omitempty"`
}

// Paragraph 段落
type Paragraph struct {
	Type     ObjectType       `json:"type" yaml:"type"`
	Options  ParagraphOptions `json:"options" yaml:"options"`
	Children []Object         `json:"children,omitempty" yaml:"children,omitempty"`
}

// TextRun 文本片段
type TextRun struct {
	Type    ObjectType `json:"type" yaml:"type"`
	Text    string     `json:"text" yaml:"text"`
	Options RunOptions `json:"options" yaml:"options"`
}

// Break 换行
type Break struct {
	Type ObjectType `json:"type" yaml:"type"`
}

// Tab 制表符
type Tab struct {
	Type ObjectType `json:"type" yaml:"type"`
}

// PageBreak 分页符
type PageBreak struct {
	Type ObjectType `json:"type" yaml:"type"`
}

// Hyperlink 外部链接
type Hyperlink struct {
	Type     ObjectType `json:"type" yaml:"type"`
	Link     string     `json:"link" yaml:"link"`
	Children []Object   `json:"children,omitempty" yaml:"children,omitempty"`
}

// TableWidth 宽度，Type 为 dxa / pct / auto
type TableWidth struct {
	Size int    `json:"size" yaml:"size"`
	Type string `json:"type" yaml:"type"`
}

// Margins 单元格边距（twip）
type Margins struct {
	Top    *int `json:"top,omitempty" yaml:"top,omitempty"`
	Right  *int `json:"right,omitempty" yaml:"right,omitempty"`
	Bottom *int `json:"bottom,omitempty" yaml:"bottom,omitempty"`
	Left   *int `json:"left,omitempty" yaml:"left,omitempty"`
}

// TableBorders 表格边框
type TableBorders struct {
	Top              *Border `json:"top,omitempty" yaml:"top,omitempty"`
	Bottom           *Border `json:"bottom,omitempty" yaml:"bottom,omitempty"`
	Left             *Border `json:"left,omitempty" yaml:"left,omitempty"`
	Right            *Border `json:"right,omitempty" yaml:"right,omitempty"`
	InsideHorizontal *Border `json:"insideHorizontal,omitempty" yaml:"insideHorizontal,omitempty"`
	InsideVertical   *Border `json:"insideVertical,omitempty" yaml:"insideVertical,omitempty"`
}

// CellBorders 单元格边框
type CellBorders struct {
	Top    *Border `json:"top,omitempty" yaml:"top,omitempty"`
	Bottom *Border `json:"bottom,omitempty" yaml:"bottom,omitempty"`
	Left   *Border `json:"left,omitempty" yaml:"left,omitempty"`
	Right  *Border `json:"right,omitempty" yaml:"right,omitempty"`
}

// Table 表格
type Table struct {
	Type         ObjectType    `json:"type" yaml:"type"`
	Rows         []*TableRow   `json:"rows" yaml:"rows"`
	ColumnWidths []int         `json:"columnWidths,omitempty" yaml:"columnWidths,omitempty"`
	Width        *TableWidth   `json:"width,omitempty" yaml:"width,omitempty"`
	Layout       string        `json:"layout,omitempty" yaml:"layout,omitempty"`
	Alignment    string        `json:"alignment,omitempty" yaml:"alignment,omitempty"`
	Style        string        `json:"style,omitempty" yaml:"style,omitempty"`
	Indent       *TableWidth   `json:"indent,omitempty" yaml:"indent,omitempty"`
	Borders      *TableBorders `json:"borders,omitempty" yaml:"borders,omitempty"`
	Margins      *Margins      `json:"margins,omitempty" yaml:"margins,omitempty"`
}

// RowHeight 行高
type RowHeight struct {
	Value int    `json:"value" yaml:"value"`
	Rule  string `json:"rule,omitempty" yaml:"rule,omitempty"`
}

// TableRow 表格行
type TableRow struct {
	Type        ObjectType   `json:"type" yaml:"type"`
	Cells       []*TableCell `json:"cells" yaml:"cells"`
	Height      *RowHeight   `json:"height,omitempty" yaml:"height,omitempty"`
	TableHeader *bool        `json:"tableHeader,omitempty" yaml:"tableHeader,omitempty"`
	CantSplit   *bool        `json:"cantSplit,omitempty" yaml:"cantSplit,omitempty"`
}

// TableCell 单元格
type TableCell struct {
	Type ObjectType `json:"type" yaml:"type"`
	// Column 单元格所在的第一列
	Column        int          `json:"column" yaml:"column"`
	ColumnSpan    int          `json:"columnSpan,omitempty" yaml:"columnSpan,omitempty"`
	RowSpan       int          `json:"rowSpan,omitempty" yaml:"rowSpan,omitempty"`
	Width         *TableWidth  `json:"width,omitempty" yaml:"width,omitempty"`
	VerticalAlign string       `json:"verticalAlign,omitempty" yaml:"verticalAlign,omitempty"`
	Shading       *Shading     `json:"shading,omitempty" yaml:"shading,omitempty"`
	Margins       *Margins     `json:"margins,omitempty" yaml:"margins,omitempty"`
	Borders       *CellBorders `json:"borders,omitempty" yaml:"borders,omitempty"`
	TextDirection string       `json:"textDirection,omitempty" yaml:"textDirection,omitempty"`
	Children      []Object     `json:"children" yaml:"children"`
}

// PageSize 页面尺寸（规范化长度字符串）
type PageSize struct {
	Width       string `json:"width,omitempty" yaml:"width,omitempty"`
	Height      string `json:"height,omitempty" yaml:"height,omitempty"`
	Orientation string `json:"orientation,omitempty" yaml:"orientation,omitempty"`
}

// PageMargin 页边距（规范化长度字符串）
type PageMargin struct {
	Top    string `json:"top,omitempty" yaml:"top,omitempty"`
	Right  string `json:"right,omitempty" yaml:"right,omitempty"`
	Bottom string `json:"bottom,omitempty" yaml:"bottom,omitempty"`
	Left   string `json:"left,omitempty" yaml:"left,omitempty"`
	Header string `json:"header,omitempty" yaml:"header,omitempty"`
	Footer string `json:"footer,omitempty" yaml:"footer,omitempty"`
	Gutter string `json:"gutter,omitempty" yaml:"gutter,omitempty"`
}

// PageOptions 页面设置
type PageOptions struct {
	Size            PageSize   `json:"size" yaml:"size"`
	Margin          PageMargin `json:"margin" yaml:"margin"`
	PageNumberStart *int       `json:"pageNumberStart,omitempty" yaml:"pageNumberStart,omitempty"`
}

// SectionProperties 节属性
type SectionProperties struct {
	Page      PageOptions `json:"page" yaml:"page"`
	Type      string      `json:"type,omitempty" yaml:"type,omitempty"`
	TitlePage *bool       `json:"titlePage,omitempty" yaml:"titlePage,omitempty"`
	Columns   *int        `json:"columns,omitempty" yaml:"columns,omitempty"`
}

// HeaderFooter 页眉或页脚组，每项为块内容
type HeaderFooter struct {
	Default []Object `json:"default,omitempty" yaml:"default,omitempty"`
	First   []Object `json:"first,omitempty" yaml:"first,omitempty"`
	Even    []Object `json:"even,omitempty" yaml:"even,omitempty"`
}

// IsEmpty 是否没有任何内容
func (h *HeaderFooter) IsEmpty() bool {
	return h == nil || len(h.Default) == 0 && len(h.First) == 0 && len(h.Even) == 0
}

// Section 节
type Section struct {
	Type       ObjectType        `json:"type" yaml:"type"`
	Properties SectionProperties `json:"properties" yaml:"properties"`
	Headers    *HeaderFooter     `json:"headers,omitempty" yaml:"headers,omitempty"`
	Footers    *HeaderFooter     `json:"footers,omitempty" yaml:"footers,omitempty"`
	Children   []Object          `json:"children" yaml:"children"`
}

// ParagraphStyle 段落样式
type ParagraphStyle struct {
	Type        ObjectType       `json:"type" yaml:"type"`
	ID          string           `json:"id" yaml:"id"`
	Name        string           `json:"name,omitempty" yaml:"name,omitempty"`
	BasedOn     string           `json:"basedOn,omitempty" yaml:"basedOn,omitempty"`
	Next        string           `json:"next,omitempty" yaml:"next,omitempty"`
	QuickFormat *bool            `json:"quickFormat,omitempty" yaml:"quickFormat,omitempty"`
	Run         RunOptions       `json:"run" yaml:"run"`
	Paragraph   ParagraphOptions `json:"paragraph" yaml:"paragraph"`
}

// CharacterStyle 字符样式
type CharacterStyle struct {
	Type        ObjectType `json:"type" yaml:"type"`
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name,omitempty" yaml:"name,omitempty"`
	BasedOn     string     `json:"basedOn,omitempty" yaml:"basedOn,omitempty"`
	Next        string     `json:"next,omitempty" yaml:"next,omitempty"`
	QuickFormat *bool      `json:"quickFormat,omitempty" yaml:"quickFormat,omitempty"`
	Run         RunOptions `json:"run" yaml:"run"`
}

func (*Paragraph) ObjectType() ObjectType      { return TypeParagraph }
func (*TextRun) ObjectType() ObjectType        { return TypeTextRun }
func (*Break) ObjectType() ObjectType          { return TypeBreak }
func (*Tab) ObjectType() ObjectType            { return TypeTab }
func (*PageBreak) ObjectType() ObjectType      { return TypePageBreak }
func (*Hyperlink) ObjectType() ObjectType      { return TypeHyperlink }
func (*Table) ObjectType() ObjectType          { return TypeTable }
func (*TableRow) ObjectType() ObjectType       { return TypeTableRow }
func (*TableCell) ObjectType() ObjectType      { return TypeTableCell }
func (*Section) ObjectType() ObjectType        { return TypeSection }
func (*ParagraphStyle) ObjectType() ObjectType { return TypeParagraphStyle }
func (*CharacterStyle) ObjectType() ObjectType { return TypeCharacterStyle }

func (*Paragraph) object()      {}
func (*TextRun) object()        {}
func (*Break) object()          {}
func (*Tab) object()            {}
func (*PageBreak) object()      {}
func (*Hyperlink) object()      {}
func (*Table) object()          {}
func (*TableRow) object()       {}
func (*TableCell) object()      {}
func (*Section) object()        {}
func (*ParagraphStyle) object() {}
func (*CharacterStyle) object() {}

// 构造函数，负责填写 Type 字段

func NewParagraph(opts ParagraphOptions, children ...Object) *Paragraph {
	return &Paragraph{Type: TypeParagraph, Options: opts, Children: children}
}

func NewTextRun(text string, opts RunOptions) *TextRun {
	return &TextRun{Type: TypeTextRun, Text: text, Options: opts}
}

func NewBreak() *Break         { return &Break{Type: TypeBreak} }
func NewTab() *Tab             { return &Tab{Type: TypeTab} }
func NewPageBreak() *PageBreak { return &PageBreak{Type: TypePageBreak} }

func NewHyperlink(link string, children ...Object) *Hyperlink {
	return &Hyperlink{Type: TypeHyperlink, Link: link, Children: children}
}

func NewTable() *Table         { return &Table{Type: TypeTable} }
func NewTableRow() *TableRow   { return &TableRow{Type: TypeTableRow} }
func NewTableCell() *TableCell { return &TableCell{Type: TypeTableCell} }
func NewSection() *Section     { return &Section{Type: TypeSection} }

func NewParagraphStyle(id string) *ParagraphStyle {
	return &ParagraphStyle{Type: TypeParagraphStyle, ID: id}
}

func NewCharacterStyle(id string) *CharacterStyle {
	return &CharacterStyle{Type: TypeCharacterStyle, ID: id}
}
