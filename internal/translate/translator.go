// Package translate 把规范化且已展开别名的元素树翻译为文档选项
//
// 翻译是单线程的深度优先遍历。每个上下文（块、行内、表格、表格行）有自己的
// 标签处理表；状态按值向下传递，公共属性沿兄弟节点依次传递。
package translate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kildom/xml2docx-sub000/internal/convert"
	"github.com/kildom/xml2docx-sub000/internal/diag"
	"github.com/kildom/xml2docx-sub000/internal/dom"
	"github.com/kildom/xml2docx-sub000/pkg/docopt"
	"go.uber.org/zap"
)

// RootTag 文档根元素名
const RootTag = "document"

// piece 处理结果中的一个对象
type piece struct {
	obj docopt.Object
	// inline 为 true 的对象在块上下文中被收集进隐式段落
	inline bool
	// space 为 trim 模式下的空白标记，可被折叠或丢弃
	space bool
}

func inlinePiece(obj docopt.Object) piece { return piece{obj: obj, inline: true} }
func blockPiece(obj docopt.Object) piece  { return piece{obj: obj} }

// handler 标签处理函数，返回产生的对象和交还给后续兄弟的公共属性
type handler func(t *Translator, st State, el *dom.Element) ([]piece, Common, error)

// context 标签上下文
type context struct {
	name string
	tags map[string]handler
	// inline 是否接受文本和行内内容
	inline bool
}

func (c *context) tagNames() []string {
	names := make([]string, 0, len(c.tags)+len(fallbackFlags))
	for name := range c.tags {
		names = append(names, name)
	}
	if c.inline {
		for name := range fallbackFlags {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

var (
	blockCtx  *context
	inlineCtx *context
	tableCtx  *context
	rowCtx    *context
)

func init() {
	inlineTags := map[string]handler{
		"span":      spanHandler,
		"font":      spanHandler,
		"u":         underlineHandler,
		"a":         linkHandler,
		"br":        breakHandler,
		"tab":       tabHandler,
		"pagebreak": pageBreakHandler,
	}
	inlineCtx = &context{name: "paragraph", tags: inlineTags, inline: true}

	blockTags := map[string]handler{
		"p":     paragraphHandler,
		"table": tableHandler,
	}
	for i := 1; i <= 6; i++ {
		blockTags[fmt.Sprintf("h%d", i)] = paragraphHandler
	}
	for name, h := range inlineTags {
		blockTags[name] = h
	}
	blockCtx = &context{name: "block", tags: blockTags, inline: true}

	tableCtx = &context{name: "table", tags: map[string]handler{
		"tc": columnHandler,
		"tr": rowHandler,
	}}
	rowCtx = &context{name: "table row", tags: map[string]handler{
		"td": cellHandler,
	}}
}

// fallbackFlags 简单的布尔字符格式标签
var fallbackFlags = map[string]func(o *docopt.RunOptions){
	"b":         func(o *docopt.RunOptions) { o.Bold = docopt.Bool(true) },
	"i":         func(o *docopt.RunOptions) { o.Italics = docopt.Bool(true) },
	"s":         func(o *docopt.RunOptions) { o.Strike = docopt.Bool(true) },
	"strike":    func(o *docopt.RunOptions) { o.Strike = docopt.Bool(true) },
	"dstrike":   func(o *docopt.RunOptions) { o.DoubleStrike = docopt.Bool(true) },
	"sup":       func(o *docopt.RunOptions) { o.SuperScript = docopt.Bool(true) },
	"sub":       func(o *docopt.RunOptions) { o.SubScript = docopt.Bool(true) },
	"smallcaps": func(o *docopt.RunOptions) { o.SmallCaps = docopt.Bool(true) },
	"allcaps":   func(o *docopt.RunOptions) { o.AllCaps = docopt.Bool(true) },
	"emboss":    func(o *docopt.RunOptions) { o.Emboss = docopt.Bool(true) },
	"imprint":   func(o *docopt.RunOptions) { o.Imprint = docopt.Bool(true) },
	"hidden":    func(o *docopt.RunOptions) { o.Vanish = docopt.Bool(true) },
}

// Translator 翻译器，每次运行创建一个
type Translator struct {
	sink   diag.Reporter
	conv   *convert.Converter
	logger *zap.Logger
}

// New 创建翻译器
// conv 为 nil 时使用写入 sink 的新转换器
func New(sink diag.Reporter, conv *convert.Converter, logger *zap.Logger) *Translator {
	if conv == nil {
		conv = convert.New(sink, nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Translator{sink: sink, conv: conv, logger: logger}
}

func (t *Translator) fatal(el *dom.Element, format string, args ...interface{}) error {
	return t.sink.Fatal(diag.Diagnostic{
		Code:     diag.CodeStructure,
		Message:  fmt.Sprintf(format, args...),
		Position: el.Pos,
		Tag:      el.Name,
	}, nil)
}

// children 依次处理 el 的子节点，公共属性在兄弟之间传递
func (t *Translator) children(ctx *context, st State, el *dom.Element) ([]piece, Common, error) {
	var out []piece
	for _, c := range el.Children {
		ps, common, err := t.node(ctx, st, el, c)
		if err != nil {
			return nil, nil, err
		}
		st.Common = common
		out = append(out, ps...)
	}
	return out, st.Common, nil
}

// node 处理单个子节点
func (t *Translator) node(ctx *context, st State, parent *dom.Element, n dom.Node) ([]piece, Common, error) {
	switch v := n.(type) {
	case *dom.Element:
		return t.element(ctx, st, v)
	case *dom.Text:
		ps, err := t.text(ctx, st, parent, v.Value, false)
		return ps, st.Common, err
	case *dom.CData:
		ps, err := t.text(ctx, st, parent, v.Value, true)
		return ps, st.Common, err
	}
	return nil, st.Common, nil
}

// element 在上下文的标签表中分派元素
func (t *Translator) element(ctx *context, st State, el *dom.Element) ([]piece, Common, error) {
	if h, ok := ctx.tags[el.Name]; ok {
		return h(t, st, el)
	}
	if set, ok := fallbackFlags[el.Name]; ok && ctx.inline {
		sc, child := t.enter(st, el)
		var over docopt.RunOptions
		set(&over)
		ps, common, err := t.children(ctx, child.WithRun(over), el)
		if err != nil {
			return nil, nil, err
		}
		return ps, sc.leave(common), nil
	}
	t.unexpected(ctx, el)
	return nil, st.Common, nil
}

func (t *Translator) unexpected(ctx *context, el *dom.Element) {
	msg := fmt.Sprintf("unexpected tag <%s> in %s context", el.Name, ctx.name)
	if s := convert.Suggest(el.Name, ctx.tagNames()); s != "" {
		msg += fmt.Sprintf("; did you mean <%s>?", s)
	}
	t.sink.Report(diag.Diagnostic{
		Severity: diag.SeverityError,
		Code:     diag.CodeUnexpectedTag,
		Message:  msg,
		Position: el.Pos,
		Tag:      el.Name,
	})
}

// text 处理文本和 CDATA
func (t *Translator) text(ctx *context, st State, parent *dom.Element, value string, cdata bool) ([]piece, error) {
	if !ctx.inline {
		if !cdata && strings.TrimSpace(value) == "" {
			return nil, nil
		}
		return nil, t.fatal(parent, "expecting only elements here, got text %q", truncate(value, 20))
	}
	if cdata {
		return []piece{inlinePiece(docopt.NewTextRun(value, st.Run))}, nil
	}
	if value == dom.Space {
		switch st.Space {
		case SpaceIgnore:
			return nil, nil
		case SpacePreserve:
			return []piece{inlinePiece(docopt.NewTextRun(value, st.Run))}, nil
		default:
			return []piece{{obj: docopt.NewTextRun(value, st.Run), inline: true, space: true}}, nil
		}
	}
	if st.Space != SpacePreserve {
		value = strings.Join(strings.Fields(value), " ")
		if value == "" {
			return nil, nil
		}
	}
	return []piece{inlinePiece(docopt.NewTextRun(value, st.Run))}, nil
}

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n]) + "..."
}

// finishInline 折叠空白标记后返回行内对象
// edges 为 true 时丢弃首尾的空白标记
func finishInline(ps []piece, edges bool) []docopt.Object {
	var out []docopt.Object
	var space docopt.Object
	for _, p := range ps {
		if p.space {
			if space == nil {
				space = p.obj
			}
			continue
		}
		if space != nil && (len(out) > 0 || !edges) {
			out = append(out, space)
		}
		space = nil
		out = append(out, p.obj)
	}
	if space != nil && !edges {
		out = append(out, space)
	}
	return out
}

// blockBuilder 在块上下文中把连续的行内对象收集为隐式段落
type blockBuilder struct {
	opts   docopt.ParagraphOptions
	out    []docopt.Object
	inline []piece
}

func (b *blockBuilder) add(ps ...piece) {
	for _, p := range ps {
		if p.inline {
			b.inline = append(b.inline, p)
			continue
		}
		b.flush()
		b.out = append(b.out, p.obj)
	}
}

func (b *blockBuilder) flush() {
	objs := finishInline(b.inline, true)
	b.inline = nil
	if len(objs) > 0 {
		b.out = append(b.out, docopt.NewParagraph(b.opts, objs...))
	}
}

// take 返回并清空已收集的块
func (b *blockBuilder) take() []docopt.Object {
	b.flush()
	out := b.out
	b.out = nil
	return out
}

// blockContent 以块上下文处理 el 的子节点
func (t *Translator) blockContent(st State, el *dom.Element) ([]docopt.Object, Common, error) {
	ps, common, err := t.children(blockCtx, st, el)
	if err != nil {
		return nil, nil, err
	}
	b := &blockBuilder{opts: st.Paragraph}
	b.add(ps...)
	return b.take(), common, nil
}

// docTag 文档上下文专有的标签，产生的对象进入对应集合
type docTag struct {
	kind docopt.ItemKind
	fn   func(t *Translator, st State, el *dom.Element) (docopt.Object, Common, error)
}

var docTags = map[string]docTag{
	"section":        {kind: docopt.KindSection, fn: sectionHandler},
	"paragraphstyle": {kind: docopt.KindParagraphStyle, fn: paragraphStyleHandler},
	"characterstyle": {kind: docopt.KindCharacterStyle, fn: characterStyleHandler},
}

// Translate 翻译整个文档
func (t *Translator) Translate(root *dom.Element) (*docopt.Document, error) {
	if root == nil || root.Name != RootTag {
		name := ""
		if root != nil {
			name = root.Name
		} else {
			root = &dom.Element{}
		}
		return nil, t.fatal(root, "document root must be <%s>, got <%s>", RootTag, name)
	}

	doc := docopt.NewDocument()
	sc, st := t.enter(NewState(), root)
	r := sc.attrs
	doc.Properties = docopt.Properties{
		Title:          r.str("title"),
		Subject:        r.str("subject"),
		Creator:        r.str("creator"),
		Keywords:       r.str("keywords"),
		Description:    r.str("description"),
		LastModifiedBy: r.str("lastmodifiedby"),
	}

	b := &blockBuilder{opts: st.Paragraph}
	flush := func() error {
		return doc.Add(docopt.Content(b.take()...)...)
	}
	for _, c := range root.Children {
		if el, ok := c.(*dom.Element); ok {
			if dt, ok := docTags[el.Name]; ok {
				if err := flush(); err != nil {
					return nil, err
				}
				obj, common, err := dt.fn(t, st, el)
				if err != nil {
					return nil, err
				}
				st.Common = common
				if err := doc.Add(docopt.Item{Kind: dt.kind, Value: obj}); err != nil {
					return nil, err
				}
				continue
			}
		}
		ps, common, err := t.node(blockCtx, st, root, c)
		if err != nil {
			return nil, err
		}
		st.Common = common
		b.add(ps...)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	sc.leave(st.Common)

	t.logger.Debug("document translated",
		zap.Int("sections", len(doc.Sections)),
		zap.Int("paragraphStyles", len(doc.ParagraphStyles)),
		zap.Int("characterStyles", len(doc.CharacterStyles)))
	return doc, nil
}
