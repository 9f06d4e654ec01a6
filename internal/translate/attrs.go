package translate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kildom/xml2docx-sub000/internal/convert"
	"github.com/kildom/xml2docx-sub000/internal/diag"
	"github.com/kildom/xml2docx-sub000/internal/dom"
	"github.com/kildom/xml2docx-sub000/pkg/docopt"
)

// attrReader 按优先级读取元素的属性：显式属性 > 公共属性 > 列默认值
// 记录读取过的名称，结束时报告未识别的属性
type attrReader struct {
	conv     *convert.Converter
	el       *dom.Element
	pending  map[string]*Pending
	defaults map[string]*Pending
	seen     map[string]bool
	props    map[string]bool
}

func newAttrReader(conv *convert.Converter, el *dom.Element, pending map[string]*Pending) *attrReader {
	return &attrReader{
		conv:    conv,
		el:      el,
		pending: pending,
		seen:    make(map[string]bool),
		props:   make(map[string]bool),
	}
}

// field 读取属性，不存在时 Present 为 false
func (r *attrReader) field(name string) convert.Field {
	r.seen[name] = true
	tag := r.el.Name
	if v, ok := r.el.Attributes[name]; ok {
		return convert.NewField(tag, name, v, r.el.Pos)
	}
	if p, ok := r.pending[name]; ok {
		return convert.NewField(tag, name, p.Value, p.Pos)
	}
	if p, ok := r.defaults[name]; ok {
		return convert.NewField(tag, name, p.Value, p.Pos)
	}
	return convert.Field{Tag: tag, Name: name, Pos: r.el.Pos}
}

func (r *attrReader) has(name string) bool {
	return r.field(name).Present
}

func (r *attrReader) str(name string) string {
	return r.field(name).Value
}

// required 读取必需的字符串属性，缺失或为空时是致命错误
func (r *attrReader) required(name string) (string, error) {
	f := r.field(name)
	if !f.Present || strings.TrimSpace(f.Value) == "" {
		return "", r.conv.Reporter().Fatal(diag.Diagnostic{
			Code:     diag.CodeMissingAttribute,
			Message:  fmt.Sprintf("attribute %q is required", name),
			Position: r.el.Pos,
			Tag:      r.el.Name,
			Attr:     name,
		}, nil)
	}
	return f.Value, nil
}

func (r *attrReader) boolean(name string) *bool {
	f := r.field(name)
	if !f.Present {
		return nil
	}
	return docopt.Bool(r.conv.Bool(f))
}

func (r *attrReader) subunits(name string, per convert.Subunit, min, max int) *int {
	f := r.field(name)
	if !f.Present {
		return nil
	}
	return docopt.Int(r.conv.Subunits(f, per, min, max))
}

func (r *attrReader) enum(name string, e *convert.Enum) string {
	f := r.field(name)
	if !f.Present {
		return ""
	}
	return r.conv.Enum(f, e)
}

func (r *attrReader) color(name string) string {
	f := r.field(name)
	if !f.Present {
		return ""
	}
	return r.conv.Color(f)
}

func (r *attrReader) measureString(name string) string {
	f := r.field(name)
	if !f.Present {
		return ""
	}
	return r.conv.MeasureString(f)
}

func (r *attrReader) unsigned(name string, def uint32) int {
	f := r.field(name)
	if !f.Present {
		return int(def)
	}
	return int(r.conv.Uint32(f, def))
}

// span 读取列跨度，范围 1..MaxGridColumns，超出上限时报告并截断
func (r *attrReader) span(name string) int {
	f := r.field(name)
	if !f.Present {
		return 1
	}
	n := int(r.conv.Uint32(f, 1))
	switch {
	case n < 1:
		return 1
	case n > MaxGridColumns:
		r.conv.Reporter().Report(diag.Diagnostic{
			Severity: diag.SeverityError,
			Code:     diag.CodeInvalidValue,
			Message:  fmt.Sprintf("%s %d exceeds the maximum of %d columns", name, n, MaxGridColumns),
			Position: f.Pos,
			Tag:      f.Tag,
			Attr:     name,
		})
		return MaxGridColumns
	}
	return n
}

// property 读取属性元素
func (r *attrReader) property(name string) (*dom.Element, bool) {
	r.props[name] = true
	p, ok := r.el.Properties[name]
	return p, ok
}

// finish 报告未识别的显式属性、公共属性和属性元素
func (r *attrReader) finish() {
	known := make([]string, 0, len(r.seen))
	for name := range r.seen {
		known = append(known, name)
	}
	sort.Strings(known)

	report := func(name string, pos dom.Position) {
		msg := fmt.Sprintf("unknown attribute %q", name)
		if s := convert.Suggest(name, known); s != "" {
			msg += fmt.Sprintf("; did you mean %q?", s)
		}
		r.conv.Reporter().Report(diag.Diagnostic{
			Severity: diag.SeverityWarning,
			Code:     diag.CodeUnknownAttribute,
			Message:  msg,
			Position: pos,
			Tag:      r.el.Name,
			Attr:     name,
		})
	}

	for _, name := range r.el.AttributeNames() {
		if r.seen[name] || name == spaceAttr || strings.Contains(name, ".") {
			continue
		}
		report(name, r.el.Pos)
	}
	names := make([]string, 0, len(r.pending))
	for name := range r.pending {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, explicit := r.el.Attributes[name]; !r.seen[name] && !explicit {
			report(name, r.pending[name].Pos)
		}
	}
	for _, name := range r.el.PropertyNames() {
		if r.props[name] {
			continue
		}
		r.conv.Reporter().Report(diag.Diagnostic{
			Severity: diag.SeverityWarning,
			Code:     diag.CodeUnexpectedTag,
			Message:  fmt.Sprintf("unknown property %q", name),
			Position: r.el.Properties[name].Pos,
			Tag:      r.el.Name,
		})
	}
}

const spaceAttr = "space"

// scope 单个元素的处理范围
type scope struct {
	attrs *attrReader
	outer Common
	decls Common
}

// enter 进入元素：消费针对该标签的公共属性，登记该元素声明的公共属性，
// 返回子节点使用的状态
func (t *Translator) enter(st State, el *dom.Element) (*scope, State) {
	pending, outer := st.Common.consume(el.Name)
	decls := t.declarations(el)
	r := newAttrReader(t.conv, el, pending)

	child := st
	child.Common = outer.with(decls)
	if f := r.field(spaceAttr); f.Present {
		child.Space = parseSpaceMode(t.conv.Enum(f, spaceEnum, "trim"))
	}
	return &scope{attrs: r, outer: outer, decls: decls}, child
}

// leave 离开元素，返回交还给后续兄弟的公共属性
func (s *scope) leave(final Common) Common {
	s.attrs.finish()
	return restore(s.outer, s.decls, final)
}

// declarations 收集 tag.attr 形式的公共属性声明
func (t *Translator) declarations(el *dom.Element) Common {
	var decls Common
	for _, name := range el.AttributeNames() {
		tag, attr, ok := strings.Cut(name, ".")
		if !ok {
			continue
		}
		if tag == "" || attr == "" {
			t.sink.Report(diag.Diagnostic{
				Severity: diag.SeverityWarning,
				Code:     diag.CodeUnknownAttribute,
				Message:  fmt.Sprintf("malformed common attribute %q, expected tag.attribute", name),
				Position: el.Pos,
				Tag:      el.Name,
				Attr:     name,
			})
			continue
		}
		if decls == nil {
			decls = Common{}
		}
		if decls[tag] == nil {
			decls[tag] = map[string]*Pending{}
		}
		decls[tag][attr] = &Pending{Value: el.Attributes[name], Pos: el.Pos}
	}
	return decls
}
