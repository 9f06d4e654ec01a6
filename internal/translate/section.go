package translate

import (
	"fmt"
	"strings"

	"github.com/kildom/xml2docx-sub000/internal/convert"
	"github.com/kildom/xml2docx-sub000/internal/diag"
	"github.com/kildom/xml2docx-sub000/internal/dom"
	"github.com/kildom/xml2docx-sub000/pkg/docopt"
)

// sectionHandler 处理 <section>
func sectionHandler(t *Translator, st State, el *dom.Element) (docopt.Object, Common, error) {
	sc, child := t.enter(st, el)
	r := sc.attrs
	s := docopt.NewSection()

	page := &s.Properties.Page
	page.Size.Width = r.measureString("pagewidth")
	page.Size.Height = r.measureString("pageheight")
	page.Size.Orientation = r.enum("orientation", orientationEnum)
	if f := r.field("margin"); f.Present {
		pageMargins(t.conv, f, &page.Margin)
	}
	sides := []struct {
		name string
		dst  *string
	}{
		{"margintop", &page.Margin.Top},
		{"marginright", &page.Margin.Right},
		{"marginbottom", &page.Margin.Bottom},
		{"marginleft", &page.Margin.Left},
		{"marginheader", &page.Margin.Header},
		{"marginfooter", &page.Margin.Footer},
		{"margingutter", &page.Margin.Gutter},
	}
	for _, side := range sides {
		if v := r.measureString(side.name); v != "" {
			*side.dst = v
		}
	}
	if f := r.field("pagenumberstart"); f.Present {
		page.PageNumberStart = docopt.Int(int(t.conv.Int32(f, 1)))
	}
	s.Properties.Type = r.enum("type", sectionTypeEnum)
	s.Properties.TitlePage = r.boolean("titlepage")
	if f := r.field("columns"); f.Present {
		s.Properties.Columns = docopt.Int(int(t.conv.Uint32(f, 1)))
	}

	child = child.WithParagraph(paragraphFormat(r, true)).WithRun(runFormat(r))

	// 页眉页脚属性元素独立求值，不参与公共属性的传递
	headers := &docopt.HeaderFooter{}
	footers := &docopt.HeaderFooter{}
	parts := []struct {
		name string
		dst  *[]docopt.Object
	}{
		{"header", &headers.Default},
		{"firstheader", &headers.First},
		{"evenheader", &headers.Even},
		{"footer", &footers.Default},
		{"firstfooter", &footers.First},
		{"evenfooter", &footers.Even},
	}
	for _, part := range parts {
		p, ok := r.property(part.name)
		if !ok {
			continue
		}
		psc, pst := t.enter(child, p)
		objs, common, err := t.blockContent(pst, p)
		if err != nil {
			return nil, nil, err
		}
		psc.leave(common)
		*part.dst = objs
	}
	if !headers.IsEmpty() {
		s.Headers = headers
	}
	if !footers.IsEmpty() {
		s.Footers = footers
	}

	objs, common, err := t.blockContent(child, el)
	if err != nil {
		return nil, nil, err
	}
	s.Children = objs
	return s, sc.leave(common), nil
}

// pageMargins 解析 1 到 4 个页边距长度（上 右 下 左）
func pageMargins(conv *convert.Converter, f convert.Field, dst *docopt.PageMargin) {
	tokens := strings.Fields(strings.NewReplacer(",", " ", ";", " ").Replace(f.Value))
	if len(tokens) < 1 || len(tokens) > 4 {
		conv.Reporter().Report(diag.Diagnostic{
			Severity: diag.SeverityError,
			Code:     diag.CodeInvalidValue,
			Message:  fmt.Sprintf("invalid margin %q, expected 1 to 4 measures", f.Value),
			Position: f.Pos,
			Tag:      f.Tag,
			Attr:     f.Name,
		})
		return
	}
	vals := make([]string, len(tokens))
	for i, tok := range tokens {
		vals[i] = conv.MeasureString(convert.NewField(f.Tag, f.Name, tok, f.Pos))
	}
	dst.Top, dst.Right, dst.Bottom, dst.Left = expandBox(vals)
}

// paragraphStyleHandler 处理 <paragraphstyle>
func paragraphStyleHandler(t *Translator, st State, el *dom.Element) (docopt.Object, Common, error) {
	sc, child := t.enter(st, el)
	r := sc.attrs
	id, err := r.required("id")
	if err != nil {
		return nil, nil, err
	}
	s := docopt.NewParagraphStyle(id)
	s.Name = r.str("name")
	s.BasedOn = r.str("basedon")
	s.Next = r.str("next")
	s.QuickFormat = r.boolean("quickformat")
	s.Paragraph = paragraphFormat(r, true)
	s.Run = runFormat(r)
	t.noContent(el)
	return s, sc.leave(child.Common), nil
}

// characterStyleHandler 处理 <characterstyle>
func characterStyleHandler(t *Translator, st State, el *dom.Element) (docopt.Object, Common, error) {
	sc, child := t.enter(st, el)
	r := sc.attrs
	id, err := r.required("id")
	if err != nil {
		return nil, nil, err
	}
	s := docopt.NewCharacterStyle(id)
	s.Name = r.str("name")
	s.BasedOn = r.str("basedon")
	s.Next = r.str("next")
	s.QuickFormat = r.boolean("quickformat")
	s.Run = runFormat(r)
	t.noContent(el)
	return s, sc.leave(child.Common), nil
}

// noContent 报告不应出现的内容
func (t *Translator) noContent(el *dom.Element) {
	for _, c := range el.Children {
		if !dom.IsSpace(c) {
			t.unexpectedContent(el)
			return
		}
	}
}

func (t *Translator) unexpectedContent(el *dom.Element) {
	t.sink.Report(diag.Diagnostic{
		Severity: diag.SeverityError,
		Code:     diag.CodeUnexpectedTag,
		Message:  fmt.Sprintf("<%s> cannot have content", el.Name),
		Position: el.Pos,
		Tag:      el.Name,
	})
}
