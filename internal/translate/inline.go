package translate

import (
	"strconv"

	"github.com/kildom/xml2docx-sub000/internal/dom"
	"github.com/kildom/xml2docx-sub000/pkg/docopt"
)

// paragraphHandler 处理 <p> 和 <h1>…<h6>
func paragraphHandler(t *Translator, st State, el *dom.Element) ([]piece, Common, error) {
	sc, child := t.enter(st, el)
	opts := paragraphFormat(sc.attrs, true)
	if len(el.Name) == 2 && el.Name[0] == 'h' {
		if level, err := strconv.Atoi(el.Name[1:]); err == nil && opts.Heading == "" {
			opts.Heading = "Heading" + strconv.Itoa(level)
		}
	}
	child = child.WithRun(runFormat(sc.attrs))

	ps, common, err := t.children(inlineCtx, child, el)
	if err != nil {
		return nil, nil, err
	}
	p := docopt.NewParagraph(st.Paragraph.Merge(opts), finishInline(ps, true)...)
	return []piece{blockPiece(p)}, sc.leave(common), nil
}

// spanHandler 处理 <span> 和 <font>
func spanHandler(t *Translator, st State, el *dom.Element) ([]piece, Common, error) {
	sc, child := t.enter(st, el)
	child = child.WithRun(runFormat(sc.attrs))
	ps, common, err := t.children(inlineCtx, child, el)
	if err != nil {
		return nil, nil, err
	}
	return ps, sc.leave(common), nil
}

// underlineHandler 处理 <u type=… color=…>
func underlineHandler(t *Translator, st State, el *dom.Element) ([]piece, Common, error) {
	sc, child := t.enter(st, el)
	u := &docopt.Underline{Type: "single"}
	if v := sc.attrs.enum("type", underlineEnum); v != "" {
		u.Type = v
	}
	u.Color = sc.attrs.color("color")
	child = child.WithRun(docopt.RunOptions{Underline: u})
	ps, common, err := t.children(inlineCtx, child, el)
	if err != nil {
		return nil, nil, err
	}
	return ps, sc.leave(common), nil
}

// linkHandler 处理 <a href=…>
func linkHandler(t *Translator, st State, el *dom.Element) ([]piece, Common, error) {
	sc, child := t.enter(st, el)
	href, err := sc.attrs.required("href")
	if err != nil {
		return nil, nil, err
	}
	ps, common, err := t.children(inlineCtx, child, el)
	if err != nil {
		return nil, nil, err
	}
	objs := finishInline(ps, false)
	return []piece{inlinePiece(docopt.NewHyperlink(href, objs...))}, sc.leave(common), nil
}

func breakHandler(t *Translator, st State, el *dom.Element) ([]piece, Common, error) {
	return emptyInline(t, st, el, docopt.NewBreak())
}

func tabHandler(t *Translator, st State, el *dom.Element) ([]piece, Common, error) {
	return emptyInline(t, st, el, docopt.NewTab())
}

func pageBreakHandler(t *Translator, st State, el *dom.Element) ([]piece, Common, error) {
	return emptyInline(t, st, el, docopt.NewPageBreak())
}

// emptyInline 处理没有内容的行内标签
func emptyInline(t *Translator, st State, el *dom.Element, obj docopt.Object) ([]piece, Common, error) {
	sc, child := t.enter(st, el)
	t.noContent(el)
	return []piece{inlinePiece(obj)}, sc.leave(child.Common), nil
}
