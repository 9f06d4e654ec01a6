package translate

import (
	"fmt"
	"math"
	"strings"

	"github.com/kildom/xml2docx-sub000/internal/convert"
	"github.com/kildom/xml2docx-sub000/internal/diag"
	"github.com/kildom/xml2docx-sub000/internal/dom"
	"github.com/kildom/xml2docx-sub000/pkg/docopt"
)

// 长度范围（子单位）
const (
	maxTwips     = 31680
	maxHalfPt    = 3276
	maxBorder    = 96
	maxBorderGap = 31
)

// runFormat 读取字符格式属性
func runFormat(r *attrReader) docopt.RunOptions {
	var o docopt.RunOptions
	o.Bold = r.boolean("bold")
	o.Italics = r.boolean("italic")
	o.Strike = r.boolean("strike")
	o.SmallCaps = r.boolean("smallcaps")
	o.AllCaps = r.boolean("allcaps")
	o.SuperScript = r.boolean("superscript")
	o.SubScript = r.boolean("subscript")
	if f := r.field("underline"); f.Present {
		o.Underline = underline(r, f)
	}
	o.Color = r.color("color")
	o.Highlight = r.enum("highlight", highlightEnum)
	if c := r.color("background"); c != "" {
		o.Shading = &docopt.Shading{Fill: c, Type: "clear"}
	}
	o.Size = r.subunits("size", convert.HalfPoints, 1, maxHalfPt)
	o.Font = r.str("font")
	o.CharacterSpacing = r.subunits("spacing", convert.Twips, -maxTwips, maxTwips)
	o.Style = r.str("charstyle")
	return o
}

// underline 接受布尔值或下划线类型
func underline(r *attrReader, f convert.Field) *docopt.Underline {
	if v, ok := convert.ParseBool(f.Value); ok {
		if v {
			return &docopt.Underline{Type: "single"}
		}
		return &docopt.Underline{Type: "none"}
	}
	return &docopt.Underline{Type: r.conv.Enum(f, underlineEnum)}
}

// paragraphFormat 读取段落格式属性
// box 为 false 时不读取 border 和 shading（单元格自己使用这两个属性）
func paragraphFormat(r *attrReader, box bool) docopt.ParagraphOptions {
	var o docopt.ParagraphOptions
	o.Alignment = r.enum("align", alignmentEnum)
	o.Heading = r.enum("heading", headingEnum)
	o.Style = r.str("style")

	indent := docopt.Indent{
		Left:      r.subunits("indentleft", convert.Twips, -maxTwips, maxTwips),
		Right:     r.subunits("indentright", convert.Twips, -maxTwips, maxTwips),
		FirstLine: r.subunits("indentfirstline", convert.Twips, -maxTwips, maxTwips),
		Hanging:   r.subunits("indenthanging", convert.Twips, -maxTwips, maxTwips),
	}
	if indent != (docopt.Indent{}) {
		o.Indent = &indent
	}

	spacing := docopt.Spacing{
		Before: r.subunits("spacingbefore", convert.Twips, 0, maxTwips),
		After:  r.subunits("spacingafter", convert.Twips, 0, maxTwips),
	}
	if f := r.field("lineheight"); f.Present {
		spacing.Line = docopt.Int(int(math.Round(r.conv.NonNegativeFloat(f, 1) * 240)))
	}
	if spacing != (docopt.Spacing{}) {
		o.Spacing = &spacing
	}

	o.KeepNext = r.boolean("keepnext")
	o.KeepLines = r.boolean("keeplines")
	o.PageBreakBefore = r.boolean("pagebreakbefore")
	if !box {
		return o
	}

	var borders docopt.ParagraphBorders
	if f := r.field("border"); f.Present {
		b := border(r.conv, f)
		borders = docopt.ParagraphBorders{Top: b, Bottom: b, Left: b, Right: b}
	}
	if p, ok := r.property("border"); ok {
		side := sideBorders(r.conv, p, "top", "bottom", "left", "right", "between")
		mergeBorder(&borders.Top, side["top"])
		mergeBorder(&borders.Bottom, side["bottom"])
		mergeBorder(&borders.Left, side["left"])
		mergeBorder(&borders.Right, side["right"])
		mergeBorder(&borders.Between, side["between"])
	}
	if borders != (docopt.ParagraphBorders{}) {
		o.Border = &borders
	}

	if c := r.color("shading"); c != "" {
		o.Shading = &docopt.Shading{Fill: c, Type: "clear"}
	}
	return o
}

func mergeBorder(dst **docopt.Border, v *docopt.Border) {
	if v != nil {
		*dst = v
	}
}

// border 解析 "style size color space" 形式的边框，顺序任意
func border(conv *convert.Converter, f convert.Field) *docopt.Border {
	res := conv.List(f, convert.SepAny, []convert.ListProperty{
		{Name: "style", Match: convert.MatchEnum(conv.Enums(), borderStyleEnum)},
		{Name: "size", Match: convert.MatchSubunits(convert.EighthPoints, 0, maxBorder)},
		{Name: "color", Match: convert.MatchColor},
		{Name: "space", Match: convert.MatchSubunits(convert.Points, 0, maxBorderGap)},
	})
	b := &docopt.Border{Style: "single"}
	if v, ok := res["style"].(string); ok {
		b.Style = v
	}
	if v, ok := res["size"].(int); ok {
		b.Size = v
	}
	if v, ok := res["color"].(string); ok {
		b.Color = v
	}
	if v, ok := res["space"].(int); ok {
		b.Space = v
	}
	return b
}

// sideBorders 读取边框属性元素中各边的边框
// 属性元素本身的 all 属性作用于全部边
func sideBorders(conv *convert.Converter, p *dom.Element, sides ...string) map[string]*docopt.Border {
	r := newAttrReader(conv, p, nil)
	defer r.finish()

	out := make(map[string]*docopt.Border, len(sides))
	if f := r.field("all"); f.Present {
		b := border(conv, f)
		for _, s := range sides {
			out[s] = b
		}
	}
	for _, s := range sides {
		if f := r.field(s); f.Present {
			out[s] = border(conv, f)
		}
	}
	return out
}

// margins 解析 1 到 4 个长度（上 右 下 左，与 CSS 相同）
func margins(conv *convert.Converter, f convert.Field) *docopt.Margins {
	tokens := strings.Fields(strings.NewReplacer(",", " ", ";", " ").Replace(f.Value))
	if len(tokens) < 1 || len(tokens) > 4 {
		conv.Reporter().Report(diag.Diagnostic{
			Severity: diag.SeverityError,
			Code:     diag.CodeInvalidValue,
			Message:  fmt.Sprintf("invalid margins %q, expected 1 to 4 measures", f.Value),
			Position: f.Pos,
			Tag:      f.Tag,
			Attr:     f.Name,
		})
		return nil
	}
	vals := make([]int, len(tokens))
	for i, tok := range tokens {
		vals[i] = conv.Subunits(convert.NewField(f.Tag, f.Name, tok, f.Pos), convert.Twips, 0, maxTwips)
	}
	top, right, bottom, left := expandBox(vals)
	return &docopt.Margins{Top: &top, Right: &right, Bottom: &bottom, Left: &left}
}

// expandBox 按 CSS 规则把 1 到 4 个值展开为上 右 下 左
func expandBox[T any](v []T) (top, right, bottom, left T) {
	switch len(v) {
	case 1:
		return v[0], v[0], v[0], v[0]
	case 2:
		return v[0], v[1], v[0], v[1]
	case 3:
		return v[0], v[1], v[2], v[1]
	default:
		return v[0], v[1], v[2], v[3]
	}
}
