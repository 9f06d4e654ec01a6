package docopt

// Merge 以 o 为基础、over 覆盖，返回新的字符格式
// over 中未设置的字段保留 o 的值
func (o RunOptions) Merge(over RunOptions) RunOptions {
	out := o
	mergeBool(&out.Bold, over.Bold)
	mergeBool(&out.Italics, over.Italics)
	mergeBool(&out.Strike, over.Strike)
	mergeBool(&out.DoubleStrike, over.DoubleStrike)
	mergeBool(&out.SmallCaps, over.SmallCaps)
	mergeBool(&out.AllCaps, over.AllCaps)
	mergeBool(&out.Emboss, over.Emboss)
	mergeBool(&out.Imprint, over.Imprint)
	mergeBool(&out.Vanish, over.Vanish)
	mergeBool(&out.SuperScript, over.SuperScript)
	mergeBool(&out.SubScript, over.SubScript)
	if over.Underline != nil {
		out.Underline = over.Underline
	}
	mergeString(&out.Color, over.Color)
	mergeString(&out.Highlight, over.Highlight)
	if over.Shading != nil {
		out.Shading = over.Shading
	}
	mergeInt(&out.Size, over.Size)
	mergeString(&out.Font, over.Font)
	mergeInt(&out.CharacterSpacing, over.CharacterSpacing)
	mergeString(&out.Style, over.Style)
	return out
}

// IsZero 是否没有设置任何字段
func (o RunOptions) IsZero() bool {
	return o == RunOptions{}
}

// Merge 以 o 为基础、over 覆盖，返回新的段落格式
// 缩进和间距按字段合并，边框整体替换
func (o ParagraphOptions) Merge(over ParagraphOptions) ParagraphOptions {
	out := o
	mergeString(&out.Alignment, over.Alignment)
	mergeString(&out.Heading, over.Heading)
	mergeString(&out.Style, over.Style)
	if over.Indent != nil {
		var in Indent
		if o.Indent != nil {
			in = *o.Indent
		}
		mergeInt(&in.Left, over.Indent.Left)
		mergeInt(&in.Right, over.Indent.Right)
		mergeInt(&in.FirstLine, over.Indent.FirstLine)
		mergeInt(&in.Hanging, over.Indent.Hanging)
		out.Indent = &in
	}
	if over.Spacing != nil {
		var sp Spacing
		if o.Spacing != nil {
			sp = *o.Spacing
		}
		mergeInt(&sp.Before, over.Spacing.Before)
		mergeInt(&sp.After, over.Spacing.After)
		mergeInt(&sp.Line, over.Spacing.Line)
		out.Spacing = &sp
	}
	mergeBool(&out.KeepNext, over.KeepNext)
	mergeBool(&out.KeepLines, over.KeepLines)
	mergeBool(&out.PageBreakBefore, over.PageBreakBefore)
	if over.Border != nil {
		out.Border = over.Border
	}
	if over.Shading != nil {
		out.Shading = over.Shading
	}
	return out
}

// IsZero 是否没有设置任何字段
func (o ParagraphOptions) IsZero() bool {
	return o == ParagraphOptions{}
}

func mergeBool(dst **bool, v *bool) {
	if v != nil {
		*dst = v
	}
}

func mergeInt(dst **int, v *int) {
	if v != nil {
		*dst = v
	}
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Bool 返回指向 v 的指针
func Bool(v bool) *bool { return &v }

// Int 返回指向 v 的指针
func Int(v int) *int { return &v }
