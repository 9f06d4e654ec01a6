package docopt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentAdd(t *testing.T) {
	doc := NewDocument()
	p1 := NewParagraph(ParagraphOptions{})
	p2 := NewParagraph(ParagraphOptions{})
	sec := NewSection()

	require.NoError(t, doc.Add(Content(p1)...))
	require.NoError(t, doc.Add(
		Item{Kind: KindSection, Value: sec},
		Item{Kind: KindParagraphStyle, Value: NewParagraphStyle("Quote")},
		Item{Kind: KindCharacterStyle, Value: NewCharacterStyle("Code")},
		Item{Kind: KindContent, Value: p2},
	))

	// 节之前的内容进入默认节，之后的内容进入最后一个节
	require.Len(t, doc.Sections, 2)
	assert.Equal(t, []Object{p1}, doc.Sections[0].Children)
	assert.Same(t, sec, doc.Sections[1])
	assert.Equal(t, []Object{p2}, sec.Children)
	require.Len(t, doc.ParagraphStyles, 1)
	assert.Equal(t, "Quote", doc.ParagraphStyles[0].ID)
	require.Len(t, doc.CharacterStyles, 1)
}

func TestDocumentAddRejectsMismatchedKind(t *testing.T) {
	doc := NewDocument()
	err := doc.Add(Item{Kind: KindSection, Value: NewParagraph(ParagraphOptions{})})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "*docopt.Paragraph")
}

func TestRunOptionsMerge(t *testing.T) {
	base := RunOptions{Bold: Bool(true), Color: "#ff0000", Size: Int(20)}
	over := RunOptions{Bold: Bool(false), Font: "Arial"}

	out := base.Merge(over)
	assert.False(t, *out.Bold)
	assert.Equal(t, "#ff0000", out.Color)
	assert.Equal(t, 20, *out.Size)
	assert.Equal(t, "Arial", out.Font)

	// 输入不变
	assert.True(t, *base.Bold)
	assert.Empty(t, base.Font)
	assert.True(t, RunOptions{}.IsZero())
	assert.False(t, out.IsZero())
}

func TestParagraphOptionsMerge(t *testing.T) {
	base := ParagraphOptions{
		Alignment: "left",
		Indent:    &Indent{Left: Int(100), Right: Int(50)},
	}
	over := ParagraphOptions{
		Alignment: "center",
		Indent:    &Indent{Left: Int(200)},
		Spacing:   &Spacing{After: Int(120)},
	}

	out := base.Merge(over)
	assert.Equal(t, "center", out.Alignment)
	assert.Equal(t, 200, *out.Indent.Left)
	assert.Equal(t, 50, *out.Indent.Right)
	assert.Equal(t, 120, *out.Spacing.After)

	// 缩进按字段合并时不修改基础值
	assert.Equal(t, 100, *base.Indent.Left)
}

func TestObjectTypes(t *testing.T) {
	objs := map[ObjectType]Object{
		TypeParagraph: NewParagraph(ParagraphOptions{}),
		TypeTextRun:   NewTextRun("x", RunOptions{}),
		TypeBreak:     NewBreak(),
		TypeTab:       NewTab(),
		TypePageBreak: NewPageBreak(),
		TypeHyperlink: NewHyperlink("https://example.com"),
		TypeTable:     NewTable(),
		TypeTableRow:  NewTableRow(),
		TypeTableCell: NewTableCell(),
		TypeSection:   NewSection(),
	}
	for want, obj := range objs {
		t.Run(string(want), func(t *testing.T) {
			assert.Equal(t, want, obj.ObjectType())
		})
	}
	assert.Equal(t, "section", KindSection.String())
	assert.True(t, (*HeaderFooter)(nil).IsEmpty())
}
