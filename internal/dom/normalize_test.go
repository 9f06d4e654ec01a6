package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func text(v string) *Text { return &Text{Value: v} }

func values(nodes []Node) []string {
	var out []string
	for _, n := range nodes {
		switch v := n.(type) {
		case *Text:
			out = append(out, "T:"+v.Value)
		case *CData:
			out = append(out, "C:"+v.Value)
		case *Element:
			out = append(out, "E:"+v.Name)
		}
	}
	return out
}

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"border-top", "bordertop"},
		{"borderTop", "bordertop"},
		{"BORDER_TOP", "bordertop"},
		{"DEF:My-Style", "def:mystyle"},
		{"td.align", "td.align"},
		{"p", "p"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalName(tt.in))
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Run("合并相邻文本并拆分空白", func(t *testing.T) {
		el := &Element{
			Name:       "P",
			Attributes: map[string]string{"Space-Before": "1pt"},
			Children:   []Node{text("  hello"), text(" world \n"), &CData{Value: " raw "}, text("\n\t")},
		}
		out := Normalize(el)

		assert.Equal(t, "p", out.Name)
		assert.Equal(t, map[string]string{"spacebefore": "1pt"}, out.Attributes)
		assert.Equal(t, []string{"T: ", "T:hello world", "T: ", "C: raw ", "T: "}, values(out.Children))
	})

	t.Run("不修改输入", func(t *testing.T) {
		el := &Element{Name: "Table", Children: []Node{text(" a ")}}
		_ = Normalize(el)
		assert.Equal(t, "Table", el.Name)
		assert.Equal(t, " a ", el.Children[0].(*Text).Value)
	})

	t.Run("提取属性元素", func(t *testing.T) {
		header := &Element{Name: "Header.prop", Children: []Node{&Element{Name: "p"}}}
		el := &Element{Name: "section", Children: []Node{text("a"), header, text("b")}}
		out := Normalize(el)

		require.Contains(t, out.Properties, "header")
		assert.Equal(t, "header", out.Properties["header"].Name)
		assert.Len(t, out.Properties["header"].Children, 1)
		// 属性元素移除后两侧文本相邻，应被合并
		assert.Equal(t, []string{"T:ab"}, values(out.Children))
	})

	t.Run("纯空白文本", func(t *testing.T) {
		el := &Element{Name: "p", Children: []Node{text(" \n "), &Element{Name: "b"}, text("\n")}}
		out := Normalize(el)
		assert.Equal(t, []string{"T: ", "E:b", "T: "}, values(out.Children))
		assert.True(t, IsSpace(out.Children[0]))
	})
}

func TestClone(t *testing.T) {
	orig := &Element{
		Name:       "p",
		Attributes: map[string]string{"a": "1"},
		Properties: map[string]*Element{"border": {Name: "border", Attributes: map[string]string{"top": "single"}}},
		Children:   []Node{text("x"), &Element{Name: "b", Children: []Node{text("y")}}},
		Pos:        Position{Line: 3, Column: 5},
	}
	cp := orig.Clone()
	require.Equal(t, orig, cp)

	cp.Attributes["a"] = "2"
	cp.Properties["border"].Attributes["top"] = "double"
	cp.Children[1].(*Element).Children[0].(*Text).Value = "z"

	assert.Equal(t, "1", orig.Attributes["a"])
	assert.Equal(t, "single", orig.Properties["border"].Attributes["top"])
	assert.Equal(t, "xy", orig.TextContent())
	assert.Equal(t, Position{Line: 3, Column: 5}, cp.Pos)
}
