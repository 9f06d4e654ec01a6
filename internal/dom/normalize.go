package dom

import (
	"strings"

	"golang.org/x/text/cases"
)

// PropertySuffix 属性元素的保留后缀（规范化之后）
const PropertySuffix = ".prop"

// Space 规范化后的空白标记
const Space = " "

// CanonicalName 规范化元素名或属性名：
// 大小写折叠并去掉分隔符 '_' 和 '-'，
// 因此 border-top、borderTop、BORDER_TOP 等价
func CanonicalName(name string) string {
	// Caser 有内部状态，不能在 goroutine 间共享
	name = cases.Fold().String(name)
	if !strings.ContainsAny(name, "_-") {
		return name
	}
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if r == '_' || r == '-' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Normalize 生成一棵规范化的新树，不修改输入
//   - 元素名和属性名规范化
//   - 带 PropertySuffix 的子元素提取到 Properties
//   - 相邻文本节点合并
//   - 首尾空白拆分为单独的单空格文本节点
func Normalize(el *Element) *Element {
	if el == nil {
		return nil
	}
	out := &Element{
		Name:       CanonicalName(el.Name),
		Attributes: make(map[string]string, len(el.Attributes)),
		Properties: make(map[string]*Element, len(el.Properties)),
		Pos:        el.Pos,
	}
	for k, v := range el.Attributes {
		out.Attributes[CanonicalName(k)] = v
	}
	for k, v := range el.Properties {
		out.Properties[CanonicalName(k)] = Normalize(v)
	}

	var children []Node
	for _, c := range el.Children {
		switch v := c.(type) {
		case *Element:
			child := Normalize(v)
			if name, ok := strings.CutSuffix(child.Name, PropertySuffix); ok && name != "" {
				child.Name = name
				out.Properties[name] = child
				continue
			}
			children = append(children, child)
		case *Text:
			if n := len(children); n > 0 {
				if prev, ok := children[n-1].(*Text); ok {
					children[n-1] = &Text{Value: prev.Value + v.Value}
					continue
				}
			}
			children = append(children, &Text{Value: v.Value})
		case *CData:
			children = append(children, &CData{Value: v.Value})
		}
	}
	out.Children = splitSpaces(children)
	return out
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\n' || r == '\r' || r == '\t'
}

func isBlankByte(b byte) bool {
	return isBlank(rune(b))
}

// splitSpaces 把文本节点首尾的空白拆成独立的空白标记
func splitSpaces(nodes []Node) []Node {
	var out []Node
	for _, n := range nodes {
		t, ok := n.(*Text)
		if !ok {
			out = append(out, n)
			continue
		}
		if t.Value == "" {
			continue
		}
		core := strings.TrimFunc(t.Value, isBlank)
		if core == "" {
			out = append(out, &Text{Value: Space})
			continue
		}
		if isBlankByte(t.Value[0]) {
			out = append(out, &Text{Value: Space})
		}
		out = append(out, &Text{Value: core})
		if isBlankByte(t.Value[len(t.Value)-1]) {
			out = append(out, &Text{Value: Space})
		}
	}
	return out
}

// IsSpace 节点是否为空白标记
func IsSpace(n Node) bool {
	t, ok := n.(*Text)
	return ok && t.Value == Space
}
