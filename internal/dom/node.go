// Package dom 定义了翻译引擎使用的文档树模型
// 包括节点类型、结构化深拷贝以及名称规范化
package dom

import (
	"fmt"
	"sort"
)

// Position 源文件中的位置
type Position struct {
	Line   int
	Column int
}

// IsValid 位置是否有效（合成节点没有位置）
func (p Position) IsValid() bool {
	return p.Line > 0
}

func (p Position) String() string {
	if p.Column > 0 {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	if p.Line > 0 {
		return fmt.Sprintf("%d", p.Line)
	}
	return "-"
}

// Node 文档树节点，只能是 *Element、*Text 或 *CData
type Node interface {
	node()
	clone() Node
}

// Element 元素节点
type Element struct {
	Name       string
	Attributes map[string]string
	// Properties 属性元素（名称带有保留后缀的子元素），独立求值
	Properties map[string]*Element
	Children   []Node
	Pos        Position
}

// Text 文本节点
type Text struct {
	Value string
}

// CData CDATA 节点，内容按原样保留
type CData struct {
	Value string
}

func (*Element) node() {}
func (*Text) node()    {}
func (*CData) node()   {}

func (e *Element) clone() Node { return e.Clone() }
func (t *Text) clone() Node    { return &Text{Value: t.Value} }
func (c *CData) clone() Node   { return &CData{Value: c.Value} }

// NewElement 创建一个空元素
func NewElement(name string) *Element {
	return &Element{
		Name:       name,
		Attributes: make(map[string]string),
		Properties: make(map[string]*Element),
	}
}

// Clone 深拷贝元素及其全部子树
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	out := &Element{
		Name:     e.Name,
		Children: CloneNodes(e.Children),
		Pos:      e.Pos,
	}
	if e.Attributes != nil {
		out.Attributes = make(map[string]string, len(e.Attributes))
		for k, v := range e.Attributes {
			out.Attributes[k] = v
		}
	}
	if e.Properties != nil {
		out.Properties = make(map[string]*Element, len(e.Properties))
		for k, v := range e.Properties {
			out.Properties[k] = v.Clone()
		}
	}
	return out
}

// Clone 深拷贝任意节点
func Clone(n Node) Node {
	if n == nil {
		return nil
	}
	return n.clone()
}

// CloneNodes 深拷贝节点列表
func CloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.clone()
	}
	return out
}

// HasAttributes 元素是否带有属性
func (e *Element) HasAttributes() bool {
	return len(e.Attributes) > 0
}

// AttributeNames 返回排序后的属性名，用于确定性的遍历
func (e *Element) AttributeNames() []string {
	names := make([]string, 0, len(e.Attributes))
	for k := range e.Attributes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// PropertyNames 返回排序后的属性元素名
func (e *Element) PropertyNames() []string {
	names := make([]string, 0, len(e.Properties))
	for k := range e.Properties {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Elements 返回所有元素类型的子节点
func (e *Element) Elements() []*Element {
	var out []*Element
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok {
			out = append(out, el)
		}
	}
	return out
}

// TextContent 拼接子树中全部文本
func (e *Element) TextContent() string {
	var buf []byte
	var walk func(nodes []Node)
	walk = func(nodes []Node) {
		for _, n := range nodes {
			switch v := n.(type) {
			case *Text:
				buf = append(buf, v.Value...)
			case *CData:
				buf = append(buf, v.Value...)
			case *Element:
				walk(v.Children)
			}
		}
	}
	walk(e.Children)
	return string(buf)
}
