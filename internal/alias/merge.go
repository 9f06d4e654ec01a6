package alias

import "github.com/kildom/xml2docx-sub000/internal/dom"

// Merge 以 base 为基础、override 覆盖，生成新元素：
//   - 属性取并集，冲突时 override 优先
//   - 属性元素同上
//   - 子节点为 base.Children 之后接 override.Children
//   - 名称取 override 的名称
//
// 结果不与输入共享 map 或切片，子节点本身不做拷贝
func Merge(base, override *dom.Element) *dom.Element {
	out := &dom.Element{
		Name:       override.Name,
		Attributes: make(map[string]string, len(base.Attributes)+len(override.Attributes)),
		Properties: make(map[string]*dom.Element, len(base.Properties)+len(override.Properties)),
		Children:   make([]dom.Node, 0, len(base.Children)+len(override.Children)),
		Pos:        override.Pos,
	}
	if !out.Pos.IsValid() {
		out.Pos = base.Pos
	}
	for k, v := range base.Attributes {
		out.Attributes[k] = v
	}
	for k, v := range override.Attributes {
		out.Attributes[k] = v
	}
	for k, v := range base.Properties {
		out.Properties[k] = v
	}
	for k, v := range override.Properties {
		out.Properties[k] = v
	}
	out.Children = append(out.Children, base.Children...)
	out.Children = append(out.Children, override.Children...)
	return out
}
