package translate

import (
	"sort"

	"github.com/kildom/xml2docx-sub000/internal/dom"
)

// Pending 一个待应用的公共属性值
// 通过指针判断同一声明是否仍然存在
type Pending struct {
	Value string
	Pos   dom.Position
}

// Common 公共属性：标签 → 属性 → 待应用值
//
// 祖先上的 tag.attr="v" 为其子树中下一个 tag 元素登记默认值，
// 被该元素使用后即消失。Common 按写时复制使用，内层 map 不会被修改。
type Common map[string]map[string]*Pending

// Len 待应用值的总数
func (c Common) Len() int {
	n := 0
	for _, attrs := range c {
		n += len(attrs)
	}
	return n
}

// Get 返回 tag.attr 的待应用值
func (c Common) Get(tag, attr string) (*Pending, bool) {
	p, ok := c[tag][attr]
	return p, ok
}

// Keys 返回排序后的 "tag.attr" 列表
func (c Common) Keys() []string {
	var keys []string
	for tag, attrs := range c {
		for attr := range attrs {
			keys = append(keys, tag+"."+attr)
		}
	}
	sort.Strings(keys)
	return keys
}

// consume 取出 tag 的全部待应用值，返回剩余部分的副本
func (c Common) consume(tag string) (map[string]*Pending, Common) {
	p, ok := c[tag]
	if !ok {
		return nil, c
	}
	out := make(Common, len(c))
	for k, v := range c {
		if k != tag {
			out[k] = v
		}
	}
	return p, out
}

// with 返回叠加了 decls 的副本，decls 覆盖同名值
func (c Common) with(decls Common) Common {
	if len(decls) == 0 {
		return c
	}
	out := make(Common, len(c)+len(decls))
	for k, v := range c {
		out[k] = v
	}
	for tag, attrs := range decls {
		m := make(map[string]*Pending, len(out[tag])+len(attrs))
		for k, v := range out[tag] {
			m[k] = v
		}
		for k, v := range attrs {
			m[k] = v
		}
		out[tag] = m
	}
	return out
}

// restore 离开声明元素时计算交还给兄弟节点的公共属性：
// 外层的值在子树中未被使用（指针未变）或被本元素的声明遮蔽时保留，
// 本元素自己的声明全部丢弃
func restore(outer, decls, final Common) Common {
	out := make(Common, len(outer))
	for tag, attrs := range outer {
		var m map[string]*Pending
		for attr, p := range attrs {
			_, shadowed := decls[tag][attr]
			if !shadowed && final[tag][attr] != p {
				continue
			}
			if m == nil {
				m = make(map[string]*Pending, len(attrs))
			}
			m[attr] = p
		}
		if m != nil {
			out[tag] = m
		}
	}
	return out
}
