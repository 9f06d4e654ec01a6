// Package alias 实现翻译前的别名（宏）展开
//
// 别名通过 <DEF:name> 或 <DEF:name:parent1:parent2> 声明，
// 对声明之后的兄弟节点及其后代可见。解析是惰性的，
// 使用三态标记记忆结果并检测循环。
package alias

import (
	"sort"

	"github.com/kildom/xml2docx-sub000/internal/dom"
)

// State 别名解析状态
type State int

const (
	StateUnresolved State = iota // 未解析
	StateResolving               // 正在解析
	StateResolved                // 已解析
)

// String 返回状态名称
func (s State) String() string {
	switch s {
	case StateUnresolved:
		return "unresolved"
	case StateResolving:
		return "resolving"
	case StateResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Alias 一个已声明的别名
type Alias struct {
	// Name 规范化后的别名
	Name string
	// Element 声明元素（DEF:...）本身
	Element *dom.Element
	// State 解析状态，只能按 未解析 → 正在解析 → 已解析 变化
	State State
	// HasOwnAttributes 声明元素是否带有自己的属性
	HasOwnAttributes bool
	// Scope 声明所在的作用域
	Scope *Table
	// Inherits 按顺序合并的父别名
	Inherits []string

	resolved *dom.Element
}

// Table 作用域内的别名表
// 子作用域通过 Child 复制得到，永远不会修改父作用域的表
type Table struct {
	entries map[string]*Alias
	local   map[string]bool
}

// NewTable 创建空的根作用域
func NewTable() *Table {
	return &Table{
		entries: make(map[string]*Alias),
		local:   make(map[string]bool),
	}
}

// Child 复制当前表，作为嵌套作用域的起点
func (t *Table) Child() *Table {
	child := &Table{
		entries: make(map[string]*Alias, len(t.entries)),
		local:   make(map[string]bool),
	}
	for k, v := range t.entries {
		child.entries[k] = v
	}
	return child
}

// Lookup 查找别名
func (t *Table) Lookup(name string) (*Alias, bool) {
	a, ok := t.entries[name]
	return a, ok
}

// DeclaredLocally 名称是否已在本作用域中声明
func (t *Table) DeclaredLocally(name string) bool {
	return t.local[name]
}

// declare 在本作用域中登记别名，外层同名别名会被遮蔽
func (t *Table) declare(a *Alias) {
	t.entries[a.Name] = a
	t.local[a.Name] = true
}

// Names 返回可见的别名名称（排序后）
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.entries))
	for k := range t.entries {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Len 返回可见别名数量
func (t *Table) Len() int {
	return len(t.entries)
}
