package alias

import (
	"fmt"
	"strings"

	"github.com/kildom/xml2docx-sub000/internal/diag"
	"github.com/kildom/xml2docx-sub000/internal/dom"
	"go.uber.org/zap"
)

// DefPrefix 别名声明前缀（规范化之后）
const DefPrefix = "def:"

// Resolver 别名解析器，每次运行创建一个
// 别名的记忆状态保存在本次运行创建的 Alias 对象上
type Resolver struct {
	sink   diag.Reporter
	logger *zap.Logger
	// stack 正在解析的别名链，用于循环报告
	stack []string
}

// NewResolver 创建解析器
func NewResolver(sink diag.Reporter, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{sink: sink, logger: logger}
}

// Resolve 展开 root 中的全部别名，返回新树
// predefined 是预定义的 DEF 元素，声明在包围整个文档的根作用域中
func (r *Resolver) Resolve(root *dom.Element, predefined []*dom.Element) (*dom.Element, error) {
	scope := NewTable()
	for _, def := range predefined {
		if err := r.declare(def, scope); err != nil {
			return nil, err
		}
	}

	nodes, err := r.resolveElement(root, scope.Child())
	if err != nil {
		return nil, err
	}
	if len(nodes) != 1 {
		return nil, r.fatal(diag.CodeStructure, root.Pos, root.Name,
			"document root must resolve to exactly one element, got %d nodes", len(nodes))
	}
	out, ok := nodes[0].(*dom.Element)
	if !ok {
		return nil, r.fatal(diag.CodeStructure, root.Pos, root.Name, "document root must resolve to an element")
	}
	return out, nil
}

func (r *Resolver) fatal(code string, pos dom.Position, tag, format string, args ...interface{}) error {
	return r.sink.Fatal(diag.Diagnostic{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Position: pos,
		Tag:      tag,
	}, nil)
}

// IsDeclaration 元素是否为 DEF 声明
func IsDeclaration(el *dom.Element) bool {
	return strings.HasPrefix(el.Name, DefPrefix)
}

// declare 登记 DEF 元素
func (r *Resolver) declare(def *dom.Element, scope *Table) error {
	parts := strings.Split(strings.TrimPrefix(def.Name, DefPrefix), ":")
	name := parts[0]
	if name == "" {
		return r.fatal(diag.CodeStructure, def.Pos, def.Name, "alias declaration without a name")
	}
	if scope.DeclaredLocally(name) {
		return r.fatal(diag.CodeAliasDuplicate, def.Pos, def.Name, "alias %q already defined in this scope", name)
	}
	a := &Alias{
		Name:             name,
		Element:          def,
		State:            StateUnresolved,
		HasOwnAttributes: def.HasAttributes(),
		Scope:            scope,
		Inherits:         parts[1:],
	}
	scope.declare(a)
	r.logger.Debug("alias declared",
		zap.String("alias", name),
		zap.Strings("inherits", a.Inherits),
		zap.Bool("attributes", a.HasOwnAttributes))
	return nil
}

// resolveChildren 在 el 的子作用域中依次处理子节点
// 返回展开后的子节点以及处理完毕时的作用域（包含全部本地声明）
func (r *Resolver) resolveChildren(el *dom.Element, scope *Table) ([]dom.Node, *Table, error) {
	local := scope.Child()
	var out []dom.Node
	for _, c := range el.Children {
		switch v := c.(type) {
		case *dom.Element:
			if IsDeclaration(v) {
				if err := r.declare(v, local); err != nil {
					return nil, nil, err
				}
				continue
			}
			nodes, err := r.resolveElement(v, local)
			if err != nil {
				return nil, nil, err
			}
			out = append(out, nodes...)
		default:
			out = append(out, dom.Clone(c))
		}
	}
	return out, local, nil
}

// resolveProperties 展开属性元素，属性元素的内容在 scope 中解析
func (r *Resolver) resolveProperties(el *dom.Element, scope *Table) (map[string]*dom.Element, error) {
	out := make(map[string]*dom.Element, len(el.Properties))
	for _, name := range el.PropertyNames() {
		prop := el.Properties[name]
		children, _, err := r.resolveChildren(prop, scope)
		if err != nil {
			return nil, err
		}
		props, err := r.resolveProperties(prop, scope)
		if err != nil {
			return nil, err
		}
		out[name] = &dom.Element{
			Name:       prop.Name,
			Attributes: copyAttributes(prop.Attributes),
			Properties: props,
			Children:   children,
			Pos:        prop.Pos,
		}
	}
	return out, nil
}

// resolveElement 展开单个元素，结果可能是零个或多个节点（独立引用会被拼接）
func (r *Resolver) resolveElement(el *dom.Element, scope *Table) ([]dom.Node, error) {
	// 独立引用：名称与已知别名完全相同
	if a, ok := scope.Lookup(el.Name); ok {
		if el.HasAttributes() || len(el.Children) > 0 || len(el.Properties) > 0 {
			return nil, r.fatal(diag.CodeAliasInline, el.Pos, el.Name,
				"inline aliases cannot have attributes or children")
		}
		resolved, err := r.resolveAlias(a, el.Pos)
		if err != nil {
			return nil, err
		}
		return dom.CloneNodes(resolved.Children), nil
	}

	children, local, err := r.resolveChildren(el, scope)
	if err != nil {
		return nil, err
	}
	props, err := r.resolveProperties(el, local)
	if err != nil {
		return nil, err
	}
	out := &dom.Element{
		Name:       el.Name,
		Attributes: copyAttributes(el.Attributes),
		Properties: props,
		Children:   children,
		Pos:        el.Pos,
	}

	parts := strings.Split(el.Name, ":")
	if len(parts) == 1 {
		return []dom.Node{out}, nil
	}

	// 后缀形式：tag:alias1:alias2，从右向左合并，元素自身最后覆盖
	var acc *dom.Element
	for i := len(parts) - 1; i >= 1; i-- {
		a, ok := local.Lookup(parts[i])
		if !ok {
			return nil, r.fatal(diag.CodeAliasUndefined, el.Pos, el.Name, "undefined alias %q", parts[i])
		}
		resolved, err := r.resolveAlias(a, el.Pos)
		if err != nil {
			return nil, err
		}
		cp := resolved.Clone()
		if acc == nil {
			acc = cp
		} else {
			acc = Merge(cp, acc)
		}
	}
	merged := Merge(acc, out)
	merged.Name = parts[0]
	merged.Pos = el.Pos
	return []dom.Node{merged}, nil
}

// resolveAlias 惰性解析别名并缓存结果
func (r *Resolver) resolveAlias(a *Alias, ref dom.Position) (*dom.Element, error) {
	switch a.State {
	case StateResolved:
		return a.resolved, nil
	case StateResolving:
		chain := append(append([]string{}, r.stack...), a.Name)
		return nil, r.fatal(diag.CodeAliasLoop, ref, a.Name, "alias loop: %s", strings.Join(chain, " -> "))
	}

	a.State = StateResolving
	r.stack = append(r.stack, a.Name)
	defer func() { r.stack = r.stack[:len(r.stack)-1] }()

	children, local, err := r.resolveChildren(a.Element, a.Scope)
	if err != nil {
		return nil, err
	}
	props, err := r.resolveProperties(a.Element, local)
	if err != nil {
		return nil, err
	}
	result := &dom.Element{
		Name:       a.Name,
		Attributes: copyAttributes(a.Element.Attributes),
		Properties: props,
		Children:   children,
		Pos:        a.Element.Pos,
	}

	for _, parentName := range a.Inherits {
		parent, ok := a.Scope.Lookup(parentName)
		if !ok {
			return nil, r.fatal(diag.CodeAliasUndefined, a.Element.Pos, a.Element.Name,
				"undefined alias %q", parentName)
		}
		base, err := r.resolveAlias(parent, a.Element.Pos)
		if err != nil {
			return nil, err
		}
		result = Merge(base.Clone(), result)
	}

	result.Name = a.Name
	a.resolved = result
	a.State = StateResolved
	r.logger.Debug("alias resolved",
		zap.String("alias", a.Name),
		zap.Int("children", len(result.Children)))
	return result, nil
}

func copyAttributes(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
