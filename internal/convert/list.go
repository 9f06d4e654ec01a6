package convert

import (
	"fmt"
	"strings"

	"github.com/kildom/xml2docx-sub000/internal/diag"
)

// Separator 列表分隔符集合
type Separator int

const (
	SepComma Separator = 1 << iota
	SepSemicolon
	SepSpace

	SepAny = SepComma | SepSemicolon | SepSpace
)

func (s Separator) split(value string) []string {
	return strings.FieldsFunc(value, func(r rune) bool {
		switch {
		case r == ',':
			return s&SepComma != 0
		case r == ';':
			return s&SepSemicolon != 0
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			return s&SepSpace != 0
		}
		return false
	})
}

// Matcher 静默形式的单个 token 匹配器
type Matcher func(token string) (interface{}, bool)

// ListProperty 组合值中的一个属性
// 每个 token 分配给第一个尚未赋值且 Match 接受它的属性
type ListProperty struct {
	Name  string
	Match Matcher
	// Default 属性缺失时提供后备值，为 nil 时属性保持缺失
	Default func() interface{}
	// Required 非空时，属性缺失会产生一条诊断
	Required string
}

// ListResult 组合值解析结果
type ListResult map[string]interface{}

// Has 属性是否已赋值
func (r ListResult) Has(name string) bool {
	_, ok := r[name]
	return ok
}

// assign 把 token 分配给属性，返回未匹配的 token
func assign(value string, sep Separator, props []ListProperty) (ListResult, []string) {
	out := ListResult{}
	var unmatched []string
	for _, token := range sep.split(value) {
		matched := false
		for _, p := range props {
			if out.Has(p.Name) {
				continue
			}
			if v, ok := p.Match(token); ok {
				out[p.Name] = v
				matched = true
				break
			}
		}
		if !matched {
			unmatched = append(unmatched, token)
		}
	}
	return out, unmatched
}

// ParseList 静默形式的组合值解析
// 存在未匹配 token 或缺少必需属性时失败
func ParseList(value string, sep Separator, props []ListProperty) (ListResult, bool) {
	out, unmatched := assign(value, sep, props)
	if len(unmatched) > 0 {
		return nil, false
	}
	for _, p := range props {
		if p.Required != "" && !out.Has(p.Name) {
			return nil, false
		}
	}
	out.fillDefaults(props)
	return out, true
}

// fillDefaults 为未赋值且有 Default 的属性填入后备值
func (r ListResult) fillDefaults(props []ListProperty) {
	for _, p := range props {
		if !r.Has(p.Name) && p.Default != nil {
			r[p.Name] = p.Default()
		}
	}
}

// List 可恢复形式的组合值解析
// 每个未匹配的 token 产生一条诊断，缺少必需属性时产生诊断，
// 未赋值的属性使用 Default
func (c *Converter) List(f Field, sep Separator, props []ListProperty) ListResult {
	if !f.Present {
		f.Value = ""
	}
	out, unmatched := assign(f.Value, sep, props)
	for _, token := range unmatched {
		c.sink.Report(diag.Diagnostic{
			Severity: diag.SeverityError,
			Code:     diag.CodeUnmatchedToken,
			Message:  fmt.Sprintf("unexpected value %q in %q", token, f.Value),
			Position: f.Pos,
			Tag:      f.Tag,
			Attr:     f.Name,
		})
	}
	for _, p := range props {
		if out.Has(p.Name) || p.Required == "" {
			continue
		}
		c.invalid(Field{Tag: f.Tag, Name: f.Name, Value: f.Value, Present: true, Pos: f.Pos}, "%s", p.Required)
	}
	out.fillDefaults(props)
	return out
}

// 常用匹配器

// MatchSubunits 长度匹配器
func MatchSubunits(per Subunit, min, max int) Matcher {
	return func(token string) (interface{}, bool) {
		v, ok := ParseSubunits(token, per, min, max)
		return v, ok
	}
}

// MatchColor 颜色匹配器
func MatchColor(token string) (interface{}, bool) {
	v, ok := ParseColor(token)
	return v, ok
}

// MatchEnum 枚举匹配器
func MatchEnum(cache *EnumCache, e *Enum) Matcher {
	return func(token string) (interface{}, bool) {
		v, ok := cache.Lookup(e, token)
		return v, ok
	}
}

// MatchUint32 无符号整数匹配器
func MatchUint32(token string) (interface{}, bool) {
	v, ok := ParseUint32(token)
	return v, ok
}
