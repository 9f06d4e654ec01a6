// Package convert 把属性字符串转换为带类型的值
//
// 每种转换器有两种调用方式：
//   - 可恢复形式（Converter 的方法）：输入无效或缺失时追加一条非致命诊断，
//     并返回调用方提供的默认值或库默认值
//   - 静默形式（Parse* 函数）：输入无效时返回 ok == false，不产生诊断，
//     供需要尝试多种解释的组合解析器使用
package convert

import (
	"fmt"

	"github.com/kildom/xml2docx-sub000/internal/diag"
	"github.com/kildom/xml2docx-sub000/internal/dom"
)

// Field 待转换的属性值及其来源
type Field struct {
	Tag     string
	Name    string
	Value   string
	Present bool
	Pos     dom.Position
}

// NewField 创建一个存在的属性值
func NewField(tag, name, value string, pos dom.Position) Field {
	return Field{Tag: tag, Name: name, Value: value, Present: true, Pos: pos}
}

// Converter 可恢复形式的转换器
// 诊断写入 sink，枚举规范化表缓存在 enums 中（每次运行一个）
type Converter struct {
	sink  diag.Reporter
	enums *EnumCache
}

// New 创建转换器，enums 为 nil 时创建新的缓存
func New(sink diag.Reporter, enums *EnumCache) *Converter {
	if enums == nil {
		enums = NewEnumCache()
	}
	return &Converter{sink: sink, enums: enums}
}

// Enums 返回转换器使用的枚举缓存
func (c *Converter) Enums() *EnumCache {
	return c.enums
}

// Reporter 返回转换器使用的诊断接收者
func (c *Converter) Reporter() diag.Reporter {
	return c.sink
}

// invalid 报告无效或缺失的值
func (c *Converter) invalid(f Field, format string, args ...interface{}) {
	d := diag.Diagnostic{
		Severity: diag.SeverityError,
		Code:     diag.CodeInvalidValue,
		Position: f.Pos,
		Tag:      f.Tag,
		Attr:     f.Name,
	}
	if !f.Present {
		d.Code = diag.CodeMissingAttribute
		d.Message = "missing value"
	} else {
		d.Message = fmt.Sprintf(format, args...)
	}
	c.sink.Report(d)
}

// pick 返回调用方默认值（如果有）或库默认值
func pick[T any](def []T, fallback T) T {
	if len(def) > 0 {
		return def[0]
	}
	return fallback
}
