// Package diag 收集翻译过程中的诊断信息
// 可恢复错误追加到列表后继续处理，致命错误追加后立即中止本次运行
package diag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kildom/xml2docx-sub000/internal/dom"
	"go.uber.org/zap"
)

// Severity 诊断级别
type Severity int

const (
	SeverityWarning Severity = iota // 可恢复
	SeverityError                   // 可恢复，但结果可能不完整
	SeverityFatal                   // 中止运行
)

// String 返回级别名称
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// 诊断代码常量
const (
	CodeAliasLoop        = "ALIAS_LOOP"
	CodeAliasUndefined   = "ALIAS_UNDEFINED"
	CodeAliasDuplicate   = "ALIAS_DUPLICATE"
	CodeAliasInline      = "ALIAS_INLINE"
	CodeInvalidValue     = "INVALID_VALUE"
	CodeMissingAttribute = "MISSING_ATTRIBUTE"
	CodeUnknownAttribute = "UNKNOWN_ATTRIBUTE"
	CodeUnexpectedTag    = "UNEXPECTED_TAG"
	CodeUnmatchedToken   = "UNMATCHED_TOKEN"
	CodeStructure        = "STRUCTURE"
	CodeSource           = "SOURCE"
)

// Diagnostic 单条诊断
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	Position dom.Position
	// Tag 和 Attr 标识出错的元素和属性（如果有）
	Tag  string
	Attr string
}

// String 返回格式化的诊断文本
func (d Diagnostic) String() string {
	var b strings.Builder
	if d.Position.IsValid() {
		b.WriteString(d.Position.String())
		b.WriteString(": ")
	}
	b.WriteString(d.Severity.String())
	if d.Code != "" {
		fmt.Fprintf(&b, " [%s]", d.Code)
	}
	b.WriteString(": ")
	if d.Tag != "" {
		if d.Attr != "" {
			fmt.Fprintf(&b, "<%s %s>: ", d.Tag, d.Attr)
		} else {
			fmt.Fprintf(&b, "<%s>: ", d.Tag)
		}
	}
	b.WriteString(d.Message)
	return b.String()
}

// FatalError 致命错误，携带触发它的诊断
type FatalError struct {
	Diagnostic Diagnostic
	Cause      error
}

// Error 实现 error 接口
func (e *FatalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Diagnostic.String(), e.Cause)
	}
	return e.Diagnostic.String()
}

// Unwrap 返回原因错误
func (e *FatalError) Unwrap() error {
	return e.Cause
}

// IsFatal 检查错误链中是否包含致命诊断
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}

// Reporter 诊断接收者接口，由转换器和翻译器使用
type Reporter interface {
	// Report 追加一条可恢复诊断
	Report(d Diagnostic)
	// Fatal 追加一条致命诊断并返回应当向上传播的错误
	Fatal(d Diagnostic, cause error) error
}

// Sink 调用方持有的诊断列表
type Sink struct {
	items  []Diagnostic
	logger *zap.Logger
}

// NewSink 创建诊断收集器，logger 可以为 nil
func NewSink(logger *zap.Logger) *Sink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sink{logger: logger}
}

// Report 追加一条可恢复诊断
func (s *Sink) Report(d Diagnostic) {
	if d.Severity == SeverityFatal {
		d.Severity = SeverityError
	}
	s.items = append(s.items, d)
	s.logger.Debug("diagnostic",
		zap.String("severity", d.Severity.String()),
		zap.String("code", d.Code),
		zap.String("position", d.Position.String()),
		zap.String("message", d.Message))
}

// Error 追加一条位于 pos 的可恢复错误
func (s *Sink) Error(code string, pos dom.Position, format string, args ...interface{}) {
	s.Report(Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Position: pos,
	})
}

// Fatal 追加一条致命诊断，返回 *FatalError
func (s *Sink) Fatal(d Diagnostic, cause error) error {
	d.Severity = SeverityFatal
	s.items = append(s.items, d)
	s.logger.Debug("fatal diagnostic",
		zap.String("code", d.Code),
		zap.String("position", d.Position.String()),
		zap.String("message", d.Message),
		zap.Error(cause))
	return &FatalError{Diagnostic: d, Cause: cause}
}

// Items 返回已收集诊断的副本
func (s *Sink) Items() []Diagnostic {
	out := make([]Diagnostic, len(s.items))
	copy(out, s.items)
	return out
}

// Len 返回诊断数量
func (s *Sink) Len() int {
	return len(s.items)
}

// HasFatal 是否出现过致命诊断
func (s *Sink) HasFatal() bool {
	for _, d := range s.items {
		if d.Severity == SeverityFatal {
			return true
		}
	}
	return false
}

// Count 统计指定级别的诊断数量
func (s *Sink) Count(sev Severity) int {
	n := 0
	for _, d := range s.items {
		if d.Severity == sev {
			n++
		}
	}
	return n
}
