package engine

import (
	"github.com/kildom/xml2docx-sub000/internal/dom"
	"go.uber.org/zap"
)

// Option 引擎配置选项函数
type Option func(*engineOptions)

type engineOptions struct {
	logger          *zap.Logger
	predefined      []*dom.Element
	fallbackCharset string
	afterRun        func(*Result)
}

// WithLogger 设置日志记录器
func WithLogger(logger *zap.Logger) Option {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// WithPredefined 设置预定义别名（DEF 元素），在包围文档的根作用域中声明
func WithPredefined(defs ...*dom.Element) Option {
	return func(o *engineOptions) {
		o.predefined = append(o.predefined, defs...)
	}
}

// WithFallbackCharset 设置读取源文件时的备用字符集
func WithFallbackCharset(charset string) Option {
	return func(o *engineOptions) {
		o.fallbackCharset = charset
	}
}

// WithAfterRun 设置每次运行结束后的回调（包括失败的运行）
func WithAfterRun(hook func(*Result)) Option {
	return func(o *engineOptions) {
		o.afterRun = hook
	}
}
