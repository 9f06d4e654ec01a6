// Package engine 串联一次完整的转换：读取 → 规范化 → 别名展开 → 翻译
//
// 每次运行拥有自己的诊断列表、枚举缓存和别名状态，引擎本身可以并发复用。
package engine

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/kildom/xml2docx-sub000/internal/alias"
	"github.com/kildom/xml2docx-sub000/internal/convert"
	"github.com/kildom/xml2docx-sub000/internal/diag"
	"github.com/kildom/xml2docx-sub000/internal/dom"
	"github.com/kildom/xml2docx-sub000/internal/translate"
	"github.com/kildom/xml2docx-sub000/internal/xmlsrc"
	"github.com/kildom/xml2docx-sub000/pkg/docopt"
	"go.uber.org/zap"
)

// Result 一次运行的结果
type Result struct {
	RunID string
	// Document 翻译结果，致命错误时为 nil
	Document    *docopt.Document
	Diagnostics []diag.Diagnostic
	Duration    time.Duration
}

// Count 统计指定级别的诊断数量
func (r *Result) Count(sev diag.Severity) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// Failed 是否因致命错误中止
func (r *Result) Failed() bool {
	return r.Document == nil
}

// Engine 转换引擎
type Engine struct {
	options engineOptions
}

// New 创建引擎
func New(opts ...Option) *Engine {
	options := engineOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	if options.logger == nil {
		options.logger = zap.NewNop()
	}
	return &Engine{options: options}
}

// run 单次运行的上下文
type run struct {
	id     string
	start  time.Time
	sink   *diag.Sink
	logger *zap.Logger
}

func (e *Engine) newRun() *run {
	id := uuid.New().String()
	logger := e.options.logger.With(zap.String("run", id))
	return &run{
		id:     id,
		start:  time.Now(),
		sink:   diag.NewSink(logger),
		logger: logger,
	}
}

func (e *Engine) finish(r *run, doc *docopt.Document, err error) (*Result, error) {
	res := &Result{
		RunID:       r.id,
		Document:    doc,
		Diagnostics: r.sink.Items(),
		Duration:    time.Since(r.start),
	}
	if err != nil {
		res.Document = nil
		r.logger.Debug("run failed", zap.Error(err), zap.Duration("duration", res.Duration))
	} else {
		r.logger.Info("run finished",
			zap.Int("sections", len(doc.Sections)),
			zap.Int("warnings", res.Count(diag.SeverityWarning)),
			zap.Int("errors", res.Count(diag.SeverityError)),
			zap.Duration("duration", res.Duration))
	}
	if e.options.afterRun != nil {
		e.options.afterRun(res)
	}
	return res, err
}

// Run 转换已经解析好的元素树
// 出现致命错误时返回错误，结果中仍然包含已收集的诊断
func (e *Engine) Run(ctx context.Context, root *dom.Element) (*Result, error) {
	r := e.newRun()
	if root == nil {
		return e.finish(r, nil, &StageError{RunID: r.id, Stage: StageLoad, Cause: ErrNilDocument})
	}
	doc, err := e.pipeline(ctx, r, root)
	return e.finish(r, doc, err)
}

// RunReader 读取 XML 源并转换
func (e *Engine) RunReader(ctx context.Context, src io.Reader, name string) (*Result, error) {
	r := e.newRun()
	r.logger.Debug("stage started", zap.String("stage", StageLoad), zap.String("source", name))
	root, err := xmlsrc.Parse(src, r.sink, xmlsrc.Options{
		FallbackCharset: e.options.fallbackCharset,
		Name:            name,
	})
	if err != nil {
		return e.finish(r, nil, &StageError{RunID: r.id, Stage: StageLoad, Cause: err})
	}
	doc, err := e.pipeline(ctx, r, root)
	return e.finish(r, doc, err)
}

func (e *Engine) pipeline(ctx context.Context, r *run, root *dom.Element) (*docopt.Document, error) {
	check := func(stage string) error {
		if err := ctx.Err(); err != nil {
			return &StageError{RunID: r.id, Stage: stage, Cause: fmt.Errorf("%w: %w", ErrCanceled, err)}
		}
		r.logger.Debug("stage started", zap.String("stage", stage))
		return nil
	}

	if err := check(StageNormalize); err != nil {
		return nil, err
	}
	normalized := dom.Normalize(root)
	predefined := make([]*dom.Element, len(e.options.predefined))
	for i, def := range e.options.predefined {
		predefined[i] = dom.Normalize(def)
	}

	if err := check(StageResolve); err != nil {
		return nil, err
	}
	resolved, err := alias.NewResolver(r.sink, r.logger).Resolve(normalized, predefined)
	if err != nil {
		return nil, &StageError{RunID: r.id, Stage: StageResolve, Cause: err}
	}

	if err := check(StageTranslate); err != nil {
		return nil, err
	}
	conv := convert.New(r.sink, convert.NewEnumCache())
	doc, err := translate.New(r.sink, conv, r.logger).Translate(resolved)
	if err != nil {
		return nil, &StageError{RunID: r.id, Stage: StageTranslate, Cause: err}
	}
	return doc, nil
}
