package engine

import (
	"errors"
	"fmt"
)

// 预定义错误
var (
	// ErrNilDocument 没有提供文档
	ErrNilDocument = errors.New("no document provided")

	// ErrCanceled 运行被取消
	ErrCanceled = errors.New("run canceled")
)

// 运行阶段
const (
	StageLoad      = "load"
	StageNormalize = "normalize"
	StageResolve   = "resolve"
	StageTranslate = "translate"
)

// StageError 某个阶段失败
type StageError struct {
	RunID string
	Stage string
	Cause error
}

// Error 实现error接口
func (e *StageError) Error() string {
	return fmt.Sprintf("run %s: %s failed: %v", e.RunID, e.Stage, e.Cause)
}

// Unwrap 返回原因错误
func (e *StageError) Unwrap() error {
	return e.Cause
}

// FailedStage 返回错误链中失败的阶段，没有时返回空串
func FailedStage(err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}
