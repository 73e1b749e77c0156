// Package xerrors 提供了带类型、业务码与调用栈的统一错误模型。
package xerrors

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrorType 错误的大类
type ErrorType uint

const (
	ErrUnknown ErrorType = iota
	ErrInternal
	ErrInvalidArg
	ErrNotFound
)

// Error 增强型错误结构
type Error struct {
	Type    ErrorType      `json:"type"`
	Code    int            `json:"code"`    // 业务自定义错误码
	Message string         `json:"message"` // 对外展示的友好消息
	Detail  string         `json:"detail"`  // 对内调试的详细信息
	Cause   error          `json:"-"`       // 原始错误
	Stack   []string       `json:"stack"`   // 堆栈追踪
	Context map[string]any `json:"context"` // 上下文数据 (Ticker 等)
}

// Error 实现 error 接口
func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %d: %s", e.Type.String(), e.Code, e.Message)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(" (Cause: %v)", e.Cause)
	}
	return msg
}

// Unwrap 实现 Go 1.13 解包接口
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is 按业务码匹配，使 Detailed 派生出的错误仍能与其哨兵错误匹配。
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Type == t.Type
}

func (t ErrorType) String() string {
	switch t {
	case ErrInternal:
		return "Internal"
	case ErrInvalidArg:
		return "InvalidArg"
	case ErrNotFound:
		return "NotFound"
	default:
		return "Unknown"
	}
}

// --- 核心构造函数 ---

// New 创建新错误并自动捕获堆栈
func New(errType ErrorType, code int, message string, detail string, cause error) *Error {
	e := &Error{
		Type:    errType,
		Code:    code,
		Message: message,
		Detail:  detail,
		Cause:   cause,
		Context: make(map[string]any),
	}
	e.captureStack()
	return e
}

// Detailed 基于哨兵错误派生一个携带调试详情的新错误，不修改哨兵本身。
func Detailed(base *Error, format string, args ...any) *Error {
	return New(base.Type, base.Code, base.Message, fmt.Sprintf(format, args...), nil)
}

// captureStack 捕获当前调用栈 (深度限制 10 层)
func (e *Error) captureStack() {
	const depth = 10
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:]) // 跳过 captureStack, New 和上层构造函数
	frames := runtime.CallersFrames(pcs[:n])

	for {
		frame, more := frames.Next()
		e.Stack = append(e.Stack, fmt.Sprintf("%s:%d (%s)", frame.File, frame.Line, frame.Function))
		if !more || len(e.Stack) >= depth {
			break
		}
	}
}

// --- 链式 API ---

func (e *Error) WithContext(key string, value any) *Error {
	e.Context[key] = value
	return e
}

func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// Wrap 包装现有错误并捕获堆栈。
// 若 err 已是 *Error，则沿用其类型与业务码。
func Wrap(err error, errType ErrorType, msg string) *Error {
	if err == nil {
		return nil
	}
	if e, ok := FromError(err); ok {
		return New(e.Type, e.Code, msg, e.Detail, err)
	}
	return New(errType, int(errType), msg, "", err)
}

// FromError 尝试沿错误链提取 *Error
func FromError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
