package errors

import "fmt"

// ErrorCode 定义错误码类型
type ErrorCode int

const (
	// 业务错误：调用方可修正，上层应区分映射
	ErrInvalidInput ErrorCode = iota + 1000
	ErrNotFound
	ErrProfanity
	ErrForbidden

	// 系统错误：唯一需要按异常记录日志的一类
	ErrDatabase
	ErrInternal
)

// AppError 定义应用错误结构
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的应用错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装已有错误
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// CodeOf 获取错误码，非 AppError 一律按内部错误处理
func CodeOf(err error) ErrorCode {
	if ae, ok := err.(*AppError); ok {
		return ae.Code
	}
	return ErrInternal
}

// Is 判断错误是否属于指定错误码
func Is(err error, code ErrorCode) bool {
	ae, ok := err.(*AppError)
	return ok && ae.Code == code
}
