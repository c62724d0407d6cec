package errors

import (
	"errors"
	"fmt"
	"spikeboard/pkg/errors/ecode"
)

// 携带业务错误码的error，DecodeErr在response层统一解码

type withCode struct {
	code  int
	msg   string
	cause error
}

func (w *withCode) Error() string {
	if w.cause != nil {
		return w.msg + ": " + w.cause.Error()
	}
	return w.msg
}

func (w *withCode) Unwrap() error {
	return w.cause
}

// WithCode 创建一个带错误码的error
func WithCode(code int, msg string) error {
	return &withCode{code: code, msg: msg}
}

// WithCodef 创建一个带错误码的error，支持格式化
func WithCodef(code int, format string, args ...interface{}) error {
	return &withCode{code: code, msg: fmt.Sprintf(format, args...)}
}

// Wrap 包装已有error并附加错误码
func Wrap(err error, code int, msg string) error {
	return &withCode{code: code, msg: msg, cause: err}
}

// Wrapf 包装已有error并附加错误码，支持格式化
func Wrapf(err error, code int, format string, args ...interface{}) error {
	return &withCode{code: code, msg: fmt.Sprintf(format, args...), cause: err}
}

// Is 透传标准库errors.Is，调用方不用同时导入两个errors包
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As 透传标准库errors.As
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New 透传标准库errors.New
func New(text string) error {
	return errors.New(text)
}

// DecodeErr 解码error，返回错误码和提示信息
func DecodeErr(err error) (int, string) {
	if err == nil {
		return ecode.Success, "OK"
	}
	var wc *withCode
	if errors.As(err, &wc) {
		return wc.code, wc.msg
	}
	return ecode.Unknown, err.Error()
}
