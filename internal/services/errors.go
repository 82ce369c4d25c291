package services

import (
	"errors"
	"fmt"

	"ecohub/internal/validation"

	"gorm.io/gorm"
)

// ErrorKind 错误分类，handler 据此映射 HTTP 状态码
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindBadRequest
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
)

func (k ErrorKind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// AppError 业务错误，非内部错误的 Message 可直接返回给客户端
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil && e.Kind == KindInternal {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, err error, format string, args ...interface{}) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func BadRequest(format string, args ...interface{}) *AppError {
	return newError(KindBadRequest, nil, format, args...)
}

func NotFound(format string, args ...interface{}) *AppError {
	return newError(KindNotFound, nil, format, args...)
}

func Conflict(format string, args ...interface{}) *AppError {
	return newError(KindConflict, nil, format, args...)
}

func Unauthorized(format string, args ...interface{}) *AppError {
	return newError(KindUnauthorized, nil, format, args...)
}

func Forbidden(format string, args ...interface{}) *AppError {
	return newError(KindForbidden, nil, format, args...)
}

// Internal 包装底层错误，对外只暴露 message
func Internal(err error, format string, args ...interface{}) *AppError {
	return newError(KindInternal, err, format, args...)
}

// KindOf 推断任意错误的分类
func KindOf(err error) ErrorKind {
	var appErr *AppError
	switch {
	case err == nil:
		return KindInternal
	case errors.As(err, &appErr):
		return appErr.Kind
	case errors.Is(err, gorm.ErrRecordNotFound):
		return KindNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return KindConflict
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return KindBadRequest
	}
	return KindInternal
}

// PublicMessage 可返回给客户端的错误信息，内部错误不泄露细节
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		return appErr.Message
	}
	switch KindOf(err) {
	case KindNotFound:
		return "record not found"
	case KindConflict:
		return "record already exists"
	case KindBadRequest:
		return err.Error()
	}
	return "internal server error"
}

// Wrap 加上前缀但保留原错误的分类
func Wrap(err error, prefix string) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Kind:    KindOf(err),
		Message: prefix + ": " + PublicMessage(err),
		Err:     err,
	}
}

// classify 把 gorm 错误转换成带上下文的 AppError
func classify(err error, what string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &AppError{Kind: KindNotFound, Message: what + " not found", Err: err}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &AppError{Kind: KindConflict, Message: what + " already exists", Err: err}
	}
	return Internal(err, "failed to access %s", what)
}
