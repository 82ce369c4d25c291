// Package validation wraps go-playground/validator for payloads that do not go
// through gin binding: multi-entity batch items and the per-type required fields
// of unified entities. It reads the same `binding` tags gin uses so a DTO has a
// single set of rules.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError 单个字段的校验失败
type FieldError struct {
	Field string // json name
	Tag   string
	Param string
}

func (e FieldError) Error() string {
	switch e.Tag {
	case "required":
		return e.Field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", e.Field, e.Param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", e.Field, e.Param)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", e.Field, e.Param)
	case "email":
		return e.Field + " must be a valid email"
	case "url":
		return e.Field + " must be a valid URL"
	default:
		return fmt.Sprintf("%s failed on %s", e.Field, e.Tag)
	}
}

// Errors 一次校验的全部失败字段
type Errors []FieldError

func (ve Errors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fe.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validator 返回单例，tag 名与 gin 保持一致
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.SetTagName("binding")
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Struct 校验结构体，失败时返回 Errors
func Struct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Tag: fe.Tag(), Param: fe.Param()})
	}
	return out
}

// Translate 把 gin 绑定返回的 validator 错误转换成可读信息，其他错误原样返回
func Translate(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(Errors, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, FieldError{Field: jsonName(fe), Tag: fe.Tag(), Param: fe.Param()})
		}
		return out.Error()
	}
	return err.Error()
}

// gin's validator has no tag-name func, fall back to snake_case of the Go name
func jsonName(fe validator.FieldError) string {
	name := fe.Field()
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && (i+1 < len(name) && name[i+1] >= 'a' && name[i+1] <= 'z' || name[i-1] >= 'a' && name[i-1] <= 'z') {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
