package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field string
	Tag   string
	Param string
}

func (e FieldError) String() string {
	if e.Param != "" {
		return fmt.Sprintf("%s failed on %s=%s", e.Field, e.Tag, e.Param)
	}
	return fmt.Sprintf("%s failed on %s", e.Field, e.Tag)
}

var validate = validator.New()

// 構造体のvalidateタグを検証する。問題なければnil。
func ValidateStruct(data interface{}) []FieldError {
	var errs []FieldError
	if err := validate.Struct(data); err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			errs = append(errs, FieldError{
				Field: fe.Field(),
				Tag:   fe.Tag(),
				Param: fe.Param(),
			})
		}
	}
	return errs
}
