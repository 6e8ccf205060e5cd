package utils

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

// Validator returns the shared validator; field names are reported by their json/form tag
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"form", "json"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})
	})
	return validate
}

func ValidateStruct(s any) error {
	return Validator().Struct(s)
}

// GetValidationErrors maps each failing field to a human readable message
func GetValidationErrors(err error) map[string]string {
	out := map[string]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		if err != nil {
			out["_"] = err.Error()
		}
		return out
	}

	for _, fe := range verrs {
		key := fe.Namespace()
		// drop the root struct name
		if i := strings.Index(key, "."); i >= 0 {
			key = key[i+1:]
		}
		out[key] = messageFor(fe)
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s é obrigatório", fe.Field())
	case "min":
		return fmt.Sprintf("%s deve ter no mínimo %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s deve ter no máximo %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s deve ser maior que %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s deve ser maior ou igual a %s", fe.Field(), fe.Param())
	case "url":
		return fmt.Sprintf("%s deve ser uma URL válida", fe.Field())
	case "ltefield":
		return fmt.Sprintf("%s não pode ser maior que %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s deve ser um de: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s é inválido", fe.Field())
	}
}
