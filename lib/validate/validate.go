package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	instance *validator.Validate
	once     sync.Once
)

// FieldError names the failed field by its json/form name and the failed rule
type FieldError struct {
	Field string
	Tag   string
}

func get() *validator.Validate {
	once.Do(func() {
		instance = validator.New()
		instance.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "" {
				tag = fld.Tag.Get("form")
			}
			name := strings.SplitN(tag, ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return instance
}

// Struct validates a single struct object
func Struct(s interface{}) error {
	fields, err := Fields(s)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	message := ""
	for _, f := range fields {
		if len(message) > 0 {
			message += "; "
		}
		message += fmt.Sprintf("%s %s", f.Field, f.Tag)
	}
	return errors.New(message)
}

// Fields validates s and reports every failed rule; err is set only when s cannot be validated
func Fields(s interface{}) ([]FieldError, error) {
	if s == nil {
		return nil, fmt.Errorf("is nil")
	}
	if !isStruct(s) {
		return nil, fmt.Errorf("not a struct")
	}
	var validationErrors validator.ValidationErrors
	var invalidValidationError *validator.InvalidValidationError

	err := get().Struct(s)
	if err == nil {
		return nil, nil
	}

	if errors.As(err, &validationErrors) {
		fields := make([]FieldError, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			fields = append(fields, FieldError{Field: fieldErr.Field(), Tag: fieldErr.Tag()})
		}
		return fields, nil
	} else if errors.As(err, &invalidValidationError) {
		return nil, fmt.Errorf("invalid validation error: %w", err)
	} else {
		return nil, fmt.Errorf("unknown validation error: %w", err)
	}
}

func isStruct(s interface{}) bool {
	r := reflect.TypeOf(s)
	if r.Kind() == reflect.Ptr {
		r = r.Elem()
	}
	return r.Kind() == reflect.Struct
}
