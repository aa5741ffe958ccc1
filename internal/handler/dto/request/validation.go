package request

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"rx-exchange/internal/domain/drug"
	"rx-exchange/internal/domain/exchange"
	"rx-exchange/internal/domain/matching"
	"rx-exchange/internal/domain/search"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the domain tags on gin's binding engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	tags := map[string]validator.Func{
		"dosage": func(fl validator.FieldLevel) bool {
			return drug.ParseDosage(fl.Field().String()).IsValid()
		},
		"priority": func(fl validator.FieldLevel) bool {
			_, err := search.ParsePriority(fl.Field().String())
			return err == nil
		},
		"sort_order": func(fl validator.FieldLevel) bool {
			return matching.SortOrder(fl.Field().String()).IsValid()
		},
		"decision": func(fl validator.FieldLevel) bool {
			_, err := exchange.ParseDecision(fl.Field().String())
			return err == nil
		},
	}
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s validator: %w", tag, err)
		}
	}
	return nil
}

// ValidationDetail flattens binding errors into field -> message pairs. Errors
// that are not validation failures (malformed JSON) come back as a single
// "body" entry.
func ValidationDetail(err error) map[string]string {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return map[string]string{"body": err.Error()}
	}
	out := make(map[string]string, len(ves))
	for _, fe := range ves {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "lte", "max":
		if isString {
			return "length should be less or equal than " + fe.Param()
		}
		return "should be less or equal than " + fe.Param()
	case "gte", "min":
		if isString {
			return "length should be greater or equal than " + fe.Param()
		}
		return "should be greater or equal than " + fe.Param()
	case "gt":
		return "should be greater than " + fe.Param()
	case "len":
		return "length should be " + fe.Param()
	case "numeric":
		return "should contain digits only"
	case "datetime":
		return "should be a date in the form " + fe.Param()
	case "dosage":
		return "should be a strength such as 500mg or 5 mg/ml"
	case "priority":
		return "should be one of: low, medium, high, critical"
	case "sort_order":
		return "should be one of: relevance, distance, quantity"
	case "decision":
		return "should be accept or decline"
	}
	return "incorrect value passed"
}
