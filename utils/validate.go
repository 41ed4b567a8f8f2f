package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spywithcode/ReStro/pkg/apperr"

	"github.com/go-playground/validator/v10"
)

// BindingViolations แปลง validator error เป็นรายการทุก field ที่พลาด
// (ไม่ใช่แค่ตัวแรก)
func BindingViolations(err error) *apperr.Error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]apperr.FieldViolation, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apperr.FieldViolation{
				Field:   strings.ToLower(fe.Field()[:1]) + fe.Field()[1:],
				Message: violationMessage(fe),
			})
		}
		return apperr.Validation("Invalid input data", fields)
	}
	return apperr.Validation(err.Error(), nil)
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
