// Package validation centralizes the per-route request rules. Every route
// builds a declarative rule list and gets back the first failing rule as a
// typed error carrying the field, the rule name and a client-facing message.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// FieldError is a single failed validation rule
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return e.Message
}

// Rule evaluates one field check and reports the failure, if any
type Rule func() *FieldError

// Validate runs the rules in order and returns the first failure
func Validate(rules ...Rule) *FieldError {
	for _, rule := range rules {
		if err := rule(); err != nil {
			return err
		}
	}
	return nil
}

// Local part limited to safe characters, at least one dotted domain segment.
// Whitespace and the blocked special-character set fail the match outright.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+@[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)+$`)

const (
	passwordMinLen = 8
	passwordMaxLen = 15
)

// Required fails when the value is empty
func Required(field, value string) Rule {
	return func() *FieldError {
		if value == "" {
			return &FieldError{
				Field:   field,
				Rule:    "required",
				Message: fmt.Sprintf("%s은(는) 필수 입력값입니다", field),
			}
		}
		return nil
	}
}

// EmailShape fails on whitespace, blocked special characters, or a missing
// dotted domain segment
func EmailShape(field, value string) Rule {
	return func() *FieldError {
		if !emailPattern.MatchString(value) {
			return &FieldError{
				Field:   field,
				Rule:    "email",
				Message: "이메일 형식이 올바르지 않습니다",
			}
		}
		return nil
	}
}

// PasswordBounds fails when the password is outside [8,15] characters or
// contains whitespace
func PasswordBounds(field, value string) Rule {
	return func() *FieldError {
		// Length is counted in characters, not bytes, so Hangul counts one per
		// syllable
		length := utf8.RuneCountInString(value)
		if length < passwordMinLen || length > passwordMaxLen || containsWhitespace(value) {
			return &FieldError{
				Field:   field,
				Rule:    "password",
				Message: "비밀번호는 공백 없이 8자 이상 15자 이하여야 합니다",
			}
		}
		return nil
	}
}

// NotBlank fails when the trimmed value is empty
func NotBlank(field, value string) Rule {
	return func() *FieldError {
		if strings.TrimSpace(value) == "" {
			return &FieldError{
				Field:   field,
				Rule:    "not_blank",
				Message: fmt.Sprintf("%s을(를) 입력해 주세요", field),
			}
		}
		return nil
	}
}

// Latitude fails when the value is outside the open interval (-90, 90)
func Latitude(field string, value float64) Rule {
	return func() *FieldError {
		if value <= -90 || value >= 90 {
			return &FieldError{
				Field:   field,
				Rule:    "range",
				Message: "위도는 -90과 90 사이여야 합니다",
			}
		}
		return nil
	}
}

// Longitude fails when the value is outside the open interval (-180, 180)
func Longitude(field string, value float64) Rule {
	return func() *FieldError {
		if value <= -180 || value >= 180 {
			return &FieldError{
				Field:   field,
				Rule:    "range",
				Message: "경도는 -180과 180 사이여야 합니다",
			}
		}
		return nil
	}
}

// Integer fails when the JSON number carries a fractional part or is too
// large to represent as an int64
func Integer(field string, value float64) Rule {
	return func() *FieldError {
		if value < math.MinInt64 || value >= math.MaxInt64 || value != math.Trunc(value) {
			return &FieldError{
				Field:   field,
				Rule:    "integer",
				Message: fmt.Sprintf("%s은(는) 정수여야 합니다", field),
			}
		}
		return nil
	}
}

// ExactKeys fails unless the object carries exactly the expected key set.
// Used for batch station creation where each element must be {name,
// latitude, longitude} and nothing else.
func ExactKeys(field string, obj map[string]any, expected ...string) Rule {
	return func() *FieldError {
		fail := &FieldError{
			Field:   field,
			Rule:    "shape",
			Message: "요청 형식이 올바르지 않습니다",
		}

		if len(obj) != len(expected) {
			return fail
		}
		for _, key := range expected {
			if _, ok := obj[key]; !ok {
				return fail
			}
		}
		return nil
	}
}

func containsWhitespace(s string) bool {
	for _, r := range s {
		if unicode.IsSpace(r) {
			return true
		}
	}
	return false
}
