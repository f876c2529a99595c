package model

import "unicode/utf8"

// Check inspects a single value. It returns ok=false and the message to
// report when the value breaks the rule.
type Check func() (message string, ok bool)

// Rule binds an ordered list of checks to one field. Only the first failing
// check of a field is reported.
type Rule struct {
	Field  string
	Checks []Check
}

// Field builds a Rule for the named field.
func Field(name string, checks ...Check) Rule {
	return Rule{Field: name, Checks: checks}
}

// Collect runs every rule and returns all violations, one per failing field,
// in rule order. A nil result means the input is valid.
func Collect(rules ...Rule) []FieldError {
	var errors []FieldError
	for _, rule := range rules {
		for _, check := range rule.Checks {
			if message, ok := check(); !ok {
				errors = append(errors, FieldError{Field: rule.Field, Message: message})
				break
			}
		}
	}
	return errors
}

// Present fails when the string is absent or empty.
func Present(v *string, message string) Check {
	return func() (string, bool) {
		return message, v != nil && *v != ""
	}
}

// PresentInt fails when the number is absent.
func PresentInt(v *int, message string) Check {
	return func() (string, bool) {
		return message, v != nil
	}
}

// MinLength fails when the string has fewer than n characters.
// Absent values pass; pair with Present to require them.
func MinLength(v *string, n int, message string) Check {
	return func() (string, bool) {
		return message, v == nil || utf8.RuneCountInString(*v) >= n
	}
}

// OneOf fails when a present value is rejected by valid.
func OneOf(v *string, valid func(string) bool, message string) Check {
	return func() (string, bool) {
		return message, v == nil || valid(*v)
	}
}

// AtLeast fails when a present number is below min.
func AtLeast(v *int, min int, message string) Check {
	return func() (string, bool) {
		return message, v == nil || *v >= min
	}
}

// AtMost fails when a present number is above max.
func AtMost(v *int, max int, message string) Check {
	return func() (string, bool) {
		return message, v == nil || *v <= max
	}
}
