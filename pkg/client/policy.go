package client

import (
	"fmt"
	"unicode"
)

// ValidatePassword checks a candidate password against the policy and
// returns one violation per failed rule. Run before any network call so
// a policy failure never burns a request. The server re-validates with
// its own live policy regardless.
func ValidatePassword(password string, policy PasswordPolicy) []Violation {
	var violations []Violation

	if policy.MinLength > 0 && len([]rune(password)) < policy.MinLength {
		violations = append(violations, Violation{
			Rule:    "min_length",
			Message: fmt.Sprintf("password must be at least %d characters", policy.MinLength),
		})
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	if policy.RequireUppercase && !hasUpper {
		violations = append(violations, Violation{
			Rule:    "uppercase",
			Message: "password must contain an uppercase letter",
		})
	}
	if policy.RequireLowercase && !hasLower {
		violations = append(violations, Violation{
			Rule:    "lowercase",
			Message: "password must contain a lowercase letter",
		})
	}
	if policy.RequireNumbers && !hasDigit {
		violations = append(violations, Violation{
			Rule:    "numbers",
			Message: "password must contain a number",
		})
	}
	if policy.RequireSpecialChars && !hasSpecial {
		violations = append(violations, Violation{
			Rule:    "special_chars",
			Message: "password must contain a special character",
		})
	}
	return violations
}
