package domain

import (
	"fmt"
	"unicode"
)

// PasswordPolicy is the process-wide password rule set. It is stored in
// settings and hot-reloadable; tightening it never invalidates passwords
// that were accepted under an older policy.
type PasswordPolicy struct {
	MinLength           int  `json:"minLength" bson:"min_length"`
	RequireUppercase    bool `json:"requireUppercase" bson:"require_uppercase"`
	RequireLowercase    bool `json:"requireLowercase" bson:"require_lowercase"`
	RequireNumbers      bool `json:"requireNumbers" bson:"require_numbers"`
	RequireSpecialChars bool `json:"requireSpecialChars" bson:"require_special_chars"`
}

// DefaultPasswordPolicy is applied until an operator saves an explicit one.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:        8,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireNumbers:   true,
	}
}

// Violation is a single human-readable password rule failure.
type Violation struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidatePassword checks a candidate password against the policy and
// returns one violation per failed rule. An empty result means the
// password is acceptable. Pure and deterministic; never panics.
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
