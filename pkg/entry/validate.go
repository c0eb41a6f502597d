package entry

import (
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	localePattern    = regexp.MustCompile(`^[a-z]{2}(-[A-Z]{2})?$`)
	namespacePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	keyPattern       = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
)

// Validation rules usable with ozzo-validation struct validation.
var (
	LocaleRule    = validation.Match(localePattern).Error("must look like en or en-US")
	NamespaceRule = validation.Match(namespacePattern).Error("may contain only letters, digits, underscores and dashes")
	KeyRule       = validation.Match(keyPattern).Error("may contain only letters, digits, dots, underscores and dashes")
)

// IsLocale reports whether s matches the locale grammar.
func IsLocale(s string) bool { return localePattern.MatchString(s) }

// ValidateLocale checks the locale grammar: two lowercase letters with an
// optional dash and two uppercase letters.
func ValidateLocale(s string) error {
	if err := validation.Validate(s, validation.Required, LocaleRule); err != nil {
		return fmt.Errorf("%w: %q %w", ErrInvalidLocale, s, err)
	}
	return nil
}

// ValidateNamespace checks the namespace grammar.
func ValidateNamespace(s string) error {
	if err := validation.Validate(s, validation.Required, NamespaceRule); err != nil {
		return fmt.Errorf("%w: %q %w", ErrInvalidNamespace, s, err)
	}
	return nil
}

// ValidateKey checks the dot-key grammar.
func ValidateKey(s string) error {
	if err := validation.Validate(s, validation.Required, KeyRule); err != nil {
		return fmt.Errorf("%w: %q %w", ErrInvalidKey, s, err)
	}
	return nil
}

// ValidateAddress checks a key that refers to a stored entry. Imported
// documents may carry keys and namespaces outside the grammars, so only the
// locale grammar applies and the other parts must be non-empty.
func (k Key) ValidateAddress() error {
	return validation.ValidateStruct(&k,
		validation.Field(&k.Locale, validation.Required, LocaleRule),
		validation.Field(&k.Namespace, validation.Required),
		validation.Field(&k.DotKey, validation.Required),
	)
}

// Validate checks all three grammars of the key.
func (k Key) Validate() error {
	return validation.ValidateStruct(&k,
		validation.Field(&k.Locale, validation.Required, LocaleRule),
		validation.Field(&k.Namespace, validation.Required, NamespaceRule),
		validation.Field(&k.DotKey, validation.Required, KeyRule),
	)
}
