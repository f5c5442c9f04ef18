package enums

import "fmt"

// Locale is a supported site language. Arabic is the primary locale and
// the fallback whenever input is missing or unknown.
type Locale string

const (
	LocaleArabic  Locale = "ar"
	LocaleEnglish Locale = "en"
)

var validLocales = []Locale{
	LocaleArabic,
	LocaleEnglish,
}

// String implements fmt.Stringer.
func (l Locale) String() string {
	return string(l)
}

// IsValid reports whether the value is a supported Locale.
func (l Locale) IsValid() bool {
	for _, candidate := range validLocales {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseLocale converts raw input into a Locale, falling back to Arabic
// for empty input.
func ParseLocale(value string) (Locale, error) {
	if value == "" {
		return LocaleArabic, nil
	}
	for _, candidate := range validLocales {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid locale %q", value)
}
