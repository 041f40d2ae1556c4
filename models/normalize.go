package models

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalid   = regexp.MustCompile(`[^\w\s-]`)
	slugSeparator = regexp.MustCompile(`[-\s]+`)
)

// NormalizeName lower-cases and trims s, then upper-cases the first letter of
// every run of letters: " ChaRacter ONE NamE" becomes "Character One Name".
func NormalizeName(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))

	var b strings.Builder
	b.Grow(len(s))
	inWord := false
	for _, r := range s {
		if !unicode.IsLetter(r) {
			inWord = false
			b.WriteRune(r)
			continue
		}
		if inWord {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(unicode.ToTitle(r))
		}
		inWord = true
	}
	return b.String()
}

// FieldError reports a field value the model refuses to store.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// NormalizeField normalizes value and checks the result is not blank and
// fits in max runes.
func NormalizeField(field, value string, max int) (string, error) {
	value = NormalizeName(value)
	if value == "" {
		return "", &FieldError{Field: field, Message: "may not be blank"}
	}
	if utf8.RuneCountInString(value) > max {
		return "", &FieldError{Field: field, Message: fmt.Sprintf("must be at most %d characters", max)}
	}
	return value, nil
}

// Slugify derives a lowercase, hyphen separated ASCII slug from s.
// Accented letters are reduced to their base letter and anything that is not
// a letter, digit, underscore, space or hyphen is dropped.
func Slugify(s string) string {
	decomposed := norm.NFKD.String(s)

	ascii := make([]byte, 0, len(decomposed))
	for i := 0; i < len(decomposed); i++ {
		if decomposed[i] < utf8.RuneSelf {
			ascii = append(ascii, decomposed[i])
		}
	}

	slug := slugInvalid.ReplaceAllString(strings.ToLower(string(ascii)), "")
	slug = slugSeparator.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-_")
}

// NormalizeEmail lower-cases the domain part of an address and trims it.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}
