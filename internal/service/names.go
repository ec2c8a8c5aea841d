package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// SplitFullName derives first and last name from a display name. The first
// space-separated token is the first name; the remainder, joined by spaces,
// is the last name. Both are empty when the input is empty.
func SplitFullName(fullName string) (first, last string) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return "", ""
	}
	parts := strings.Fields(fullName)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// GuessDisplayName synthesizes a display name from the email local part when
// every resolver came up empty: digits are stripped and the first rune is
// upper-cased ("john.doe99@example.com" -> "John.doe").
func GuessDisplayName(email string) string {
	local := emailLocalPart(email)
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return -1
		}
		return r
	}, local)
	if stripped == "" {
		return ""
	}
	runes := []rune(stripped)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// GuessSearchName derives a person-name guess from the email local part to
// seed the social-network searches: runs of digits, dots and underscores
// become spaces and each token is title-cased
// ("john.doe99@example.com" -> "John Doe").
func GuessSearchName(email string) string {
	local := emailLocalPart(email)
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '.' || r == '_' {
			return ' '
		}
		return r
	}, local)

	tokens := strings.Fields(cleaned)
	for i, token := range tokens {
		tokens[i] = titleCaser.String(token)
	}
	return strings.Join(tokens, " ")
}

func emailLocalPart(email string) string {
	if at := strings.Index(email, "@"); at >= 0 {
		return email[:at]
	}
	return email
}
