package sanitizer

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	dotRegex   = regexp.MustCompile(`\.{2,}`)
	spaceRegex = regexp.MustCompile(`\s+`)
)

// NormalizeEmail applies NFKC so visually identical addresses compare equal,
// lower-cases the address and consolidates consecutive dots in the local part.
// Values without exactly one "@" are returned trimmed and lower-cased.
func NormalizeEmail(email string) string {
	email = norm.NFKC.String(strings.TrimSpace(email))
	email = strings.ToLower(email)

	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return email
	}

	local = dotRegex.ReplaceAllString(local, ".")
	local = strings.Trim(local, ".")

	return local + "@" + domain
}

// NormalizeName trims, applies NFKC and collapses inner whitespace.
func NormalizeName(name string) string {
	name = norm.NFKC.String(strings.TrimSpace(name))
	return spaceRegex.ReplaceAllString(name, " ")
}
