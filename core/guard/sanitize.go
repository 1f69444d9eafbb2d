package guard

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// Attack-signature patterns shared by Sanitize and ValidateParams.
var (
	scriptTagRegex = regexp.MustCompile(`(?i)<script[^>]*>[\s\S]*?</script[^>]*>|<script[^>]*/?>|</script[^>]*>`)
	jsSchemeRegex  = regexp.MustCompile(`(?i)javascript\s*:`)
	evalRegex      = regexp.MustCompile(`(?i)\beval\s*\(`)
	eventAttrRegex = regexp.MustCompile(`(?i)\bon\w+\s*=`)
	sqlRegex       = regexp.MustCompile(`(?i)\b(select|insert|update|delete|drop|union|exec|truncate|alter)\b`)
	sqlQuoteRegex  = regexp.MustCompile(`(?i)['"]\s*(or|and)\b`)
	traversalRegex = regexp.MustCompile(`\.\.[/\\]`)

	// characters never allowed in a sanitized parameter
	deniedChars = "<>'\"`;\\"
)

// named signatures, scanned in order by ValidateParams
var attackSignatures = []struct {
	name  string
	regex *regexp.Regexp
}{
	{"script-tag", regexp.MustCompile(`(?i)<\s*script`)},
	{"javascript-scheme", jsSchemeRegex},
	{"event-handler", eventAttrRegex},
	{"eval-call", evalRegex},
	{"null-byte", regexp.MustCompile(`\x00|%00`)},
	{"path-traversal", traversalRegex},
	{"sql-keyword", sqlRegex},
	{"sql-quote", sqlQuoteRegex},
}

// Sanitize strips known injection and traversal patterns from a raw query
// parameter. It is pure and idempotent, and it never fails: hostile input
// degrades to an empty or truncated safe string. The result is free of
// script tags, the javascript: scheme, eval calls, SQL keywords, "../"
// sequences, control characters and the character set <>'"`;\.
func Sanitize(raw string) string {
	s := strings.TrimSpace(raw)
	// removing one pattern can splice another back together ("java" +
	// "javascript:" + "script:"), so strip to a fixpoint
	for {
		prev := s
		s = scriptTagRegex.ReplaceAllString(s, "")
		s = jsSchemeRegex.ReplaceAllString(s, "")
		s = evalRegex.ReplaceAllString(s, "")
		s = eventAttrRegex.ReplaceAllString(s, "")
		s = sqlRegex.ReplaceAllString(s, "")
		s = traversalRegex.ReplaceAllString(s, "")
		s = strings.Map(dropDeniedRune, s)
		s = strings.TrimSpace(s)
		if s == prev {
			return s
		}
	}
}

func dropDeniedRune(r rune) rune {
	if r == unicode.ReplacementChar || unicode.IsControl(r) {
		return -1
	}
	if strings.ContainsRune(deniedChars, r) {
		return -1
	}
	return r
}

// ValidateParams scans every key/value pair of a query string against the
// attack signatures, in both raw and decoded form, and reports false on the
// first match. Unparseable query strings are rejected outright.
func ValidateParams(query string) bool {
	return matchParams(query) == ""
}

// matchParams returns the name of the first matched signature, or "".
func matchParams(query string) string {
	query = strings.TrimPrefix(query, "?")
	if query == "" {
		return ""
	}
	// encoded payloads hide from the decoded scan and vice versa: check both
	if sig := matchSignatures(query); sig != "" {
		return sig
	}
	values, err := url.ParseQuery(query)
	if err != nil {
		return "malformed-query"
	}
	for key, vals := range values {
		if sig := matchSignatures(key); sig != "" {
			return sig
		}
		for _, val := range vals {
			if sig := matchSignatures(val); sig != "" {
				return sig
			}
		}
	}
	return ""
}

func matchSignatures(s string) string {
	for _, sig := range attackSignatures {
		if sig.regex.MatchString(s) {
			return sig.name
		}
	}
	return ""
}
