package guard

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "clean input untouched", raw: "id123", want: "id123"},
		{name: "whitespace trimmed", raw: "  id123  ", want: "id123"},
		{name: "script tag removed, remainder preserved", raw: "<script>alert(1)</script>id123", want: "id123"},
		{name: "unclosed script tag", raw: "<script src=x>id123", want: "id123"},
		{name: "javascript scheme", raw: "javascript:alert(1)", want: "alert(1)"},
		{name: "respliced javascript scheme", raw: "javajavascript:script:alert(1)", want: "alert(1)"},
		{name: "eval call", raw: "eval(document.cookie)", want: "document.cookie)"},
		{name: "path traversal", raw: "../../etc/passwd", want: "etc/passwd"},
		{name: "windows traversal", raw: `..\..\boot.ini`, want: "boot.ini"},
		{name: "sql keywords", raw: "1 UNION SELECT password", want: "1   password"},
		{name: "denied characters", raw: `a<b>c'd"e;f` + "`g\\h", want: "abcdefgh"},
		{name: "control characters", raw: "id\x00\x0112\x7f3", want: "id123"},
		{name: "empty", raw: "", want: ""},
		{name: "pure attack degrades to empty", raw: "<script>alert(1)</script>", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.raw)
			if got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
			if again := Sanitize(got); again != got {
				t.Errorf("Sanitize() not idempotent: %q -> %q", got, again)
			}
			for _, needle := range []string{"<script", "javascript:", "eval(", "../", "<", ">", "'", `"`} {
				if strings.Contains(strings.ToLower(got), needle) {
					t.Errorf("Sanitize(%q) = %q still contains %q", tt.raw, got, needle)
				}
			}
		})
	}
}

func TestValidateParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{name: "empty", query: "", want: true},
		{name: "benign", query: "?page=2&sort=name", want: true},
		{name: "benign ids", query: "id=6&class=12", want: true},
		{name: "script tag", query: "?q=<script>alert(1)</script>", want: false},
		{name: "encoded script tag", query: "?q=%3Cscript%3Ealert(1)%3C/script%3E", want: false},
		{name: "event handler", query: "?name=x onerror=alert(1)", want: false},
		{name: "javascript scheme", query: "?next=javascript:alert(1)", want: false},
		{name: "eval", query: "?cb=eval(atob('x'))", want: false},
		{name: "null byte", query: "?file=a%00.png", want: false},
		{name: "path traversal", query: "?file=../../etc/passwd", want: false},
		{name: "sql injection", query: "?id=1' OR '1'='1", want: false},
		{name: "union select", query: "?id=1 UNION SELECT * FROM users", want: false},
		{name: "unparseable query", query: "?a=%zz;b=1", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateParams(tt.query); got != tt.want {
				t.Errorf("ValidateParams(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}
