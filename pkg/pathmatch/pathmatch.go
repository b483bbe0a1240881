// Package pathmatch matches slash-separated paths against find -path globs.
//
// Unlike filepath.Match, the wildcards are not stopped by '/':
//   - '*' matches any run of characters
//   - '?' matches any single character
//   - '[...]' and '[!...]' match one character from (or outside) a set
//   - '\' makes the next character literal
package pathmatch

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Matcher holds a set of compiled patterns.
type Matcher struct {
	patterns []*regexp.Regexp
}

// NewMatcher compiles patterns. An empty set matches nothing.
func NewMatcher(patterns []string) (*Matcher, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := compile(pattern)
		if err != nil {
			return nil, err
		}

		compiled = append(compiled, re)
	}

	return &Matcher{patterns: compiled}, nil
}

// Len returns the number of patterns.
func (m *Matcher) Len() int {
	return len(m.patterns)
}

// MatchAny reports whether path matches at least one pattern.
func (m *Matcher) MatchAny(path string) bool {
	for _, re := range m.patterns {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}

//nolint:gochecknoglobals // compiled patterns are shared across matchers
var compiled sync.Map

func compile(pattern string) (*regexp.Regexp, error) {
	if cached, ok := compiled.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil //nolint:forcetypeassert // only *regexp.Regexp is stored
	}

	expr, err := translate(pattern)
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", pattern, err)
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", pattern, err)
	}

	compiled.Store(pattern, re)

	return re, nil
}

// translate rewrites a glob as an anchored regular expression.
func translate(pattern string) (string, error) {
	var expr strings.Builder

	expr.WriteByte('^')

	for pos := 0; pos < len(pattern); pos++ {
		switch ch := pattern[pos]; ch {
		case '*':
			expr.WriteString(".*")
		case '?':
			expr.WriteByte('.')
		case '\\':
			if pos == len(pattern)-1 {
				return "", errors.New("trailing backslash")
			}

			pos++
			expr.WriteString(regexp.QuoteMeta(pattern[pos : pos+1]))
		case '[':
			end := classEnd(pattern, pos)
			if end < 0 {
				return "", errors.New("unclosed character class")
			}

			body := pattern[pos+1 : end]
			if strings.HasPrefix(body, "!") {
				body = "^" + body[1:]
			}

			expr.WriteString("[" + body + "]")

			pos = end
		default:
			expr.WriteString(regexp.QuoteMeta(pattern[pos : pos+1]))
		}
	}

	expr.WriteByte('$')

	return expr.String(), nil
}

// classEnd returns the index of the ']' closing the class opened at start, or -1.
// A ']' directly after '[' or '[!' is a member of the class.
func classEnd(pattern string, start int) int {
	pos := start + 1

	if pos < len(pattern) && pattern[pos] == '!' {
		pos++
	}

	if pos < len(pattern) && pattern[pos] == ']' {
		pos++
	}

	if idx := strings.IndexByte(pattern[pos:], ']'); idx >= 0 {
		return pos + idx
	}

	return -1
}
