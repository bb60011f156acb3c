package ruleset

import (
	"fmt"
	"regexp"
	"strings"
)

// acceptedFlags is the fixed set of pattern flags a rule line may carry.
// "g" is accepted for compatibility with rule texts written for other
// clients; it has no effect here.
const acceptedFlags = "gims"

// Rule is one compiled line of user-authored filter text: a matcher plus
// activation scope and flags. Rules are immutable once compiled.
type Rule struct {
	// Literal is the literal matcher text; empty when Pattern is set.
	Literal string

	// Pattern is the compiled pattern matcher; nil for literal rules.
	Pattern *regexp.Regexp

	IsStrict  bool
	IsDisable bool

	Include Scope
	Exclude Scope

	// SourceIndex is the 0-based line index in the original text, used for
	// log ordering and for removing a rule by value later.
	SourceIndex int

	// key is the canonical string form of the matcher.
	key string
}

// Key returns the canonical string form of the matcher: the literal text, or
// the original "/pattern/flags" source for pattern rules.
func (r *Rule) Key() string { return r.key }

// IsPattern reports whether the rule carries a compiled pattern matcher.
func (r *Rule) IsPattern() bool { return r.Pattern != nil }

// MatchText reports whether the rule matches free text such as a comment
// body or a title: patterns match anywhere, literals match as substrings.
func (r *Rule) MatchText(s string) bool {
	if r.Pattern != nil {
		return r.Pattern.MatchString(s)
	}

	return strings.Contains(s, r.Literal)
}

// MatchToken reports whether the rule matches a single token: literals
// compare case-folded equality, patterns match anywhere in the token.
func (r *Rule) MatchToken(s string) bool {
	if r.Pattern != nil {
		return r.Pattern.MatchString(s)
	}

	return strings.EqualFold(r.Literal, s)
}

// MatchID reports whether the rule matches an exact identifier.
func (r *Rule) MatchID(s string) bool {
	if r.Pattern != nil {
		return r.Pattern.MatchString(s)
	}

	return r.Literal == s
}

// compileMatcher turns cleaned content-line text into a matcher. Text
// wrapped as /pattern/flags compiles to a pattern; anything else is a
// literal. An invalid pattern or an unaccepted flag returns an error and no
// rule is produced for the line.
func compileMatcher(text string) (lit string, re *regexp.Regexp, key string, err error) {
	if !strings.HasPrefix(text, "/") {
		return text, nil, text, nil
	}

	end := closingSlash(text)
	if end <= 0 {
		// Unclosed slash: not pattern syntax, keep as a literal.
		return text, nil, text, nil
	}

	pat, flags := text[1:end], text[end+1:]

	var prefix string
	for _, f := range flags {
		if !strings.ContainsRune(acceptedFlags, f) {
			return "", nil, "", fmt.Errorf("unsupported pattern flag %q", f)
		}

		// "g" has no per-match meaning here.
		if f != 'g' {
			prefix += string(f)
		}
	}

	if prefix != "" {
		prefix = "(?" + prefix + ")"
	}

	re, err = regexp.Compile(prefix + pat)
	if err != nil {
		return "", nil, "", fmt.Errorf("compiling pattern: %w", err)
	}

	return "", re, text, nil
}

// closingSlash returns the index of the last unescaped slash after position
// zero, or -1 when there is none.
func closingSlash(s string) int {
	last := -1
	escaped := false
	for i := 1; i < len(s); i++ {
		if escaped {
			escaped = false
			continue
		}

		switch s[i] {
		case '\\':
			escaped = true
		case '/':
			last = i
		}
	}

	return last
}
