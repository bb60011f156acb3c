package ruleset

import (
	"strings"
)

// Directive names. Parameterized and bare directives other than dirEnd open a
// block that runs until the matching dirEnd; the one-shot aliases apply to
// the next content line only.
const (
	dirEnd     = "@end"
	dirStrict  = "@strict"
	dirDisable = "@disable"

	dirStrictNext = "@s"
	dirVideosNext = "@v"
)

// scopeDim identifies one of the four scope dimensions.
type scopeDim int

const (
	dimNone scopeDim = iota
	dimTags
	dimVideos
	dimUsers
	dimSeries
)

// paramDirectives maps a parameterized directive name to the scope dimension
// it contributes a group to.
var paramDirectives = map[string]struct {
	include bool
	dim     scopeDim
}{
	"@include-tags":   {include: true, dim: dimTags},
	"@include-videos": {include: true, dim: dimVideos},
	"@include-users":  {include: true, dim: dimUsers},
	"@include-series": {include: true, dim: dimSeries},
	"@exclude-tags":   {include: false, dim: dimTags},
	"@exclude-videos": {include: false, dim: dimVideos},
	"@exclude-users":  {include: false, dim: dimUsers},
	"@exclude-series": {include: false, dim: dimSeries},
}

// frame is one entry of the directive stack. A frame flips flags, contributes
// one scope group, or both; a parameterized directive with no usable args
// still pushes an empty frame so that @end stays balanced.
type frame struct {
	strict  bool
	disable bool
	include bool
	dim     scopeDim
	group   []string
}

// Stats tracks compile statistics for one rule text.
type Stats struct {
	Total      int
	Rules      int
	Invalid    int
	Comments   int
	Directives int
}

// Parser compiles one category's rule text into rules. Use a fresh parser
// per text for accurate stats.
type Parser struct {
	stats Stats
}

// New creates a new parser.
func New() *Parser {
	return &Parser{}
}

// Stats returns compile statistics.
func (p *Parser) Stats() Stats {
	return p.stats
}

// Parse compiles rule text. Compilation never fails: invalid lines are
// counted and dropped, an unterminated block is closed at end of text, and a
// trailing excess @end is a no-op.
func (p *Parser) Parse(text string) []*Rule {
	var rules []*Rule
	byKey := make(map[string]*Rule)
	var stack []frame

	// One-shot alias state, consumed by the next content line.
	var pendStrict bool
	var pendVideos []string

	for idx, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		p.stats.Total++

		if strings.HasPrefix(line, "#") {
			p.stats.Comments++
			continue
		}

		if strings.HasPrefix(line, "@") {
			// A typoed directive never falls through to rule creation.
			p.stats.Directives++
			p.directive(line, &stack, &pendStrict, &pendVideos)
			continue
		}

		strictLine := false
		body := line
		if strings.HasPrefix(body, "!") {
			strictLine = true
			body = strings.TrimSpace(body[1:])
		}

		body = stripTrailingComment(body)
		if body == "" {
			p.stats.Comments++
			continue
		}

		strict, disable, inc, exc := fold(stack)
		strict = strict || strictLine || pendStrict
		if len(pendVideos) > 0 {
			inc.VideoIDs = append(inc.VideoIDs, pendVideos)
		}
		pendStrict, pendVideos = false, nil

		lit, re, key, err := compileMatcher(body)
		if err != nil {
			p.stats.Invalid++
			continue
		}

		// A repeated matcher does not make a second rule: its flags and
		// scope groups accumulate onto the first one, so the same word
		// declared under two condition blocks requires both.
		if ex, ok := byKey[key]; ok {
			ex.IsStrict = ex.IsStrict || strict
			ex.IsDisable = ex.IsDisable || disable
			ex.Include.merge(inc)
			ex.Exclude.merge(exc)
			continue
		}

		p.stats.Rules++
		r := &Rule{
			Literal:     lit,
			Pattern:     re,
			IsStrict:    strict,
			IsDisable:   disable,
			Include:     inc,
			Exclude:     exc,
			SourceIndex: idx,
			key:         key,
		}
		byKey[key] = r
		rules = append(rules, r)
	}

	return rules
}

// directive interprets one @-line against the stack and the one-shot state.
// Unrecognized directives are dropped silently.
func (p *Parser) directive(
	line string,
	stack *[]frame,
	pendStrict *bool,
	pendVideos *[]string,
) {
	fields := strings.Fields(line)
	name := strings.ToLower(fields[0])
	args := normalizeArgs(fields[1:])

	switch name {
	case dirEnd:
		if n := len(*stack); n > 0 {
			*stack = (*stack)[:n-1]
		}
	case dirStrict:
		*stack = append(*stack, frame{strict: true})
	case dirDisable:
		*stack = append(*stack, frame{disable: true})
	case dirStrictNext:
		*pendStrict = true
	case dirVideosNext:
		if len(args) > 0 {
			*pendVideos = args
		}
	default:
		if pd, ok := paramDirectives[name]; ok {
			fr := frame{include: pd.include}
			if len(args) > 0 {
				fr.dim = pd.dim
				fr.group = args
			}

			*stack = append(*stack, fr)
		}
	}
}

// fold computes the effective flags and scopes for a content line from the
// whole stack: flags are OR'd, and each frame's group becomes one AND'd
// scope group.
func fold(stack []frame) (strict, disable bool, inc, exc Scope) {
	for _, fr := range stack {
		strict = strict || fr.strict
		disable = disable || fr.disable

		if fr.dim == dimNone {
			continue
		}

		s := &inc
		if !fr.include {
			s = &exc
		}

		switch fr.dim {
		case dimTags:
			s.Tags = append(s.Tags, fr.group)
		case dimVideos:
			s.VideoIDs = append(s.VideoIDs, fr.group)
		case dimUsers:
			s.UserIDs = append(s.UserIDs, fr.group)
		case dimSeries:
			s.SeriesIDs = append(s.SeriesIDs, fr.group)
		}
	}

	return strict, disable, inc, exc
}

// normalizeArgs lower-cases directive arguments and drops empty ones.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		a = strings.ToLower(strings.TrimSpace(a))
		if a != "" {
			out = append(out, a)
		}
	}

	return out
}

// stripTrailingComment removes a trailing "# comment" suffix. Inside pattern
// syntax a hash is left alone; outside it, a literal hash is written "\#".
func stripTrailingComment(s string) string {
	if strings.HasPrefix(s, "/") {
		end := closingSlash(s)
		if end > 0 {
			tail := s[end+1:]
			if i := strings.IndexByte(tail, '#'); i >= 0 {
				return strings.TrimSpace(s[:end+1+i])
			}

			return s
		}
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) && s[i+1] == '#' {
			b.WriteByte('#')
			i++
			continue
		}

		if c == '#' {
			break
		}

		b.WriteByte(c)
	}

	return strings.TrimSpace(b.String())
}
