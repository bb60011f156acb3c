package pipeline

import (
	"strings"
)

// AppendAuthorRules appends promoted author entries to the author rule text,
// one per line. Entries already present as a line are not duplicated.
func AppendAuthorRules(text string, entries []string) string {
	present := make(map[string]bool)
	for _, line := range strings.Split(text, "\n") {
		present[strings.TrimSpace(line)] = true
	}

	var b strings.Builder
	b.WriteString(text)
	for _, e := range entries {
		if e == "" || present[e] {
			continue
		}

		present[e] = true
		if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
			b.WriteByte('\n')
		}

		b.WriteString(e)
		b.WriteByte('\n')
	}

	return b.String()
}

// RemoveAuthorRules removes, by value, exactly the given promoted entries
// from the author rule text. One occurrence is removed per entry; every
// other line is preserved verbatim. Used by the undo affordance.
func RemoveAuthorRules(text string, entries []string) string {
	pending := make(map[string]int, len(entries))
	for _, e := range entries {
		if e != "" {
			pending[e]++
		}
	}

	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		v := strings.TrimSpace(line)
		if pending[v] > 0 {
			pending[v]--
			continue
		}

		kept = append(kept, line)
	}

	return strings.Join(kept, "\n")
}
