package content

import (
	"regexp"
	"sort"
	"strings"
)

// maxCandidateLen bounds tokens considered as class names.
const maxCandidateLen = 256

var (
	templateTag = regexp.MustCompile(`(?s)\{%.*?%\}|\{\{.*?\}\}|\{#.*?#\}`)

	variantRe = regexp.MustCompile(`^@?[a-z0-9][a-z0-9-]*(-\[[^\]\s]+\])?(/[a-z0-9-]+)?$|^\[[^\]\s]+\]$`)

	utilityRe = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9.]+)*(-\[[^\]\s]+\])?(/([a-z0-9.]+|\[[^\]\s]+\]))?$`)

	arbitraryPropertyRe = regexp.MustCompile(`^\[[a-z-]+:[^\]\s]+\]$`)
)

// Extract returns the sorted, de-duplicated class-name candidates in src.
// Template tags are dropped before tokenizing; tokens that cannot be a
// utility class are discarded.
func Extract(src []byte) []string {
	text := templateTag.ReplaceAllStringFunc(string(src), func(m string) string {
		return strings.Repeat(" ", len(m))
	})

	seen := make(map[string]struct{})
	for _, tok := range tokenize(text) {
		if IsCandidate(tok) {
			seen[tok] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// tokenize splits text on characters that cannot appear in a class name.
// Inside square brackets only whitespace separates.
func tokenize(text string) []string {
	var (
		toks  []string
		depth int
		start = -1
	)

	flush := func(end int) {
		if start >= 0 && end > start {
			toks = append(toks, text[start:end])
		}
		start = -1
	}

	for i, r := range text {
		sep := false
		switch r {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			sep = true
			depth = 0
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case '"', '\'', '`', '<', '>', '=', '{', '}', '(', ')', ',', ';':
			sep = depth == 0
		}

		if sep {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(text))
	return toks
}

// IsCandidate reports whether tok has the shape of a utility class with
// optional variants, important marker, negative marker, arbitrary value and
// modifier.
func IsCandidate(tok string) bool {
	if tok == "" || len(tok) > maxCandidateLen || strings.Contains(tok, "//") {
		return false
	}

	parts := splitVariants(tok)
	utility := parts[len(parts)-1]
	for _, v := range parts[:len(parts)-1] {
		if !variantRe.MatchString(v) {
			return false
		}
	}

	if arbitraryPropertyRe.MatchString(utility) {
		return true
	}

	utility = strings.TrimPrefix(utility, "!")
	utility = strings.TrimSuffix(utility, "!")
	utility = strings.TrimPrefix(utility, "-")
	return utilityRe.MatchString(utility)
}

// splitVariants splits tok on colons outside square brackets.
func splitVariants(tok string) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i := 0; i < len(tok); i++ {
		switch tok[i] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case ':':
			if depth == 0 {
				parts = append(parts, tok[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, tok[start:])
}

// utilityOf returns the utility part of a candidate with variants and
// important and negative markers removed.
func utilityOf(tok string) string {
	parts := splitVariants(tok)
	u := parts[len(parts)-1]
	u = strings.TrimPrefix(u, "!")
	return strings.TrimPrefix(u, "-")
}
