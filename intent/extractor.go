package intent

import (
	"regexp"
	"strings"
	"unicode"
)

// Rule pairs a compiled pattern with the index of the capture group that
// holds the candidate place phrase. First matching rule wins.
type Rule struct {
	Pattern *regexp.Regexp
	Group   int
}

// phrase captures 1-3 whitespace-separated alphabetic tokens.
const phrase = `([a-zA-Z]+(?:\s+[a-zA-Z]+){0,2})`

// rules is the ordered extraction table. More specific patterns that would
// otherwise be shadowed come after the generic preposition rule to preserve
// the original first-match semantics.
var rules = []Rule{
	{Pattern: regexp.MustCompile(`(?i)\b(?:in|to|at)\s+` + phrase), Group: 1},
	{Pattern: regexp.MustCompile(`(?i)\b(?:weather|temperature|temp|climate)\s+(?:in|at|for)\s+` + phrase + `\b`), Group: 1},
	{Pattern: regexp.MustCompile(`(?i)\b(?:go|going|visit|visiting)\s+(?:to\s+)?` + phrase + `\b`), Group: 1},
	{Pattern: regexp.MustCompile(`(?i)^` + phrase + `\s+(?:trip|weather|temperature|places|attractions|visit)\b`), Group: 1},
}

// stopWords are tokens that never belong to a place name.
var stopWords = map[string]struct{}{
	"the": {}, "what": {}, "is": {}, "are": {}, "a": {}, "an": {},
	"my": {}, "your": {}, "let": {}, "me": {}, "i": {}, "you": {},
}

// fallbackSkip excludes common sentence openers from the proper-noun fallback.
var fallbackSkip = map[string]struct{}{
	"what": {}, "the": {}, "and": {}, "or": {},
}

// ExtractPlace proposes a candidate place name from raw text, or "" when
// none is found. It applies the rule table first and falls back to scanning
// for capitalized tokens (proper nouns).
func ExtractPlace(text string) string {
	for _, rule := range rules {
		m := rule.Pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if place := cleanPhrase(m[rule.Group]); place != "" {
			return place
		}
	}
	return properNounFallback(text)
}

// cleanPhrase drops stop words from a captured phrase and title-cases the
// remainder. Returns "" when nothing survives filtering.
func cleanPhrase(captured string) string {
	var kept []string
	for _, tok := range strings.Fields(captured) {
		if _, stop := stopWords[strings.ToLower(tok)]; stop {
			continue
		}
		kept = append(kept, titleCase(tok))
	}
	return strings.Join(kept, " ")
}

// properNounFallback collects tokens longer than two runes that start with
// an uppercase letter, skipping common sentence openers.
func properNounFallback(text string) string {
	var kept []string
	for _, tok := range strings.Fields(text) {
		runes := []rune(tok)
		if len(runes) <= 2 || !unicode.IsUpper(runes[0]) {
			continue
		}
		if _, skip := fallbackSkip[strings.ToLower(tok)]; skip {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// titleCase uppercases the first rune of a token and lowercases the rest.
func titleCase(tok string) string {
	runes := []rune(strings.ToLower(tok))
	if len(runes) == 0 {
		return tok
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
