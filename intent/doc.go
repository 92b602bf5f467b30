// Package intent derives a structured Intent (candidate place plus
// weather/attractions request flags) from one raw utterance.
//
// Two extraction strategies exist:
//
//  1. PatternExtractor: an ordered regular-expression rule table with
//     stop-word filtering and a proper-noun fallback. Deterministic, no
//     external calls, never fails.
//  2. enhance.ModelExtractor (sibling package): delegates to a language
//     model and fails closed back to the pattern path.
//
// The rule table and stop-word list are data, so ordering and filtering are
// testable independently of control flow. Known limitation: capitalized
// sentence-starters can be mistaken for place names by the proper-noun
// fallback, and multi-word places are only captured up to three tokens.
package intent
