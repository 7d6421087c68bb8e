// Package coerce turns user-edited text into typed values and back.
//
// FromText walks an ordered rule list and returns the first match:
// structured text ({...} or [...] that parses as JSON), the literals true and
// false, decimal numbers, and finally the text itself. Structured text that
// fails to parse silently falls through to the next rule; coercion never
// reports an error.
//
// The inference is a heuristic, not a grammar. Text made only of digits
// becomes a number even when it was meant as a string (phone numbers,
// zero-padded codes), and the text "true" becomes a boolean.
package coerce
