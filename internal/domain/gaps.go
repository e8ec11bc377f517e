package domain

import "strings"

// GapToken marks a fill-in blank inside a question template. There is no
// escape sequence; a literal "[[]]" in question text is always a gap.
const GapToken = "[[]]"

// CountGaps returns the number of non-overlapping gap tokens in template.
func CountGaps(template string) int {
	return strings.Count(template, GapToken)
}

// GapCount returns the number of gaps a question is answered with. A
// template without tokens has exactly one implicit gap (index 0).
func GapCount(template string) int {
	if n := CountGaps(template); n > 0 {
		return n
	}
	return 1
}

// SplitTemplate returns the text segments around the gaps, so a renderer can
// interleave inputs: len(result) == CountGaps(template)+1.
func SplitTemplate(template string) []string {
	return strings.Split(template, GapToken)
}
