package insert

import "strings"

// Qualifier is the closed set of embedding selectors carried by the first
// argument of an insert command. Exactly two variants exist; extending the
// dispatch means adding a variant here, not string-matching elsewhere.
type Qualifier interface {
	isQualifier()
}

// Language selects the code-embedding strategy for the named language.
type Language struct {
	Name string
}

// Plot selects the plot-embedding strategy. ID is an optional disambiguating
// suffix used when a script produces multiple images sharing a root name.
type Plot struct {
	ID string
}

func (Language) isQualifier() {}
func (Plot) isQualifier()     {}

// ParseQualifier case-folds the raw qualifier and classifies it. Strings
// starting with "plot" split on the first colon: the remainder, colons
// included, becomes the plot ID. Every other string is a language name.
func ParseQualifier(raw string) Qualifier {
	folded := strings.ToLower(strings.TrimSpace(raw))
	if strings.HasPrefix(folded, "plot") {
		if idx := strings.IndexByte(folded, ':'); idx >= 0 {
			return Plot{ID: folded[idx+1:]}
		}
		return Plot{}
	}
	return Language{Name: folded}
}
