package search

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// fold case-folds s for comparisons. A new Caser is taken per call because
// cases.Caser is not safe for concurrent use.
func fold(s string) string {
	return cases.Fold().String(s)
}

// tokenize splits folded text on anything that is not a letter or digit.
func tokenize(s string) []string {
	return strings.FieldsFunc(fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func metadataText(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case []string:
		return strings.Join(typed, ", ")
	default:
		return fmt.Sprint(typed)
	}
}
