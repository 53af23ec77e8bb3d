package receipt

import (
	"strings"
	"unicode"
)

// SplitLabel separates a leading product code from an item label.
// "123 Bread" yields ("123", "Bread"); when the first space-separated token
// is not purely numeric, or nothing follows it, the code is empty and the
// whole label is returned as the name.
func SplitLabel(label string) (code, name string) {
	head, rest, found := strings.Cut(label, " ")
	if !found || rest == "" || !isNumeric(head) {
		return "", label
	}
	return head, rest
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}

func collapseSpaces(s string) string {
	parts := strings.Split(s, " ")
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
