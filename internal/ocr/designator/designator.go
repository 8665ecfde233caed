// Package designator parses printed reference designators such as R12
// or C3.
package designator

import "strings"

// Chars is the character set of reference designators. Lowercase is
// excluded to reduce confusion (0/O, 1/I, etc.)
const Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Matches reports whether text is a designator of class: the class prefix
// followed by nothing or a number, so "R12" matches R but "RN1" does not.
func Matches(text, class string) bool {
	text, class = Normalize(text), Normalize(class)
	if class == "" || !strings.HasPrefix(text, class) {
		return false
	}
	for _, r := range text[len(class):] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Normalize strips whitespace and upper-cases s.
func Normalize(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}
