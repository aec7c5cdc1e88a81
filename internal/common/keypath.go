package common

import "strings"

// KeyPath renders a key path as a dotted string ("en.common.hello").
// Segments that contain a dot are wrapped in brackets so the result stays
// unambiguous: ["en", "a.b"] renders as "en.[a.b]".
func KeyPath(segments []string) string {
	var b strings.Builder

	for i, s := range segments {
		if i > 0 {
			b.WriteByte('.')
		}

		if strings.Contains(s, ".") {
			b.WriteString("[" + s + "]")
			continue
		}

		b.WriteString(s)
	}

	return b.String()
}

// Last returns the last element of the slice and true, or the zero value and false if empty.
func Last[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[len(s)-1], true
}

// Append returns a new slice holding s followed by v. Unlike the builtin it
// never shares the backing array of s.
func Append[S ~[]E, E any](s S, v ...E) S {
	out := make(S, 0, len(s)+len(v))
	out = append(out, s...)

	return append(out, v...)
}
