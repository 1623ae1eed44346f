// Package codegen translates a parsed Kapila program into a single C
// translation unit, per spec.md §4.5: a fixed runtime preamble, one C
// function per user-defined word, and a main driving the remaining
// top-level statements. Lists and maps are out of scope for generated
// C; the generator leaves a comment marker in their place and
// continues, per spec.md §9's Open Question resolution.
package codegen

import "fmt"

// mangle renders a Kapila identifier as a legal C identifier:
// word_-prefixed, with every non-ASCII codepoint replaced by _<hex>_ so
// the mapping is deterministic and collision-free across the whole
// Kannada-plus-ASCII identifier space spec.md §3 allows.
func mangle(name string) string {
	out := "word_"
	for _, r := range name {
		if r < 0x80 && (isAlnum(r) || r == '_') {
			out += string(r)
		} else {
			out += fmt.Sprintf("_%x_", r)
		}
	}
	return out
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
