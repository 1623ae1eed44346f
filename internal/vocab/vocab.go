// Package vocab centralizes the Kannada/English word aliases shared by
// the parser, the virtual machine, and the C code generator, so the
// alias table lives in exactly one place instead of being duplicated
// across every consumer (spec.md §6).
package vocab

// aliasGroups lists every canonical operation together with every
// spelling (Kannada or English) that refers to it. Multiple Kannada
// spellings for the same operation are common (e.g. "ಕೂಡು"/"ಕೂಡಿಸು"
// both mean "+"); every spelling in a group resolves to the same
// canonical name.
var aliasGroups = [][]string{
	{"+", "ಕೂಡು", "ಕೂಡಿಸು"},
	{"-", "ಕಳೆ", "ಕಳೆಯಿರಿ"},
	{"*", "ಗುಣಿಸು", "ಗುಣಾಕಾರ"},
	{"/", "ಭಾಗಿಸು", "ಭಾಗಾಕಾರ"},
	{"%", "ಶೇಷ"},
	{"=", "ಸಮ"},
	{"!=", "ಸಮನಲ್ಲ"},
	{"<", "ಕಿರಿದು"},
	{">", "ಹಿರಿದು"},
	{"<=", "ಕಿರಿದುಸಮ"},
	{">=", "ಹಿರಿದುಸಮ"},
	{"dup", "ನಕಲು"},
	{"drop", "ಬಿಡು"},
	{"swap", "ಅದಲುಬದಲು"},
	{"over", "ಮೇಲೆ"},
	{"rot", "ತಿರುಗಿಸು"},
	{"and", "ಮತ್ತು"},
	{"or", "ಅಥವಾ"},
	{"not", "ಅಲ್ಲ"},
	{"print", "ಮುದ್ರಿಸು"},
	{"length", "ಉದ್ದ"},
	{"nth", "ತೆಗೆ"},
	{"append", "ಸೇರಿಸು"},
	{"first", "ಮೊದಲ"},
	{"rest", "ಉಳಿದ"},
	{",", "ಜೋಡಿಸು"},
	{"map", "ನಕ್ಷೆ"},
	{"filter", "ಸೋಸು"},
	{"fold", "ಮಡಿಸು"},
	{"each", "ಪ್ರತಿಯೊಂದಕ್ಕೂ"},
	{"times", "ಸಾರಿ"},
	{"do", "ಮಾಡು", "ಕರೆ"},
	{"true", "ನಿಜ", "ಸರಿ", "ಹೌದು"},
	{"false", "ಸುಳ್ಳು", "ತಪ್ಪು", "ಬೇಸ", "ಇಲ್ಲ"},
}

// canonical maps every spelling (including the canonical name itself)
// to its canonical name.
var canonical = buildCanonicalMap()

func buildCanonicalMap() map[string]string {
	m := make(map[string]string)
	for _, group := range aliasGroups {
		name := group[0]
		m[name] = name
		for _, alias := range group[1:] {
			m[alias] = name
		}
	}
	return m
}

// Canonical resolves any spelling to its canonical operation name,
// returning the input unchanged (ok=false) if it names no known
// operation.
func Canonical(word string) (name string, ok bool) {
	name, ok = canonical[word]
	return name, ok
}

// Is reports whether word is any spelling of the named canonical
// operation, e.g. Is(word, "true").
func Is(word, canonicalName string) bool {
	name, ok := canonical[word]
	return ok && name == canonicalName
}

// IsBoolKeyword reports whether word spells the boolean literal true
// or false, and if so which value it denotes.
func IsBoolKeyword(word string) (value bool, ok bool) {
	name, found := canonical[word]
	if !found {
		return false, false
	}
	switch name {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}
