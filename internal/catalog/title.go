package catalog

import (
	"strings"
	"unicode"
)

// defaultTitle derives a display title from a file stem or directory name:
// "-" and "_" become spaces, then every run of letters is capitalized
// ("suduko-solver" -> "Suduko Solver", "my_app2go" -> "My App2Go").
func defaultTitle(name string) string {
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)

	var b strings.Builder
	b.Grow(len(name))
	inWord := false
	for _, r := range name {
		if unicode.IsLetter(r) {
			if inWord {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToTitle(r))
			}
			inWord = true
			continue
		}
		inWord = false
		b.WriteRune(r)
	}
	return b.String()
}

// splitExt splits name into stem and extension. Leading dots do not
// start an extension, so ".png" and "..png" have none.
func splitExt(name string) (stem, ext string) {
	lead := len(name) - len(strings.TrimLeft(name, "."))
	i := strings.LastIndexByte(name, '.')
	if i < lead || i == len(name)-1 {
		return name, ""
	}
	return name[:i], name[i:]
}
