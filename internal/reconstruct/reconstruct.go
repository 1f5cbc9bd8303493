// Package reconstruct restores the line breaks the analysis service flattened
// out of multi-line field contents.
package reconstruct

import (
	"strings"

	"github.com/lgarreta/ecuapassdocs/internal/geometry"
	"github.com/lgarreta/ecuapassdocs/internal/ocr"
)

// Reconstruct returns a copy of fields where, for every line that lies inside a
// field, the first "<line> " in that field's content becomes "<line>\n".
//
// Lines are taken in page order. For each line, fields are scanned in
// declaration order and the first containing field wins. The input set is not
// modified. Running Reconstruct on its own output changes nothing: a line whose
// break is already present is skipped.
func Reconstruct(lines []ocr.Line, fields *ocr.FieldSet) *ocr.FieldSet {
	out := fields.Clone()
	names := out.Names()
	// cursor[field] is the offset just past the last line placed in the field.
	cursor := map[string]int{}

	for _, line := range lines {
		if line.Content == "" {
			continue
		}
		for _, name := range names {
			f := out.Get(name)
			if !geometry.IsContained(line, f) {
				continue
			}
			content := *f.Content
			pos := findLine(content, line.Content, cursor[name])
			if pos < 0 {
				pos = findLine(content, line.Content, 0)
			}
			if pos >= 0 {
				end := pos + len(line.Content)
				if end < len(content) && content[end] == ' ' {
					content = content[:end] + "\n" + content[end+1:]
					f.Content = &content
				}
				cursor[name] = min(end+1, len(content))
			}
			break
		}
	}
	return out
}

// findLine returns the offset of the first occurrence of text at or after from
// that ends the content or is followed by a space or a line break, or -1.
func findLine(content, text string, from int) int {
	for i := from; i <= len(content); {
		j := strings.Index(content[i:], text)
		if j < 0 {
			return -1
		}
		p := i + j
		end := p + len(text)
		if end == len(content) || content[end] == ' ' || content[end] == '\n' {
			return p
		}
		i = p + 1
	}
	return -1
}
