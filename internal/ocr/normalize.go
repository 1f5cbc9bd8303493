package ocr

import (
	"regexp"
	"strings"
)

var reCRLF = regexp.MustCompile(`\r\n?`)

// RemoveDuplicateLines drops leading lines that are repeated further down the
// text, which the analysis service produces when a value spans a region twice.
// "A\nB\nA\nC" becomes "B\nA\nC".
func RemoveDuplicateLines(s string) string {
	s = reCRLF.ReplaceAllString(s, "\n")
	lines := strings.Split(s, "\n")
	for len(lines) > 1 {
		head := lines[0]
		repeated := false
		for _, l := range lines[1:] {
			if l == head {
				repeated = true
				break
			}
		}
		if !repeated {
			break
		}
		lines = lines[1:]
	}
	return strings.Join(lines, "\n")
}
