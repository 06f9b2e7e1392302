package textutil

import "strings"

// fileNameReplacer maps filesystem-unsafe characters to safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName makes a digest label usable as a file name. Separators
// become dashes, other unsafe characters are dropped and runs of spaces
// collapse to one. Returns "digest" when nothing usable remains.
func SanitizeFileName(name string) string {
	cleaned := strings.Join(strings.Fields(fileNameReplacer.Replace(name)), " ")
	cleaned = strings.Trim(cleaned, " .")
	if cleaned == "" {
		return "digest"
	}
	return cleaned
}
