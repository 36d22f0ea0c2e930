package content

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FolderName derives a topic's content-folder name from its display name when
// the source rows do not declare one: diacritics stripped, apostrophes
// removed, spaces replaced with underscores ("Newton's Laws" → "Newtons_Laws").
func FolderName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	folded = strings.NewReplacer("'", "", "’", "").Replace(folded)
	return strings.ReplaceAll(strings.TrimSpace(folded), " ", "_")
}
