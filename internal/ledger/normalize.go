package ledger

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeDescription folds a description into its duplicate-detection key:
// lower-cased, accents stripped, all whitespace removed. "Cotisation Mai 2024"
// and "cotisation  mai 2024" collapse to the same key. The comparison built on
// top of this is exact equality, never fuzzy matching.
func NormalizeDescription(s string) string {
	// transform.Chain buffers internally, so build it per call.
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(stripper, s)
	if err != nil {
		stripped = s
	}
	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range strings.ToLower(stripped) {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// HasSettledDuplicate reports whether the owner already holds a fully paid
// record whose description normalizes to the same key as the candidate. Used
// to refuse opening a second due for the same month.
func HasSettledDuplicate(records []Record, ownerID int64, description string) bool {
	key := NormalizeDescription(description)
	for _, r := range records {
		if r.OwnerID != ownerID {
			continue
		}
		if Remaining(r) > 0 {
			continue
		}
		if NormalizeDescription(r.Description) == key {
			return true
		}
	}
	return false
}
