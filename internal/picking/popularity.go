package picking

import (
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

const (
	popularityScale  = 137
	popularityRange  = 49000
	popularityOffset = 1000
)

// SyntheticPopularity derives a stable "views" figure in [1000, 50000) from a title. It is
// decoration for the panel, not a real counter. The title is NFC-normalized first so composed
// and decomposed spellings of the same title agree; the sum is over UTF-16 code units.
func SyntheticPopularity(title string) int {
	var sum int64
	for _, u := range utf16.Encode([]rune(norm.NFC.String(title))) {
		sum += int64(u)
	}
	return int(sum*popularityScale%popularityRange) + popularityOffset
}
