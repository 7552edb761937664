package recordform

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/noah-isme/care-record-api/internal/dto"
)

// Search returns the options whose label contains query, ignoring case and
// Unicode composition differences. A blank query matches everything. Input
// order is preserved.
func Search(items []dto.Option, query string) []dto.Option {
	out := make([]dto.Option, 0, len(items))
	folder := cases.Fold()
	needle := normalize(folder, query)
	if needle == "" {
		return append(out, items...)
	}
	for _, item := range items {
		if strings.Contains(normalize(folder, item.Label), needle) {
			out = append(out, item)
		}
	}
	return out
}

func normalize(folder cases.Caser, s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return folder.String(norm.NFC.String(s))
}
