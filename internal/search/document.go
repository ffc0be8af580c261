package search

import (
	"strconv"

	"github.com/bookcircle/bookcircle-server/internal/domain"
	"github.com/bookcircle/bookcircle-server/internal/genre"
)

// catalogDocument is the indexed form of a catalogue book.
type catalogDocument struct {
	Title        string  `json:"title"`
	Author       string  `json:"author"`
	Genre        string  `json:"genre"`
	GenreSlug    string  `json:"genre_slug"`
	Year         float64 `json:"year"`
	PublicDomain bool    `json:"public_domain"`
}

func newCatalogDocument(b *domain.CatalogBook) catalogDocument {
	return catalogDocument{
		Title:        b.Title,
		Author:       b.Author,
		Genre:        b.Genre,
		GenreSlug:    genre.Slugify(b.Genre),
		Year:         float64(b.Year),
		PublicDomain: b.IsPublicDomain,
	}
}

func docID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func parseDocID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	return id, err == nil
}
