package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// DefaultLimit is used when Params.Limit is not positive.
const DefaultLimit = 20

// Params holds catalogue search parameters.
type Params struct {
	Query            string
	Limit            int
	PublicDomainOnly bool
}

// Hit is a single ranked match.
type Hit struct {
	BookID int64
	Score  float64
}

// GenreFacet counts hits per genre slug.
type GenreFacet struct {
	Slug  string
	Count int
}

// Result holds ranked hits for a query.
type Result struct {
	Query  string
	Total  uint64
	TookMs int64
	Hits   []Hit
	Genres []GenreFacet
}

// Search runs a ranked match over title, author and genre.
// Every word in the query must match at least one of the fields.
func (c *CatalogIndex) Search(ctx context.Context, params Params) (*Result, error) {
	words := strings.Fields(strings.ToLower(params.Query))
	if len(words) == 0 {
		return &Result{Query: params.Query, Hits: []Hit{}}, nil
	}

	limit := params.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	q := buildQuery(words, params.PublicDomainOnly)
	req := bleve.NewSearchRequestOptions(q, limit, 0, false)
	req.AddFacet("genres", bleve.NewFacetRequest("genre_slug", 20))

	c.mu.RLock()
	res, err := c.index.SearchInContext(ctx, req)
	c.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &Result{
		Query:  params.Query,
		Total:  res.Total,
		TookMs: res.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(res.Hits)),
	}
	for _, h := range res.Hits {
		id, ok := parseDocID(h.ID)
		if !ok {
			continue
		}
		result.Hits = append(result.Hits, Hit{BookID: id, Score: h.Score})
	}

	if facet, ok := res.Facets["genres"]; ok && facet.Terms != nil {
		for _, term := range facet.Terms.Terms() {
			result.Genres = append(result.Genres, GenreFacet{Slug: term.Term, Count: term.Count})
		}
		sort.SliceStable(result.Genres, func(i, j int) bool {
			return result.Genres[i].Count > result.Genres[j].Count
		})
	}

	return result, nil
}

func buildQuery(words []string, publicDomainOnly bool) query.Query {
	clauses := make([]query.Query, 0, len(words)+1)
	for _, w := range words {
		clauses = append(clauses, wordQuery(w))
	}

	if publicDomainOnly {
		pd := bleve.NewBoolFieldQuery(true)
		pd.SetField("public_domain")
		clauses = append(clauses, pd)
	}

	return bleve.NewConjunctionQuery(clauses...)
}

// wordQuery matches one word against every searchable field, with
// prefix matching on titles and authors for partial input.
func wordQuery(w string) query.Query {
	title := bleve.NewMatchQuery(w)
	title.SetField("title")
	title.SetBoost(3.0)

	author := bleve.NewMatchQuery(w)
	author.SetField("author")
	author.SetBoost(2.0)

	genreMatch := bleve.NewMatchQuery(w)
	genreMatch.SetField("genre")

	parts := []query.Query{title, author, genreMatch}

	if len(w) >= 2 {
		titlePrefix := bleve.NewPrefixQuery(w)
		titlePrefix.SetField("title")
		titlePrefix.SetBoost(0.5)

		authorPrefix := bleve.NewPrefixQuery(w)
		authorPrefix.SetField("author")
		authorPrefix.SetBoost(0.5)

		parts = append(parts, titlePrefix, authorPrefix)
	}

	return bleve.NewDisjunctionQuery(parts...)
}
