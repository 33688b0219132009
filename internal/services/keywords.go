package services

import (
	"sort"
	"strings"

	"github.com/jdkato/prose/v2"
)

// QueryKeywordExtractor reduces a free-text question to its highest-signal
// terms so substring search has something to match. "any cheap calculators
// for sale?" never substring-matches a product titled "Calculator", but its
// extracted keywords do.
type QueryKeywordExtractor struct {
	stopWords map[string]bool
	minLength int
}

// NewQueryKeywordExtractor creates a keyword extractor for search queries
func NewQueryKeywordExtractor() *QueryKeywordExtractor {
	stopWords := map[string]bool{
		"the": true, "a": true, "an": true, "and": true, "or": true,
		"is": true, "are": true, "was": true, "be": true, "do": true,
		"does": true, "have": true, "has": true, "for": true, "of": true,
		"in": true, "on": true, "at": true, "to": true, "with": true,
		"any": true, "some": true, "what": true, "which": true, "how": true,
		"much": true, "many": true, "there": true, "sale": true,
		"buy": true, "sell": true, "price": true, "cost": true,
	}
	return &QueryKeywordExtractor{
		stopWords: stopWords,
		minLength: 3,
	}
}

type scoredKeyword struct {
	word  string
	score float64
}

// Extract returns up to max keywords ranked by part-of-speech signal.
// Nouns and named entities score highest; adjectives are kept with a lower
// score so qualifiers like "scientific" still contribute.
func (e *QueryKeywordExtractor) Extract(query string, max int) ([]string, error) {
	doc, err := prose.NewDocument(query)
	if err != nil {
		return nil, err
	}

	scores := make(map[string]float64)
	for _, tok := range doc.Tokens() {
		word := strings.ToLower(tok.Text)
		if len(word) < e.minLength || e.stopWords[word] {
			continue
		}

		var score float64
		switch {
		case strings.HasPrefix(tok.Tag, "NNP"):
			score = 2.0
		case strings.HasPrefix(tok.Tag, "NN"):
			score = 1.5
		case strings.HasPrefix(tok.Tag, "JJ"):
			score = 1.0
		default:
			continue
		}
		scores[word] += score
	}

	// Named entities get a boost on top of their token score
	for _, ent := range doc.Entities() {
		word := strings.ToLower(ent.Text)
		if len(word) >= e.minLength && !e.stopWords[word] {
			scores[word] += 2.0
		}
	}

	ranked := make([]scoredKeyword, 0, len(scores))
	for word, score := range scores {
		ranked = append(ranked, scoredKeyword{word, score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].word < ranked[j].word
	})

	if max > 0 && len(ranked) > max {
		ranked = ranked[:max]
	}

	keywords := make([]string, len(ranked))
	for i, kw := range ranked {
		keywords[i] = kw.word
	}
	return keywords, nil
}
