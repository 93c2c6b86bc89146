package answer

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/docqa/backend/internal/models"
)

// maxExcerptSentences bounds how many sentences an excerpt answer quotes.
const maxExcerptSentences = 2

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "was": {}, "were": {}, "what": {},
	"which": {}, "who": {}, "whom": {}, "how": {}, "why": {}, "when": {}, "where": {},
	"does": {}, "did": {}, "this": {}, "that": {}, "these": {}, "those": {}, "with": {},
	"from": {}, "about": {}, "into": {}, "your": {}, "you": {}, "can": {}, "there": {},
	"their": {}, "they": {}, "have": {}, "has": {}, "had": {}, "document": {}, "tell": {},
}

// ExcerptAnswerer answers offline by quoting the sentences that share the
// most words with the question.
type ExcerptAnswerer struct{}

// NewExcerptAnswerer creates an offline answerer.
func NewExcerptAnswerer() *ExcerptAnswerer {
	return &ExcerptAnswerer{}
}

func (e *ExcerptAnswerer) Name() string {
	return ProviderExcerpt
}

func (e *ExcerptAnswerer) Answer(ctx context.Context, doc *models.Document, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	terms := keywords(question)
	sentences := splitSentences(doc.Content)

	type scored struct {
		idx   int
		score int
	}
	var hits []scored
	for i, s := range sentences {
		words := keywords(s)
		score := 0
		for w := range terms {
			if _, ok := words[w]; ok {
				score++
			}
		}
		if score > 0 {
			hits = append(hits, scored{idx: i, score: score})
		}
	}

	if len(hits) == 0 {
		return fmt.Sprintf("I couldn't find a passage in %s that answers that question.", doc.Name), nil
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})
	if len(hits) > maxExcerptSentences {
		hits = hits[:maxExcerptSentences]
	}
	// Quote in document order.
	sort.Slice(hits, func(i, j int) bool {
		return hits[i].idx < hits[j].idx
	})

	parts := make([]string, 0, len(hits))
	for _, h := range hits {
		parts = append(parts, sentences[h.idx])
	}
	return fmt.Sprintf("From %s: %s", doc.Name, strings.Join(parts, " ")), nil
}

func splitSentences(text string) []string {
	var out []string
	var b strings.Builder
	flush := func() {
		s := strings.Join(strings.Fields(b.String()), " ")
		if s != "" {
			out = append(out, s)
		}
		b.Reset()
	}
	for _, r := range text {
		switch r {
		case '.', '!', '?':
			b.WriteRune(r)
			flush()
		case '\n':
			flush()
		default:
			b.WriteRune(r)
		}
	}
	flush()
	return out
}

func keywords(text string) map[string]struct{} {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if len(w) < 3 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}
