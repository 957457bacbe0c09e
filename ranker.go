package secsearch

import (
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/kljensen/snowball/english"
)

// Ranking constants. The dynamic threshold keeps everything scoring at least
// 5% of the top hit, but never cuts the result list below ten entries: the
// corpus is small and recall matters more than a clean tail.
const (
	maxEditDistance    = 2    // furthest vocabulary word a typo may correct to
	highIDFCutoff      = 2.0  // IDF above which a matched word counts as important
	weakScoreCutoff    = 0.05 // raw score needed when no important word matched
	thresholdFraction  = 0.05 // dynamic threshold as a fraction of the top score
	minResultsKept     = 10   // results always kept before the threshold applies
	importantWordBoost = 0.3
	coverageBoost      = 0.5
)

// Result is one ranked search hit.
type Result struct {
	Article *Article
	Score   float64
}

// Ranker scores articles against free-text queries with TF-IDF. It owns the
// IDF cache and a memoized vocabulary listing for fuzzy correction; both are
// rebuilt by UpdateIDF, which callers must invoke after every AddArticles
// batch.
type Ranker struct {
	ix   *Indexer
	stop *Trie

	mu         sync.Mutex
	idf        map[string]float64
	vocabWords []string // memoized trie enumeration, nil until first needed
}

// NewRanker creates a ranker over the indexer and precomputes IDF values.
func NewRanker(ix *Indexer) *Ranker {
	r := &Ranker{ix: ix, stop: DefaultStopwords()}
	r.UpdateIDF()
	return r
}

// UpdateIDF recomputes the IDF cache from the current corpus and drops the
// memoized vocabulary listing. With an empty corpus every IDF is 0.0.
func (r *Ranker) UpdateIDF() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ix.mu.RLock()
	defer r.ix.mu.RUnlock()

	total := len(r.ix.articles)
	r.idf = make(map[string]float64, len(r.ix.postings))
	for w, set := range r.ix.postings {
		if total > 0 && len(set) > 0 {
			r.idf[w] = math.Log(float64(total) / float64(len(set)))
		} else {
			r.idf[w] = 0.0
		}
	}
	r.vocabWords = nil
}

// IDF returns the cached inverse document frequency of a word, 0.0 if the
// word is unknown.
func (r *Ranker) IDF(word string) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.idf[strings.ToLower(word)]
}

// TF returns the term frequency of a word in an article: its count divided
// by the article's total token count, 0.0 for unknown articles or articles
// without tokens.
func (r *Ranker) TF(word, articleID string) float64 {
	r.ix.mu.RLock()
	defer r.ix.mu.RUnlock()
	return r.tfLocked(strings.ToLower(word), articleID)
}

func (r *Ranker) tfLocked(word, articleID string) float64 {
	total := r.ix.docLen[articleID]
	if total == 0 {
		return 0.0
	}
	return float64(r.ix.wordCounts[articleID][word]) / float64(total)
}

// TFIDF returns the TF-IDF score of a word in an article.
func (r *Ranker) TFIDF(word, articleID string) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ix.mu.RLock()
	defer r.ix.mu.RUnlock()
	w := strings.ToLower(word)
	return r.tfLocked(w, articleID) * r.idf[w]
}

// Rank scores the corpus against a query and returns up to topK results in
// descending score order, plus a "did you mean" suggestion when any query
// word was fuzzy-corrected ("" when none was). Queries that filter down to
// nothing return no results and no suggestion. minScore is the floor of the
// dynamic threshold.
func (r *Ranker) Rank(query string, topK int, minScore float64) ([]Result, string) {
	if topK <= 0 {
		topK = minResultsKept
	}

	filtered := FilterQuery(Tokenize(query), r.stop)
	if len(filtered) == 0 {
		return nil, ""
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.ix.mu.RLock()
	defer r.ix.mu.RUnlock()

	processed, suggestion := r.correctLocked(filtered)
	searchTerms := unionTerms(filtered, processed)

	scored := r.scoreLocked(searchTerms)
	if len(scored) == 0 {
		return nil, suggestion
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	threshold := math.Max(minScore, scored[0].Score*thresholdFraction)
	results := make([]Result, 0, topK)
	for _, hit := range scored {
		if hit.Score < threshold && len(results) >= minResultsKept {
			break
		}
		if hit.Score > 0 {
			results = append(results, hit)
			if len(results) >= topK {
				break
			}
		}
	}
	return results, suggestion
}

// correctLocked maps each filtered query word to itself when it is in the
// vocabulary, or to its closest vocabulary word within maxEditDistance
// otherwise. The second return is the joined suggestion string, "" when no
// word needed correction. Both locks are held.
func (r *Ranker) correctLocked(filtered []string) ([]string, string) {
	processed := make([]string, 0, len(filtered))
	corrected := false

	for _, word := range filtered {
		if r.ix.vocab.Contains(word) {
			processed = append(processed, word)
			continue
		}
		if best := r.closestVocabWordLocked(word); best != "" {
			processed = append(processed, best)
			corrected = true
		} else {
			processed = append(processed, word)
		}
	}

	if !corrected {
		return processed, ""
	}
	return processed, strings.Join(processed, " ")
}

// closestVocabWordLocked scans the vocabulary for the nearest word within
// maxEditDistance of the given one, "" when none qualifies. Words whose
// length differs by more than maxEditDistance are skipped before computing
// the distance. The vocabulary is enumerated in lexicographic order, so ties
// resolve to the lexicographically first candidate for a given snapshot.
func (r *Ranker) closestVocabWordLocked(word string) string {
	if r.vocabWords == nil {
		r.vocabWords = r.ix.vocab.Words()
	}

	best := ""
	minDist := maxEditDistance + 1
	for _, vw := range r.vocabWords {
		if diff := len(vw) - len(word); diff > maxEditDistance || diff < -maxEditDistance {
			continue
		}
		if d := EditDistance(word, vw); d <= maxEditDistance && d < minDist {
			minDist = d
			best = vw
		}
	}
	return best
}

// unionTerms is the effective search-term list: the filtered words followed
// by any corrected words not already among them, so the literal and the
// corrected spelling both contribute to scoring.
func unionTerms(filtered, processed []string) []string {
	seen := make(map[string]struct{}, len(filtered))
	for _, w := range filtered {
		seen[w] = struct{}{}
	}
	terms := make([]string, 0, len(filtered)+len(processed))
	terms = append(terms, filtered...)
	for _, w := range processed {
		if _, ok := seen[w]; !ok {
			terms = append(terms, w)
		}
	}
	return terms
}

// scoreLocked sums TF-IDF over the search terms for every article and
// applies the relevance boost. An article is kept only if it matched at
// least one term and either one of its matches was important (the term is a
// literal substring of the lowercased title, or its IDF exceeds
// highIDFCutoff) or its raw score clears weakScoreCutoff. Both locks are
// held; articles are visited in insertion order so equal scores keep it.
func (r *Ranker) scoreLocked(searchTerms []string) []Result {
	var scored []Result
	for _, a := range r.ix.articles {
		title := strings.ToLower(a.Title)
		score := 0.0
		matched := 0
		important := 0

		for _, w := range searchTerms {
			ws := r.tfLocked(w, a.ID) * r.idf[w]
			if ws <= 0 {
				continue
			}
			score += ws
			matched++
			if strings.Contains(title, w) || r.idf[w] > highIDFCutoff {
				important++
			}
		}

		if matched == 0 || (important == 0 && score <= weakScoreCutoff) {
			continue
		}
		boost := 1 + float64(matched)/float64(len(searchTerms))*coverageBoost
		if important > 0 {
			boost += float64(important) * importantWordBoost
		}
		scored = append(scored, Result{Article: a, Score: score * boost})
	}
	return scored
}

// TopArticles is a convenience wrapper returning just the articles of the
// top-ranked results.
func (r *Ranker) TopArticles(query string, limit int) []*Article {
	results, _ := r.Rank(query, limit, 0.001)
	out := make([]*Article, 0, len(results))
	for _, res := range results {
		out = append(out, res.Article)
	}
	return out
}

// RelatedTerms suggests up to max further search terms drawn from the
// articles matching the query, most widely co-occurring first. Stop words,
// short words, the query words themselves and their morphological variants
// (same snowball stem) are excluded, so "attacks" is never offered back for
// "attack".
func (r *Ranker) RelatedTerms(query string, max int) []string {
	if max <= 0 {
		return nil
	}
	filtered := FilterQuery(Tokenize(query), r.stop)
	if len(filtered) == 0 {
		return nil
	}

	queryStems := make(map[string]struct{}, len(filtered))
	for _, w := range filtered {
		queryStems[english.Stem(w, true)] = struct{}{}
	}

	r.ix.mu.RLock()
	defer r.ix.mu.RUnlock()

	matching := make(map[string]struct{})
	for _, w := range filtered {
		for id := range r.ix.postings[w] {
			matching[id] = struct{}{}
		}
	}

	counts := make(map[string]int)
	for id := range matching {
		for w := range r.ix.wordCounts[id] {
			if len(w) < minQueryTokenLen || r.stop.Contains(w) {
				continue
			}
			if _, ok := queryStems[english.Stem(w, true)]; ok {
				continue
			}
			counts[w]++
		}
	}

	terms := make([]string, 0, len(counts))
	for w := range counts {
		terms = append(terms, w)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > max {
		terms = terms[:max]
	}
	return terms
}
