package secsearch

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// rareWordMaxDocs is the document-frequency cutoff below which a word is
// "rare" and strengthens relationship edges between the articles sharing it.
const rareWordMaxDocs = 5

// generatedIDPrefix tags article IDs derived from a URL hash when the source
// record carries none.
const generatedIDPrefix = "web_"

// defaultTopic labels incrementally added articles that carry no topic.
const defaultTopic = "Web Search"

// Indexer owns the article corpus and every structure built over it: the
// inverted index, per-article term frequencies, the vocabulary trie, the
// ordered ID tree and the relationship graph.
//
// Writers (LoadCorpus, AddArticles, BuildRelationships) run exclusively;
// accessors and ranking read under a shared lock, so a rank call always sees
// a consistent corpus snapshot.
type Indexer struct {
	mu sync.RWMutex

	articles   []*Article
	byID       map[string]*Article
	postings   map[string]map[string]struct{} // word -> set of article IDs
	wordCounts map[string]map[string]int      // article ID -> word -> count
	docLen     map[string]int                 // article ID -> total token count
	vocab      *Trie
	topics     map[string][]string // topic -> article IDs, insertion order
	tree       ArticleTree
	graph      *Graph
	queries    []string // sample queries from the corpus file
}

// NewIndexer creates an empty indexer.
func NewIndexer() *Indexer {
	return &Indexer{
		byID:       make(map[string]*Article),
		postings:   make(map[string]map[string]struct{}),
		wordCounts: make(map[string]map[string]int),
		docLen:     make(map[string]int),
		vocab:      NewTrie(),
		topics:     make(map[string][]string),
		graph:      NewGraph(),
	}
}

// LoadCorpus indexes every article of the given topic groups and records
// their sample queries. Any malformed record aborts loading with an error:
// a partial corpus is not a usable state, so callers treat this as fatal.
func (ix *Indexer) LoadCorpus(groups []TopicGroup) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	for gi, g := range groups {
		if g.Topic == "" {
			return fmt.Errorf("corpus group %d: missing topic", gi)
		}
		ix.queries = append(ix.queries, g.Queries...)
		for ai, rec := range g.Articles {
			a := rec
			a.Topic = g.Topic
			if a.ID == "" || a.Title == "" || a.URL == "" {
				return fmt.Errorf("corpus group %q article %d: missing unique_id, title or url", g.Topic, ai)
			}
			if _, dup := ix.byID[a.ID]; dup {
				return fmt.Errorf("corpus group %q article %d: duplicate id %q", g.Topic, ai, a.ID)
			}
			if a.Content == "" {
				a.Content = a.Title + " " + a.Topic
			}
			ix.indexArticleLocked(&a)
		}
	}
	return nil
}

// indexArticleLocked stores one article in every structure. Caller holds the
// write lock and has already rejected duplicate IDs.
func (ix *Indexer) indexArticleLocked(a *Article) {
	ix.articles = append(ix.articles, a)
	ix.byID[a.ID] = a
	ix.topics[a.Topic] = append(ix.topics[a.Topic], a.ID)
	ix.tree.Insert(a)
	ix.graph.AddVertex(a.ID)

	words := Tokenize(a.Title + " " + a.Content)
	counts := make(map[string]int, len(words))
	for _, w := range words {
		counts[w]++
	}
	ix.wordCounts[a.ID] = counts
	ix.docLen[a.ID] = len(words)

	for w := range counts {
		set, ok := ix.postings[w]
		if !ok {
			set = make(map[string]struct{})
			ix.postings[w] = set
		}
		set[a.ID] = struct{}{}
		ix.vocab.Insert(w)
	}
}

// BuildRelationships rebuilds the relationship edges over the whole corpus:
// first a topic pass (articles sharing a topic get an edge of weight 1.0),
// then a rare-word pass (a first shared rare word contributes 0.5 when the
// pair has no edge yet, every further one adds 0.3). Existing edges are
// cleared first so a rerun does not double-count.
func (ix *Indexer) BuildRelationships() {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.graph.ClearEdges()
	for _, ids := range ix.topics {
		ix.linkTopicPairsLocked(ids)
	}

	rare := make([]string, 0)
	for w, set := range ix.postings {
		if len(set) <= rareWordMaxDocs {
			rare = append(rare, w)
		}
	}
	sort.Strings(rare)
	for _, w := range rare {
		ix.linkRareWordPairsLocked(sortedIDs(ix.postings[w]), nil)
	}
}

// linkTopicPairsLocked gives every pair of the given IDs a topic edge.
func (ix *Indexer) linkTopicPairsLocked(ids []string) {
	for i, a := range ids {
		for _, b := range ids[i+1:] {
			ix.graph.SetEdge(a, b, 1.0)
		}
	}
}

// linkRareWordPairsLocked accumulates rare-word weight between every pair of
// the given IDs. When within is non-nil only pairs fully inside that set are
// linked (the incremental-add case).
func (ix *Indexer) linkRareWordPairsLocked(ids []string, within map[string]struct{}) {
	for i, a := range ids {
		if within != nil {
			if _, ok := within[a]; !ok {
				continue
			}
		}
		for _, b := range ids[i+1:] {
			if within != nil {
				if _, ok := within[b]; !ok {
					continue
				}
			}
			if w, ok := ix.graph.EdgeWeight(a, b); ok {
				ix.graph.SetEdge(a, b, w+0.3)
			} else {
				ix.graph.SetEdge(a, b, 0.5)
			}
		}
	}
}

// AddArticles indexes a batch of new articles at runtime and returns how
// many were actually added. Records without an ID get one derived from the
// URL (a fixed md5 prefix tagged "web_"); records whose ID already exists
// are silently skipped. New articles receive relationship edges within the
// batch only; edges to previously indexed articles appear once
// BuildRelationships is rerun over the full corpus. Callers must refresh
// the ranker's IDF cache (Ranker.UpdateIDF) before the next rank.
func (ix *Indexer) AddArticles(recs []Article) (int, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	added := 0
	batch := make(map[string]struct{})
	var batchIDs []string

	for ri, rec := range recs {
		a := rec
		if a.ID == "" {
			if a.URL == "" {
				return added, fmt.Errorf("article %d: no id and no url to derive one from", ri)
			}
			a.ID = GenerateArticleID(a.URL)
		}
		if a.Title == "" {
			return added, fmt.Errorf("article %d: missing title", ri)
		}
		if _, dup := ix.byID[a.ID]; dup {
			continue
		}
		if a.Topic == "" {
			a.Topic = defaultTopic
		}
		if a.Content == "" {
			a.Content = a.Title + " " + a.Topic
		}
		ix.indexArticleLocked(&a)
		batch[a.ID] = struct{}{}
		batchIDs = append(batchIDs, a.ID)
		added++
	}

	if added > 1 {
		ix.linkBatchLocked(batch, batchIDs)
	}
	return added, nil
}

// linkBatchLocked runs the topic and rare-word passes restricted to a batch
// of freshly added IDs. Rarity is still judged against corpus-wide document
// frequency.
func (ix *Indexer) linkBatchLocked(batch map[string]struct{}, batchIDs []string) {
	byTopic := make(map[string][]string)
	for _, id := range batchIDs {
		t := ix.byID[id].Topic
		byTopic[t] = append(byTopic[t], id)
	}
	for _, ids := range byTopic {
		ix.linkTopicPairsLocked(ids)
	}

	seen := make(map[string]struct{})
	var words []string
	for _, id := range batchIDs {
		for w := range ix.wordCounts[id] {
			if _, ok := seen[w]; !ok {
				seen[w] = struct{}{}
				words = append(words, w)
			}
		}
	}
	sort.Strings(words)
	for _, w := range words {
		set := ix.postings[w]
		if len(set) > rareWordMaxDocs {
			continue
		}
		ix.linkRareWordPairsLocked(sortedIDs(set), batch)
	}
}

// GenerateArticleID derives a stable article ID from a URL: "web_" plus the
// first ten hex digits of the URL's md5.
func GenerateArticleID(url string) string {
	sum := md5.Sum([]byte(url))
	return generatedIDPrefix + hex.EncodeToString(sum[:])[:10]
}

// Article returns the article with the given ID, or nil if unknown.
func (ix *Indexer) Article(id string) *Article {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.byID[id]
}

// TreeSearch looks the ID up through the ordered tree instead of the map.
func (ix *Indexer) TreeSearch(id string) *Article {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.tree.Search(id)
}

// ArticlesByWord returns the IDs of every article containing the word, in
// sorted order. Unknown words yield no IDs.
func (ix *Indexer) ArticlesByWord(word string) []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return sortedIDs(ix.postings[strings.ToLower(word)])
}

// WordFreq returns a copy of the word-count table for the article, empty if
// the ID is unknown.
func (ix *Indexer) WordFreq(id string) map[string]int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make(map[string]int, len(ix.wordCounts[id]))
	for w, c := range ix.wordCounts[id] {
		out[w] = c
	}
	return out
}

// Articles returns all articles in insertion order.
func (ix *Indexer) Articles() []*Article {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]*Article, len(ix.articles))
	copy(out, ix.articles)
	return out
}

// ArticlesByTopic returns the articles under a topic in insertion order.
func (ix *Indexer) ArticlesByTopic(topic string) []*Article {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	ids := ix.topics[topic]
	out := make([]*Article, 0, len(ids))
	for _, id := range ids {
		out = append(out, ix.byID[id])
	}
	return out
}

// TotalArticles returns the corpus size.
func (ix *Indexer) TotalArticles() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.articles)
}

// HasWord reports whether the word is in the indexed vocabulary.
func (ix *Indexer) HasWord(word string) bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.vocab.Contains(strings.ToLower(word))
}

// VocabularySize returns the number of distinct indexed words.
func (ix *Indexer) VocabularySize() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.vocab.Len()
}

// VocabularyWords enumerates the vocabulary in lexicographic order.
func (ix *Indexer) VocabularyWords() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.vocab.Words()
}

// RelatedArticles returns up to limit neighbor IDs of the given article,
// strongest relationship first (ties broken by ID). Unknown IDs or a
// non-positive limit yield no results.
func (ix *Indexer) RelatedArticles(id string, limit int) []string {
	if limit <= 0 {
		return nil
	}
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	neighbors := ix.graph.Neighbors(id)
	if len(neighbors) == 0 {
		return nil
	}
	type related struct {
		id     string
		weight float64
	}
	rel := make([]related, 0, len(neighbors))
	for _, n := range neighbors {
		w, _ := ix.graph.EdgeWeight(id, n)
		rel = append(rel, related{id: n, weight: w})
	}
	sort.Slice(rel, func(i, j int) bool {
		if rel[i].weight != rel[j].weight {
			return rel[i].weight > rel[j].weight
		}
		return rel[i].id < rel[j].id
	})
	if len(rel) > limit {
		rel = rel[:limit]
	}
	out := make([]string, len(rel))
	for i, r := range rel {
		out[i] = r.id
	}
	return out
}

// RelationWeight returns the relationship weight between two articles and
// whether they are related at all.
func (ix *Indexer) RelationWeight(a, b string) (float64, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.graph.EdgeWeight(a, b)
}

// SampleQueries returns the corpus-supplied sample queries in file order.
func (ix *Indexer) SampleQueries() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]string, len(ix.queries))
	copy(out, ix.queries)
	return out
}

func sortedIDs(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
