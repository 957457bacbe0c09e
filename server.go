package secsearch

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Server is the thin HTTP presentation layer over the indexer and ranker.
// It owns the per-process navigation history and recent-query list; all
// ranking state lives in the injected Ranker.
type Server struct {
	ix     *Indexer
	ranker *Ranker

	limiter *rate.Limiter

	mu     sync.Mutex
	recent *RecentQueries
	nav    *NavigationHistory
}

// NewServer wires a server over an indexer and ranker.
func NewServer(ix *Indexer, ranker *Ranker) *Server {
	return &Server{
		ix:      ix,
		ranker:  ranker,
		limiter: rate.NewLimiter(rate.Every(50*time.Millisecond), 20),
		recent:  NewRecentQueries(10),
		nav:     &NavigationHistory{},
	}
}

// NewMux returns the HTTP handler. Library-only: does not start the server
// by itself.
func (s *Server) NewMux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/search", s.handleSearch)
	mux.HandleFunc("/api/related", s.handleRelated)
	mux.HandleFunc("/api/suggest", s.handleSuggest)
	mux.HandleFunc("/api/history/back", s.handleHistory((*NavigationHistory).Back))
	mux.HandleFunc("/api/history/forward", s.handleHistory((*NavigationHistory).Forward))
	return loggerMux{handler: mux}
}

// loggerMux logs every request before dispatching it.
type loggerMux struct {
	handler http.Handler
}

func (l loggerMux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log.Printf("%s %s", r.Method, r.URL.String())
	l.handler.ServeHTTP(w, r)
}

type searchHit struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	URL       string  `json:"url"`
	Topic     string  `json:"topic"`
	Timestamp string  `json:"timestamp"`
	Score     float64 `json:"score"`
}

type searchResponse struct {
	Query      string      `json:"query"`
	Suggestion string      `json:"suggestion,omitempty"`
	Results    []searchHit `json:"results"`
}

// handleSearch serves /api/search?q=term&limit=n as JSON hits. Search is
// rate limited; callers over the budget get 429.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.limiter.Allow() {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
		return
	}

	q := r.URL.Query().Get("q")
	limit := queryInt(r, "limit", 10)

	results, suggestion := s.ranker.Rank(q, limit, 0.001)
	if q != "" {
		s.mu.Lock()
		s.recent.Add(q)
		s.nav.Visit(q)
		s.mu.Unlock()
	}

	resp := searchResponse{Query: q, Suggestion: suggestion, Results: make([]searchHit, 0, len(results))}
	for _, res := range results {
		a := res.Article
		resp.Results = append(resp.Results, searchHit{
			ID:        a.ID,
			Title:     a.Title,
			URL:       a.URL,
			Topic:     a.Topic,
			Timestamp: a.Timestamp,
			Score:     res.Score,
		})
	}
	writeJSON(w, resp)
}

type relatedResponse struct {
	ID      string      `json:"id"`
	Related []searchHit `json:"related"`
}

// handleRelated serves /api/related?id=...&limit=n: neighbors in the
// relationship graph, strongest first. Unknown IDs yield an empty list.
func (s *Server) handleRelated(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := r.URL.Query().Get("id")
	limit := queryInt(r, "limit", 5)

	resp := relatedResponse{ID: id, Related: make([]searchHit, 0, limit)}
	for _, rid := range s.ix.RelatedArticles(id, limit) {
		a := s.ix.Article(rid)
		if a == nil {
			continue
		}
		weight, _ := s.ix.RelationWeight(id, rid)
		resp.Related = append(resp.Related, searchHit{
			ID:        a.ID,
			Title:     a.Title,
			URL:       a.URL,
			Topic:     a.Topic,
			Timestamp: a.Timestamp,
			Score:     weight,
		})
	}
	writeJSON(w, resp)
}

type suggestResponse struct {
	Samples      []string `json:"samples"`
	Recent       []string `json:"recent"`
	RelatedTerms []string `json:"related_terms,omitempty"`
}

// handleSuggest serves /api/suggest[?q=term]: the corpus sample queries, the
// recent searches, and (when q is given) further terms co-occurring with it.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.mu.Lock()
	recent := s.recent.All()
	s.mu.Unlock()

	resp := suggestResponse{
		Samples: s.ix.SampleQueries(),
		Recent:  recent,
	}
	if q := r.URL.Query().Get("q"); q != "" {
		resp.RelatedTerms = s.ranker.RelatedTerms(q, 10)
	}
	writeJSON(w, resp)
}

type historyResponse struct {
	Query        string `json:"query"`
	OK           bool   `json:"ok"`
	CanGoBack    bool   `json:"can_go_back"`
	CanGoForward bool   `json:"can_go_forward"`
}

// handleHistory serves /api/history/back and /api/history/forward: browser
// style two-stack navigation over submitted queries. move is Back or
// Forward on the navigation history.
func (s *Server) handleHistory(move func(*NavigationHistory) (string, bool)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.mu.Lock()
		q, ok := move(s.nav)
		resp := historyResponse{
			Query:        q,
			OK:           ok,
			CanGoBack:    s.nav.CanGoBack(),
			CanGoForward: s.nav.CanGoForward(),
		}
		s.mu.Unlock()
		writeJSON(w, resp)
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}
