package secsearch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// LoadCorpusFile reads a JSON corpus file: an ordered list of topic groups,
// each with sample queries and article records. Crawled article bodies are
// persisted raw, so any markup is stripped down to visible text here before
// indexing. Malformed input is an error; loading never proceeds on a
// partial corpus.
func LoadCorpusFile(path string) ([]TopicGroup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	return ParseCorpus(data)
}

// ParseCorpus decodes and cleans a JSON corpus.
func ParseCorpus(data []byte) ([]TopicGroup, error) {
	var groups []TopicGroup
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("parse corpus: %w", err)
	}
	for gi := range groups {
		g := &groups[gi]
		if g.Topic == "" {
			return nil, fmt.Errorf("parse corpus: group %d has no topic", gi)
		}
		for ai := range g.Articles {
			a := &g.Articles[ai]
			if a.ID == "" || a.Title == "" || a.URL == "" {
				return nil, fmt.Errorf("parse corpus: group %q article %d missing unique_id, title or url", g.Topic, ai)
			}
			a.Topic = g.Topic
			if strings.Contains(a.Content, "<") {
				a.Content = StripHTML(a.Content)
			}
		}
	}
	return groups, nil
}

// StripHTML extracts the visible text of an HTML fragment, skipping script
// and style subtrees and collapsing whitespace. Plain text passes through
// unchanged apart from whitespace normalization.
func StripHTML(content string) string {
	root, err := html.Parse(bytes.NewReader([]byte(content)))
	if err != nil {
		return content
	}

	var text strings.Builder
	var skipDepth int
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (strings.EqualFold(n.Data, "script") || strings.EqualFold(n.Data, "style")) {
			skipDepth++
		}
		if skipDepth == 0 && n.Type == html.TextNode {
			text.WriteString(n.Data)
			text.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && (strings.EqualFold(n.Data, "script") || strings.EqualFold(n.Data, "style")) {
			skipDepth--
		}
	}
	walk(root)

	return strings.Join(strings.Fields(text.String()), " ")
}
