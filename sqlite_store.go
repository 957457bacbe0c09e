package secsearch

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// CorpusStore persists the raw corpus (articles and sample queries) in
// SQLite. Only the corpus lives here: the index itself is rebuilt in memory
// from the store on every run.
type CorpusStore struct {
	db *sql.DB
}

// OpenCorpusStore opens (or creates) a corpus database at path. Use
// ":memory:" for a throwaway store.
func OpenCorpusStore(path string) (*CorpusStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := createCorpusTables(db); err != nil {
		db.Close()
		return nil, err
	}
	return &CorpusStore{db: db}, nil
}

func createCorpusTables(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS articles (
		id        TEXT PRIMARY KEY,
		title     TEXT NOT NULL,
		content   TEXT NOT NULL,
		url       TEXT NOT NULL,
		timestamp TEXT NOT NULL DEFAULT '',
		topic     TEXT NOT NULL
	)`)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
	CREATE TABLE IF NOT EXISTS queries (
		topic TEXT NOT NULL,
		query TEXT NOT NULL,
		UNIQUE (topic, query)
	)`)
	return err
}

// SaveCorpus writes the topic groups into the store inside one transaction.
// Articles and queries already present are left untouched.
func (s *CorpusStore) SaveCorpus(groups []TopicGroup) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	artStmt, err := tx.Prepare(`INSERT OR IGNORE INTO articles
		(id, title, content, url, timestamp, topic) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer artStmt.Close()

	queryStmt, err := tx.Prepare(`INSERT OR IGNORE INTO queries (topic, query) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer queryStmt.Close()

	for _, g := range groups {
		if g.Topic == "" {
			return fmt.Errorf("save corpus: group has no topic")
		}
		for _, q := range g.Queries {
			if _, err := queryStmt.Exec(g.Topic, q); err != nil {
				return err
			}
		}
		for _, a := range g.Articles {
			if a.ID == "" || a.Title == "" || a.URL == "" {
				return fmt.Errorf("save corpus: article under %q missing unique_id, title or url", g.Topic)
			}
			content := a.Content
			if content == "" {
				content = a.Title + " " + g.Topic
			}
			if _, err := artStmt.Exec(a.ID, a.Title, content, a.URL, a.Timestamp, g.Topic); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

// LoadCorpus reads the whole store back as topic groups, topics in
// first-insertion order and articles in insertion order within each topic.
func (s *CorpusStore) LoadCorpus() ([]TopicGroup, error) {
	rows, err := s.db.Query(`SELECT id, title, content, url, timestamp, topic
		FROM articles ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []TopicGroup
	groupIdx := make(map[string]int)
	for rows.Next() {
		var a Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.URL, &a.Timestamp, &a.Topic); err != nil {
			return nil, err
		}
		i, ok := groupIdx[a.Topic]
		if !ok {
			i = len(groups)
			groupIdx[a.Topic] = i
			groups = append(groups, TopicGroup{Topic: a.Topic})
		}
		groups[i].Articles = append(groups[i].Articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	qrows, err := s.db.Query(`SELECT topic, query FROM queries ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer qrows.Close()
	for qrows.Next() {
		var topic, query string
		if err := qrows.Scan(&topic, &query); err != nil {
			return nil, err
		}
		i, ok := groupIdx[topic]
		if !ok {
			i = len(groups)
			groupIdx[topic] = i
			groups = append(groups, TopicGroup{Topic: topic})
		}
		groups[i].Queries = append(groups[i].Queries, query)
	}
	if err := qrows.Err(); err != nil {
		return nil, err
	}
	return groups, nil
}

// Close releases the underlying database handle.
func (s *CorpusStore) Close() error {
	return s.db.Close()
}
