package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"secsearch"
)

const (
	defaultDBPath   = "corpus.db"
	defaultAddr     = "127.0.0.1:8080"
	buildSubCommand = "build"
	querySubCommand = "query"
	serveSubCommand = "serve"
)

var (
	corpusPath  string
	dbPath      string
	queryString string
	topN        int
	addr        string
)

func configBuildFlagSet() *flag.FlagSet {
	flg := flag.NewFlagSet(buildSubCommand, flag.ExitOnError)
	flg.StringVar(&corpusPath, "corpus", "", "JSON corpus file to import")
	flg.StringVar(&dbPath, "db", defaultDBPath, "SQLite corpus database to write")
	return flg
}

func configQueryFlagSet() *flag.FlagSet {
	flg := flag.NewFlagSet(querySubCommand, flag.ExitOnError)
	flg.StringVar(&corpusPath, "corpus", "", "corpus to load (.json or .db)")
	flg.StringVar(&queryString, "query", "", "search query")
	flg.IntVar(&topN, "topN", 10, "top N results to show")
	return flg
}

func configServeFlagSet() *flag.FlagSet {
	flg := flag.NewFlagSet(serveSubCommand, flag.ExitOnError)
	flg.StringVar(&corpusPath, "corpus", "", "corpus to load (.json or .db)")
	flg.StringVar(&addr, "addr", defaultAddr, "address to serve on")
	return flg
}

var (
	buildFlagSet = configBuildFlagSet()
	queryFlagSet = configQueryFlagSet()
	serveFlagSet = configServeFlagSet()
)

func usage(program string) {
	fmt.Printf("Usage: %s <SUBCOMMAND> <FLAGS>\n", program)
	fmt.Println("    SUBCOMMANDS:")
	fmt.Printf("        1. %s\n", buildSubCommand)
	fmt.Printf("        2. %s\n", querySubCommand)
	fmt.Printf("        3. %s\n", serveSubCommand)
	fmt.Println()
	buildFlagSet.Usage()
	fmt.Println()
	queryFlagSet.Usage()
	fmt.Println()
	serveFlagSet.Usage()
	os.Exit(1)
}

// loadGroups reads topic groups from a JSON file or a SQLite corpus
// database, chosen by extension.
func loadGroups(path string) ([]secsearch.TopicGroup, error) {
	if strings.HasSuffix(path, ".db") {
		store, err := secsearch.OpenCorpusStore(path)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.LoadCorpus()
	}
	return secsearch.LoadCorpusFile(path)
}

// mkRanker builds the in-memory index and ranker from a corpus path.
func mkRanker(path string) (*secsearch.Indexer, *secsearch.Ranker) {
	groups, err := loadGroups(path)
	if err != nil {
		log.Fatalf("load corpus: %v", err)
	}
	ix := secsearch.NewIndexer()
	if err := ix.LoadCorpus(groups); err != nil {
		log.Fatalf("index corpus: %v", err)
	}
	ix.BuildRelationships()
	log.Printf("indexed %d articles, %d words", ix.TotalArticles(), ix.VocabularySize())
	return ix, secsearch.NewRanker(ix)
}

func build(program string) {
	buildFlagSet.Parse(os.Args)
	if corpusPath == "" {
		fmt.Println("build: -corpus is required")
		usage(program)
	}
	groups, err := secsearch.LoadCorpusFile(corpusPath)
	if err != nil {
		log.Fatalf("load corpus: %v", err)
	}
	store, err := secsearch.OpenCorpusStore(dbPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer store.Close()
	if err := store.SaveCorpus(groups); err != nil {
		log.Fatalf("save corpus: %v", err)
	}
	log.Printf("corpus saved to %s", dbPath)
}

func query(program string) {
	queryFlagSet.Parse(os.Args)
	if corpusPath == "" || queryString == "" {
		fmt.Println("query: -corpus and -query are required")
		usage(program)
	}
	_, ranker := mkRanker(corpusPath)

	results, suggestion := ranker.Rank(queryString, topN, 0.001)
	if suggestion != "" {
		fmt.Printf("Did you mean: %s?\n", suggestion)
	}
	if len(results) == 0 {
		fmt.Println("No results.")
		return
	}
	for i, res := range results {
		fmt.Printf("%2d. %.4f  %s  (%s)\n", i+1, res.Score, res.Article.Title, res.Article.URL)
	}
}

func serve(program string) {
	serveFlagSet.Parse(os.Args)
	if corpusPath == "" {
		fmt.Println("serve: -corpus is required")
		usage(program)
	}
	ix, ranker := mkRanker(corpusPath)
	srv := secsearch.NewServer(ix, ranker)
	log.Printf("listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, srv.NewMux()))
}

func main() {
	program := os.Args[0]
	os.Args = os.Args[1:]

	if len(os.Args) == 0 {
		fmt.Println("Did not provide any subcommand!")
		usage(program)
	}
	subcommand := os.Args[0]
	os.Args = os.Args[1:]
	switch subcommand {
	case buildSubCommand:
		build(program)
	case querySubCommand:
		query(program)
	case serveSubCommand:
		serve(program)
	default:
		fmt.Printf("Unknown subcommand `%s`\n", subcommand)
		usage(program)
	}
}
