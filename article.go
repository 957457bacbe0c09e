package secsearch

// Article is one indexed document. Articles are never mutated after
// creation; every other structure refers to them by ID.
type Article struct {
	ID        string `json:"unique_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	URL       string `json:"url"`
	Timestamp string `json:"timestamp"`
	Topic     string `json:"topic"`
}

// TopicGroup is one entry of the corpus file: a topic label, the sample
// queries shown as search suggestions, and the articles under that topic.
type TopicGroup struct {
	Topic    string    `json:"topic"`
	Queries  []string  `json:"queries"`
	Articles []Article `json:"articles"`
}
