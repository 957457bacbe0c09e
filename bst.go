package secsearch

// bstNode is a binary-search-tree node holding one article, ordered by ID.
type bstNode struct {
	article     *Article
	left, right *bstNode
}

// ArticleTree is an ordered index over articles keyed by ID. It supports
// insertion, exact lookup and in-order (ID-sorted) traversal.
type ArticleTree struct {
	root *bstNode
	size int
}

// Insert adds an article keyed by its ID. Inserting an ID already present
// is a no-op; articles are immutable and duplicates are rejected upstream.
func (t *ArticleTree) Insert(a *Article) {
	if a == nil {
		return
	}
	node := &bstNode{article: a}
	if t.root == nil {
		t.root = node
		t.size++
		return
	}
	curr := t.root
	for {
		switch {
		case a.ID < curr.article.ID:
			if curr.left == nil {
				curr.left = node
				t.size++
				return
			}
			curr = curr.left
		case a.ID > curr.article.ID:
			if curr.right == nil {
				curr.right = node
				t.size++
				return
			}
			curr = curr.right
		default:
			return
		}
	}
}

// Search returns the article with the given ID, or nil if absent.
func (t *ArticleTree) Search(id string) *Article {
	curr := t.root
	for curr != nil {
		switch {
		case id < curr.article.ID:
			curr = curr.left
		case id > curr.article.ID:
			curr = curr.right
		default:
			return curr.article
		}
	}
	return nil
}

// InOrder returns all articles in ascending ID order.
func (t *ArticleTree) InOrder() []*Article {
	out := make([]*Article, 0, t.size)
	var walk func(n *bstNode)
	walk = func(n *bstNode) {
		if n == nil {
			return
		}
		walk(n.left)
		out = append(out, n.article)
		walk(n.right)
	}
	walk(t.root)
	return out
}

// Len returns the number of articles in the tree.
func (t *ArticleTree) Len() int {
	return t.size
}
