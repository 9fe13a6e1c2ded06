package queue

import (
	"sync"

	"github.com/go-scripts/blogpdf/internal/types"
)

// Queue is a FIFO of post references that admits each URL once per run
type Queue struct {
	posts []types.PostReference
	seen  map[string]bool
	mu    sync.Mutex
}

// New creates a new Queue instance
func New() *Queue {
	return &Queue{
		posts: make([]types.PostReference, 0),
		seen:  make(map[string]bool),
	}
}

// Add enqueues a post unless its URL was already admitted.
// It reports whether the post was enqueued.
func (q *Queue) Add(post types.PostReference) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.seen[post.URL] {
		return false
	}

	q.seen[post.URL] = true
	q.posts = append(q.posts, post)
	return true
}

// Next returns the oldest queued post
func (q *Queue) Next() (types.PostReference, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.posts) == 0 {
		return types.PostReference{}, false
	}

	post := q.posts[0]
	q.posts = q.posts[1:]

	return post, true
}

// Seen checks if a URL has been admitted
func (q *Queue) Seen(url string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.seen[url]
}

// Len returns the current length of the queue
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.posts)
}

// SeenCount returns the number of admitted URLs
func (q *Queue) SeenCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.seen)
}
