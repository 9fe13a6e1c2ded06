package crawler

import (
	"errors"
	"fmt"
)

// Failure classes of a run. Discovery failures end the run, page failures
// end their category, post and render failures only skip the post.
var (
	ErrDiscovery = errors.New("category discovery failed")
	ErrPageFetch = errors.New("listing page fetch failed")
	ErrPostFetch = errors.New("post fetch failed")
	ErrRender    = errors.New("render failed")
)

// StatusError reports a response outside the 2xx range
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}
