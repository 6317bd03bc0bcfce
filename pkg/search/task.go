package search

import (
	"context"

	"nearby-places/pkg/places"
)

// Fetcher returns the raw body of a nearby search.
type Fetcher interface {
	FetchPlaces(ctx context.Context, query places.SearchQuery) (string, error)
}

// FetchResult is either a body or a transport error, never both.
type FetchResult struct {
	Body string
	Err  error
}

// Task runs one fetch off the caller's goroutine.
type Task struct {
	fetcher Fetcher
	query   places.SearchQuery
}

func NewTask(fetcher Fetcher, query places.SearchQuery) *Task {
	return &Task{fetcher: fetcher, query: query}
}

// Start launches the fetch. The returned channel yields exactly one result
// and is then closed.
func (t *Task) Start(ctx context.Context) <-chan FetchResult {
	out := make(chan FetchResult, 1)
	go func() {
		defer close(out)
		body, err := t.fetcher.FetchPlaces(ctx, t.query)
		if err != nil {
			out <- FetchResult{Err: err}
			return
		}
		out <- FetchResult{Body: body}
	}()
	return out
}
