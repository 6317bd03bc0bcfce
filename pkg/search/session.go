package search

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"nearby-places/pkg/geo"
	"nearby-places/pkg/logger"
	"nearby-places/pkg/places"
)

// ErrAlreadyStarted is returned when a session is asked to search twice.
var ErrAlreadyStarted = errors.New("search session already started")

// Session drives a single search from Idle to a terminal state.
type Session struct {
	id      string
	fetcher Fetcher
	handler *Handler
	log     *logger.Logger

	mu      sync.RWMutex
	state   State
	query   places.SearchQuery
	outcome Outcome
	err     error
	done    chan struct{}
}

func NewSession(fetcher Fetcher, handler *Handler) *Session {
	id := uuid.NewString()
	return &Session{
		id:      id,
		fetcher: fetcher,
		handler: handler,
		log:     logger.GetLogger().WithFields(map[string]interface{}{"component": "search_session", "search_id": id}),
		done:    make(chan struct{}),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Status is a point-in-time view of a session.
type Status struct {
	ID           string     `json:"id"`
	State        State      `json:"state"`
	Location     geo.LatLng `json:"location"`
	RadiusMeters int        `json:"radius_meters"`
	PlaceType    string     `json:"place_type"`
	Outcome      *Outcome   `json:"outcome,omitempty"`
	Error        string     `json:"error,omitempty"`
}

func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{
		ID:           s.id,
		State:        s.state,
		Location:     s.query.Location(),
		RadiusMeters: s.query.RadiusMeters,
		PlaceType:    s.query.PlaceType,
	}
	if s.state.Terminal() {
		outcome := s.outcome
		st.Outcome = &outcome
	}
	if s.err != nil {
		st.Error = s.err.Error()
	}
	return st
}

// Done is closed when the session reaches a terminal state.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Run fetches on a separate goroutine and renders on the calling one. It
// may be called once.
func (s *Session) Run(ctx context.Context, query places.SearchQuery) (Outcome, error) {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return Outcome{}, ErrAlreadyStarted
	}
	s.state = StateRequesting
	s.query = query
	s.mu.Unlock()

	s.log.WithFields(map[string]interface{}{
		"location": query.Location().String(),
		"radius":   query.RadiusMeters,
		"type":     query.PlaceType,
	}).Info("Nearby search started")

	var (
		outcome Outcome
		err     error
	)
	select {
	case result := <-NewTask(s.fetcher, query).Start(ctx):
		if result.Err != nil {
			err = result.Err
			outcome = s.handler.Fail(err)
		} else {
			outcome, err = s.handler.Handle(result.Body)
		}
	case <-ctx.Done():
		err = &places.TransportError{URL: "(canceled)", Cause: ctx.Err()}
		outcome = s.handler.Fail(err)
	}

	s.finish(outcome, err)
	return outcome, err
}

func (s *Session) finish(outcome Outcome, err error) {
	s.mu.Lock()
	s.state = outcome.State
	s.outcome = outcome
	s.err = err
	s.mu.Unlock()
	close(s.done)

	log := s.log.WithFields(map[string]interface{}{
		"state":   outcome.State.String(),
		"markers": outcome.Markers,
	})
	if err != nil {
		log.WithError(err).Warn("Nearby search finished")
		return
	}
	log.Info("Nearby search finished")
}
