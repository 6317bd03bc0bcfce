package search

import (
	"nearby-places/pkg/logger"
	"nearby-places/pkg/mapview"
	"nearby-places/pkg/places"
)

// User-facing messages.
const (
	MessageAccessDenied    = "ERROR: Access denied!"
	MessageTransportFailed = "ERROR: Could not reach the places service."
	MessageInvalidResponse = "ERROR: The places service sent an unreadable response."
)

// Handler turns response text into rendering calls.
type Handler struct {
	view     mapview.View
	notifier mapview.Notifier
	camera   mapview.Camera
	log      *logger.Logger
}

func NewHandler(view mapview.View, notifier mapview.Notifier, camera mapview.Camera) *Handler {
	return &Handler{
		view:     view,
		notifier: notifier,
		camera:   camera,
		log:      logger.GetLogger().WithField("component", "search_handler"),
	}
}

// Handle parses text and renders it. A parse failure yields StateFailed and
// the *places.ParseError; a denial notifies the user once and renders
// nothing.
func (h *Handler) Handle(text string) (Outcome, error) {
	resp, err := places.Parse(text)
	if err != nil {
		return h.Fail(err), err
	}

	if resp.Denied() {
		message := MessageAccessDenied
		if resp.ErrorMessage != "" {
			message += " " + resp.ErrorMessage
		}
		h.log.WithField("error_message", resp.ErrorMessage).Error("Nearby search denied")
		h.notifier.NotifyUser(message)
		return Outcome{
			State:   StateDenied,
			Status:  resp.Status,
			Failure: places.FailureDenied,
			Message: message,
		}, resp.Err()
	}

	if resp.Status != places.StatusOK {
		h.log.WithFields(map[string]interface{}{
			"status":        resp.Status,
			"error_message": resp.ErrorMessage,
		}).Warn("Nearby search returned non-OK status")
	}

	h.Render(resp.Renderable())
	return Outcome{
		State:   StateRendered,
		Status:  resp.Status,
		Markers: len(resp.Renderable()),
	}, nil
}

// Render places one marker per result, then recenters the camera.
func (h *Handler) Render(results []places.PlaceResult) {
	for _, r := range results {
		h.view.AddMarker(r.Location, r.Name)
	}
	h.view.MoveCamera(h.camera.Center)
	h.view.SetZoom(h.camera.Zoom)
	h.log.WithField("markers", len(results)).Debug("Rendered nearby search")
}

// Fail reports a transport or parse failure to the user. Nothing is
// rendered.
func (h *Handler) Fail(err error) Outcome {
	kind := places.Classify(err)
	message := MessageInvalidResponse
	if kind == places.FailureTransport {
		message = MessageTransportFailed
	}
	h.log.WithError(err).WithField("failure", kind.String()).Error("Nearby search failed")
	h.notifier.NotifyUser(message)
	return Outcome{
		State:   StateFailed,
		Failure: kind,
		Message: message,
	}
}
