package handler

import (
	"bytes"
	"time"

	"github.com/gofiber/fiber/v2"

	"nearby-places/internal/service"
	"nearby-places/pkg/logger"
	"nearby-places/pkg/mapview"
	"nearby-places/pkg/search"
)

// MaxWait bounds the wait query parameter.
const MaxWait = 60 * time.Second

type Controller struct {
	search service.SearchService
	maps   service.MapService
	notify service.NotificationService
	render service.RenderService
	log    *logger.Logger
}

type StatusResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Metrics   map[string]interface{} `json:"metrics"`
	Health    map[string]bool        `json:"health"`
}

type MapResponse struct {
	Search        search.Status    `json:"search"`
	Map           mapview.Snapshot `json:"map"`
	Notifications []string         `json:"notifications"`
}

func NewController(
	search service.SearchService,
	maps service.MapService,
	notify service.NotificationService,
	render service.RenderService,
) *Controller {
	return &Controller{
		search: search,
		maps:   maps,
		notify: notify,
		render: render,
		log:    logger.GetLogger().WithField("component", "controller"),
	}
}

func (c *Controller) Register(app *fiber.App) {
	app.Get("/health", c.Health)
	api := app.Group("/api")
	api.Get("/search", c.Search)
	api.Get("/map", c.Map)
	api.Get("/map.png", c.MapPNG)
}

func (c *Controller) Health(ctx *fiber.Ctx) error {
	st := c.search.Status()
	snap := c.maps.Snapshot()
	return ctx.JSON(StatusResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Metrics: map[string]interface{}{
			"search_state": st.State.String(),
			"markers":      len(snap.Markers),
		},
		Health: map[string]bool{
			"search_finished": st.State.Terminal(),
			"map_positioned":  snap.Positioned,
		},
	})
}

func (c *Controller) Search(ctx *fiber.Ctx) error {
	if err := c.wait(ctx); err != nil {
		return err
	}
	return ctx.JSON(c.search.Status())
}

func (c *Controller) Map(ctx *fiber.Ctx) error {
	if err := c.wait(ctx); err != nil {
		return err
	}
	return ctx.JSON(MapResponse{
		Search:        c.search.Status(),
		Map:           c.maps.Snapshot(),
		Notifications: c.notify.Messages(),
	})
}

func (c *Controller) MapPNG(ctx *fiber.Ctx) error {
	if err := c.wait(ctx); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := c.render.WritePNG(&buf, c.maps.Snapshot()); err != nil {
		c.log.WithError(err).Error("Map render failed")
		return fiber.NewError(fiber.StatusInternalServerError, "map render failed")
	}

	ctx.Set(fiber.HeaderContentType, "image/png")
	return ctx.Send(buf.Bytes())
}

// wait blocks until the search finishes or the duration given in the wait
// query parameter elapses.
func (c *Controller) wait(ctx *fiber.Ctx) error {
	raw := ctx.Query("wait")
	if raw == "" {
		return nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid wait duration")
	}
	if d > MaxWait {
		d = MaxWait
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-c.search.Done():
	case <-timer.C:
	}
	return nil
}
