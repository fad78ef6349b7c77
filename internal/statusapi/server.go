// Package statusapi exposes the live view's state over HTTP for scripts
// and dashboards: availability, counters, the current graph as D2, and
// the Prometheus metrics.
package statusapi

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ThomasCrouzet/inframap-live/internal/app"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Provider is the part of the app the endpoint reads from. Every call
// goes through the app's event loop.
type Provider interface {
	Status(ctx context.Context) (app.Status, error)
	Export(ctx context.Context, format string) ([]byte, error)
	Reload()
}

type Handler struct {
	provider Provider
}

func NewHandler(p Provider) *Handler {
	return &Handler{provider: p}
}

func (h *Handler) GetStatus(c *fiber.Ctx) error {
	st, err := h.provider.Status(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(st)
}

func (h *Handler) GetGraph(c *fiber.Ctx) error {
	d2, err := h.provider.Export(c.UserContext(), app.FormatD2)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	c.Set(fiber.HeaderContentType, "text/vnd.d2; charset=utf-8")
	return c.Send(d2)
}

func (h *Handler) Reload(c *fiber.Ctx) error {
	h.provider.Reload()
	return c.SendStatus(fiber.StatusAccepted)
}

// New builds the fiber app with all routes registered.
func New(p Provider) *fiber.App {
	h := NewHandler(p)
	f := fiber.New(fiber.Config{DisableStartupMessage: true})

	f.Get("/status", h.GetStatus)
	f.Get("/graph.d2", h.GetGraph)
	f.Post("/reload", h.Reload)
	f.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	return f
}

// Serve listens on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, p Provider, logger *slog.Logger) error {
	f := New(p)
	errc := make(chan error, 1)
	go func() { errc <- f.Listen(addr) }()
	logger.Info("status endpoint listening", "component", "statusapi", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		if err := f.Shutdown(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		<-errc
		return nil
	}
}
