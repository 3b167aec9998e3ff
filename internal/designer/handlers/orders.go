package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"flashing-designer/internal/designer/cutlist"
	"flashing-designer/internal/designer/render"
	"flashing-designer/internal/designer/repository"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/log"
)

// ============================================================
// Order Handler
// ============================================================

type OrderHandler struct {
	repo   *repository.Repository
	page   cutlist.PageSpec
	layout cutlist.LayoutOptions
}

func NewOrderHandler(repo *repository.Repository) *OrderHandler {
	return &OrderHandler{
		repo:   repo,
		page:   cutlist.DefaultPageSpec(),
		layout: cutlist.DefaultLayoutOptions(),
	}
}

func (h *OrderHandler) ListOrders(c fiber.Ctx) error {
	orders, err := h.repo.ListOrders(c.Context())
	if err != nil {
		log.Errorf("[DESIGNER] list orders: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list orders"})
	}
	return c.JSON(orders)
}

// Draft returns the open draft order, creating it when needed.
func (h *OrderHandler) Draft(c fiber.Ctx) error {
	order, err := h.repo.EnsureDraftOrder(c.Context())
	if err != nil {
		log.Errorf("[DESIGNER] draft order: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to open draft order"})
	}
	return c.JSON(order)
}

func (h *OrderHandler) ListProfiles(c fiber.Ctx) error {
	profiles, err := h.repo.ListProfiles(c.Context(), c.Params("id"))
	if err != nil {
		log.Errorf("[DESIGNER] list profiles: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list profiles"})
	}
	return c.JSON(profiles)
}

func (h *OrderHandler) Cutlist(c fiber.Ctx) error {
	list, ok := h.cutlist(c)
	if !ok {
		return nil
	}
	return c.JSON(list)
}

// SheetSVG renders one page of fabrication cards. Pages are numbered from 1.
func (h *OrderHandler) SheetSVG(c fiber.Ctx) error {
	list, ok := h.cutlist(c)
	if !ok {
		return nil
	}

	n := 1
	if q := c.Query("page"); q != "" {
		v, err := strconv.Atoi(q)
		if err != nil || v < 1 {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid page"})
		}
		n = v
	}

	pages := cutlist.Paginate(list, h.page, h.layout)
	if n > len(pages) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "page not found"})
	}

	var buf bytes.Buffer
	if err := render.SVGSheet(&buf, pages[n-1], h.page); err != nil {
		log.Errorf("[DESIGNER] render sheet: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to render sheet"})
	}
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.Send(buf.Bytes())
}

// CardPNG rasterises the card of a single profile.
func (h *OrderHandler) CardPNG(c fiber.Ctx) error {
	list, ok := h.cutlist(c)
	if !ok {
		return nil
	}

	density := 2.0
	if q := c.Query("density"); q != "" {
		v, err := strconv.ParseFloat(q, 64)
		if err != nil || v <= 0 || v > 8 {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid density"})
		}
		density = v
	}

	pid := c.Params("pid")
	for _, e := range list.Entries {
		if e.Profile.ID != pid {
			continue
		}
		card := cutlist.Card{Entry: e, Layout: cutlist.LayoutCard(e, h.page.CardRect(0), h.layout)}
		var buf bytes.Buffer
		if err := render.PNGCard(&buf, card, density); err != nil {
			log.Errorf("[DESIGNER] render card %s: %v", pid, err)
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to render card"})
		}
		c.Set(fiber.HeaderContentType, "image/png")
		return c.Send(buf.Bytes())
	}
	return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "profile not found"})
}

// cutlist loads the order's profiles. It writes the error response itself
// and reports false when the caller should stop.
func (h *OrderHandler) cutlist(c fiber.Ctx) (cutlist.List, bool) {
	id := c.Params("id")
	if _, err := h.repo.GetOrder(c.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
		} else {
			_ = c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load order"})
		}
		return cutlist.List{}, false
	}

	profiles, err := h.repo.ListProfiles(c.Context(), id)
	if err != nil {
		log.Errorf("[DESIGNER] list profiles: %v", err)
		_ = c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list profiles"})
		return cutlist.List{}, false
	}
	return cutlist.Build(profiles), true
}
