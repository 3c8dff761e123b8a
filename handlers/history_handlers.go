package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"shiftwrite/format"
	"shiftwrite/models"
	"shiftwrite/storage"
)

// HandleListHistory moves the session to the history view and returns the
// caller's past reports, newest first. A storage failure degrades to an
// empty list rather than an error page.
// GET /api/v1/history
func (h *Handler) HandleListHistory(c *fiber.Ctx) error {
	userID, sess := h.session(c)
	if err := sess.OpenHistory(); err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, err.Error())
	}

	entries, err := h.history.ListFor(context.Background(), userID)
	if err != nil {
		h.log.Error("listing history", zap.String("userID", userID), zap.Error(err))
	}
	if entries == nil {
		entries = []models.HistoryEntry{}
	}

	return c.JSON(fiber.Map{"status": "success", "data": entries})
}

// HandleGetHistoryEntry selects one owned report for review. Entries of
// other identities are indistinguishable from missing ones.
// GET /api/v1/history/:id
func (h *Handler) HandleGetHistoryEntry(c *fiber.Ctx) error {
	userID, sess := h.session(c)
	id := c.Params("id")

	entry, err := h.history.GetFor(context.Background(), userID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Report not found")
		}
		h.log.Error("fetching history entry", zap.String("userID", userID), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Database error")
	}

	if err := sess.SelectEntry(entry); err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, err.Error())
	}

	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{
		"entry":   entry,
		"display": format.Display(entry.RawText),
		"plain":   format.Plain(entry.RawText),
	}})
}
