package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"shiftwrite/format"
	"shiftwrite/gemini"
	"shiftwrite/models"
	"shiftwrite/prompt"
	"shiftwrite/session"
)

// HandleGetRecord returns the field store content. Fetching the editing
// surface is the explicit way back from the history view.
// GET /api/v1/report/record
func (h *Handler) HandleGetRecord(c *fiber.Ctx) error {
	_, sess := h.session(c)
	if sess.View() == session.ViewHistory {
		if err := sess.CloseHistory(); err != nil {
			return errorJSON(c, fiber.StatusUnauthorized, err.Error())
		}
	}
	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{
		"record": sess.Record(),
		"view":   sess.View(),
	}})
}

// HandleUpdateRecord replaces the field store content.
// PUT /api/v1/report/record
func (h *Handler) HandleUpdateRecord(c *fiber.Ctx) error {
	var rec models.ShiftRecord
	if err := c.BodyParser(&rec); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	_, sess := h.session(c)
	if err := sess.UpdateRecord(rec); err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, err.Error())
	}
	return c.JSON(fiber.Map{"status": "success", "data": sess.Record()})
}

// HandleGenerate runs the pipeline: validation gate, prompt synthesis, one
// model call, history append, pending-report install. A second call while
// one is outstanding is rejected; a failed call is terminal until the user
// triggers another.
// POST /api/v1/report/generate
func (h *Handler) HandleGenerate(c *fiber.Ctx) error {
	userID, sess := h.session(c)

	rec, err := sess.BeginGenerate()
	if err != nil {
		switch {
		case errors.Is(err, prompt.ErrMissingRequired):
			return errorJSON(c, fiber.StatusBadRequest, "Please fill in at least the Date and Total Sales.")
		case errors.Is(err, session.ErrGenerationInFlight):
			return errorJSON(c, fiber.StatusConflict, err.Error())
		default:
			return errorJSON(c, fiber.StatusUnauthorized, err.Error())
		}
	}

	// No cancellation: an in-flight generation runs to completion or
	// failure even if the client goes away.
	rawText, err := h.generator.Generate(context.Background(), prompt.Build(rec))
	if err != nil {
		sess.FailGenerate()
		h.log.Warn("generation failed", zap.String("userID", userID), zap.Error(err))
		if errors.Is(err, gemini.ErrInvalidResponse) {
			return errorJSON(c, fiber.StatusBadGateway, "Generation failed: invalid AI response.")
		}
		return errorJSON(c, fiber.StatusBadGateway, "Generation failed: "+generationDetail(err))
	}

	report := models.GeneratedReport{RawText: rawText, CreatedAt: time.Now().UTC()}

	// Appended strictly after the generation call succeeded. An append
	// failure degrades the history list; the generated report itself is
	// still delivered.
	entry, err := h.history.Append(context.Background(), userID, rec, rawText, report.CreatedAt)
	if err != nil {
		h.log.Error("saving report to history", zap.String("userID", userID), zap.Error(err))
	}

	sess.CompleteGenerate(report)

	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{
		"rawText":   rawText,
		"display":   format.Display(rawText),
		"historyId": entry.ID,
	}})
}

// generationDetail extracts the status detail behind the transport-failure
// sentinel so the surfaced message does not repeat the sentinel text.
func generationDetail(err error) string {
	return strings.TrimPrefix(err.Error(), gemini.ErrGenerationFailed.Error()+": ")
}

// HandleDisplay returns the HTML display form of the pending report.
// GET /api/v1/report/display
func (h *Handler) HandleDisplay(c *fiber.Ctx) error {
	_, sess := h.session(c)
	report, ok := sess.Pending()
	if !ok {
		return errorJSON(c, fiber.StatusPreconditionFailed, session.ErrNoPendingReport.Error())
	}
	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{
		"display": format.Display(report.RawText),
	}})
}

// HandlePlain returns the clipboard plain-text form of the pending report.
// The copy gesture itself, and its transient confirmation, belong to the
// client.
// GET /api/v1/report/plain
func (h *Handler) HandlePlain(c *fiber.Ctx) error {
	_, sess := h.session(c)
	report, ok := sess.Pending()
	if !ok {
		return errorJSON(c, fiber.StatusPreconditionFailed, session.ErrNoPendingReport.Error())
	}
	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{
		"plain": format.Plain(report.RawText),
	}})
}

// HandleMailto composes the mail-launch URL for the pending report and the
// record's recipient. Missing recipient or missing report is blocked before
// anything is composed.
// GET /api/v1/report/mailto
func (h *Handler) HandleMailto(c *fiber.Ctx) error {
	_, sess := h.session(c)
	rec := sess.Record()

	rawText := ""
	if report, ok := sess.Pending(); ok {
		rawText = report.RawText
	}

	link, err := format.Mailto(rec.RecipientEmail, rawText, rec)
	if err != nil {
		return errorJSON(c, fiber.StatusPreconditionFailed, "Please enter a recipient email and generate a summary first.")
	}

	email := format.ForEmail(rawText, rec)
	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{
		"mailto":  link,
		"subject": email.Subject,
		"body":    email.Body,
	}})
}
