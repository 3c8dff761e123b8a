package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftwrite/models"
)

const sampleRaw = "Subject: EOD Report - 2024-05-01\n" +
	"Good evening, here is the breakdown of tonight's shift.\n" +
	"**Quick Stats:**\n" +
	"* **Sales:** $5000\n" +
	"* **Guests:** 200"

func TestPlainStripsAllMarkersKeepsText(t *testing.T) {
	plain := Plain(sampleRaw)

	assert.NotContains(t, plain, "*")
	assert.Contains(t, plain, "Quick Stats:")
	assert.Contains(t, plain, "Sales: $5000")
	assert.Contains(t, plain, "Guests: 200")
}

func TestPlainConvertsBreakMarkup(t *testing.T) {
	assert.Equal(t, "line one\nline two", Plain("line one<br />line two"))
}

func TestDisplayRendersStrongAndBreaks(t *testing.T) {
	out := Display("**Quick Stats:**\n* Sales")

	assert.Contains(t, out, "<strong>Quick Stats:</strong>")
	assert.Contains(t, out, "<br />")
	assert.NotContains(t, out, "**")
}

func TestDisplayEscapesHostileInput(t *testing.T) {
	out := Display("<script>alert(1)</script> & **bold**")

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "&amp;")
	assert.Contains(t, out, "<strong>bold</strong>")
}

func TestFormattingIsIdempotentPerSource(t *testing.T) {
	rec := models.ShiftRecord{Date: "2024-05-01"}

	assert.Equal(t, Display(sampleRaw), Display(sampleRaw))
	assert.Equal(t, Plain(sampleRaw), Plain(sampleRaw))
	assert.Equal(t, ForEmail(sampleRaw, rec), ForEmail(sampleRaw, rec))
}

func TestForEmailExtractsSubject(t *testing.T) {
	e := ForEmail(sampleRaw, models.ShiftRecord{Date: "2024-05-01"})
	assert.Equal(t, "EOD Report - 2024-05-01", e.Subject)
	assert.NotContains(t, e.Body, "Subject:")
}

func TestForEmailFallbackSubjectFromDate(t *testing.T) {
	e := ForEmail("No subject line here.", models.ShiftRecord{Date: "2024-05-01"})
	assert.Equal(t, "EOD Shift Summary - 5/1/2024", e.Subject)
}

func TestForEmailBodyUsesBulletGlyphs(t *testing.T) {
	e := ForEmail(sampleRaw, models.ShiftRecord{Date: "2024-05-01"})

	assert.Contains(t, e.Body, "• Sales: $5000")
	assert.NotContains(t, e.Body, "*")
}

func TestMailtoEncodesSubjectAndBody(t *testing.T) {
	link, err := Mailto("owner@restaurant.com", sampleRaw, models.ShiftRecord{Date: "2024-05-01"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(link, "mailto:owner@restaurant.com?subject="))
	assert.Contains(t, link, "&body=")
	// encodeURIComponent semantics: spaces are %20, never +.
	assert.Contains(t, link, "EOD%20Report%20-%202024-05-01")
	assert.NotContains(t, link, "+")
	assert.NotContains(t, link, " ")
}

func TestMailtoPreconditions(t *testing.T) {
	_, err := Mailto("owner@restaurant.com", "", models.ShiftRecord{})
	assert.ErrorIs(t, err, ErrNoReport)

	_, err = Mailto("", sampleRaw, models.ShiftRecord{})
	assert.ErrorIs(t, err, ErrNoRecipient)
}
