// Package format derives the three presentation forms of a generated report
// from its raw text. Each form is recomputed from the raw text on every call
// so the forms can never drift apart, and each is built from a fixed,
// ordered chain of named transforms.
package format

import (
	"errors"
	"html"
	"net/url"
	"regexp"
	"strings"
	"time"

	"shiftwrite/models"
)

var (
	// ErrNoReport means a form was requested before any text was generated.
	ErrNoReport = errors.New("no generated report")
	// ErrNoRecipient means mail composition was attempted without an address.
	ErrNoRecipient = errors.New("no recipient email")
)

var (
	boldPair    = regexp.MustCompile(`\*\*(.*?)\*\*`)
	subjectLine = regexp.MustCompile(`Subject: (.*)`)
	subjectRow  = regexp.MustCompile(`Subject: .*\n`)
)

type transform func(string) string

func unescapeBreaks(s string) string { return strings.ReplaceAll(s, "<br />", "\n") }
func stripBold(s string) string      { return boldPair.ReplaceAllString(s, "$1") }
func stripStars(s string) string     { return strings.ReplaceAll(s, "*", "") }
func starsToBullets(s string) string { return strings.ReplaceAll(s, "*", "•") }
func escapeHTML(s string) string     { return html.EscapeString(s) }
func boldToStrong(s string) string   { return boldPair.ReplaceAllString(s, "<strong>$1</strong>") }
func breaksToHTML(s string) string   { return strings.ReplaceAll(s, "\n", "<br />") }

// dropSubjectRow removes the first subject line only; a "Subject:" quoted
// later in the body stays put.
func dropSubjectRow(s string) string {
	if loc := subjectRow.FindStringIndex(s); loc != nil {
		return s[:loc[0]] + s[loc[1]:]
	}
	return s
}

func apply(s string, chain []transform) string {
	for _, t := range chain {
		s = t(s)
	}
	return s
}

// Display renders raw text as HTML: bold markers become <strong>, newlines
// become <br />. Everything else is escaped first, so model output can never
// smuggle markup into the page.
var displayChain = []transform{escapeHTML, boldToStrong, breaksToHTML}

func Display(raw string) string {
	return apply(raw, displayChain)
}

// Plain renders raw text for the clipboard: break markup back to newlines,
// bold pairs reduced to their inner text, stray emphasis markers removed.
var plainChain = []transform{unescapeBreaks, stripBold, stripStars}

func Plain(raw string) string {
	return apply(raw, plainChain)
}

// Email is the subject/body pair for mail composition.
type Email struct {
	Subject string
	Body    string
}

var bodyChain = []transform{dropSubjectRow, unescapeBreaks, stripBold, starsToBullets}

// ForEmail extracts the subject from the first "Subject: ..." line, falling
// back to a subject derived from the record date, and renders the body for
// plain mail clients (bullet glyphs instead of markdown asterisks).
func ForEmail(raw string, rec models.ShiftRecord) Email {
	subject := "EOD Shift Summary - " + shortDate(rec.Date)
	if m := subjectLine.FindStringSubmatch(raw); m != nil {
		subject = m[1]
	}
	return Email{
		Subject: subject,
		Body:    apply(raw, bodyChain),
	}
}

// Mailto composes a mail-launch URL with percent-encoded subject and body.
// An empty recipient or empty raw text is a precondition failure.
func Mailto(recipient string, raw string, rec models.ShiftRecord) (string, error) {
	if raw == "" {
		return "", ErrNoReport
	}
	if recipient == "" {
		return "", ErrNoRecipient
	}
	e := ForEmail(raw, rec)
	return "mailto:" + recipient +
		"?subject=" + encodeComponent(e.Subject) +
		"&body=" + encodeComponent(e.Body), nil
}

// encodeComponent percent-encodes for URL components; spaces become %20,
// not +, which is what mail clients expect.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func shortDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("1/2/2006")
}
