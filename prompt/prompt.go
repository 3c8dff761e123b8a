// Package prompt turns a shift record into the instruction text sent to the
// generative model. Synthesis is deterministic: same record, same prompt.
package prompt

import (
	"errors"
	"fmt"
	"time"

	"shiftwrite/models"
)

// Fallback literals substituted for absent optional fields. These exact
// strings are part of the prompt contract; downstream tests and consumers
// rely on them byte-for-byte.
const (
	FallbackNotProvided = "Not provided."
	FallbackAttendance  = "All staff present."
	FallbackDiscipline  = "None."
	FallbackTeamwork    = "A smooth, standard shift."
	FallbackNotes       = "No issues to report."
)

// ErrMissingRequired is returned when the record lacks a date or total
// sales. Synthesis must not be attempted in that case.
var ErrMissingRequired = errors.New("date and total sales are required")

// Validate enforces the presence-only gate ahead of synthesis.
func Validate(rec models.ShiftRecord) error {
	if rec.TotalSales == "" || rec.Date == "" {
		return ErrMissingRequired
	}
	return nil
}

const template = `You are an AI assistant for a restaurant owner, acting as an expert analyst. Your job is to take raw data from the on-duty manager and transform it into a clear, insightful, and actionable EOD summary.
The tone should be conversational but professional, like a trusted GM giving a direct briefing. Avoid jargon where possible. The structure should be easy to scan, not a wall of text. Use bullet points within sections.

**Your first task is to calculate key metrics:**
1.  **Labor Percent:** Calculate by dividing Labor Dollars by Total Sales.
2.  **Per Person Average (PPA):** Calculate by dividing Total Sales by Total Guests.

**Then, generate the summary using this exact structure:**

**Subject: EOD Report - [Date]**

Good evening, here is the breakdown of tonight's shift.

**Quick Stats:**
* **Sales:** $%s
* **Guests:** %s
* **PPA (Per Person Average):** [Your Calculated Value]
* **Labor:** [Your Calculated Labor %%] ($%s)

**The Bottom Line (Performance Analysis):**
* **Sales:** In this section, analyze the sales volume. Compare it to the same day last year and the weekly forecast if provided.
* **Guest Spending (PPA):** Analyze the calculated PPA. Is it a strong number? A high PPA is great and might mean servers are upselling effectively. A low PPA might be a coaching opportunity.
* **Labor Control:** Analyze the calculated labor percentage and dollar amount. How does this impact the weekly labor budget? Acknowledge that a higher percentage on a high-volume day can be acceptable, while a high percentage on a slow day is a concern that needs managing.

**Team Work Spotlight:**
* Summarize the positive notes about teamwork, unity, and effort provided by the manager. Use bullet points for specific examples.

**Areas for Improvement:**
* Summarize any disciplinary or attendance issues professionally and factually.

**Critical Recommendations (Action Items):**
* Create a bulleted list of clear, actionable recommendations based on the "General / Maintenance Notes". If there are no notes, state "No critical action items tonight."

Best,
Shift-Write AI

**--- Raw Manager Notes for Reference ---**
[Include the raw notes from the manager here]

RAW DATA FOR ANALYSIS:
- Date: %s
- Total Sales: $%s
- Total Guests: %s
- Labor Dollars: $%s
- Weekly Sales Forecast: %s
- Same Day Last Year Sales: %s
- Weekly Labor Budget: %s
- Attendance: %s
- Discipline: %s
- Teamwork Spotlight Notes: %s
- General / Maintenance Notes: %s`

// Build synthesizes the instruction text for a validated record. The two
// derived metrics (PPA, labor percent) are requested of the model rather
// than computed here: contextualizing them against forecast and last-year
// figures is delegated to the model along with the arithmetic. A zero guest
// count is passed through as-is.
func Build(rec models.ShiftRecord) string {
	return fmt.Sprintf(template,
		rec.TotalSales,
		rec.TotalGuests,
		rec.LaborDollars,
		longDate(rec.Date),
		rec.TotalSales,
		rec.TotalGuests,
		rec.LaborDollars,
		orFallback(rec.WeeklyForecast, FallbackNotProvided),
		orFallback(rec.LastYearSales, FallbackNotProvided),
		orFallback(rec.WeeklyLaborBudget, FallbackNotProvided),
		orFallback(rec.Attendance, FallbackAttendance),
		orFallback(rec.Discipline, FallbackDiscipline),
		orFallback(rec.TeamworkSpotlight, FallbackTeamwork),
		orFallback(rec.Notes, FallbackNotes),
	)
}

func orFallback(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// longDate renders an ISO date as e.g. "Wednesday, May 1, 2024". Unparseable
// input is passed through unchanged rather than failing synthesis.
func longDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("Monday, January 2, 2006")
}
