package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftwrite/models"
)

func TestValidateRequiresDateAndSales(t *testing.T) {
	assert.ErrorIs(t, Validate(models.ShiftRecord{}), ErrMissingRequired)
	assert.ErrorIs(t, Validate(models.ShiftRecord{Date: "2024-05-01"}), ErrMissingRequired)
	assert.ErrorIs(t, Validate(models.ShiftRecord{TotalSales: "5000"}), ErrMissingRequired)
	assert.NoError(t, Validate(models.ShiftRecord{Date: "2024-05-01", TotalSales: "5000"}))
}

func TestBuildIncludesProvidedValuesAndFallbacks(t *testing.T) {
	rec := models.ShiftRecord{
		Date:         "2024-05-01",
		TotalSales:   "5000",
		TotalGuests:  "200",
		LaborDollars: "1500",
	}

	p := Build(rec)

	assert.Contains(t, p, "$5000")
	assert.Contains(t, p, "- Total Guests: 200")
	assert.Contains(t, p, "$1500")
	assert.Contains(t, p, "- Date: Wednesday, May 1, 2024")

	// Absent optional fields get their exact fallback, never an empty slot.
	assert.Contains(t, p, "- Weekly Sales Forecast: "+FallbackNotProvided)
	assert.Contains(t, p, "- Same Day Last Year Sales: "+FallbackNotProvided)
	assert.Contains(t, p, "- Weekly Labor Budget: "+FallbackNotProvided)
	assert.Contains(t, p, "- Attendance: "+FallbackAttendance)
	assert.Contains(t, p, "- Discipline: "+FallbackDiscipline)
	assert.Contains(t, p, "- Teamwork Spotlight Notes: "+FallbackTeamwork)
	assert.Contains(t, p, "- General / Maintenance Notes: "+FallbackNotes)
}

func TestBuildIncludesFreeTextVerbatim(t *testing.T) {
	rec := models.ShiftRecord{
		Date:              "2024-05-01",
		TotalSales:        "5000",
		Attendance:        "Emily called out sick",
		Discipline:        "Verbal warning to Mike",
		TeamworkSpotlight: "Jessica received a compliment",
		Notes:             "Low on Ketel One",
	}

	p := Build(rec)

	assert.Contains(t, p, "Emily called out sick")
	assert.Contains(t, p, "Verbal warning to Mike")
	assert.Contains(t, p, "Jessica received a compliment")
	assert.Contains(t, p, "Low on Ketel One")
	assert.NotContains(t, p, FallbackAttendance)
}

func TestBuildZeroGuestsDoesNotPanic(t *testing.T) {
	rec := models.ShiftRecord{
		Date:        "2024-05-01",
		TotalSales:  "5000",
		TotalGuests: "0",
	}

	var p string
	require.NotPanics(t, func() { p = Build(rec) })

	// The zero passes through untouched; the model is the one asked to
	// divide.
	assert.Contains(t, p, "- Total Guests: 0")
	assert.Contains(t, p, "dividing Total Sales by Total Guests")
}

func TestBuildIsDeterministic(t *testing.T) {
	rec := models.ShiftRecord{Date: "2024-05-01", TotalSales: "5000"}
	assert.Equal(t, Build(rec), Build(rec))
}

func TestBuildRequestsDelegatedMetricsAndSkeleton(t *testing.T) {
	p := Build(models.ShiftRecord{Date: "2024-05-01", TotalSales: "5000"})

	for _, section := range []string{
		"**Quick Stats:**",
		"**The Bottom Line (Performance Analysis):**",
		"**Team Work Spotlight:**",
		"**Areas for Improvement:**",
		"**Critical Recommendations (Action Items):**",
	} {
		assert.Contains(t, p, section)
	}
	assert.Contains(t, p, "Labor Percent")
	assert.Contains(t, p, "Per Person Average (PPA)")
}

func TestLongDatePassesThroughUnparseableInput(t *testing.T) {
	p := Build(models.ShiftRecord{Date: "sometime tuesday", TotalSales: "100"})
	assert.True(t, strings.Contains(p, "- Date: sometime tuesday"))
}
