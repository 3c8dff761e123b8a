package models

import "time"

// ShiftRecord is the mutable shift-data form state. Values are kept as the
// raw strings the manager typed; an empty string means "not provided" and is
// substituted with an explicit fallback at prompt-synthesis time, never
// silently dropped.
type ShiftRecord struct {
	Date              string `json:"date"`
	TotalSales        string `json:"totalSales"`
	TotalGuests       string `json:"totalGuests"`
	LaborDollars      string `json:"laborDollars"`
	LastYearSales     string `json:"lastYearSales"`
	WeeklyForecast    string `json:"weeklyForecast"`
	WeeklyLaborBudget string `json:"weeklyLaborBudget"`
	RecipientEmail    string `json:"recipientEmail"`
	Attendance        string `json:"attendance"`
	Discipline        string `json:"discipline"`
	TeamworkSpotlight string `json:"teamworkSpotlight"`
	Notes             string `json:"notes"`
}

// GeneratedReport is the outcome of one successful generation. Immutable
// once created.
type GeneratedReport struct {
	RawText   string    `json:"rawText"`
	CreatedAt time.Time `json:"createdAt"`
}

// HistoryEntry is one persisted report, owned by exactly one user.
type HistoryEntry struct {
	ID        string      `json:"id"`
	OwnerID   string      `json:"ownerId"`
	Record    ShiftRecord `json:"record"`
	RawText   string      `json:"rawText"`
	CreatedAt time.Time   `json:"createdAt"`
}
