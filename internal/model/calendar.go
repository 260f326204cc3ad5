package model

// DayCell is one cell of the rendered month grid. Day 0 means a blank
// padding cell before the 1st or after the last day of the month.
type DayCell struct {
	Day     int  `json:"day"`
	IsToday bool `json:"isToday"`

	PendingCount int    `json:"pendingCount"`
	PendingTotal string `json:"pendingTotal"`
	PaidCount    int    `json:"paidCount"`
	PaidTotal    string `json:"paidTotal"`
}

// Week is a Monday-first row of seven cells.
type Week [7]DayCell

// Calendar is the fully rendered month view handed to the presentation
// layer: header labels, the grid, and month-level stats with amounts
// pre-formatted in BRL.
type Calendar struct {
	Year      int      `json:"year"`
	Month     int      `json:"month"`
	MonthName string   `json:"monthName"`
	Weekdays  []string `json:"weekdays"`
	Weeks     []Week   `json:"weeks"`

	Stats MonthStats `json:"stats"`
}

// MonthStats mirrors MonthAggregate with display strings attached.
type MonthStats struct {
	PendingCount int    `json:"pendingCount"`
	PendingTotal string `json:"pendingTotal"`
	PaidCount    int    `json:"paidCount"`
	PaidTotal    string `json:"paidTotal"`
}
