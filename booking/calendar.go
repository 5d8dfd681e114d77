package booking

import "time"

// DateLayout is the wire format of booking dates.
const DateLayout = "2006-01-02"

// Day is one cell of the month grid.
type Day struct {
	Date           string `json:"date"`
	DayOfMonth     int    `json:"day_of_month"`
	IsCurrentMonth bool   `json:"is_current_month"`
	IsToday        bool   `json:"is_today"`
	IsPast         bool   `json:"is_past"`
	IsSelected     bool   `json:"is_selected"`
	// Selectable is false for past days and days outside the month.
	Selectable bool `json:"selectable"`
}

// Month is a calendar page made of whole weeks starting on Sunday.
type Month struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Label string  `json:"label"`
	Weeks [][]Day `json:"weeks"`
}

// MonthGrid lays out month of year. Days before today are marked past;
// selected may be nil.
func MonthGrid(year int, month time.Month, today time.Time, selected *time.Time) Month {
	loc := today.Location()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	lead := int(first.Weekday())
	rows := (lead + daysInMonth + 6) / 7

	todayStart := startOfDay(today)

	grid := Month{
		Year:  first.Year(),
		Month: int(first.Month()),
		Label: first.Format("January 2006"),
		Weeks: make([][]Day, rows),
	}

	cursor := first.AddDate(0, 0, -lead)
	for r := 0; r < rows; r++ {
		week := make([]Day, 7)
		for c := range week {
			inMonth := cursor.Month() == first.Month()
			past := cursor.Before(todayStart)
			week[c] = Day{
				Date:           cursor.Format(DateLayout),
				DayOfMonth:     cursor.Day(),
				IsCurrentMonth: inMonth,
				IsToday:        inMonth && sameDay(cursor, today),
				IsPast:         past,
				IsSelected:     selected != nil && sameDay(cursor, *selected),
				Selectable:     inMonth && !past,
			}
			cursor = cursor.AddDate(0, 0, 1)
		}
		grid.Weeks[r] = week
	}
	return grid
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
