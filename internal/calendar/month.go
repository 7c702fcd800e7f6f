package calendar

import (
	"fmt"
	"time"

	"github.com/daybookhq/daybook/internal/constants"
	"github.com/daybookhq/daybook/internal/models"
)

// MonthDay is one cell of a month grid. Padding cells before the first and
// after the last day of the month carry an empty Date.
type MonthDay struct {
	Date   string
	Day    int
	Events []models.CalendarEvent
}

// MonthGrid lays a month out in Monday-first weeks of seven cells each.
type MonthGrid struct {
	Year  int
	Month time.Month
	Weeks [][7]MonthDay
}

// Title returns the grid's header label, e.g. "June 2024".
func (g MonthGrid) Title() string {
	return fmt.Sprintf("%s %d", g.Month, g.Year)
}

// Contains reports whether the date falls inside the grid's month.
func (g MonthGrid) Contains(date string) bool {
	day, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return false
	}
	return day.Year() == g.Year && day.Month() == g.Month
}

// MonthOf returns the year and month containing the date.
func MonthOf(date string) (int, time.Month, error) {
	day, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid date format: %w", err)
	}
	return day.Year(), day.Month(), nil
}

// Month projects every day of the given month into a grid. Each cell carries
// the day's derived events per the same occurrence rules as Project.
func (p *Projector) Month(year int, month time.Month, habits []models.Habit, tasks []models.Task, opts Options) (MonthGrid, error) {
	if month < time.January || month > time.December {
		return MonthGrid{}, fmt.Errorf("invalid month: %d", month)
	}

	grid := MonthGrid{Year: year, Month: month}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	var week [7]MonthDay
	col := mondayIndex(first.Weekday())
	for day := first; day.Month() == month; day = day.AddDate(0, 0, 1) {
		date := day.Format(constants.DateFormat)
		events, err := p.Project(date, habits, tasks, opts)
		if err != nil {
			return MonthGrid{}, err
		}
		week[col] = MonthDay{Date: date, Day: day.Day(), Events: events}
		col++
		if col == 7 {
			grid.Weeks = append(grid.Weeks, week)
			week = [7]MonthDay{}
			col = 0
		}
	}
	if col > 0 {
		grid.Weeks = append(grid.Weeks, week)
	}
	return grid, nil
}

// mondayIndex maps a weekday to its column in a Monday-first week.
func mondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}
