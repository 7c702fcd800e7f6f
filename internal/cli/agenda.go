package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/daybookhq/daybook/internal/calendar"
	"github.com/daybookhq/daybook/internal/constants"
	"github.com/daybookhq/daybook/internal/models"
)

type AgendaCmd struct {
	Date     string `arg:"" optional:"" help:"Date in YYYY-MM-DD format (default: today)."`
	Until    string `help:"Show every day through this date (YYYY-MM-DD)." default:""`
	Month    bool   `help:"Show the whole month containing the date as a grid."`
	NoHabits bool   `help:"Hide habit occurrences."`
	NoTasks  bool   `help:"Hide task due dates."`
}

var (
	habitBadge = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("habit")
	taskBadge  = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Render("task ")
	highStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	todayStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
)

func (c *AgendaCmd) Run(ctx *Context) error {
	if err := ctx.Ensure(context.Background()); err != nil {
		return err
	}

	date, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}

	opts := calendar.Options{
		ShowHabits: !c.NoHabits,
		ShowTasks:  !c.NoTasks,
	}

	if c.Month {
		return printMonth(ctx, date, opts)
	}
	if c.Until != "" {
		return c.printRange(ctx, date, opts)
	}

	events, err := ctx.App.Agenda(date, opts)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		fmt.Printf("Nothing scheduled for %s.\n", date)
		return nil
	}

	fmt.Printf("Agenda for %s:\n\n", date)
	printEvents(events)
	return nil
}

func (c *AgendaCmd) printRange(ctx *Context, start string, opts calendar.Options) error {
	until, err := ResolveDate(c.Until)
	if err != nil {
		return err
	}

	byDate, err := ctx.App.AgendaRange(start, until, opts)
	if err != nil {
		return err
	}

	from, _ := time.Parse(constants.DateFormat, start)
	to, _ := time.Parse(constants.DateFormat, until)
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		date := day.Format(constants.DateFormat)
		fmt.Printf("%s (%s):\n", date, day.Weekday().String()[:3])
		events := byDate[date]
		if len(events) == 0 {
			fmt.Println("  nothing scheduled")
		} else {
			printEvents(events)
		}
		fmt.Println()
	}
	return nil
}

func printMonth(ctx *Context, date string, opts calendar.Options) error {
	grid, err := ctx.App.AgendaMonth(date, opts)
	if err != nil {
		return err
	}

	today := Today()
	fmt.Printf("%s\n\n", grid.Title())
	fmt.Println(" Mon  Tue  Wed  Thu  Fri  Sat  Sun")
	for _, week := range grid.Weeks {
		var row strings.Builder
		for _, day := range week {
			if day.Date == "" {
				row.WriteString("     ")
				continue
			}
			mark := " "
			if len(day.Events) > 0 {
				mark = "*"
			}
			cell := fmt.Sprintf(" %2d%s ", day.Day, mark)
			if day.Date == today {
				cell = todayStyle.Render(cell)
			}
			row.WriteString(cell)
		}
		fmt.Println(strings.TrimRight(row.String(), " "))
	}
	fmt.Println("\n* marks days with scheduled items")
	return nil
}

func printEvents(events []models.CalendarEvent) {
	for _, e := range events {
		badge := taskBadge
		if e.Type == models.EventTypeHabit {
			badge = habitBadge
		}
		title := e.Title
		if e.Color == calendar.PriorityColor(models.PriorityHigh) && e.Type == models.EventTypeTask {
			title = highStyle.Render(title)
		}
		line := fmt.Sprintf("  %s  %s", badge, title)
		if e.StartTime != "" {
			line += "  " + e.StartTime
			if e.EndTime != "" {
				line += "-" + e.EndTime
			}
		}
		fmt.Println(line)
	}
}
