package cli

import (
	"context"
	"fmt"

	"github.com/daybookhq/daybook/internal/models"
)

type EventCmd struct {
	Add    EventAddCmd    `cmd:"" help:"Add a calendar event."`
	Edit   EventEditCmd   `cmd:"" help:"Edit a stored calendar event."`
	List   EventListCmd   `cmd:"" help:"List stored calendar events."`
	Delete EventDeleteCmd `cmd:"" help:"Delete a stored calendar event."`
}

type EventAddCmd struct {
	Title string `arg:"" help:"Event title."`
	Date  string `arg:"" help:"Event date in YYYY-MM-DD format."`
	Start string `help:"Start time in HH:MM format." default:""`
	End   string `help:"End time in HH:MM format." default:""`
	Type  string `help:"Event type: task or habit." enum:"task,habit" default:"task"`
	For   string `help:"ID of the related task or habit." default:""`
}

func (c *EventAddCmd) Run(ctx *Context) error {
	bg := context.Background()
	if err := ctx.Ensure(bg); err != nil {
		return err
	}

	event := models.CalendarEvent{
		Title:     c.Title,
		Date:      c.Date,
		StartTime: c.Start,
		EndTime:   c.End,
		Type:      models.EventType(c.Type),
		RelatedID: c.For,
	}

	id, err := ctx.App.AddEvent(bg, event)
	if err != nil {
		return err
	}

	fmt.Printf("Added event %s on %s (%s)\n", c.Title, c.Date, id)
	return nil
}

type EventEditCmd struct {
	ID    string `arg:"" help:"Event id."`
	Title string `help:"New title." default:""`
	Date  string `help:"New date in YYYY-MM-DD format." default:""`
	Start string `help:"New start time in HH:MM format." default:""`
	End   string `help:"New end time in HH:MM format." default:""`
}

func (c *EventEditCmd) Run(ctx *Context) error {
	bg := context.Background()
	if err := ctx.Ensure(bg); err != nil {
		return err
	}

	var event models.CalendarEvent
	found := false
	for _, e := range ctx.App.Events() {
		if e.ID == c.ID {
			event, found = e, true
			break
		}
	}
	if !found {
		return fmt.Errorf("event %q not found", c.ID)
	}

	if c.Title != "" {
		event.Title = c.Title
	}
	if c.Date != "" {
		event.Date = c.Date
	}
	if c.Start != "" {
		event.StartTime = c.Start
	}
	if c.End != "" {
		event.EndTime = c.End
	}

	if err := ctx.App.UpdateEvent(bg, event); err != nil {
		return err
	}

	fmt.Printf("Updated event: %s\n", event.Title)
	return nil
}

type EventListCmd struct {
	Date string `help:"Only show events for this date (YYYY-MM-DD)." default:""`
}

func (c *EventListCmd) Run(ctx *Context) error {
	if err := ctx.Ensure(context.Background()); err != nil {
		return err
	}

	events := ctx.App.Events()
	if len(events) == 0 {
		fmt.Println("No events found.")
		return nil
	}

	for _, e := range events {
		if c.Date != "" && e.Date != c.Date {
			continue
		}
		line := fmt.Sprintf("%s  %s", e.Date, e.Title)
		if e.StartTime != "" {
			line += " " + e.StartTime
			if e.EndTime != "" {
				line += "-" + e.EndTime
			}
		}
		fmt.Printf("%s  [%s]  %s\n", line, e.Type, e.ID)
	}

	return nil
}

type EventDeleteCmd struct {
	ID string `arg:"" help:"Event id."`
}

func (c *EventDeleteCmd) Run(ctx *Context) error {
	bg := context.Background()
	if err := ctx.Ensure(bg); err != nil {
		return err
	}

	if err := ctx.App.RemoveEvent(bg, c.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted event: %s\n", c.ID)
	return nil
}
