package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/daybookhq/daybook/internal/models"
)

type HabitCmd struct {
	Add       HabitAddCmd       `cmd:"" help:"Add a new habit."`
	Edit      HabitEditCmd      `cmd:"" help:"Edit an existing habit."`
	List      HabitListCmd      `cmd:"" help:"List habits."`
	Mark      HabitMarkCmd      `cmd:"" help:"Mark a habit done (or not done) for a day."`
	Today     HabitTodayCmd     `cmd:"" help:"Show today's habit status."`
	Archive   HabitArchiveCmd   `cmd:"" help:"Archive a habit."`
	Unarchive HabitUnarchiveCmd `cmd:"" help:"Unarchive a habit."`
	Delete    HabitDeleteCmd    `cmd:"" help:"Delete a habit and its completions."`
}

// findHabitByTitle resolves a habit by exact title match.
func findHabitByTitle(habits []models.Habit, title string) (models.Habit, error) {
	for _, h := range habits {
		if h.Title == title {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit %q not found", title)
}

type HabitAddCmd struct {
	Title       string `arg:"" help:"Habit title."`
	Description string `help:"Optional description." default:""`
	Icon        string `help:"Optional icon." default:""`
	Color       string `help:"Display color." default:"hsl(160, 60%, 45%)"`
	Frequency   string `help:"Frequency: daily, weekly or custom." enum:"daily,weekly,custom" default:"daily"`
	Days        string `help:"Weekdays for custom frequency (e.g. mon,wed,fri)." default:""`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	bg := context.Background()
	if err := ctx.Ensure(bg); err != nil {
		return err
	}

	for _, h := range ctx.App.Habits() {
		if h.Title == c.Title {
			return fmt.Errorf("habit with title %q already exists", c.Title)
		}
	}

	habit := models.Habit{
		Title:       c.Title,
		Description: c.Description,
		Icon:        c.Icon,
		Color:       c.Color,
		Frequency:   models.HabitFrequency(c.Frequency),
	}
	if habit.Frequency == models.FrequencyCustom {
		days, err := models.ParseWeekdays(c.Days)
		if err != nil {
			return err
		}
		habit.CustomFrequency = &models.CustomFrequency{Days: days}
	}

	if _, err := ctx.App.AddHabit(bg, habit); err != nil {
		return err
	}

	fmt.Printf("Added habit: %s\n", c.Title)
	return nil
}

type HabitEditCmd struct {
	Title       string `arg:"" help:"Habit title."`
	Rename      string `help:"New title." default:""`
	Description string `help:"New description." default:""`
	Icon        string `help:"New icon." default:""`
	Color       string `help:"New display color." default:""`
	Frequency   string `help:"New frequency: daily, weekly or custom." enum:",daily,weekly,custom" default:""`
	Days        string `help:"Weekdays for custom frequency (e.g. mon,wed,fri)." default:""`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	bg := context.Background()
	if err := ctx.Ensure(bg); err != nil {
		return err
	}

	habit, err := findHabitByTitle(ctx.App.Habits(), c.Title)
	if err != nil {
		return err
	}

	if c.Rename != "" {
		habit.Title = c.Rename
	}
	if c.Description != "" {
		habit.Description = c.Description
	}
	if c.Icon != "" {
		habit.Icon = c.Icon
	}
	if c.Color != "" {
		habit.Color = c.Color
	}
	if c.Frequency != "" {
		habit.Frequency = models.HabitFrequency(c.Frequency)
		if habit.Frequency != models.FrequencyCustom {
			habit.CustomFrequency = nil
		}
	}
	if c.Days != "" {
		days, err := models.ParseWeekdays(c.Days)
		if err != nil {
			return err
		}
		habit.CustomFrequency = &models.CustomFrequency{Days: days}
	}

	if err := ctx.App.UpdateHabit(bg, habit); err != nil {
		return err
	}

	fmt.Printf("Updated habit: %s\n", habit.Title)
	return nil
}

type HabitListCmd struct {
	Archived bool `help:"Include archived habits."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	if err := ctx.Ensure(context.Background()); err != nil {
		return err
	}

	habits := ctx.App.Habits()
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, h := range habits {
		if h.Archived && !c.Archived {
			continue
		}
		status := ""
		if h.Archived {
			status = " [ARCHIVED]"
		}
		fmt.Printf("%s (%s, streak %d, best %d)%s\n",
			h.Title, FormatFrequency(h), h.StreakCount, h.LongestStreak, status)
	}

	return nil
}

type HabitMarkCmd struct {
	Title string `arg:"" help:"Habit title."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	Undo  bool   `help:"Mark the habit as not done instead."`
}

func (c *HabitMarkCmd) Run(ctx *Context) error {
	bg := context.Background()
	if err := ctx.Ensure(bg); err != nil {
		return err
	}

	habit, err := findHabitByTitle(ctx.App.Habits(), c.Title)
	if err != nil {
		return err
	}

	day, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}

	if err := ctx.App.CompleteHabit(bg, habit.ID, day, !c.Undo); err != nil {
		return err
	}

	if c.Undo {
		fmt.Printf("Unmarked habit %q for %s\n", c.Title, day)
	} else {
		fmt.Printf("Marked habit %q for %s\n", c.Title, day)
	}
	return nil
}

type HabitTodayCmd struct{}

func (c *HabitTodayCmd) Run(ctx *Context) error {
	if err := ctx.Ensure(context.Background()); err != nil {
		return err
	}

	habits := ctx.App.Habits()
	today := Today()

	fmt.Printf("Habits for %s:\n\n", today)
	active, done := 0, 0
	for _, h := range habits {
		if h.Archived {
			continue
		}
		active++
		status := "[ ]"
		if h.CompletedOn(today) {
			status = "[x]"
			done++
		}
		line := fmt.Sprintf("%s %s", status, h.Title)
		if h.StreakCount > 0 {
			line += fmt.Sprintf("  (streak %d)", h.StreakCount)
		}
		fmt.Println(line)
	}

	if active == 0 {
		fmt.Println("No habits found.")
		return nil
	}
	fmt.Printf("\n%d/%d done\n", done, active)
	return nil
}

type HabitArchiveCmd struct {
	Title string `arg:"" help:"Habit title."`
}

func (c *HabitArchiveCmd) Run(ctx *Context) error {
	return setArchived(ctx, c.Title, true)
}

type HabitUnarchiveCmd struct {
	Title string `arg:"" help:"Habit title."`
}

func (c *HabitUnarchiveCmd) Run(ctx *Context) error {
	return setArchived(ctx, c.Title, false)
}

func setArchived(ctx *Context, title string, archived bool) error {
	bg := context.Background()
	if err := ctx.Ensure(bg); err != nil {
		return err
	}

	habit, err := findHabitByTitle(ctx.App.Habits(), title)
	if err != nil {
		return err
	}

	if err := ctx.App.ArchiveHabit(bg, habit.ID, archived); err != nil {
		return err
	}

	verb := "Archived"
	if !archived {
		verb = "Unarchived"
	}
	fmt.Printf("%s habit: %s\n", verb, title)
	return nil
}

type HabitDeleteCmd struct {
	Title string `arg:"" help:"Habit title."`
	Yes   bool   `help:"Skip confirmation."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	bg := context.Background()
	if err := ctx.Ensure(bg); err != nil {
		return err
	}

	habit, err := findHabitByTitle(ctx.App.Habits(), c.Title)
	if err != nil {
		return err
	}

	if !c.Yes {
		fmt.Printf("Delete habit %q and all its completions? [y/N] ", c.Title)
		var answer string
		fmt.Scanln(&answer)
		if !strings.HasPrefix(strings.ToLower(answer), "y") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.App.RemoveHabit(bg, habit.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted habit: %s\n", c.Title)
	return nil
}
