package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/daybookhq/daybook/internal/models"
)

type TaskCmd struct {
	Add     TaskAddCmd     `cmd:"" help:"Add a new task."`
	Edit    TaskEditCmd    `cmd:"" help:"Edit an existing task."`
	List    TaskListCmd    `cmd:"" help:"List tasks."`
	Done    TaskDoneCmd    `cmd:"" help:"Mark a task completed."`
	Subtask TaskSubtaskCmd `cmd:"" help:"Toggle a subtask's completion."`
	Delete  TaskDeleteCmd  `cmd:"" help:"Delete a task."`
}

func findTaskByTitle(tasks []models.Task, title string) (models.Task, error) {
	for _, t := range tasks {
		if t.Title == title {
			return t, nil
		}
	}
	return models.Task{}, fmt.Errorf("task %q not found", title)
}

type TaskAddCmd struct {
	Title       string   `arg:"" help:"Task title."`
	Description string   `help:"Optional description." default:""`
	Priority    string   `help:"Priority: low, medium or high." enum:"low,medium,high" default:"medium"`
	Due         string   `help:"Due date in YYYY-MM-DD format." default:""`
	DueTime     string   `help:"Due time in HH:MM format." default:""`
	Tags        []string `help:"Tags for the task."`
	Subtask     []string `help:"Subtask titles (repeatable)."`
}

func (c *TaskAddCmd) Run(ctx *Context) error {
	bg := context.Background()
	if err := ctx.Ensure(bg); err != nil {
		return err
	}

	task := models.Task{
		Title:       c.Title,
		Description: c.Description,
		Status:      models.StatusTodo,
		Priority:    models.TaskPriority(c.Priority),
		DueDate:     c.Due,
		DueTime:     c.DueTime,
		Tags:        c.Tags,
	}
	for _, title := range c.Subtask {
		task.SubTasks = append(task.SubTasks, models.SubTask{Title: title})
	}

	if _, err := ctx.App.AddTask(bg, task); err != nil {
		return err
	}

	fmt.Printf("Added task: %s\n", c.Title)
	return nil
}

type TaskEditCmd struct {
	Title       string   `arg:"" help:"Task title."`
	Rename      string   `help:"New title." default:""`
	Description string   `help:"New description." default:""`
	Status      string   `help:"New status." enum:",todo,in-progress,completed" default:""`
	Priority    string   `help:"New priority." enum:",low,medium,high" default:""`
	Due         string   `help:"New due date in YYYY-MM-DD format." default:""`
	DueTime     string   `help:"New due time in HH:MM format." default:""`
	Tags        []string `help:"Replace the task's tags."`
}

func (c *TaskEditCmd) Run(ctx *Context) error {
	bg := context.Background()
	if err := ctx.Ensure(bg); err != nil {
		return err
	}

	task, err := findTaskByTitle(ctx.App.Tasks(), c.Title)
	if err != nil {
		return err
	}

	if c.Rename != "" {
		task.Title = c.Rename
	}
	if c.Description != "" {
		task.Description = c.Description
	}
	if c.Status != "" {
		task.Status = models.TaskStatus(c.Status)
	}
	if c.Priority != "" {
		task.Priority = models.TaskPriority(c.Priority)
	}
	if c.Due != "" {
		task.DueDate = c.Due
	}
	if c.DueTime != "" {
		task.DueTime = c.DueTime
	}
	if len(c.Tags) > 0 {
		task.Tags = c.Tags
	}

	if err := ctx.App.UpdateTask(bg, task); err != nil {
		return err
	}

	fmt.Printf("Updated task: %s\n", task.Title)
	return nil
}

type TaskListCmd struct {
	Status string `help:"Filter by status (todo, in-progress, completed)." default:""`
}

func (c *TaskListCmd) Run(ctx *Context) error {
	if err := ctx.Ensure(context.Background()); err != nil {
		return err
	}

	tasks := ctx.App.Tasks()
	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}

	for _, t := range tasks {
		if c.Status != "" && string(t.Status) != c.Status {
			continue
		}
		mark := "[ ]"
		switch t.Status {
		case models.StatusCompleted:
			mark = "[x]"
		case models.StatusInProgress:
			mark = "[-]"
		}
		line := fmt.Sprintf("%s %s (%s)", mark, t.Title, t.Priority)
		if t.DueDate != "" {
			line += " due " + t.DueDate
			if t.DueTime != "" {
				line += " " + t.DueTime
			}
		}
		if len(t.Tags) > 0 {
			line += " #" + strings.Join(t.Tags, " #")
		}
		fmt.Println(line)
		for _, st := range t.SubTasks {
			sub := "[ ]"
			if st.Completed {
				sub = "[x]"
			}
			fmt.Printf("    %s %s\n", sub, st.Title)
		}
	}

	return nil
}

type TaskDoneCmd struct {
	Title string `arg:"" help:"Task title."`
}

func (c *TaskDoneCmd) Run(ctx *Context) error {
	bg := context.Background()
	if err := ctx.Ensure(bg); err != nil {
		return err
	}

	task, err := findTaskByTitle(ctx.App.Tasks(), c.Title)
	if err != nil {
		return err
	}

	if err := ctx.App.CompleteTask(bg, task.ID); err != nil {
		return err
	}

	fmt.Printf("Completed task: %s\n", c.Title)
	return nil
}

type TaskSubtaskCmd struct {
	Title   string `arg:"" help:"Task title."`
	Subtask string `arg:"" help:"Subtask title."`
}

func (c *TaskSubtaskCmd) Run(ctx *Context) error {
	bg := context.Background()
	if err := ctx.Ensure(bg); err != nil {
		return err
	}

	task, err := findTaskByTitle(ctx.App.Tasks(), c.Title)
	if err != nil {
		return err
	}

	for _, st := range task.SubTasks {
		if st.Title != c.Subtask {
			continue
		}
		if err := ctx.App.ToggleSubTask(bg, task.ID, st.ID); err != nil {
			return err
		}
		state := "done"
		if st.Completed {
			state = "not done"
		}
		fmt.Printf("Marked subtask %q %s\n", c.Subtask, state)
		return nil
	}
	return fmt.Errorf("subtask %q not found on task %q", c.Subtask, c.Title)
}

type TaskDeleteCmd struct {
	Title string `arg:"" help:"Task title."`
	Yes   bool   `help:"Skip confirmation."`
}

func (c *TaskDeleteCmd) Run(ctx *Context) error {
	bg := context.Background()
	if err := ctx.Ensure(bg); err != nil {
		return err
	}

	task, err := findTaskByTitle(ctx.App.Tasks(), c.Title)
	if err != nil {
		return err
	}

	if !c.Yes {
		fmt.Printf("Delete task %q? [y/N] ", c.Title)
		var answer string
		fmt.Scanln(&answer)
		if !strings.HasPrefix(strings.ToLower(answer), "y") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.App.RemoveTask(bg, task.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted task: %s\n", c.Title)
	return nil
}
