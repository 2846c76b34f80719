package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	model "todaygenda.com/todaygenda/internal/models"
	"todaygenda.com/todaygenda/pkg/duration"
)

var addCmd = &cobra.Command{
	Use:   "add TITLE ESTIMATE",
	Short: "Add a task to the end of today's list",
	Long:  "Adds a task. ESTIMATE is a number of minutes or a duration such as 1h30m.",
	Args:  cobra.MinimumNArgs(2),
	RunE: withSchema(func(cmd *cobra.Command, args []string, a *app) error {
		title := strings.Join(args[:len(args)-1], " ")
		estimate := duration.Parse(args[len(args)-1])

		now := time.Now()
		user, _, err := a.today(cmd.Context(), now)
		if err != nil {
			return err
		}

		task, err := a.tasks.AddTask(cmd.Context(), user.ID, title, estimate, now)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "added %q (%s)\n", task.Title, duration.Format(task.Estimate))
		return nil
	}),
}

// importFile is the format read by the import command. Each entry is a title
// and an estimate separated by a tab.
type importFile struct {
	Tasks []string `json:"tasks"`
}

type importedTask struct {
	title    string
	estimate time.Duration
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Add every task listed in a JSON file",
	Long:  `Reads {"tasks": ["title<TAB>1h30m", ...]} and appends the tasks in order.`,
	Args:  cobra.ExactArgs(1),
	RunE: withSchema(func(cmd *cobra.Command, args []string, a *app) error {
		tasks, err := readImportFile(args[0])
		if err != nil {
			return err
		}

		now := time.Now()
		user, _, err := a.today(cmd.Context(), now)
		if err != nil {
			return err
		}

		for _, t := range tasks {
			if _, err := a.tasks.AddTask(cmd.Context(), user.ID, t.title, t.estimate, now); err != nil {
				return fmt.Errorf("import %q: %w", t.title, err)
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "imported %d tasks\n", len(tasks))
		return nil
	}),
}

// readImportFile parses and validates every line before anything is added.
func readImportFile(path string) ([]importedTask, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file importFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("invalid import file: %w", err)
	}

	tasks := make([]importedTask, 0, len(file.Tasks))
	for i, line := range file.Tasks {
		title, rawEstimate := duration.SplitTitle(line)
		estimate := duration.Parse(rawEstimate)

		if err := model.ValidateTitle(title); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		if err := model.ValidateEstimate(estimate); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		tasks = append(tasks, importedTask{title: title, estimate: estimate})
	}

	return tasks, nil
}

var completeCmd = &cobra.Command{
	Use:   "complete [N]",
	Short: "Mark the Nth pending task done (default: the first)",
	Args:  cobra.MaximumNArgs(1),
	RunE: withSchema(func(cmd *cobra.Command, args []string, a *app) error {
		n := 1
		if len(args) == 1 {
			var err error
			if n, err = taskNumber(args[0]); err != nil {
				return err
			}
		}

		now := time.Now()
		user, list, err := a.today(cmd.Context(), now)
		if err != nil {
			return err
		}
		task, err := list.PendingAt(n - 1)
		if err != nil {
			return err
		}

		if _, err := a.tasks.CompleteTasks(cmd.Context(), user.ID, []uint{task.ID}, now); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "done: %s\n", task.Title)
		return nil
	}),
}

var undoCmd = &cobra.Command{
	Use:   "undo N",
	Short: "Move the Nth done task back to the end of the pending list",
	Args:  cobra.ExactArgs(1),
	RunE: withSchema(func(cmd *cobra.Command, args []string, a *app) error {
		n, err := taskNumber(args[0])
		if err != nil {
			return err
		}

		now := time.Now()
		user, list, err := a.today(cmd.Context(), now)
		if err != nil {
			return err
		}
		task, err := list.DoneAt(n - 1)
		if err != nil {
			return err
		}

		if _, err := a.tasks.UncompleteTasks(cmd.Context(), user.ID, []uint{task.ID}, now); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "pending again: %s\n", task.Title)
		return nil
	}),
}

var deleteCmd = &cobra.Command{
	Use:   "delete N",
	Short: "Remove the Nth pending task for good",
	Args:  cobra.ExactArgs(1),
	RunE: withSchema(func(cmd *cobra.Command, args []string, a *app) error {
		n, err := taskNumber(args[0])
		if err != nil {
			return err
		}

		now := time.Now()
		user, list, err := a.today(cmd.Context(), now)
		if err != nil {
			return err
		}
		task, err := list.PendingAt(n - 1)
		if err != nil {
			return err
		}

		if _, err := a.tasks.DeleteTask(cmd.Context(), user.ID, task.ID, now); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "deleted: %s\n", task.Title)
		return nil
	}),
}

func taskNumber(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("task number must be a positive integer, got %q", raw)
	}
	return n, nil
}

func init() {
	rootCmd.AddCommand(addCmd, importCmd, completeCmd, undoCmd, deleteCmd)
}
