package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/amonks/routine/internal/editor"
	"github.com/amonks/routine/task"
)

// add
var addCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a task",
	Long: `Add a task.

The text may be given as several arguments; they are joined with spaces.
Due dates accept "3h", "2d", "today", "tomorrow", "2026-05-01", or
"2026-05-01 17:00".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addDue       dueValue
	addPriority  = priorityValue{priority: task.PriorityMedium}
	addChecklist []string
)

// list
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks in order",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var (
	listStatus   statusValue
	listJSON     bool
	listHideDone bool
)

// show
var showCmd = &cobra.Command{
	Use:   "show <id>...",
	Short: "Show details of tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runShow,
}

var showJSON bool

// start, done, reopen
var startCmd = &cobra.Command{
	Use:   "start <id>...",
	Short: "Mark tasks as in progress",
	Args:  cobra.MinimumNArgs(1),
	RunE:  statusRunner(task.StatusInProgress, "Started"),
}

var doneCmd = &cobra.Command{
	Use:     "done <id>...",
	Aliases: []string{"finish"},
	Short:   "Mark tasks as done",
	Args:    cobra.MinimumNArgs(1),
	RunE:    statusRunner(task.StatusDone, "Finished"),
}

var reopenCmd = &cobra.Command{
	Use:   "reopen <id>...",
	Short: "Move tasks back to todo",
	Args:  cobra.MinimumNArgs(1),
	RunE:  statusRunner(task.StatusTodo, "Reopened"),
}

// status
var statusCmd = &cobra.Command{
	Use:   "status <id> <todo|in_progress|done>",
	Short: "Set the status of a task",
	Args:  cobra.ExactArgs(2),
	RunE:  runStatus,
}

// edit
var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change the text, due date, or priority of a task",
	Long: `Change the text, due date, or priority of a task.

Only the flags you pass are changed. --no-due clears the due date and
--item appends a checklist item. --editor opens the task in $EDITOR
instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var (
	editText     string
	editDue      dueValue
	editNoDue    bool
	editPriority priorityValue
	editItem     string
	editInEditor bool
)

// delete
var deleteCmd = &cobra.Command{
	Use:     "delete <id>...",
	Aliases: []string{"rm"},
	Short:   "Delete tasks",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runDelete,
}

// expire
var expireCmd = &cobra.Command{
	Use:   "expire",
	Short: "Delete unfinished tasks whose due date has passed",
	Args:  cobra.NoArgs,
	RunE:  runExpire,
}

func init() {
	rootCmd.AddCommand(addCmd, listCmd, showCmd, startCmd, doneCmd, reopenCmd,
		statusCmd, editCmd, deleteCmd, expireCmd)

	addCmd.Flags().VarP(&addDue, "due", "d", "Due date")
	addCmd.Flags().VarP(&addPriority, "priority", "p", "Priority (high, medium, low)")
	addCmd.Flags().StringArrayVarP(&addChecklist, "item", "i", nil, "Checklist item (repeatable)")

	listCmd.Flags().Var(&listStatus, "status", "Only show tasks with this status")
	listCmd.Flags().BoolVar(&listHideDone, "hide-done", false, "Hide finished tasks")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")

	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")

	editCmd.Flags().StringVar(&editText, "text", "", "New text")
	editCmd.Flags().VarP(&editDue, "due", "d", "New due date")
	editCmd.Flags().BoolVar(&editNoDue, "no-due", false, "Clear the due date")
	editCmd.Flags().VarP(&editPriority, "priority", "p", "New priority (high, medium, low)")
	editCmd.Flags().StringVarP(&editItem, "item", "i", "", "Append a checklist item")
	editCmd.Flags().BoolVarP(&editInEditor, "editor", "e", false, "Edit the task in $EDITOR")
	editCmd.MarkFlagsMutuallyExclusive("due", "no-due")
	addTextFlagAliases(editCmd)
}

// resolveTaskID expands an id prefix.
func resolveTaskID(store *task.Store, arg string) (string, error) {
	id, err := store.Resolve(arg)
	if err != nil {
		return "", fmt.Errorf("%w: %q", err, arg)
	}
	return id, nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		due, err := addDue.resolve(a.now())
		if err != nil {
			return err
		}
		created, ok := a.store.Create(task.CreateInput{
			Text:      strings.Join(args, " "),
			DueDate:   due,
			Checklist: addChecklist,
			Priority:  addPriority.priority,
		})
		if !ok {
			return task.ErrEmptyText
		}
		printTaskLine("Created", created, idHighlighter(a.store.IDIndex()))
		return nil
	})
}

func runList(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		now := a.now()
		tasks := filterTasks(a.store.ListAt(now), listStatus.status, listHideDone)

		if listJSON {
			return encodeJSONToStdout(tasks)
		}
		if len(tasks) == 0 {
			fmt.Println("No tasks.")
			return nil
		}
		fmt.Print(formatTaskTable(tasks, now, idHighlighter(a.store.IDIndex())))
		return nil
	})
}

func filterTasks(tasks []task.Task, status task.Status, hideDone bool) []task.Task {
	filtered := make([]task.Task, 0, len(tasks))
	for _, item := range tasks {
		if status != "" && item.Status != status {
			continue
		}
		if hideDone && item.Status == task.StatusDone {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

func runShow(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		items := make([]task.Task, 0, len(args))
		for _, arg := range args {
			id, err := resolveTaskID(a.store, arg)
			if err != nil {
				return err
			}
			item, _ := a.store.Get(id)
			items = append(items, item)
		}

		if showJSON {
			if len(items) == 1 {
				return encodeJSONToStdout(items[0])
			}
			return encodeJSONToStdout(items)
		}

		highlight := idHighlighter(a.store.IDIndex())
		for i, item := range items {
			if i > 0 {
				fmt.Println()
			}
			printTaskDetail(item, a.now(), highlight)
		}
		return nil
	})
}

func statusRunner(status task.Status, verb string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			return setStatus(a, args, status, verb)
		})
	}
}

func setStatus(a *app, args []string, status task.Status, verb string) error {
	ids := make([]string, 0, len(args))
	for _, arg := range args {
		id, err := resolveTaskID(a.store, arg)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	highlight := idHighlighter(a.store.IDIndex())
	for _, id := range ids {
		updated, ok := a.store.UpdateStatus(id, status)
		if !ok {
			return fmt.Errorf("%w: %q", task.ErrTaskNotFound, id)
		}
		printTaskLine(verb, updated, highlight)
	}
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	status, err := task.ParseStatus(args[1])
	if err != nil {
		return err
	}
	return withApp(func(a *app) error {
		return setStatus(a, args[:1], status, "Updated")
	})
}

var errNothingToUpdate = errors.New("nothing to update (use --text, --due, --no-due, --priority, --item, or --editor)")

func editPatch(cmd *cobra.Command, a *app) (task.Patch, error) {
	var patch task.Patch
	if cmd.Flags().Changed("text") {
		text := editText
		patch.Text = &text
	}
	if cmd.Flags().Changed("due") {
		due, err := editDue.resolve(a.now())
		if err != nil {
			return task.Patch{}, err
		}
		patch.DueDate = due
	}
	patch.ClearDueDate = editNoDue
	if cmd.Flags().Changed("priority") {
		patch.Priority = task.PriorityPtr(editPriority.priority)
	}
	if cmd.Flags().Changed("item") {
		item := editItem
		patch.ChecklistItem = &item
	}
	if patch.IsEmpty() {
		return task.Patch{}, errNothingToUpdate
	}
	return patch, nil
}

var errEditorWithFlags = errors.New("--editor cannot be combined with other edit flags")

func runEdit(cmd *cobra.Command, args []string) error {
	if editInEditor {
		if hasChangedFlags(cmd, "text", "due", "no-due", "priority", "item") {
			return errEditorWithFlags
		}
		return withApp(runEditInEditor(args[0]))
	}
	return withApp(func(a *app) error {
		patch, err := editPatch(cmd, a)
		if err != nil {
			return err
		}
		id, err := resolveTaskID(a.store, args[0])
		if err != nil {
			return err
		}
		updated, ok := a.store.Update(id, patch)
		if !ok {
			return fmt.Errorf("%w: %q", task.ErrTaskNotFound, id)
		}
		printTaskLine("Updated", updated, idHighlighter(a.store.IDIndex()))
		return nil
	})
}

func runEditInEditor(arg string) func(*app) error {
	return func(a *app) error {
		id, err := resolveTaskID(a.store, arg)
		if err != nil {
			return err
		}
		existing, _ := a.store.Get(id)
		now := a.now()
		parsed, err := editor.EditTask(existing, now.Location())
		if err != nil {
			return err
		}
		patch, err := parsed.Patch(existing, now.Location(), func(value string) (time.Time, error) {
			return parseDue(value, now)
		})
		if err != nil {
			return err
		}
		updated, ok := a.store.Update(id, patch)
		if !ok {
			return fmt.Errorf("%w: %q", task.ErrTaskNotFound, id)
		}
		if parsed.Status != existing.Status {
			updated, _ = a.store.UpdateStatus(id, parsed.Status)
		}
		printTaskLine("Updated", updated, idHighlighter(a.store.IDIndex()))
		return nil
	}
}

func runDelete(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		highlight := idHighlighter(a.store.IDIndex())
		for _, arg := range args {
			id, err := resolveTaskID(a.store, arg)
			if err != nil {
				return err
			}
			item, _ := a.store.Get(id)
			a.store.Delete(id)
			printTaskLine("Deleted", item, highlight)
		}
		return nil
	})
}

func runExpire(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		highlight := idHighlighter(a.store.IDIndex())
		expired := a.store.ExpireOverdue(a.now())
		for _, item := range expired {
			printTaskLine("Expired", item, highlight)
		}
		fmt.Printf("Expired %d tasks\n", len(expired))
		return nil
	})
}
