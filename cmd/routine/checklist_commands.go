package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amonks/routine/task"
)

// item
var itemCmd = &cobra.Command{
	Use:   "item <task-id> <text>",
	Short: "Add a checklist item to a task",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runItem,
}

// check
var checkCmd = &cobra.Command{
	Use:   "check <task-id> <item-id>",
	Short: "Toggle a checklist item",
	Args:  cobra.ExactArgs(2),
	RunE:  runCheck,
}

var errEmptyItem = errors.New("checklist item text cannot be empty")

func init() {
	rootCmd.AddCommand(itemCmd, checkCmd)
}

func runItem(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		id, err := resolveTaskID(a.store, args[0])
		if err != nil {
			return err
		}
		text := strings.Join(args[1:], " ")
		updated, ok := a.store.AddChecklistItem(id, text)
		if !ok {
			return errEmptyItem
		}
		added := updated.Checklist[len(updated.Checklist)-1]
		done, total := updated.ChecklistProgress()
		fmt.Printf("Added item %s to task %s: %s (%d/%d)\n", added.ID, updated.ID, added.Text, done, total)
		return nil
	})
}

func runCheck(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		id, err := resolveTaskID(a.store, args[0])
		if err != nil {
			return err
		}
		itemID, err := a.store.ResolveItem(id, args[1])
		if err != nil {
			return fmt.Errorf("%w: %q", err, args[1])
		}
		updated, ok := a.store.ToggleChecklistItem(id, itemID)
		if !ok {
			return fmt.Errorf("%w: %q", task.ErrItemNotFound, itemID)
		}

		for _, entry := range updated.Checklist {
			if entry.ID != itemID {
				continue
			}
			verb := "Unchecked"
			if entry.Completed {
				verb = "Checked"
			}
			done, total := updated.ChecklistProgress()
			fmt.Printf("%s item %s: %s (%d/%d)\n", verb, entry.ID, entry.Text, done, total)
		}
		return nil
	})
}
