package task

import internalstrings "github.com/amonks/routine/internal/strings"

// ToggleItem flips Completed on the checklist item matching itemID.
// The returned task has a fresh checklist slice; t is left untouched.
// ok is false, and the task is returned unchanged, when no item matches.
// Status and CompletedAt are never altered here.
func ToggleItem(t Task, itemID string) (Task, bool) {
	for i := range t.Checklist {
		if t.Checklist[i].ID != itemID {
			continue
		}
		out := t.Clone()
		out.Checklist[i].Completed = !out.Checklist[i].Completed
		return out, true
	}
	return t, false
}

// AddItem appends an unchecked item with a fresh id. Blank text is a no-op.
func AddItem(t Task, text string, ids IDGenerator) (Task, bool) {
	text = internalstrings.TrimSpace(text)
	if text == "" {
		return t, false
	}
	out := t.Clone()
	out.Checklist = append(out.Checklist, ChecklistItem{
		ID:   newItemID(out.Checklist, ids),
		Text: text,
	})
	return out, true
}

// AllItemsCompleted reports whether the checklist is non-empty and every
// item is checked.
func AllItemsCompleted(t Task) bool {
	done, total := t.ChecklistProgress()
	return total > 0 && done == total
}

func buildChecklist(texts []string, ids IDGenerator) []ChecklistItem {
	items := make([]ChecklistItem, 0, len(texts))
	for _, text := range texts {
		items = append(items, ChecklistItem{
			ID:   newItemID(items, ids),
			Text: text,
		})
	}
	return items
}

// newItemID draws ids until one is unused within items.
func newItemID(items []ChecklistItem, ids IDGenerator) string {
	for {
		id := ids.NewID()
		if !hasItemID(items, id) {
			return id
		}
	}
}

func hasItemID(items []ChecklistItem, id string) bool {
	for _, item := range items {
		if item.ID == id {
			return true
		}
	}
	return false
}
