package ui

import (
	"fmt"

	"github.com/idilsaglam/tada/internal/model"
)

const maxTitleRunes = 80

// ListLines renders the header, progress bar and items of a todo list.
// Item numbers are 1-based positions in items, also in grouped mode, so they
// always match the index the edit/done/rm subcommands expect.
func ListLines(items []model.TodoItem, group bool) []string {
	t := Current()
	d, p := stats(items)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		C(t.Title, "Todos"),
		C(t.Success, t.SymDone), d,
		C(t.Pending, t.SymUnchecked), p,
		C(t.Accent, "Total"), len(items),
	)

	lines := []string{header, C(t.Muted, ProgressBar(d, d+p, 28)), ""}
	if group {
		lines = append(lines, groupLines(items)...)
	} else {
		lines = append(lines, flatLines(items, allIndexes(items))...)
	}
	lines = append(lines, "")
	lines = append(lines, C(t.Muted, "Tip: add with `todo add \"Buy milk\"`"))
	return lines
}

func stats(items []model.TodoItem) (done, pending int) {
	for _, it := range items {
		if it.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

func allIndexes(items []model.TodoItem) []int {
	idx := make([]int, len(items))
	for i := range items {
		idx[i] = i
	}
	return idx
}

func truncate(title string) string {
	r := []rune(title)
	if len(r) > maxTitleRunes {
		return string(r[:maxTitleRunes-3]) + "..."
	}
	return title
}

func flatLines(items []model.TodoItem, indexes []int) []string {
	t := Current()
	if len(indexes) == 0 {
		return []string{C(t.Muted, "no items")}
	}
	out := make([]string, 0, len(indexes))
	for _, i := range indexes {
		it := items[i]
		box, color := t.BoxUnchecked, t.Muted
		if it.Completed {
			box, color = t.BoxChecked, t.Success
		}
		out = append(out, fmt.Sprintf("%s %s %s",
			Dim(fmt.Sprintf("%2d.", i+1)), C(color, box), truncate(it.Title)))
	}
	return out
}

func groupLines(items []model.TodoItem) []string {
	t := Current()
	var pend, done []int
	for i, it := range items {
		if it.Completed {
			done = append(done, i)
		} else {
			pend = append(pend, i)
		}
	}
	var lines []string
	lines = append(lines, C(t.Accent, "Pending"))
	if len(pend) == 0 {
		lines = append(lines, C(t.Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(items, pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, C(t.Accent, "Done"))
	if len(done) == 0 {
		lines = append(lines, C(t.Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(items, done)...)
	}
	return lines
}
