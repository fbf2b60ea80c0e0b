package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/repository"
	"github.com/idilsaglam/tada/internal/store/memory"
	"github.com/idilsaglam/tada/internal/usecase"
)

func keyRunes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

type harness struct {
	ctx     context.Context
	repo    *repository.TodoListRepository
	uc      *usecase.Set
	changes int
}

func newHarness(t *testing.T, titles ...string) *harness {
	t.Helper()
	h := &harness{ctx: context.Background(), repo: repository.New(memory.New(), nil)}
	h.uc = usecase.NewSet(h.repo)
	for _, title := range titles {
		if _, err := h.uc.Create.Execute(h.ctx, usecase.CreateTodoItemInput{Title: title}); err != nil {
			t.Fatalf("create %q: %v", title, err)
		}
	}
	h.repo.OnChange(func() { h.changes++ })
	return h
}

// loaded returns a model with the stored items already applied.
func (h *harness) loaded(t *testing.T) modelTUI {
	t.Helper()
	m := newModel(h.ctx, h.uc)
	msg := m.Init()()
	next, _ := m.Update(msg)
	return next.(modelTUI)
}

func (h *harness) items(t *testing.T) []model.TodoItem {
	t.Helper()
	items, err := h.uc.List.Execute(h.ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	return items
}

// open feeds a key that switches to input mode; the cursor blink command it
// returns is dropped.
func open(t *testing.T, m modelTUI, k tea.KeyMsg) modelTUI {
	t.Helper()
	next, _ := m.Update(k)
	return next.(modelTUI)
}

// press feeds a key and runs the resulting command, if any.
func press(t *testing.T, m modelTUI, k tea.KeyMsg) (modelTUI, tea.Msg) {
	t.Helper()
	next, cmd := m.Update(k)
	var msg tea.Msg
	if cmd != nil {
		msg = cmd()
	}
	return next.(modelTUI), msg
}

func TestInitLoadsItems(t *testing.T) {
	h := newHarness(t, "a", "b")
	m := h.loaded(t)
	if got := len(m.list.Items()); got != 2 {
		t.Fatalf("len(list items) = %d, want 2", got)
	}
	if li := m.list.Items()[1].(listItem); li.Text != "b" {
		t.Errorf("second item = %q", li.Text)
	}
}

func TestEditRunsUpdateTitle(t *testing.T) {
	h := newHarness(t, "before")
	m := h.loaded(t)

	m = open(t, m, keyRunes("e"))
	if !m.editing {
		t.Fatal("expected edit mode")
	}
	if m.ti.Value() != "before" {
		t.Errorf("input prefilled with %q", m.ti.Value())
	}
	m.ti.SetValue("UPDATING TODO")
	m, msg := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if msg != nil {
		t.Fatalf("unexpected message %#v", msg)
	}
	if m.editing {
		t.Error("edit mode should close after enter")
	}
	items := h.items(t)
	if items[0].Title != "UPDATING TODO" {
		t.Errorf("stored title = %q", items[0].Title)
	}
	if h.changes != 1 {
		t.Errorf("repository saves = %d, want 1", h.changes)
	}
}

func TestEmptyEditIsRejected(t *testing.T) {
	h := newHarness(t, "keep")
	m := h.loaded(t)
	m = open(t, m, keyRunes("e"))
	m.ti.SetValue("   ")
	m, msg := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if msg != nil || !m.editing || m.inputErr == "" {
		t.Errorf("expected validation error, editing=%v err=%q", m.editing, m.inputErr)
	}
	if h.changes != 0 {
		t.Errorf("unexpected save")
	}
}

func TestAddToggleDeleteUndo(t *testing.T) {
	h := newHarness(t, "first")
	m := h.loaded(t)

	m = open(t, m, keyRunes("a"))
	m.ti.SetValue("second")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := len(h.items(t)); got != 2 {
		t.Fatalf("items after add = %d", got)
	}

	m, _ = press(t, m, keyRunes(" "))
	if !h.items(t)[0].Completed {
		t.Error("space should toggle the selected item")
	}

	// reload so the list reflects the toggle before deleting
	next, _ := m.Update(m.load()())
	m = next.(modelTUI)
	firstID := h.items(t)[0].ID()
	m, _ = press(t, m, keyRunes("d"))
	items := h.items(t)
	if len(items) != 1 || items[0].Title != "second" {
		t.Fatalf("items after delete = %+v", items)
	}

	m, _ = press(t, m, keyRunes("u"))
	items = h.items(t)
	if len(items) != 2 || items[0].ID() != firstID || items[0].Title != "first" || !items[0].Completed {
		t.Errorf("undo should put the completed item back in first place, got %+v", items)
	}
	if m.undo != nil {
		t.Error("undo buffer should be cleared")
	}
}

func TestErrorMessageShown(t *testing.T) {
	h := newHarness(t)
	m := newModel(h.ctx, h.uc)
	next, _ := m.Update(errMsg{errors.New("boom")})
	m = next.(modelTUI)
	if m.err != "boom" {
		t.Errorf("err = %q", m.err)
	}
	if v := m.View(); v == "" {
		t.Error("empty view")
	}
}

func TestChangedMsgReloads(t *testing.T) {
	h := newHarness(t, "a")
	m := h.loaded(t)
	if _, err := h.uc.Create.Execute(h.ctx, usecase.CreateTodoItemInput{Title: "b"}); err != nil {
		t.Fatal(err)
	}
	_, cmd := m.Update(changedMsg{})
	if cmd == nil {
		t.Fatal("changedMsg should trigger a reload")
	}
	msg, ok := cmd().(itemsMsg)
	if !ok || len(msg.items) != 2 {
		t.Errorf("reload = %#v", msg)
	}
}
