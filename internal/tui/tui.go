// Package tui is the interactive todo list. Every edit runs the matching
// use case right away; the list redraws when the repository reports a save.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/usecase"
)

// ChangeNotifier is satisfied by repository.TodoListRepository.
type ChangeNotifier interface {
	OnChange(fn func()) (dispose func())
}

// listItem adapts model.TodoItem to bubbles/list.Item
type listItem struct {
	ID   model.ItemID
	Text string
	Done bool
}

func (i listItem) TitleText() string {
	box := boxUnchecked
	if i.Done {
		box = boxChecked
	}
	return fmt.Sprintf("%s %s", box, i.Text)
}

// Implement list.Item interface
func (i listItem) Title() string       { return i.TitleText() }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.Text }

type (
	// changedMsg is sent by the repository subscriber after every save.
	changedMsg struct{}
	itemsMsg   struct{ items []model.TodoItem }
	errMsg     struct{ err error }
)

type modelTUI struct {
	ctx context.Context
	uc  *usecase.Set

	list   list.Model
	items  []model.TodoItem // last loaded, in list order
	width  int
	height int
	err    string // last use case failure, shown in the footer

	// Inline add / edit share one text input
	adding   bool
	editing  bool
	editID   model.ItemID
	ti       textinput.Model
	inputErr string

	// Undo support (single-level)
	undo *removedItem
}

// removedItem is the last deleted item and the position it held.
type removedItem struct {
	item model.TodoItem
	pos  int
}

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(listItem)
	boxStyled := mutedStyle.Render(boxUnchecked)
	textStyled := it.Text
	if it.Done {
		boxStyled = successStyle.Render(boxChecked)
		textStyled = doneStyle.Render(it.Text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+boxStyled+" "+textStyled)
}

func newModel(ctx context.Context, uc *usecase.Set) modelTUI {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.Title = titleStyle.Render("Todos")
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")

	// Extend help with Add / Edit / Undo bindings
	addBind := key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind := key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	toggleBind := key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	deleteBind := key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	undoBind := key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo"))
	extra := func() []key.Binding { return []key.Binding{addBind, editBind, toggleBind, deleteBind, undoBind} }
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	return modelTUI{ctx: ctx, uc: uc, list: l, ti: ti, width: 80, height: 24}
}

// Run starts the interactive list and blocks until the user quits.
func Run(ctx context.Context, notifier ChangeNotifier, uc *usecase.Set) error {
	p := tea.NewProgram(newModel(ctx, uc), tea.WithAltScreen(), tea.WithContext(ctx))
	dispose := notifier.OnChange(func() { p.Send(changedMsg{}) })
	defer dispose()
	_, err := p.Run()
	return err
}

func (m modelTUI) load() tea.Cmd {
	return func() tea.Msg {
		items, err := m.uc.List.Execute(m.ctx)
		if err != nil {
			return errMsg{err}
		}
		return itemsMsg{items}
	}
}

// exec runs fn as a command. Success produces no message of its own: the
// repository subscriber delivers changedMsg.
func exec(fn func() error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func (m modelTUI) selected() (listItem, bool) {
	li, ok := m.list.SelectedItem().(listItem)
	return li, ok
}

func (m *modelTUI) setItems(items []model.TodoItem) tea.Cmd {
	m.items = items
	li := make([]list.Item, 0, len(items))
	done := 0
	for _, it := range items {
		if it.Completed {
			done++
		}
		li = append(li, listItem{ID: it.ID(), Text: it.Title, Done: it.Completed})
	}
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), len(items)-done,
		accentStyle.Render("Total"), len(items),
	)
	return m.list.SetItems(li)
}

func (m *modelTUI) closeInput() {
	m.adding, m.editing = false, false
	m.editID = ""
	m.inputErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
}

func (m modelTUI) Init() tea.Cmd { return m.load() }

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = x.Width, x.Height
		return m, nil
	case changedMsg:
		return m, m.load()
	case itemsMsg:
		m.err = ""
		cmd := m.setItems(x.items)
		return m, cmd
	case errMsg:
		m.err = x.err.Error()
		return m, nil
	}

	if m.adding || m.editing {
		return m.updateInput(msg)
	}

	if k, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch k.String() {
		case "q", "esc":
			return m, tea.Quit
		case " ", "space":
			if li, ok := m.selected(); ok {
				return m, exec(func() error {
					return m.uc.Toggle.Execute(m.ctx, usecase.ToggleTodoItemInput{ID: li.ID})
				})
			}
			return m, nil
		case "d":
			if li, ok := m.selected(); ok {
				for i, it := range m.items {
					if it.ID() == li.ID {
						m.undo = &removedItem{item: it, pos: i}
						break
					}
				}
				return m, exec(func() error {
					return m.uc.Remove.Execute(m.ctx, usecase.RemoveTodoItemInput{ID: li.ID})
				})
			}
			return m, nil
		case "u":
			if m.undo == nil {
				return m, nil
			}
			restore := *m.undo
			m.undo = nil
			return m, exec(func() error {
				return m.uc.Restore.Execute(m.ctx, usecase.RestoreTodoItemInput{Item: restore.item, Position: restore.pos})
			})
		case "a":
			m.adding = true
			m.ti.SetValue("")
			m.ti.Placeholder = "New item title..."
			return m, m.ti.Focus()
		case "e":
			if li, ok := m.selected(); ok {
				m.editing = true
				m.editID = li.ID
				m.ti.SetValue(li.Text)
				m.ti.CursorEnd()
				m.ti.Placeholder = "Edit item title..."
				return m, m.ti.Focus()
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m modelTUI) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			title := strings.TrimSpace(m.ti.Value())
			if title == "" {
				m.inputErr = "Title cannot be empty"
				return m, nil
			}
			var cmd tea.Cmd
			if m.adding {
				cmd = exec(func() error {
					_, err := m.uc.Create.Execute(m.ctx, usecase.CreateTodoItemInput{Title: title})
					return err
				})
			} else {
				id := m.editID
				cmd = exec(func() error {
					return m.uc.UpdateTitle.Execute(m.ctx, usecase.UpdateTodoItemTitleInput{ID: id, Title: title})
				})
			}
			m.closeInput()
			return m, cmd
		case "esc":
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m modelTUI) View() string {
	listHeight := m.height - 4
	if m.adding || m.editing {
		listHeight = m.height - 6
	}
	m.list.SetSize(m.width-4, listHeight)

	content := m.list.View()
	if m.adding || m.editing {
		title := "Add new item"
		if m.editing {
			title = "Edit item"
		}
		if m.inputErr != "" {
			title += "  " + errorStyle.Render(m.inputErr)
		}
		content += "\n" + frameStyle.Render(title+"\n"+m.ti.View())
	}
	if m.err != "" {
		content += "\n" + errorStyle.Render("✖ "+m.err)
	}
	return frameStyle.Render(content)
}
