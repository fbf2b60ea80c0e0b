// Package model holds the todo list aggregate. It has no storage or UI
// dependencies; repositories persist it as a single JSON document.
package model

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// ListID identifies a TodoList.
type ListID string

// TodoList is the aggregate root: an ordered set of items keyed by id.
// It is not safe for concurrent use.
type TodoList struct {
	id    ListID
	order []ItemID
	items map[ItemID]*TodoItem
}

// NewTodoList returns an empty list with a fresh id.
func NewTodoList() *TodoList {
	return &TodoList{
		id:    ListID(uuid.NewString()),
		items: make(map[ItemID]*TodoItem),
	}
}

// ID returns the list's identity, fixed at creation.
func (l *TodoList) ID() ListID { return l.id }

// Len returns the number of items.
func (l *TodoList) Len() int { return len(l.order) }

// AddItem appends item. An id that is already present is rejected with
// ErrDuplicateItem and the existing item is left untouched.
func (l *TodoList) AddItem(item *TodoItem) error {
	if item == nil {
		return fmt.Errorf("add item: nil item")
	}
	if _, exists := l.items[item.id]; exists {
		return fmt.Errorf("add item %q: %w", string(item.id), ErrDuplicateItem)
	}
	l.items[item.id] = item
	l.order = append(l.order, item.id)
	return nil
}

// InsertItem puts item at position at, moving later items down by one. at is
// clamped to the list bounds. Duplicate ids are rejected as in AddItem.
func (l *TodoList) InsertItem(at int, item *TodoItem) error {
	if item == nil {
		return fmt.Errorf("insert item: nil item")
	}
	if _, exists := l.items[item.id]; exists {
		return fmt.Errorf("insert item %q: %w", string(item.id), ErrDuplicateItem)
	}
	at = max(0, min(at, len(l.order)))
	l.items[item.id] = item
	l.order = append(l.order, "")
	copy(l.order[at+1:], l.order[at:])
	l.order[at] = item.id
	return nil
}

// GetItem returns the item with the given id. The returned pointer is the
// list's own item, so mutations through it change the aggregate.
func (l *TodoList) GetItem(id ItemID) (*TodoItem, bool) {
	it, ok := l.items[id]
	return it, ok
}

// UpdateItemTitle sets the title of item id in place.
func (l *TodoList) UpdateItemTitle(id ItemID, title string) error {
	it, ok := l.items[id]
	if !ok {
		return &ItemNotFoundError{ID: id}
	}
	it.Title = title
	return nil
}

// ToggleItem flips the completed flag of item id.
func (l *TodoList) ToggleItem(id ItemID) error {
	it, ok := l.items[id]
	if !ok {
		return &ItemNotFoundError{ID: id}
	}
	it.Completed = !it.Completed
	return nil
}

// RemoveItem deletes item id, keeping the order of the rest.
func (l *TodoList) RemoveItem(id ItemID) error {
	if _, ok := l.items[id]; !ok {
		return &ItemNotFoundError{ID: id}
	}
	delete(l.items, id)
	for i, oid := range l.order {
		if oid == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return nil
}

// Items returns copies of the items in insertion order.
func (l *TodoList) Items() []TodoItem {
	out := make([]TodoItem, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, *l.items[id])
	}
	return out
}

type listDoc struct {
	ID    ListID    `json:"id"`
	Items []itemDoc `json:"items"`
}

// MarshalJSON encodes the list with its items in insertion order.
func (l *TodoList) MarshalJSON() ([]byte, error) {
	doc := listDoc{ID: l.id, Items: make([]itemDoc, 0, len(l.order))}
	for _, id := range l.order {
		it := l.items[id]
		doc.Items = append(doc.Items, itemDoc{ID: it.id, Title: it.Title, Completed: it.Completed})
	}
	return json.Marshal(doc)
}

// UnmarshalJSON replaces the receiver's contents with the decoded list.
func (l *TodoList) UnmarshalJSON(b []byte) error {
	var doc listDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}
	if doc.ID == "" {
		return fmt.Errorf("todo list: missing id")
	}
	decoded := TodoList{id: doc.ID, items: make(map[ItemID]*TodoItem, len(doc.Items))}
	for _, d := range doc.Items {
		if d.ID == "" {
			return fmt.Errorf("todo list %q: item with empty id", string(doc.ID))
		}
		if err := decoded.AddItem(&TodoItem{id: d.ID, Title: d.Title, Completed: d.Completed}); err != nil {
			return fmt.Errorf("todo list %q: %w", string(doc.ID), err)
		}
	}
	*l = decoded
	return nil
}
