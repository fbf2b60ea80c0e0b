package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ItemID identifies a TodoItem. It is assigned once by NewTodoItem.
type ItemID string

// Item errors returned by TodoList methods.
var (
	ErrItemNotFound  = errors.New("todo item not found")
	ErrDuplicateItem = errors.New("todo item already exists")
)

// ItemNotFoundError reports a lookup for an id the list does not contain.
type ItemNotFoundError struct {
	ID ItemID
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("todo item %q not found", string(e.ID))
}

func (e *ItemNotFoundError) Is(target error) bool { return target == ErrItemNotFound }

// TodoItem is the domain model for a todo entry.
type TodoItem struct {
	id        ItemID
	Title     string
	Completed bool
}

// NewTodoItem returns a pending item with a fresh id.
func NewTodoItem(title string) *TodoItem {
	return &TodoItem{id: ItemID(uuid.NewString()), Title: title}
}

// ID returns the item's identity. It never changes after construction.
func (i *TodoItem) ID() ItemID { return i.id }

// itemDoc is the wire form of a TodoItem.
type itemDoc struct {
	ID        ItemID `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}
