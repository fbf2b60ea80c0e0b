// Package usecase implements the application operations on the todo list.
// Each use case loads the last used list, mutates it through the model and
// saves it back; errors reach the caller unchanged.
package usecase

import (
	"context"
	"errors"

	"github.com/idilsaglam/tada/internal/model"
)

var (
	// ErrTodoListNotFound is returned when no todo list has been saved yet.
	ErrTodoListNotFound = errors.New("todo list not found")
	ErrEmptyTitle       = errors.New("title cannot be empty")
)

// Repository is the part of repository.TodoListRepository the use cases need.
type Repository interface {
	LastUsed(ctx context.Context) (*model.TodoList, bool, error)
	Save(ctx context.Context, list *model.TodoList) error
}

func loadList(ctx context.Context, repo Repository) (*model.TodoList, error) {
	list, ok, err := repo.LastUsed(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTodoListNotFound
	}
	return list, nil
}

// Set bundles the use cases the CLI and TUI drive, all bound to one repository.
type Set struct {
	Create      *CreateTodoItemUseCase
	UpdateTitle *UpdateTodoItemTitleUseCase
	Toggle      *ToggleTodoItemUseCase
	Remove      *RemoveTodoItemUseCase
	Restore     *RestoreTodoItemUseCase
	List        *ListTodoItemsUseCase
}

func NewSet(repo Repository) *Set {
	return &Set{
		Create:      NewCreateTodoItemUseCase(repo),
		UpdateTitle: NewUpdateTodoItemTitleUseCase(repo),
		Toggle:      NewToggleTodoItemUseCase(repo),
		Remove:      NewRemoveTodoItemUseCase(repo),
		Restore:     NewRestoreTodoItemUseCase(repo),
		List:        NewListTodoItemsUseCase(repo),
	}
}
