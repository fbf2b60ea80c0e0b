package usecase

import (
	"context"
	"strings"

	"github.com/idilsaglam/tada/internal/model"
)

type CreateTodoItemInput struct {
	Title string
}

type CreateTodoItemUseCase struct {
	repo Repository
}

func NewCreateTodoItemUseCase(repo Repository) *CreateTodoItemUseCase {
	return &CreateTodoItemUseCase{repo: repo}
}

// Execute appends a new item to the last used list, starting a fresh list
// when none exists yet.
func (u *CreateTodoItemUseCase) Execute(ctx context.Context, in CreateTodoItemInput) (model.ItemID, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return "", ErrEmptyTitle
	}
	list, ok, err := u.repo.LastUsed(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		list = model.NewTodoList()
	}
	item := model.NewTodoItem(title)
	if err := list.AddItem(item); err != nil {
		return "", err
	}
	if err := u.repo.Save(ctx, list); err != nil {
		return "", err
	}
	return item.ID(), nil
}

type ToggleTodoItemInput struct {
	ID model.ItemID
}

type ToggleTodoItemUseCase struct {
	repo Repository
}

func NewToggleTodoItemUseCase(repo Repository) *ToggleTodoItemUseCase {
	return &ToggleTodoItemUseCase{repo: repo}
}

func (u *ToggleTodoItemUseCase) Execute(ctx context.Context, in ToggleTodoItemInput) error {
	list, err := loadList(ctx, u.repo)
	if err != nil {
		return err
	}
	if err := list.ToggleItem(in.ID); err != nil {
		return err
	}
	return u.repo.Save(ctx, list)
}

type RemoveTodoItemInput struct {
	ID model.ItemID
}

type RemoveTodoItemUseCase struct {
	repo Repository
}

func NewRemoveTodoItemUseCase(repo Repository) *RemoveTodoItemUseCase {
	return &RemoveTodoItemUseCase{repo: repo}
}

func (u *RemoveTodoItemUseCase) Execute(ctx context.Context, in RemoveTodoItemInput) error {
	list, err := loadList(ctx, u.repo)
	if err != nil {
		return err
	}
	if err := list.RemoveItem(in.ID); err != nil {
		return err
	}
	return u.repo.Save(ctx, list)
}

// RestoreTodoItemInput carries a previously removed item, id included, and
// the position it held.
type RestoreTodoItemInput struct {
	Item     model.TodoItem
	Position int
}

type RestoreTodoItemUseCase struct {
	repo Repository
}

func NewRestoreTodoItemUseCase(repo Repository) *RestoreTodoItemUseCase {
	return &RestoreTodoItemUseCase{repo: repo}
}

// Execute puts the item back into the last used list at its position.
func (u *RestoreTodoItemUseCase) Execute(ctx context.Context, in RestoreTodoItemInput) error {
	list, err := loadList(ctx, u.repo)
	if err != nil {
		return err
	}
	item := in.Item
	if err := list.InsertItem(in.Position, &item); err != nil {
		return err
	}
	return u.repo.Save(ctx, list)
}

type ListTodoItemsUseCase struct {
	repo Repository
}

func NewListTodoItemsUseCase(repo Repository) *ListTodoItemsUseCase {
	return &ListTodoItemsUseCase{repo: repo}
}

// Execute returns the items of the last used list in insertion order, or an
// empty slice when nothing has been saved.
func (u *ListTodoItemsUseCase) Execute(ctx context.Context) ([]model.TodoItem, error) {
	list, ok, err := u.repo.LastUsed(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []model.TodoItem{}, nil
	}
	return list.Items(), nil
}
