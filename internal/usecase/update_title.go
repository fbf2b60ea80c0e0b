package usecase

import (
	"context"

	"github.com/idilsaglam/tada/internal/model"
)

type UpdateTodoItemTitleInput struct {
	ID    model.ItemID
	Title string
}

type UpdateTodoItemTitleUseCase struct {
	repo Repository
}

func NewUpdateTodoItemTitleUseCase(repo Repository) *UpdateTodoItemTitleUseCase {
	return &UpdateTodoItemTitleUseCase{repo: repo}
}

// Execute sets the title of one item in the last used list. An unknown id
// fails with *model.ItemNotFoundError before anything is saved.
func (u *UpdateTodoItemTitleUseCase) Execute(ctx context.Context, in UpdateTodoItemTitleInput) error {
	list, err := loadList(ctx, u.repo)
	if err != nil {
		return err
	}
	item, ok := list.GetItem(in.ID)
	if !ok {
		return &model.ItemNotFoundError{ID: in.ID}
	}
	item.Title = in.Title
	return u.repo.Save(ctx, list)
}
