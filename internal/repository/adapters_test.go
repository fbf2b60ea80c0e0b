package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/store/jsonstore"
	"github.com/idilsaglam/tada/internal/store/memory"
	"github.com/idilsaglam/tada/internal/store/redisstore"
	"github.com/idilsaglam/tada/internal/store/sqlitestore"
)

func TestRepositoryOverEveryAdapter(t *testing.T) {
	ctx := context.Background()
	open := map[string]func(t *testing.T) store.Storage{
		"memory": func(t *testing.T) store.Storage { return memory.New() },
		"json": func(t *testing.T) store.Storage {
			return jsonstore.New(filepath.Join(t.TempDir(), "todos.json"))
		},
		"sqlite": func(t *testing.T) store.Storage {
			s, err := sqlitestore.New(filepath.Join(t.TempDir(), "todos.sqlite"))
			if err != nil {
				t.Fatalf("sqlite: %v", err)
			}
			return s
		},
		"redis": func(t *testing.T) store.Storage {
			mr := miniredis.RunT(t)
			s, err := redisstore.New(ctx, redisstore.Options{Addr: mr.Addr()})
			if err != nil {
				t.Fatalf("redis: %v", err)
			}
			return s
		},
	}
	for name, fn := range open {
		t.Run(name, func(t *testing.T) {
			s := fn(t)
			defer s.Close()
			repo := New(s, nil)

			list := model.NewTodoList()
			item := model.NewTodoItem("before")
			_ = list.AddItem(item)
			if err := repo.Save(ctx, list); err != nil {
				t.Fatalf("Save: %v", err)
			}

			fired := false
			repo.OnChange(func() {
				fired = true
				stored, ok, err := repo.Find(ctx, list.ID())
				if err != nil || !ok {
					t.Errorf("Find: ok=%v err=%v", ok, err)
					return
				}
				got, ok := stored.GetItem(item.ID())
				if !ok || got.Title != "UPDATING TODO" {
					t.Errorf("stored item = %+v ok=%v", got, ok)
				}
			})
			_ = list.UpdateItemTitle(item.ID(), "UPDATING TODO")
			if err := repo.Save(ctx, list); err != nil {
				t.Fatalf("Save: %v", err)
			}
			if !fired {
				t.Error("OnChange not fired")
			}
		})
	}
}
