// Package repository persists the todo list aggregate through a
// store.Storage and notifies subscribers after every successful save.
package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/idilsaglam/tada/internal/logger"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
)

const (
	listKeyPrefix = "todolist/"
	lastUsedKey   = "todolist/last"
)

// ErrStorage matches every *StorageError via errors.Is.
var ErrStorage = errors.New("storage error")

// StorageError wraps a failure of the underlying storage adapter.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

func listKey(id model.ListID) string { return listKeyPrefix + string(id) }

// TodoListRepository stores whole TodoList aggregates. Save replaces the
// stored version; Find always decodes a fresh copy, so callers never share
// state with the persisted one.
type TodoListRepository struct {
	storage store.Storage
	log     *logger.Logger

	mu     sync.Mutex // serializes Save and guards subscribers
	nextID int
	subs   map[int]func()
	order  []int
}

func New(storage store.Storage, log *logger.Logger) *TodoListRepository {
	if log == nil {
		log = logger.Nop()
	}
	return &TodoListRepository{
		storage: storage,
		log:     log.With("component", "TodoListRepository"),
		subs:    make(map[int]func()),
	}
}

// Save stores list at its key, records it as the last used list, and then
// calls every OnChange subscriber in registration order. Subscribers run
// after the write has committed and without any repository lock held, so
// they may call Find. Nothing is notified when the write fails, and a failed
// Save leaves Find and LastUsed returning what they returned before.
func (r *TodoListRepository) Save(ctx context.Context, list *model.TodoList) error {
	if list == nil {
		return fmt.Errorf("save: nil todo list")
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("save: encode todo list: %w", err)
	}
	last, err := json.Marshal(string(list.ID()))
	if err != nil {
		return fmt.Errorf("save: encode last used: %w", err)
	}

	r.mu.Lock()
	if err := r.write(ctx, listKey(list.ID()), raw, last); err != nil {
		r.mu.Unlock()
		return err
	}
	subs := make([]func(), 0, len(r.order))
	for _, id := range r.order {
		subs = append(subs, r.subs[id])
	}
	r.mu.Unlock()

	r.log.Debug("saved todo list", "list_id", list.ID(), "items", list.Len(), "subscribers", len(subs))
	for _, fn := range subs {
		fn()
	}
	return nil
}

// write points the last used slot at the list before storing the list
// itself. A last used id whose list was never stored reads as not found, so
// only the second write needs undoing: the previous slot value is put back.
func (r *TodoListRepository) write(ctx context.Context, key string, raw, last []byte) error {
	prev, hadPrev, err := r.storage.Get(ctx, lastUsedKey)
	if err != nil {
		r.log.Warn("save failed", "key", lastUsedKey, "error", err)
		return &StorageError{Op: "get", Key: lastUsedKey, Err: err}
	}
	if err := r.storage.Set(ctx, lastUsedKey, last); err != nil {
		r.log.Warn("save failed", "key", lastUsedKey, "error", err)
		return &StorageError{Op: "set", Key: lastUsedKey, Err: err}
	}
	if err := r.storage.Set(ctx, key, raw); err != nil {
		r.log.Warn("save failed", "key", key, "error", err)
		if hadPrev && !bytes.Equal(prev, last) {
			if rerr := r.storage.Set(context.WithoutCancel(ctx), lastUsedKey, prev); rerr != nil {
				r.log.Error("restore last used failed", "key", lastUsedKey, "error", rerr)
			}
		}
		return &StorageError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// Find returns the stored list with the given id. ok is false when nothing
// has been saved under that id.
func (r *TodoListRepository) Find(ctx context.Context, id model.ListID) (*model.TodoList, bool, error) {
	return r.load(ctx, listKey(id))
}

// LastUsed returns the most recently saved list.
func (r *TodoListRepository) LastUsed(ctx context.Context) (*model.TodoList, bool, error) {
	raw, ok, err := r.storage.Get(ctx, lastUsedKey)
	if err != nil {
		r.log.Warn("find failed", "key", lastUsedKey, "error", err)
		return nil, false, &StorageError{Op: "get", Key: lastUsedKey, Err: err}
	}
	if !ok {
		return nil, false, nil
	}
	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		return nil, false, &StorageError{Op: "decode", Key: lastUsedKey, Err: err}
	}
	return r.Find(ctx, model.ListID(id))
}

func (r *TodoListRepository) load(ctx context.Context, key string) (*model.TodoList, bool, error) {
	raw, ok, err := r.storage.Get(ctx, key)
	if err != nil {
		r.log.Warn("find failed", "key", key, "error", err)
		return nil, false, &StorageError{Op: "get", Key: key, Err: err}
	}
	if !ok {
		r.log.Debug("todo list not found", "key", key)
		return nil, false, nil
	}
	list := new(model.TodoList)
	if err := json.Unmarshal(raw, list); err != nil {
		return nil, false, &StorageError{Op: "decode", Key: key, Err: err}
	}
	return list, true, nil
}

// OnChange registers fn to run after every future successful Save. The
// returned function unregisters it; calling it more than once is harmless.
func (r *TodoListRepository) OnChange(fn func()) (dispose func()) {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.subs[id] = fn
	r.order = append(r.order, id)
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			delete(r.subs, id)
			for i, sid := range r.order {
				if sid == id {
					r.order = append(r.order[:i], r.order[i+1:]...)
					break
				}
			}
		})
	}
}
