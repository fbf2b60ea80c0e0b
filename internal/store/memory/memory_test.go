package memory

import (
	"context"
	"errors"
	"testing"
)

func TestGetSet(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, ok, err := s.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("Get on empty store: ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "k", []byte("v1")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "k", []byte("v2")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := s.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if string(v) != "v2" {
		t.Errorf("Get = %q, want %q", v, "v2")
	}
}

func TestValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	s := New()
	buf := []byte("abc")
	_ = s.Set(ctx, "k", buf)
	buf[0] = 'x'
	v, _, _ := s.Get(ctx, "k")
	if string(v) != "abc" {
		t.Errorf("stored value aliased caller buffer: %q", v)
	}
}

func TestUnavailable(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.SetUnavailable(true)
	if err := s.Set(ctx, "k", nil); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Set: got %v, want ErrUnavailable", err)
	}
	if _, _, err := s.Get(ctx, "k"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Get: got %v, want ErrUnavailable", err)
	}
	s.SetUnavailable(false)
	if err := s.Set(ctx, "k", nil); err != nil {
		t.Errorf("Set after recovery: %v", err)
	}
}
