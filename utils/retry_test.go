package utils

import (
	"errors"
	"testing"
	"time"
)

func TestRetrierSucceedsAfterFailures(t *testing.T) {
	r := &Retrier{MaxAttempts: 3, BaseDelay: time.Millisecond, Logger: NewLogger()}

	attempts := 0
	err := r.Do("flaky op", func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts: got %d, want 3", attempts)
	}
}

func TestRetrierGivesUp(t *testing.T) {
	r := &Retrier{MaxAttempts: 2, BaseDelay: time.Millisecond, Logger: NewLogger()}

	wantErr := errors.New("permanent")
	err := r.Do("doomed op", func() error { return wantErr })
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("wrapped error lost: %v", err)
	}
}
