package session

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestMemoryStore_GetMissing(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for missing session, got %v", err)
	}
}

func TestMemoryStore_SetGetClear(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	want := Session{UDID: "AAAAAAAAAAAAAAAAAAAA1234", Amount: 7, PaymentID: "PAY-7-AAAAAAAA"}
	if err := store.Set(ctx, 1, want); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := store.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != want {
		t.Errorf("Got session %+v, want %+v", got, want)
	}

	if err := store.Clear(ctx, 1); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := store.Get(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after Clear, got %v", err)
	}
}

func TestMemoryStore_ClearMissingIsNoop(t *testing.T) {
	store := NewMemoryStore()

	if err := store.Clear(context.Background(), 99); err != nil {
		t.Fatalf("Clear of missing session failed: %v", err)
	}
}

func TestMemoryStore_ConcurrentUsers(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := int64(0); i < 50; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s := Session{UDID: "AAAAAAAAAAAAAAAAAAAA1234", Amount: 4}
				if err := store.Set(ctx, userID, s); err != nil {
					t.Errorf("Set failed: %v", err)
					return
				}
				if _, err := store.Get(ctx, userID); err != nil {
					t.Errorf("Get failed after Set: %v", err)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestSession_PaymentPending(t *testing.T) {
	if (Session{UDID: "AAAAAAAAAAAAAAAAAAAA1234"}).PaymentPending() {
		t.Error("Session without amount should not be payment-pending")
	}
	if !(Session{UDID: "AAAAAAAAAAAAAAAAAAAA1234", Amount: 12}).PaymentPending() {
		t.Error("Session with amount should be payment-pending")
	}
}
