package redisstore

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/hasbyte1/bcrypt-identity/hashing"
	"github.com/hasbyte1/bcrypt-identity/identity"
)

func newStoreTest(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	return New(rdb, ""), mr
}

func TestStore_GetPut(t *testing.T) {
	ctx := context.Background()
	s, mr := newStoreTest(t)

	if _, err := s.Get(ctx, "alice"); !errors.Is(err, identity.ErrCredentialNotFound) {
		t.Fatalf("expected ErrCredentialNotFound, got %v", err)
	}
	if err := s.Put(ctx, "alice", "h1"); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, "alice")
	if err != nil || got != "h1" {
		t.Errorf("Get = %q, %v", got, err)
	}
	if raw, _ := mr.Get(DefaultPrefix + ":alice"); raw != "h1" {
		t.Errorf("raw key = %q, want h1", raw)
	}
}

func TestStore_CustomPrefix(t *testing.T) {
	ctx := context.Background()
	_, mr := newStoreTest(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	s := New(rdb, "tenant-a")
	_ = s.Put(ctx, "alice", "h1")
	if !mr.Exists("tenant-a:alice") {
		t.Error("custom prefix not applied")
	}
}

func TestStore_CompareAndSwap(t *testing.T) {
	ctx := context.Background()
	s, _ := newStoreTest(t)
	_ = s.Put(ctx, "alice", "h1")

	if ok, err := s.CompareAndSwap(ctx, "alice", "stale", "h2"); err != nil || ok {
		t.Errorf("stale swap: ok=%v err=%v", ok, err)
	}
	if ok, err := s.CompareAndSwap(ctx, "alice", "h1", "h2"); err != nil || !ok {
		t.Errorf("swap: ok=%v err=%v", ok, err)
	}
	if got, _ := s.Get(ctx, "alice"); got != "h2" {
		t.Errorf("Get = %q, want h2", got)
	}
	if _, err := s.CompareAndSwap(ctx, "bob", "x", "y"); !errors.Is(err, identity.ErrCredentialNotFound) {
		t.Errorf("missing user: expected ErrCredentialNotFound, got %v", err)
	}
}

// abortTx fails every MULTI/EXEC pipeline as if a watched key had changed.
type abortTx struct {
	attempts int
}

func (h *abortTx) DialHook(next redis.DialHook) redis.DialHook { return next }

func (h *abortTx) ProcessHook(next redis.ProcessHook) redis.ProcessHook { return next }

func (h *abortTx) ProcessPipelineHook(redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(context.Context, []redis.Cmder) error {
		h.attempts++
		return redis.TxFailedErr
	}
}

func TestStore_CompareAndSwap_Contended(t *testing.T) {
	ctx := context.Background()
	_, mr := newStoreTest(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	hook := &abortTx{}
	rdb.AddHook(hook)

	s := New(rdb, "")
	if err := s.Put(ctx, "alice", "h1"); err != nil {
		t.Fatal(err)
	}

	ok, err := s.CompareAndSwap(ctx, "alice", "h1", "h2")
	if !errors.Is(err, ErrContended) {
		t.Fatalf("expected ErrContended, got ok=%v err=%v", ok, err)
	}
	if ok {
		t.Error("contended swap reported success")
	}
	if hook.attempts != maxRetries {
		t.Errorf("attempts = %d, want %d", hook.attempts, maxRetries)
	}
	if got, _ := s.Get(ctx, "alice"); got != "h1" {
		t.Errorf("Get = %q, want h1", got)
	}
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	s, mr := newStoreTest(t)
	_ = s.Put(ctx, "alice", "h1")
	if err := s.Delete(ctx, "alice"); err != nil {
		t.Fatal(err)
	}
	if mr.Exists(DefaultPrefix + ":alice") {
		t.Error("key still present after Delete")
	}
}

func TestStore_Unavailable(t *testing.T) {
	ctx := context.Background()
	s, mr := newStoreTest(t)
	mr.Close()

	if _, err := s.Get(ctx, "alice"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Get: expected ErrUnavailable, got %v", err)
	}
	if err := s.Put(ctx, "alice", "h"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Put: expected ErrUnavailable, got %v", err)
	}
}

func TestStore_AuthenticatorUpgrade(t *testing.T) {
	type account struct{ id string }
	ctx := context.Background()
	s, _ := newStoreTest(t)

	oldHasher, _ := identity.NewBcryptPasswordHasher[account](&hashing.Options{Cost: bcrypt.MinCost})
	newHasher, _ := identity.NewBcryptPasswordHasher[account](&hashing.Options{Cost: bcrypt.MinCost + 1})
	id := func(a account) string { return a.id }
	alice := account{id: "alice"}

	if err := identity.NewAuthenticator[account](oldHasher, s, id).SetPassword(ctx, alice, "pw"); err != nil {
		t.Fatal(err)
	}
	outcome, err := identity.NewAuthenticator[account](newHasher, s, id).Login(ctx, alice, "pw")
	if err != nil || outcome != hashing.SuccessRehashNeeded {
		t.Fatalf("outcome=%v err=%v", outcome, err)
	}
	stored, _ := s.Get(ctx, "alice")
	if cost, _ := bcrypt.Cost([]byte(stored)); cost != bcrypt.MinCost+1 {
		t.Errorf("stored cost = %d, want %d", cost, bcrypt.MinCost+1)
	}
}
