package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/kiitfinder/lostfound-system/internal/core/domain"
	"github.com/kiitfinder/lostfound-system/internal/core/ports"
)

type stubAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account // keyed by identity
	nextID    int
	findErr   error
	deleteErr error
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) FindByIdentity(_ context.Context, identity string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	a, ok := r.accounts[identity]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.ID == id {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.accounts[account.Identity]; exists {
		return nil, domain.ErrDuplicateIdentity
	}
	r.nextID++
	copy := cloneAccount(account)
	copy.ID = fmt.Sprintf("acc-%d", r.nextID)
	r.accounts[copy.Identity] = copy
	return cloneAccount(copy), nil
}

func (r *stubAccountRepo) List(_ context.Context) ([]*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		out = append(out, cloneAccount(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubAccountRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	for k, a := range r.accounts {
		if a.ID == id {
			delete(r.accounts, k)
			return nil
		}
	}
	return domain.ErrAccountNotFound
}

func (r *stubAccountRepo) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.accounts)
}

// prefixHasher is a reversible stand-in for bcrypt that still counts work.
type prefixHasher struct {
	mu       sync.Mutex
	verifies int
}

func (h *prefixHasher) Hash(plaintext string) (string, error) {
	return "digest:" + plaintext, nil
}

func (h *prefixHasher) Verify(plaintext, digest string) bool {
	h.mu.Lock()
	h.verifies++
	h.mu.Unlock()
	return digest == "digest:"+plaintext
}

type stubLimiter struct {
	mu       sync.Mutex
	max      int
	failures map[string]int
	err      error
}

func newStubLimiter(max int) *stubLimiter {
	return &stubLimiter{max: max, failures: make(map[string]int)}
}

func (l *stubLimiter) Blocked(_ context.Context, identity string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return false, l.err
	}
	return l.max > 0 && l.failures[identity] >= l.max, nil
}

func (l *stubLimiter) RecordFailure(_ context.Context, identity string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failures[identity]++
	return l.err
}

func (l *stubLimiter) Reset(_ context.Context, identity string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.failures, identity)
	return l.err
}

type captureAudit struct {
	mu     sync.Mutex
	events []domain.SecurityEvent
}

func (a *captureAudit) Record(event domain.SecurityEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, event)
}

func (a *captureAudit) outcomes(kind domain.SecurityEventKind) []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []string
	for _, e := range a.events {
		if e.Kind == kind {
			out = append(out, e.Outcome)
		}
	}
	return out
}

type stubItemRepo struct {
	mu             sync.Mutex
	items          map[string]*domain.Item
	nextID         int
	deleteOwnerErr error
}

func newStubItemRepo() *stubItemRepo {
	return &stubItemRepo{items: make(map[string]*domain.Item)}
}

func cloneItem(i *domain.Item) *domain.Item {
	if i == nil {
		return nil
	}
	clone := *i
	return &clone
}

func (r *stubItemRepo) Create(_ context.Context, item *domain.Item) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	copy := cloneItem(item)
	copy.ID = fmt.Sprintf("item-%d", r.nextID)
	r.items[copy.ID] = copy
	return cloneItem(copy), nil
}

func (r *stubItemRepo) FindByID(_ context.Context, id string) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return cloneItem(i), nil
}

func (r *stubItemRepo) List(_ context.Context, filter ports.ItemFilter) ([]*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Item{}
	for _, i := range r.items {
		if filter.Status != "" && string(i.Status) != filter.Status {
			continue
		}
		if filter.Category != "" && i.Category != filter.Category {
			continue
		}
		if filter.Location != "" && !strings.Contains(strings.ToLower(i.Location), strings.ToLower(filter.Location)) {
			continue
		}
		if filter.PostedBy != "" && i.PostedBy.ID != filter.PostedBy {
			continue
		}
		out = append(out, cloneItem(i))
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}

func (r *stubItemRepo) Update(_ context.Context, item *domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return domain.ErrItemNotFound
	}
	r.items[item.ID] = cloneItem(item)
	return nil
}

func (r *stubItemRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubItemRepo) DeleteByOwner(_ context.Context, ownerID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteOwnerErr != nil {
		return 0, r.deleteOwnerErr
	}
	var n int64
	for id, i := range r.items {
		if i.PostedBy.ID == ownerID {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}

func asCaller(ctx context.Context, a *domain.Account) context.Context {
	return domain.WithIdentity(ctx, domain.IdentityFromAccount(a))
}
