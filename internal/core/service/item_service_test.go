package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kiitfinder/lostfound-system/internal/core/domain"
	"github.com/kiitfinder/lostfound-system/internal/core/ports"
)

var (
	alice = &domain.Account{ID: "acc-alice", DisplayName: "Alice", Identity: "alice@x.com", Role: domain.RoleUser}
	bob   = &domain.Account{ID: "acc-bob", DisplayName: "Bob", Identity: "bob@x.com", Role: domain.RoleUser}
	root  = &domain.Account{ID: "acc-root", DisplayName: "Root", Identity: "root@x.com", Role: domain.RoleAdmin}
)

func newItemFixture(t *testing.T) (ports.ItemService, *stubItemRepo, *domain.Item) {
	t.Helper()
	repo := newStubItemRepo()
	svc := NewItemService(repo, zerolog.Nop())

	item, err := svc.Create(asCaller(context.Background(), alice), ports.ItemInput{
		Title:    "Blue umbrella",
		Location: "Library 2nd floor",
		Category: "accessories",
		Status:   "found",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	return svc, repo, item
}

func TestItemService_Create(t *testing.T) {
	_, _, item := newItemFixture(t)

	if item.PostedBy.ID != alice.ID || item.PostedBy.Name != alice.DisplayName {
		t.Fatalf("unexpected owner: %+v", item.PostedBy)
	}
	if item.Status != domain.ItemFound {
		t.Fatalf("unexpected status: %s", item.Status)
	}
	if item.CreatedAt.IsZero() {
		t.Fatalf("expected CreatedAt to be set")
	}
}

func TestItemService_Create_DefaultsAndValidation(t *testing.T) {
	repo := newStubItemRepo()
	svc := NewItemService(repo, zerolog.Nop())
	ctx := asCaller(context.Background(), alice)

	item, err := svc.Create(ctx, ports.ItemInput{Title: "Keys"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.Status != domain.ItemLost {
		t.Fatalf("expected default status lost, got %s", item.Status)
	}

	bad := []ports.ItemInput{
		{Title: ""},
		{Title: "Keys", Status: "stolen"},
		{Title: "Keys", Reward: -1},
	}
	for _, in := range bad {
		if _, err := svc.Create(ctx, in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("Create(%+v): expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestItemService_Create_Unauthenticated(t *testing.T) {
	repo := newStubItemRepo()
	svc := NewItemService(repo, zerolog.Nop())

	if _, err := svc.Create(context.Background(), ports.ItemInput{Title: "Keys"}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatalf("expected no items stored")
	}
}

func TestItemService_Update_OwnershipMatrix(t *testing.T) {
	cases := []struct {
		name    string
		ctx     context.Context
		wantErr error
	}{
		{"owner", asCaller(context.Background(), alice), nil},
		{"admin", asCaller(context.Background(), root), nil},
		{"other user", asCaller(context.Background(), bob), domain.ErrForbidden},
		{"anonymous", context.Background(), domain.ErrUnauthenticated},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo, item := newItemFixture(t)

			_, err := svc.Update(tc.ctx, item.ID, ports.ItemInput{Title: "Red umbrella", Status: "claimed"})
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}

			stored := repo.items[item.ID]
			if tc.wantErr == nil {
				if stored.Title != "Red umbrella" || stored.Status != domain.ItemClaimed {
					t.Fatalf("update not applied: %+v", stored)
				}
				if stored.PostedBy.ID != alice.ID {
					t.Fatalf("ownership changed on update: %+v", stored.PostedBy)
				}
			} else if stored.Title != "Blue umbrella" {
				t.Fatalf("denied update mutated item: %+v", stored)
			}
		})
	}
}

func TestItemService_Delete_OwnershipMatrix(t *testing.T) {
	cases := []struct {
		name    string
		ctx     context.Context
		wantErr error
	}{
		{"owner", asCaller(context.Background(), alice), nil},
		{"admin", asCaller(context.Background(), root), nil},
		{"other user", asCaller(context.Background(), bob), domain.ErrForbidden},
		{"anonymous", context.Background(), domain.ErrUnauthenticated},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo, item := newItemFixture(t)

			err := svc.Delete(tc.ctx, item.ID)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			_, exists := repo.items[item.ID]
			if exists == (tc.wantErr == nil) {
				t.Fatalf("unexpected item presence after delete: exists=%v", exists)
			}
		})
	}
}

func TestItemService_Delete_AnonymousOnMissingItem(t *testing.T) {
	svc, _, _ := newItemFixture(t)

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated before lookup, got %v", err)
	}
	if err := svc.Delete(asCaller(context.Background(), bob), "missing"); !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestItemService_UpdateStatus(t *testing.T) {
	svc, _, item := newItemFixture(t)
	ctx := asCaller(context.Background(), alice)

	updated, err := svc.UpdateStatus(ctx, item.ID, "resolved")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != domain.ItemResolved {
		t.Fatalf("unexpected status: %s", updated.Status)
	}

	if _, err := svc.UpdateStatus(ctx, item.ID, "bogus"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.UpdateStatus(asCaller(context.Background(), bob), item.ID, "lost"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestItemService_AccessChecksPrecedeFieldValidation(t *testing.T) {
	svc, repo, item := newItemFixture(t)
	invalid := ports.ItemInput{Title: "", Status: "stolen", Reward: -1, ImageURL: "not a url"}
	anon := context.Background()
	bobCtx := asCaller(context.Background(), bob)

	if _, err := svc.Create(anon, invalid); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("Create anonymous: expected ErrUnauthenticated, got %v", err)
	}
	if _, err := svc.Update(anon, item.ID, invalid); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("Update anonymous: expected ErrUnauthenticated, got %v", err)
	}
	if _, err := svc.Update(bobCtx, item.ID, invalid); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("Update non-owner: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.UpdateStatus(anon, item.ID, "bogus"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("UpdateStatus anonymous: expected ErrUnauthenticated, got %v", err)
	}
	if _, err := svc.UpdateStatus(bobCtx, item.ID, "bogus"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("UpdateStatus non-owner: expected ErrForbidden, got %v", err)
	}

	_, err := svc.Update(asCaller(context.Background(), alice), item.ID, invalid)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("Update owner: expected ErrInvalidInput, got %v", err)
	}
	if repo.items[item.ID].Title != "Blue umbrella" {
		t.Fatalf("rejected update mutated item: %+v", repo.items[item.ID])
	}
}

func TestItemService_Create_FieldLimits(t *testing.T) {
	svc, _, _ := newItemFixture(t)
	ctx := asCaller(context.Background(), alice)

	for _, in := range []ports.ItemInput{
		{Title: "   "},
		{Title: strings.Repeat("x", 201)},
		{Title: "Keys", ImageURL: "not a url"},
	} {
		if _, err := svc.Create(ctx, in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("Create(%+v): expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestItemService_ListAndListMine(t *testing.T) {
	svc, _, _ := newItemFixture(t)
	bobCtx := asCaller(context.Background(), bob)

	if _, err := svc.Create(bobCtx, ports.ItemInput{Title: "Wallet", Location: "Cafeteria", Status: "lost"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	all, err := svc.List(context.Background(), ports.ListItemsInput{})
	if err != nil || len(all) != 2 {
		t.Fatalf("expected 2 items, got %d (err %v)", len(all), err)
	}

	lost, err := svc.List(context.Background(), ports.ListItemsInput{Status: "lost"})
	if err != nil || len(lost) != 1 || lost[0].Title != "Wallet" {
		t.Fatalf("unexpected status filter result: %+v (err %v)", lost, err)
	}

	byLocation, err := svc.List(context.Background(), ports.ListItemsInput{Location: "library"})
	if err != nil || len(byLocation) != 1 || byLocation[0].Title != "Blue umbrella" {
		t.Fatalf("unexpected location filter result: %+v (err %v)", byLocation, err)
	}

	if _, err := svc.List(context.Background(), ports.ListItemsInput{Status: "stolen"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	mine, err := svc.ListMine(bobCtx)
	if err != nil || len(mine) != 1 || mine[0].PostedBy.ID != bob.ID {
		t.Fatalf("unexpected ListMine result: %+v (err %v)", mine, err)
	}

	if _, err := svc.ListMine(context.Background()); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
