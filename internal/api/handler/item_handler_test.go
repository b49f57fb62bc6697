package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/kiitfinder/lostfound-system/internal/core/domain"
	"github.com/kiitfinder/lostfound-system/internal/core/ports"
)

type stubItemService struct {
	createFn       func(ctx context.Context, in ports.ItemInput) (*domain.Item, error)
	listFn         func(ctx context.Context, in ports.ListItemsInput) ([]*domain.Item, error)
	updateStatusFn func(ctx context.Context, id, status string) (*domain.Item, error)
	deleteFn       func(ctx context.Context, id string) error
}

func (s *stubItemService) Create(ctx context.Context, in ports.ItemInput) (*domain.Item, error) {
	return s.createFn(ctx, in)
}
func (s *stubItemService) Get(ctx context.Context, id string) (*domain.Item, error) {
	return nil, domain.ErrItemNotFound
}
func (s *stubItemService) List(ctx context.Context, in ports.ListItemsInput) ([]*domain.Item, error) {
	return s.listFn(ctx, in)
}
func (s *stubItemService) ListMine(ctx context.Context) ([]*domain.Item, error) {
	return nil, domain.ErrUnauthenticated
}
func (s *stubItemService) Update(ctx context.Context, id string, in ports.ItemInput) (*domain.Item, error) {
	return nil, domain.ErrForbidden
}
func (s *stubItemService) UpdateStatus(ctx context.Context, id, status string) (*domain.Item, error) {
	return s.updateStatusFn(ctx, id, status)
}
func (s *stubItemService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func withCaller(c echo.Context) {
	req := c.Request()
	c.SetRequest(req.WithContext(domain.WithIdentity(req.Context(), domain.RequestIdentity{
		AccountID:   "acc-1",
		Identity:    "alice@example.com",
		DisplayName: "Alice",
		Role:        domain.RoleUser,
	})))
}

func TestItemHandler_Create(t *testing.T) {
	stub := &stubItemService{
		createFn: func(ctx context.Context, in ports.ItemInput) (*domain.Item, error) {
			if in.Title != "Umbrella" || in.Status != "found" || in.Reward != 5 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Item{ID: "item-1", Title: in.Title, Status: domain.ItemFound,
				PostedBy: domain.AccountRef{ID: "acc-1", Name: "Alice"}}, nil
		},
	}
	handler := NewItemHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/items", `{"title":"Umbrella","status":"found","reward":5}`)
	withCaller(c)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	postedBy, _ := resp["posted_by"].(map[string]any)
	if resp["id"] != "item-1" || postedBy["id"] != "acc-1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestItemHandler_Mutations_RequireIdentityBeforeBody(t *testing.T) {
	stub := &stubItemService{
		createFn: func(ctx context.Context, in ports.ItemInput) (*domain.Item, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
		updateStatusFn: func(ctx context.Context, id, status string) (*domain.Item, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewItemHandler(stub)

	for _, body := range []string{`{}`, `not-json`, `{"title":"x","status":"stolen"}`} {
		c, _ := newTestContext(http.MethodPost, "/items", body)
		if err := handler.Create(c); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("Create body %s: expected ErrUnauthenticated, got %v", body, err)
		}

		c, _ = newTestContext(http.MethodPut, "/items/item-1", body)
		if err := handler.Update(c); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("Update body %s: expected ErrUnauthenticated, got %v", body, err)
		}

		c, _ = newTestContext(http.MethodPatch, "/items/item-1/status", body)
		if err := handler.UpdateStatus(c); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("UpdateStatus body %s: expected ErrUnauthenticated, got %v", body, err)
		}
	}
}

func TestItemHandler_Create_LeavesFieldRulesToService(t *testing.T) {
	var got ports.ItemInput
	stub := &stubItemService{
		createFn: func(ctx context.Context, in ports.ItemInput) (*domain.Item, error) {
			got = in
			return nil, domain.ErrInvalidInput
		},
	}
	handler := NewItemHandler(stub)

	c, _ := newTestContext(http.MethodPost, "/items", `{"title":"x","status":"stolen","reward":-1}`)
	withCaller(c)
	if err := handler.Create(c); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if got.Status != "stolen" || got.Reward != -1 {
		t.Fatalf("body not forwarded: %+v", got)
	}

	c, _ = newTestContext(http.MethodPost, "/items", `not-json`)
	withCaller(c)
	if err := handler.Create(c); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("malformed body: expected ErrInvalidInput, got %v", err)
	}
}

func TestItemHandler_List_PassesFilters(t *testing.T) {
	stub := &stubItemService{
		listFn: func(ctx context.Context, in ports.ListItemsInput) ([]*domain.Item, error) {
			if in.Status != "lost" || in.Category != "keys" || in.Location != "gym" {
				t.Fatalf("unexpected filters: %+v", in)
			}
			return []*domain.Item{}, nil
		},
	}
	handler := NewItemHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/items?status=lost&category=keys&location=gym", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || rec.Body.String() != "[]\n" {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Body.String())
	}
}

func TestItemHandler_Delete_PropagatesAccessErrors(t *testing.T) {
	for _, want := range []error{domain.ErrUnauthenticated, domain.ErrForbidden, domain.ErrItemNotFound} {
		stub := &stubItemService{
			deleteFn: func(ctx context.Context, id string) error {
				if id != "item-9" {
					t.Fatalf("unexpected id %s", id)
				}
				return want
			},
		}
		handler := NewItemHandler(stub)

		c, _ := newTestContext(http.MethodDelete, "/items/item-9", "")
		c.SetParamNames("id")
		c.SetParamValues("item-9")
		if err := handler.Delete(c); !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
	}
}

func TestItemHandler_UpdateStatus(t *testing.T) {
	stub := &stubItemService{
		updateStatusFn: func(ctx context.Context, id, status string) (*domain.Item, error) {
			return &domain.Item{ID: id, Status: domain.ItemStatus(status)}, nil
		},
	}
	handler := NewItemHandler(stub)

	c, rec := newTestContext(http.MethodPatch, "/items/item-1/status", `{"status":"claimed"}`)
	withCaller(c)
	c.SetParamNames("id")
	c.SetParamValues("item-1")
	if err := handler.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
