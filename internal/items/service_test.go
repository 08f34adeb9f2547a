package items

import (
	"context"
	"testing"
	"time"

	"github.com/shareloop/shareloop-backend/pkg/db/models"
	pkgerrors "github.com/shareloop/shareloop-backend/pkg/errors"
	"github.com/shareloop/shareloop-backend/pkg/pagination"
)

type stubItemRepo struct {
	item    *models.Item
	items   []models.Item
	created *models.Item
	updated *models.Item
	deleted bool
	err     error
}

func (s *stubItemRepo) Create(ctx context.Context, item *models.Item) error {
	if s.err != nil {
		return s.err
	}
	item.ID = 10
	s.created = item
	return nil
}

func (s *stubItemRepo) Update(ctx context.Context, item *models.Item) error {
	s.updated = item
	return s.err
}

func (s *stubItemRepo) FindByID(ctx context.Context, id int64) (*models.Item, error) {
	return s.item, s.err
}

func (s *stubItemRepo) ListByOwner(ctx context.Context, ownerID int64, page pagination.Page) ([]models.Item, error) {
	return s.items, s.err
}

func (s *stubItemRepo) Search(ctx context.Context, text string, page pagination.Page) ([]models.Item, error) {
	return s.items, s.err
}

func (s *stubItemRepo) ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]models.Item, error) {
	return s.items, s.err
}

func (s *stubItemRepo) Delete(ctx context.Context, id int64) (bool, error) {
	return s.deleted, s.err
}

type stubCommentRepo struct {
	comments []models.Comment
	created  *models.Comment
	err      error
}

func (s *stubCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	if s.err != nil {
		return s.err
	}
	comment.ID = 5
	s.created = comment
	return nil
}

func (s *stubCommentRepo) ListByItem(ctx context.Context, itemID int64) ([]models.Comment, error) {
	return s.comments, s.err
}

type stubUserSource struct {
	user *models.User
	err  error
}

func (s stubUserSource) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return s.user, s.err
}

type stubRequestSource struct {
	request *models.ItemRequest
	err     error
}

func (s stubRequestSource) FindByID(ctx context.Context, id int64) (*models.ItemRequest, error) {
	return s.request, s.err
}

type stubBookingSource struct {
	last     *models.Booking
	next     *models.Booking
	eligible bool
	err      error
}

func (s stubBookingSource) LastForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	return s.last, s.err
}

func (s stubBookingSource) NextForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	return s.next, s.err
}

func (s stubBookingSource) HasFinishedApprovedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	return s.eligible, s.err
}

type itemServiceDeps struct {
	repo     *stubItemRepo
	comments *stubCommentRepo
	users    stubUserSource
	requests stubRequestSource
	bookings stubBookingSource
}

func newItemService(t *testing.T, deps itemServiceDeps) Service {
	t.Helper()
	if deps.repo == nil {
		deps.repo = &stubItemRepo{}
	}
	if deps.comments == nil {
		deps.comments = &stubCommentRepo{}
	}
	svc, err := NewService(ServiceParams{
		Repo:     deps.repo,
		Comments: deps.comments,
		Users:    deps.users,
		Requests: deps.requests,
		Bookings: deps.bookings,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != code {
		t.Fatalf("expected code %s, got %v", code, err)
	}
}

func owner() *models.User {
	return &models.User{ID: 1, Name: "Olga", Email: "olga@example.com"}
}

func ownedItem() *models.Item {
	return &models.Item{ID: 10, Name: "drill", Description: "cordless drill", Available: true, OwnerID: 1}
}

func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

func TestCreateItemSuccess(t *testing.T) {
	repo := &stubItemRepo{}
	svc := newItemService(t, itemServiceDeps{repo: repo, users: stubUserSource{user: owner()}})

	resp, err := svc.Create(context.Background(), 1, CreateInput{
		Name:        " drill ",
		Description: "cordless drill",
		Available:   boolPtr(true),
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if resp.Name != "drill" {
		t.Fatalf("expected trimmed name, got %q", resp.Name)
	}
	if repo.created == nil || repo.created.OwnerID != 1 {
		t.Fatalf("unexpected persisted item %+v", repo.created)
	}
}

func TestCreateItemUnknownRequest(t *testing.T) {
	svc := newItemService(t, itemServiceDeps{users: stubUserSource{user: owner()}})

	requestID := int64(99)
	_, err := svc.Create(context.Background(), 1, CreateInput{
		Name:        "drill",
		Description: "cordless drill",
		Available:   boolPtr(true),
		RequestID:   &requestID,
	})
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestCreateItemUnknownOwner(t *testing.T) {
	svc := newItemService(t, itemServiceDeps{})

	_, err := svc.Create(context.Background(), 99, CreateInput{
		Name:        "drill",
		Description: "cordless drill",
		Available:   boolPtr(true),
	})
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestUpdateItemForbiddenForNonOwner(t *testing.T) {
	repo := &stubItemRepo{item: ownedItem()}
	svc := newItemService(t, itemServiceDeps{repo: repo, users: stubUserSource{user: owner()}})

	_, err := svc.Update(context.Background(), 42, 10, UpdateInput{Name: strPtr("hammer")})
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestUpdateItemAppliesPartialFields(t *testing.T) {
	repo := &stubItemRepo{item: ownedItem()}
	svc := newItemService(t, itemServiceDeps{repo: repo, users: stubUserSource{user: owner()}})

	resp, err := svc.Update(context.Background(), 1, 10, UpdateInput{Available: boolPtr(false)})
	if err != nil {
		t.Fatalf("update item: %v", err)
	}
	if resp.Available {
		t.Fatal("expected item to become unavailable")
	}
	if resp.Name != "drill" {
		t.Fatalf("untouched field changed: %q", resp.Name)
	}
}

func TestGetItemHidesBookingInfoFromNonOwner(t *testing.T) {
	next := &models.Booking{ID: 7, BookerID: 2}
	repo := &stubItemRepo{item: ownedItem()}
	svc := newItemService(t, itemServiceDeps{
		repo:     repo,
		users:    stubUserSource{user: owner()},
		bookings: stubBookingSource{next: next},
	})

	detail, err := svc.Get(context.Background(), 42, 10)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if detail.LastBooking != nil || detail.NextBooking != nil {
		t.Fatalf("booking info leaked to non-owner: %+v", detail)
	}
}

func TestGetItemShowsBookingInfoToOwner(t *testing.T) {
	last := &models.Booking{ID: 6, BookerID: 2}
	next := &models.Booking{ID: 7, BookerID: 3}
	repo := &stubItemRepo{item: ownedItem()}
	svc := newItemService(t, itemServiceDeps{
		repo:     repo,
		users:    stubUserSource{user: owner()},
		bookings: stubBookingSource{last: last, next: next},
	})

	detail, err := svc.Get(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if detail.LastBooking == nil || detail.LastBooking.ID != 6 {
		t.Fatalf("expected last booking, got %+v", detail.LastBooking)
	}
	if detail.NextBooking == nil || detail.NextBooking.ID != 7 {
		t.Fatalf("expected next booking, got %+v", detail.NextBooking)
	}
}

func TestSearchBlankTextReturnsEmpty(t *testing.T) {
	repo := &stubItemRepo{items: []models.Item{*ownedItem()}}
	svc := newItemService(t, itemServiceDeps{repo: repo, users: stubUserSource{user: owner()}})

	list, err := svc.Search(context.Background(), "   ", pagination.Page{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty result for blank query, got %d", len(list))
	}
}

func TestDeleteItemForbiddenForNonOwner(t *testing.T) {
	repo := &stubItemRepo{item: ownedItem(), deleted: true}
	svc := newItemService(t, itemServiceDeps{repo: repo, users: stubUserSource{user: owner()}})

	err := svc.Delete(context.Background(), 42, 10)
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestAddCommentRequiresFinishedRental(t *testing.T) {
	repo := &stubItemRepo{item: ownedItem()}
	svc := newItemService(t, itemServiceDeps{
		repo:     repo,
		users:    stubUserSource{user: &models.User{ID: 2, Name: "Ray"}},
		bookings: stubBookingSource{eligible: false},
	})

	_, err := svc.AddComment(context.Background(), 2, 10, CommentInput{Text: "great drill"})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestAddCommentSuccess(t *testing.T) {
	repo := &stubItemRepo{item: ownedItem()}
	comments := &stubCommentRepo{}
	svc := newItemService(t, itemServiceDeps{
		repo:     repo,
		comments: comments,
		users:    stubUserSource{user: &models.User{ID: 2, Name: "Ray"}},
		bookings: stubBookingSource{eligible: true},
	})

	resp, err := svc.AddComment(context.Background(), 2, 10, CommentInput{Text: "  great drill  "})
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if resp.Text != "great drill" {
		t.Fatalf("expected trimmed text, got %q", resp.Text)
	}
	if resp.AuthorName != "Ray" {
		t.Fatalf("expected author name, got %q", resp.AuthorName)
	}
	if comments.created == nil || comments.created.ItemID != 10 {
		t.Fatalf("unexpected persisted comment %+v", comments.created)
	}
}

func TestAddCommentRejectsBlankText(t *testing.T) {
	repo := &stubItemRepo{item: ownedItem()}
	svc := newItemService(t, itemServiceDeps{
		repo:     repo,
		users:    stubUserSource{user: &models.User{ID: 2, Name: "Ray"}},
		bookings: stubBookingSource{eligible: true},
	})

	_, err := svc.AddComment(context.Background(), 2, 10, CommentInput{Text: "   "})
	assertCode(t, err, pkgerrors.CodeValidation)
}
