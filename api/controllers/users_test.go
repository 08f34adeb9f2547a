package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/shareloop/shareloop-backend/internal/users"
	pkgerrors "github.com/shareloop/shareloop-backend/pkg/errors"
)

type stubUserService struct {
	user *users.Response
	list []users.Response
	err  error
}

func (s stubUserService) Create(ctx context.Context, input users.CreateInput) (*users.Response, error) {
	return s.user, s.err
}

func (s stubUserService) Update(ctx context.Context, userID int64, input users.UpdateInput) (*users.Response, error) {
	return s.user, s.err
}

func (s stubUserService) Get(ctx context.Context, userID int64) (*users.Response, error) {
	return s.user, s.err
}

func (s stubUserService) List(ctx context.Context) ([]users.Response, error) {
	return s.list, s.err
}

func (s stubUserService) Delete(ctx context.Context, userID int64) error {
	return s.err
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestUserCreateReturns201(t *testing.T) {
	handler := UserCreate(stubUserService{user: &users.Response{ID: 1, Name: "Maya", Email: "maya@example.com"}}, nil)

	body := bytes.NewBufferString(`{"name":"Maya","email":"maya@example.com"}`)
	req := httptest.NewRequest(http.MethodPost, "/users", body)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rec.Code)
	}
	var envelope struct {
		Data users.Response `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != 1 {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestUserCreateRejectsInvalidBody(t *testing.T) {
	handler := UserCreate(stubUserService{}, nil)

	body := bytes.NewBufferString(`{"name":"Maya","email":"not-an-email"}`)
	req := httptest.NewRequest(http.MethodPost, "/users", body)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestUserCreateRejectsUnknownFields(t *testing.T) {
	handler := UserCreate(stubUserService{}, nil)

	body := bytes.NewBufferString(`{"name":"Maya","email":"maya@example.com","admin":true}`)
	req := httptest.NewRequest(http.MethodPost, "/users", body)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestUserCreateConflict(t *testing.T) {
	handler := UserCreate(stubUserService{err: pkgerrors.New(pkgerrors.CodeConflict, "email already in use")}, nil)

	body := bytes.NewBufferString(`{"name":"Maya","email":"maya@example.com"}`)
	req := httptest.NewRequest(http.MethodPost, "/users", body)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", rec.Code)
	}
}

func TestUserGetRejectsBadID(t *testing.T) {
	handler := UserGet(stubUserService{}, nil)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/users/abc", nil), "userId", "abc")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestUserGetNotFound(t *testing.T) {
	handler := UserGet(stubUserService{err: pkgerrors.New(pkgerrors.CodeNotFound, "user not found")}, nil)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/users/404", nil), "userId", "404")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestUserDeleteSuccess(t *testing.T) {
	handler := UserDelete(stubUserService{}, nil)

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/users/1", nil), "userId", "1")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}
