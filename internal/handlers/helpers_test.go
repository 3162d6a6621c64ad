package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"TodoKeeper/internal/auth"
	"TodoKeeper/internal/handlers"
	"TodoKeeper/internal/model"
	"TodoKeeper/internal/repo"
	"TodoKeeper/internal/service"
)

const (
	testSecret   = "test-secret"
	testBotToken = "12345:bot-token"
)

// --- Minimal mocks ---

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	args := m.Called(ctx, telegramID)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) LinkTelegram(ctx context.Context, userID, telegramID int64, firstName, lastName, username, photoURL string) (bool, error) {
	args := m.Called(ctx, userID, telegramID, firstName, lastName, username, photoURL)
	return args.Bool(0), args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

type mockItemRepo struct{ mock.Mock }

func (m *mockItemRepo) ListByOwner(ctx context.Context, ownerID int64) ([]model.Item, error) {
	args := m.Called(ctx, ownerID)
	if v, ok := args.Get(0).([]model.Item); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItemRepo) Create(ctx context.Context, item *model.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockItemRepo) UpdateText(ctx context.Context, ownerID, itemID int64, text string) (bool, error) {
	args := m.Called(ctx, ownerID, itemID, text)
	return args.Bool(0), args.Error(1)
}

func (m *mockItemRepo) Delete(ctx context.Context, ownerID, itemID int64) (bool, error) {
	args := m.Called(ctx, ownerID, itemID)
	return args.Bool(0), args.Error(1)
}

var _ repo.ItemRepository = (*mockItemRepo)(nil)

// --- Helpers ---

// newTestRouter собирает полноценный роутер поверх мок-репозиториев.
func newTestRouter(t *testing.T, ur repo.UserRepository, ir repo.ItemRepository) http.Handler {
	t.Helper()
	logger := zap.NewNop().Sugar()
	tokens := auth.NewTokenAuthority([]byte(testSecret), time.Hour)

	userSvc := service.NewUserService(ur, tokens, service.NewTelegramVerifier(testBotToken), logger)
	itemSvc := service.NewItemService(ir, logger)

	h := handlers.NewHandler(userSvc, itemSvc, logger)
	return h.Router
}

// addBearer выписывает валидный токен и кладёт его в Authorization.
func addBearer(t *testing.T, req *http.Request, userID int64, email string) {
	t.Helper()
	tok, err := auth.NewTokenAuthority([]byte(testSecret), time.Hour).Issue(userID, email)
	if err != nil {
		t.Fatalf("failed to issue test token: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+tok)
}

// expectResolve настраивает мок на резолв токена пользователем user.
func expectResolve(m *mockUserRepo, user *model.User) {
	m.On("GetUserByID", mock.Anything, user.ID).Return(user, nil).Once()
}

func emailPtr(s string) *string { return &s }

func doRequest(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}
