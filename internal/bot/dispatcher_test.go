package bot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"TodoKeeper/internal/auth"
	"TodoKeeper/internal/model"
	"TodoKeeper/internal/repo"
	"TodoKeeper/internal/service"
)

// моки репозиториев — бот работает через настоящие сервисы
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

func newTestEnv(um *mockUserRepo, im *mockItemRepo) *Env {
	logger := zap.NewNop().Sugar()
	tokens := auth.NewTokenAuthority([]byte("test-secret"), time.Hour)
	return &Env{
		Users:  service.NewUserService(um, tokens, service.NewTelegramVerifier("12345:bot-token"), logger),
		Items:  service.NewItemService(im, logger),
		Logger: logger,
	}
}

// linked настраивает мок так, что sender 555 привязан к пользователю 7.
func linked(um *mockUserRepo) *model.User {
	tg := int64(555)
	u := &model.User{ID: 7, TelegramID: &tg, FirstName: "Alice"}
	um.On("GetUserByTelegramID", mock.Anything, int64(555)).Return(u, nil)
	return u
}

func TestDispatch_NotLinked(t *testing.T) {
	um := new(mockUserRepo)
	im := new(mockItemRepo)
	env := newTestEnv(um, im)
	ctx := context.Background()

	um.On("GetUserByTelegramID", mock.Anything, int64(555)).Return((*model.User)(nil), gorm.ErrRecordNotFound)

	// команды с данными требуют привязки
	reply := Dispatch(ctx, env, 555, "/list")
	assert.Equal(t, replyNotLinked, reply)

	// /start работает и без привязки, с инструкцией
	reply = Dispatch(ctx, env, 555, "/start")
	assert.Contains(t, reply, "не привязан")
	assert.Contains(t, reply, "/add")
}

func TestDispatch_StartLinked(t *testing.T) {
	um := new(mockUserRepo)
	im := new(mockItemRepo)
	env := newTestEnv(um, im)

	linked(um)
	reply := Dispatch(context.Background(), env, 555, "/start")
	assert.Contains(t, reply, "Alice")
	assert.Contains(t, reply, "/list")
}

func TestDispatch_List(t *testing.T) {
	um := new(mockUserRepo)
	im := new(mockItemRepo)
	env := newTestEnv(um, im)
	ctx := context.Background()

	linked(um)

	t.Run("numbered output", func(t *testing.T) {
		im.ExpectedCalls = nil
		im.On("ListByOwner", mock.Anything, int64(7)).Return([]model.Item{
			{ID: 10, UserID: 7, Text: "buy milk"},
			{ID: 12, UserID: 7, Text: "walk dog"},
		}, nil).Once()

		reply := Dispatch(ctx, env, 555, "/list")
		assert.Equal(t, "1. buy milk\n2. walk dog", reply)
	})

	t.Run("empty", func(t *testing.T) {
		im.ExpectedCalls = nil
		im.On("ListByOwner", mock.Anything, int64(7)).Return([]model.Item{}, nil).Once()

		reply := Dispatch(ctx, env, 555, "/list")
		assert.Contains(t, reply, "пуст")
	})
}

func TestDispatch_Add(t *testing.T) {
	um := new(mockUserRepo)
	im := new(mockItemRepo)
	env := newTestEnv(um, im)
	ctx := context.Background()

	linked(um)

	t.Run("ok", func(t *testing.T) {
		im.ExpectedCalls = nil
		im.On("Create", mock.Anything, mock.MatchedBy(func(it *model.Item) bool {
			return it.UserID == 7 && it.Text == "buy milk"
		})).Return(nil).Once()
		im.On("ListByOwner", mock.Anything, int64(7)).Return([]model.Item{
			{ID: 10, UserID: 7, Text: "buy milk"},
		}, nil).Once()

		reply := Dispatch(ctx, env, 555, "/add buy milk")
		assert.Contains(t, reply, "Добавлено")
		assert.Contains(t, reply, "1. buy milk")
	})

	t.Run("usage without text", func(t *testing.T) {
		im.ExpectedCalls = nil
		reply := Dispatch(ctx, env, 555, "/add")
		assert.Contains(t, reply, "Usage: /add")
	})
}

func TestDispatch_Delete(t *testing.T) {
	um := new(mockUserRepo)
	im := new(mockItemRepo)
	env := newTestEnv(um, im)
	ctx := context.Background()

	linked(um)

	// /delete 2 — вторая позиция списка, не id записи
	t.Run("by position", func(t *testing.T) {
		im.ExpectedCalls = nil
		im.On("ListByOwner", mock.Anything, int64(7)).Return([]model.Item{
			{ID: 10, UserID: 7, Text: "buy milk"},
			{ID: 12, UserID: 7, Text: "walk dog"},
		}, nil).Once()
		im.On("Delete", mock.Anything, int64(7), int64(12)).Return(true, nil).Once()
		im.On("ListByOwner", mock.Anything, int64(7)).Return([]model.Item{
			{ID: 10, UserID: 7, Text: "buy milk"},
		}, nil).Once()

		reply := Dispatch(ctx, env, 555, "/delete 2")
		assert.Contains(t, reply, "Удалено: walk dog")
		assert.Contains(t, reply, "1. buy milk")
		im.AssertExpectations(t)
	})

	t.Run("out of range", func(t *testing.T) {
		im.ExpectedCalls = nil
		im.On("ListByOwner", mock.Anything, int64(7)).Return([]model.Item{
			{ID: 10, UserID: 7, Text: "buy milk"},
		}, nil).Once()

		reply := Dispatch(ctx, env, 555, "/delete 5")
		assert.Contains(t, reply, "Нет такой записи")
	})

	t.Run("not a number", func(t *testing.T) {
		im.ExpectedCalls = nil
		reply := Dispatch(ctx, env, 555, "/delete abc")
		assert.Contains(t, reply, "Usage: /delete")
	})
}

func TestDispatch_Edit(t *testing.T) {
	um := new(mockUserRepo)
	im := new(mockItemRepo)
	env := newTestEnv(um, im)
	ctx := context.Background()

	linked(um)

	im.On("ListByOwner", mock.Anything, int64(7)).Return([]model.Item{
		{ID: 10, UserID: 7, Text: "buy milk"},
	}, nil).Once()
	im.On("UpdateText", mock.Anything, int64(7), int64(10), "buy bread").Return(true, nil).Once()
	im.On("ListByOwner", mock.Anything, int64(7)).Return([]model.Item{
		{ID: 10, UserID: 7, Text: "buy bread"},
	}, nil).Once()

	reply := Dispatch(ctx, env, 555, "/edit 1 buy bread")
	assert.Contains(t, reply, "Исправлено")
	assert.Contains(t, reply, "1. buy bread")
	im.AssertExpectations(t)
}

func TestDispatch_UnknownCommand(t *testing.T) {
	um := new(mockUserRepo)
	im := new(mockItemRepo)
	env := newTestEnv(um, im)

	linked(um)
	reply := Dispatch(context.Background(), env, 555, "/frobnicate")
	assert.Contains(t, reply, "Не знаю такой команды")
	assert.Contains(t, reply, "/list")
}

func TestSplitCommand(t *testing.T) {
	cases := []struct {
		in         string
		name, args string
	}{
		{"/list", "list", ""},
		{"/add buy milk", "add", "buy milk"},
		{"/add@todo_bot buy milk", "add", "buy milk"},
		{"  /DELETE 2 ", "delete", "2"},
		{"plain text", "plain", "text"},
		{"", "", ""},
	}
	for _, c := range cases {
		name, args := splitCommand(c.in)
		assert.Equal(t, c.name, name, "input %q", c.in)
		assert.Equal(t, c.args, args, "input %q", c.in)
	}
}
