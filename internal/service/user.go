package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"TodoKeeper/internal/auth"
	"TodoKeeper/internal/model"
	"TodoKeeper/internal/repo"
)

// UserService — регистрация/вход и резолв идентичности для обоих фронтендов.
// Оба пути резолва (токен веба, chat id бота) приводят к одной записи User;
// её ID дальше используется как ключ владения без дополнительных проверок.
type UserService struct {
	users    repo.UserRepository
	tokens   *auth.TokenAuthority
	verifier *TelegramVerifier
	logger   *zap.SugaredLogger
}

func NewUserService(users repo.UserRepository, tokens *auth.TokenAuthority, verifier *TelegramVerifier, logger *zap.SugaredLogger) *UserService {
	return &UserService{users: users, tokens: tokens, verifier: verifier, logger: logger}
}

// Register создаёт пользователя с bcrypt-хешем пароля.
func (s *UserService) Register(ctx context.Context, email, password, firstName, lastName string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	ctx, cancel := storeCtx(ctx)
	defer cancel()

	_, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, ErrEmailTaken
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, s.storeErr("Register: lookup failed", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, s.storeErr("Register: hash failed", err)
	}

	user, err := s.users.CreateUser(ctx, &model.User{
		Email:        &email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
	})
	if err != nil {
		// предварительная проверка email не атомарна: параллельная регистрация
		// того же email упирается в уникальный индекс уже при INSERT
		if repo.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, s.storeErr("Register: create failed", err)
	}
	return user, nil
}

// Login проверяет пару email/пароль. Неизвестный email и неверный пароль
// дают одну и ту же ошибку.
func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	ctx, cancel := storeCtx(ctx)
	defer cancel()

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, s.storeErr("Login: lookup failed", err)
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// IssueToken выпускает bearer-токен для пользователя.
func (s *UserService) IssueToken(user *model.User) (string, error) {
	return s.tokens.Issue(user.ID, user.EmailString())
}

// ResolveFromToken проверяет токен и загружает пользователя. Токен может быть
// структурно валиден, а пользователь уже удалён — это ErrUserNotFound и для
// вызывающего равнозначно «не аутентифицирован».
func (s *UserService) ResolveFromToken(ctx context.Context, tokenString string) (*model.User, error) {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	ctx, cancel := storeCtx(ctx)
	defer cancel()

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, s.storeErr("ResolveFromToken: lookup failed", err)
	}
	return user, nil
}

// ResolveFromTelegram ищет пользователя по привязанному chat id.
// ErrNotLinked — отдельная пользовательская ошибка («сначала привяжите
// аккаунт»), не общий отказ аутентификации.
func (s *UserService) ResolveFromTelegram(ctx context.Context, telegramID int64) (*model.User, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	user, err := s.users.GetUserByTelegramID(ctx, telegramID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotLinked
		}
		return nil, s.storeErr("ResolveFromTelegram: lookup failed", err)
	}
	return user, nil
}

// LinkTelegram привязывает Telegram-идентичность к веб-аккаунту userID.
// Подпись widget'а проверяется до обращения к хранилищу; привязка
// выполняется не более одного раза.
func (s *UserService) LinkTelegram(ctx context.Context, userID int64, assertion TelegramAssertion) error {
	if err := s.verifier.Check(assertion); err != nil {
		return err
	}

	ctx, cancel := storeCtx(ctx)
	defer cancel()

	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return s.storeErr("LinkTelegram: lookup failed", err)
	}

	// chat id не должен быть привязан к другому аккаунту
	other, err := s.users.GetUserByTelegramID(ctx, assertion.ID)
	switch {
	case err == nil:
		if other.ID == userID {
			return nil // уже привязан к этому же аккаунту, идемпотентно
		}
		return ErrAlreadyLinked
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return s.storeErr("LinkTelegram: chat lookup failed", err)
	}

	linked, err := s.users.LinkTelegram(ctx, userID, assertion.ID,
		assertion.FirstName, assertion.LastName, assertion.Username, assertion.PhotoURL)
	if err != nil {
		return s.storeErr("LinkTelegram: update failed", err)
	}
	if !linked {
		// у пользователя уже задан telegram_id
		return ErrAlreadyLinked
	}
	return nil
}

func (s *UserService) storeErr(msg string, err error) error {
	s.logger.Errorw(msg, "error", err)
	return ErrUnavailable
}
