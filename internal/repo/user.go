package repo

import (
	"context"

	"gorm.io/gorm"

	"TodoKeeper/internal/model"
)

// UserRepository определяет контракт доступа к User для слоя сервиса.
// Методы поиска возвращают gorm.ErrRecordNotFound, если записи нет.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает запись с присвоенным ID.
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)

	// GetUserByEmail ищет пользователя по email.
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// GetUserByID ищет пользователя по первичному ключу.
	GetUserByID(ctx context.Context, id int64) (*model.User, error)

	// GetUserByTelegramID ищет пользователя по привязанному Telegram ID.
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)

	// LinkTelegram записывает Telegram-идентичность на пользователя userID.
	// Привязка выполняется не более одного раза: если telegram_id уже задан,
	// возвращает linked=false без изменений.
	LinkTelegram(ctx context.Context, userID int64, telegramID int64, firstName, lastName, username, photoURL string) (linked bool, err error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository создаёт реализацию репозитория для User.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) GetUserByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) LinkTelegram(ctx context.Context, userID int64, telegramID int64, firstName, lastName, username, photoURL string) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND telegram_id IS NULL", userID).
		Updates(map[string]any{
			"telegram_id": telegramID,
			"first_name":  firstName,
			"last_name":   lastName,
			"username":    username,
			"photo_url":   photoURL,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
