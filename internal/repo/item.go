package repo

import (
	"context"

	"gorm.io/gorm"

	"TodoKeeper/internal/model"
)

// ItemRepository определяет контракт доступа к Item для слоя сервиса.
// Каждый запрос жёстко ограничен владельцем: чужие записи из этих методов
// недостижимы.
type ItemRepository interface {
	// ListByOwner возвращает все записи владельца по возрастанию id
	// (порядок создания). Пустой список — не ошибка.
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Item, error)

	// Create сохраняет новую запись и проставляет ей ID.
	Create(ctx context.Context, item *model.Item) error

	// UpdateText меняет текст записи (id, owner). Возвращает updated=false,
	// если записи нет или она принадлежит другому пользователю.
	UpdateText(ctx context.Context, ownerID, itemID int64, text string) (updated bool, err error)

	// Delete удаляет запись (id, owner) с той же семантикой, что и UpdateText.
	Delete(ctx context.Context, ownerID, itemID int64) (deleted bool, err error)
}

type itemRepo struct {
	db *gorm.DB
}

// NewItemRepository создаёт реализацию репозитория для Item.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) ListByOwner(ctx context.Context, ownerID int64) ([]model.Item, error) {
	var items []model.Item
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepo) Create(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepo) UpdateText(ctx context.Context, ownerID, itemID int64, text string) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&model.Item{}).
		Where("id = ? AND user_id = ?", itemID, ownerID).
		Update("text", text)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *itemRepo) Delete(ctx context.Context, ownerID, itemID int64) (bool, error) {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, ownerID).
		Delete(&model.Item{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
