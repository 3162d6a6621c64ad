package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"TodoKeeper/internal/model"
	"TodoKeeper/internal/repo"
)

// ItemService — CRUD над записями списка. Каждая операция параметризована
// ID владельца, полученным из резолва идентичности; записи других
// пользователей недостижимы ни для чтения, ни для записи.
type ItemService struct {
	items  repo.ItemRepository
	logger *zap.SugaredLogger
}

func NewItemService(items repo.ItemRepository, logger *zap.SugaredLogger) *ItemService {
	return &ItemService{items: items, logger: logger}
}

// List возвращает записи владельца в порядке создания.
func (s *ItemService) List(ctx context.Context, ownerID int64) ([]model.Item, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	items, err := s.items.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, s.storeErr("List failed", ownerID, err)
	}
	return items, nil
}

// Add сохраняет новую запись и возвращает её с присвоенным id.
func (s *ItemService) Add(ctx context.Context, ownerID int64, text string) (*model.Item, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	ctx, cancel := storeCtx(ctx)
	defer cancel()

	item := &model.Item{UserID: ownerID, Text: text}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, s.storeErr("Add failed", ownerID, err)
	}
	return item, nil
}

// Update меняет текст записи. Ноль затронутых строк — чужая либо
// несуществующая запись: ErrNotFoundOrForbidden, а не молчаливый успех.
func (s *ItemService) Update(ctx context.Context, ownerID, itemID int64, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}

	ctx, cancel := storeCtx(ctx)
	defer cancel()

	updated, err := s.items.UpdateText(ctx, ownerID, itemID, text)
	if err != nil {
		return s.storeErr("Update failed", ownerID, err)
	}
	if !updated {
		return ErrNotFoundOrForbidden
	}
	return nil
}

// Delete удаляет запись с той же owner-scoped семантикой, что и Update.
func (s *ItemService) Delete(ctx context.Context, ownerID, itemID int64) error {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	deleted, err := s.items.Delete(ctx, ownerID, itemID)
	if err != nil {
		return s.storeErr("Delete failed", ownerID, err)
	}
	if !deleted {
		return ErrNotFoundOrForbidden
	}
	return nil
}

func (s *ItemService) storeErr(msg string, ownerID int64, err error) error {
	s.logger.Errorw(msg, "owner_id", ownerID, "error", err)
	return ErrUnavailable
}
