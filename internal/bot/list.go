package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"TodoKeeper/internal/model"
	"TodoKeeper/internal/service"
)

type listCmd struct{}

func (listCmd) Name() string { return "list" }
func (listCmd) Description() string {
	return "Показать все записи"
}
func (listCmd) Usage() string   { return "/list" }
func (listCmd) NeedsLink() bool { return true }

func (listCmd) Run(ctx context.Context, env *Env, user *model.User, args string) (string, error) {
	if args != "" {
		return "", ErrUsage
	}
	items, err := env.Items.List(ctx, user.ID)
	if err != nil {
		return "", err
	}
	return formatList(items), nil
}

func init() { RegisterCmd(listCmd{}) }

// formatList нумерует записи с единицы: эти номера принимают /delete и /edit.
func formatList(items []model.Item) string {
	if len(items) == 0 {
		return "Список пуст. Добавьте запись: /add <текст>"
	}
	var b strings.Builder
	for i, it := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, it.Text)
	}
	return strings.TrimRight(b.String(), "\n")
}

// itemAt резолвит 1-based номер из /list в запись владельца.
// Нечисловой аргумент — ошибка использования; номер вне диапазона —
// та же ошибка, что и для чужой записи.
func itemAt(ctx context.Context, env *Env, user *model.User, nStr string) (*model.Item, error) {
	n, err := strconv.Atoi(nStr)
	if err != nil {
		return nil, ErrUsage
	}
	items, err := env.Items.List(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if n < 1 || n > len(items) {
		return nil, service.ErrNotFoundOrForbidden
	}
	return &items[n-1], nil
}
