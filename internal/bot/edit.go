package bot

import (
	"context"
	"strings"

	"TodoKeeper/internal/model"
)

type editCmd struct{}

func (editCmd) Name() string { return "edit" }
func (editCmd) Description() string {
	return "Заменить текст записи по номеру из /list"
}
func (editCmd) Usage() string   { return "/edit <номер> <текст>" }
func (editCmd) NeedsLink() bool { return true }

func (editCmd) Run(ctx context.Context, env *Env, user *model.User, args string) (string, error) {
	nStr, text, ok := strings.Cut(args, " ")
	if !ok || strings.TrimSpace(text) == "" {
		return "", ErrUsage
	}
	item, err := itemAt(ctx, env, user, nStr)
	if err != nil {
		return "", err
	}
	if err := env.Items.Update(ctx, user.ID, item.ID, strings.TrimSpace(text)); err != nil {
		return "", err
	}
	items, err := env.Items.List(ctx, user.ID)
	if err != nil {
		return "", err
	}
	return "Исправлено.\n\n" + formatList(items), nil
}

func init() { RegisterCmd(editCmd{}) }
