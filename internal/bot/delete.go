package bot

import (
	"context"

	"TodoKeeper/internal/model"
)

type deleteCmd struct{}

func (deleteCmd) Name() string { return "delete" }
func (deleteCmd) Description() string {
	return "Удалить запись по номеру из /list"
}
func (deleteCmd) Usage() string   { return "/delete <номер>" }
func (deleteCmd) NeedsLink() bool { return true }

func (deleteCmd) Run(ctx context.Context, env *Env, user *model.User, args string) (string, error) {
	if args == "" {
		return "", ErrUsage
	}
	item, err := itemAt(ctx, env, user, args)
	if err != nil {
		return "", err
	}
	if err := env.Items.Delete(ctx, user.ID, item.ID); err != nil {
		return "", err
	}
	items, err := env.Items.List(ctx, user.ID)
	if err != nil {
		return "", err
	}
	return "Удалено: " + item.Text + "\n\n" + formatList(items), nil
}

func init() { RegisterCmd(deleteCmd{}) }
