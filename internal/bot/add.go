package bot

import (
	"context"
	"strings"

	"TodoKeeper/internal/model"
)

type addCmd struct{}

func (addCmd) Name() string { return "add" }
func (addCmd) Description() string {
	return "Добавить запись"
}
func (addCmd) Usage() string   { return "/add <текст>" }
func (addCmd) NeedsLink() bool { return true }

func (addCmd) Run(ctx context.Context, env *Env, user *model.User, args string) (string, error) {
	if strings.TrimSpace(args) == "" {
		return "", ErrUsage
	}
	if _, err := env.Items.Add(ctx, user.ID, args); err != nil {
		return "", err
	}
	items, err := env.Items.List(ctx, user.ID)
	if err != nil {
		return "", err
	}
	return "Добавлено.\n\n" + formatList(items), nil
}

func init() { RegisterCmd(addCmd{}) }
