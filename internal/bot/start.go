package bot

import (
	"context"

	"TodoKeeper/internal/model"
)

type startCmd struct{}

func (startCmd) Name() string { return "start" }
func (startCmd) Description() string {
	return "Приветствие и справка"
}
func (startCmd) Usage() string   { return "/start" }
func (startCmd) NeedsLink() bool { return false }

func (startCmd) Run(_ context.Context, _ *Env, user *model.User, _ string) (string, error) {
	if user == nil {
		return "Привет! Это TodoKeeper — ваш список дел.\n\n" +
			replyNotLinked + "\n\n" + FormatHelp(), nil
	}

	greeting := "С возвращением"
	if user.FirstName != "" {
		greeting += ", " + user.FirstName
	}
	return greeting + "!\n\n" + FormatHelp(), nil
}

func init() { RegisterCmd(startCmd{}) }
