package bot

import (
	"context"
	"errors"
	"strings"

	"TodoKeeper/internal/model"
	"TodoKeeper/internal/service"
)

// Стандартные реплики бота.
const (
	replyNotLinked = "Этот Telegram-аккаунт не привязан. Войдите на сайте и привяжите аккаунт через кнопку Telegram Login."
	replyRetry     = "Что-то пошло не так, попробуйте ещё раз позже."
	replyUnknown   = "Не знаю такой команды.\n\n"
)

// Dispatch is the single entry point to execute bot commands.
// senderID — числовой id пользователя платформы; text — полный текст
// сообщения, включая имя команды. Возвращает текст ответа.
func Dispatch(ctx context.Context, env *Env, senderID int64, text string) string {
	name, args := splitCommand(text)
	if name == "" {
		return FormatHelp()
	}

	c, ok := Get(name)
	if !ok {
		return replyUnknown + FormatHelp()
	}

	// Резолв идентичности: привязанный аккаунт нужен всем командам,
	// кроме start, но и start полезно знать, привязан ли отправитель.
	var user *model.User
	u, err := env.Users.ResolveFromTelegram(ctx, senderID)
	switch {
	case err == nil:
		user = u
	case errors.Is(err, service.ErrNotLinked):
		if c.NeedsLink() {
			return replyNotLinked
		}
	default:
		env.Logger.Errorw("bot: resolve failed", "sender_id", senderID, "error", err)
		return replyRetry
	}

	reply, err := c.Run(ctx, env, user, args)
	if err != nil {
		switch {
		case errors.Is(err, ErrUsage):
			return "Usage: " + c.Usage()
		case errors.Is(err, service.ErrEmptyText):
			return "Текст записи не может быть пустым."
		case errors.Is(err, service.ErrNotFoundOrForbidden):
			return "Нет такой записи. Посмотрите номера через /list."
		default:
			env.Logger.Errorw("bot: command failed", "command", name, "sender_id", senderID, "error", err)
			return replyRetry
		}
	}
	return reply
}

// splitCommand выделяет имя команды и хвост аргументов.
// Срезает ведущий '/' и суффикс @botname: "/add@todo_bot buy milk" → ("add", "buy milk").
func splitCommand(text string) (name, args string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ""
	}

	name = text
	if i := strings.IndexAny(text, " \t"); i >= 0 {
		name, args = text[:i], strings.TrimSpace(text[i+1:])
	}

	name = strings.TrimPrefix(name, "/")
	if i := strings.Index(name, "@"); i >= 0 {
		name = name[:i]
	}
	return strings.ToLower(name), args
}
