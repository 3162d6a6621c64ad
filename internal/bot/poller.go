package bot

import (
	"context"
	"time"
)

const (
	// longPollTimeout — long-poll таймаут getUpdates, секунды.
	longPollTimeout = 30
	// pollRetryDelay — пауза перед повтором после ошибки опроса.
	pollRetryDelay = 3 * time.Second
)

// Poller гоняет цикл getUpdates → Dispatch → sendMessage до отмены контекста.
type Poller struct {
	client *Client
	env    *Env
}

func NewPoller(client *Client, env *Env) *Poller {
	return &Poller{client: client, env: env}
}

// Run блокируется до отмены ctx. Ошибки транспорта логируются и не
// останавливают цикл: бот просто повторяет опрос после паузы.
func (p *Poller) Run(ctx context.Context) {
	var offset int64

	for {
		updates, err := p.client.GetUpdates(ctx, offset, longPollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			p.env.Logger.Warnw("bot: poll failed", "error", err)
			select {
			case <-time.After(pollRetryDelay):
			case <-ctx.Done():
				return
			}
			continue
		}

		for _, upd := range updates {
			offset = upd.UpdateID + 1

			msg := upd.Message
			if msg == nil || msg.From == nil || msg.Text == "" {
				continue
			}

			reply := Dispatch(ctx, p.env, msg.From.ID, msg.Text)
			if reply == "" {
				continue
			}
			if err := p.client.SendMessage(ctx, msg.Chat.ID, reply); err != nil {
				p.env.Logger.Warnw("bot: send failed", "chat_id", msg.Chat.ID, "error", err)
			}
		}
	}
}
