package bot

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"

	"TodoKeeper/internal/model"
	"TodoKeeper/internal/service"
)

// ErrUsage is returned by a command when arguments are invalid and usage should be shown.
var ErrUsage = errors.New("usage")

// Env — зависимости команд: те же сервисы, что и у веб-хендлеров.
// Гарантии CRUD одинаковы для обоих фронтендов именно потому, что слой
// здесь общий.
type Env struct {
	Users  *service.UserService
	Items  *service.ItemService
	Logger *zap.SugaredLogger
}

// Command represents a bot command.
type Command interface {
	// Name returns the command name as typed by the user, e.g. "list".
	Name() string
	// Description is a short human-readable description shown in help.
	Description() string
	// Usage returns the exact usage string, e.g. "/add <text>".
	Usage() string
	// NeedsLink reports whether the command requires a linked account.
	NeedsLink() bool
	// Run executes the command and returns the reply text. user is nil
	// for commands with NeedsLink()==false when the sender is not linked.
	Run(ctx context.Context, env *Env, user *model.User, args string) (string, error)
}

// registry holds available commands by name.
var registry = map[string]Command{}

// RegisterCmd adds a command to the registry. Should be called from init() of each command.
func RegisterCmd(cmd Command) {
	registry[cmd.Name()] = cmd
}

// Get returns a command by name.
func Get(name string) (Command, bool) {
	c, ok := registry[name]
	return c, ok
}

// List returns all registered commands sorted by name.
func List() []Command {
	list := make([]Command, 0, len(registry))
	for _, c := range registry {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// FormatHelp builds a help text for all commands.
func FormatHelp() string {
	lines := []string{"Commands:"}
	for _, c := range List() {
		lines = append(lines, "  "+c.Usage()+" — "+c.Description())
	}
	return strings.Join(lines, "\n")
}
