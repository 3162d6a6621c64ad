package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"TodoKeeper/internal/middleware"
	"TodoKeeper/internal/service"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	itemService *service.ItemService,
	logger *zap.SugaredLogger,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(userService))

	// Handlers
	userHandler := NewUserHandler(userService, logger)
	itemHandler := NewItemHandler(itemService, logger)

	// Page shell
	r.Get("/", itemHandler.Index)

	// Auth routes
	r.Post("/register", userHandler.Register)
	r.Post("/login", userHandler.Login)
	r.Get("/auth/check", userHandler.AuthCheck)
	r.Post("/telegram-callback", userHandler.TelegramCallback)

	// Item routes (bearer)
	r.Get("/list", itemHandler.List)
	r.Post("/add", itemHandler.Add)
	r.Put("/edit/{id}", itemHandler.Edit)
	r.Delete("/delete/{id}", itemHandler.Delete)

	return &Handler{Router: r}
}

// writeJSON сериализует успешный ответ.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError отдаёт клиенту единый конверт ошибки. Внутренние детали
// сюда не попадают — только в лог.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}
