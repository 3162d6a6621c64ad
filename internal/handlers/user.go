package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"TodoKeeper/internal/middleware"
	"TodoKeeper/internal/model"
	"TodoKeeper/internal/service"
)

// UserHandler обрабатывает регистрацию, вход, проверку сессии и привязку Telegram.
type UserHandler struct {
	Users  *service.UserService
	Logger *zap.SugaredLogger
}

func NewUserHandler(users *service.UserService, logger *zap.SugaredLogger) *UserHandler {
	return &UserHandler{Users: users, Logger: logger}
}

// UserDTO — представление пользователя в ответах API.
type UserDTO struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	FirstName      string `json:"firstName,omitempty"`
	LastName       string `json:"lastName,omitempty"`
	TelegramLinked bool   `json:"telegramLinked"`
}

func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:             u.ID,
		Email:          u.EmailString(),
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		TelegramLinked: u.TelegramID != nil,
	}
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Register создаёт аккаунт и сразу выдаёт токен.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Register: invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.Users.Register(r.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			writeError(w, http.StatusConflict, "email is already registered")
		default:
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	h.respondWithToken(w, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login проверяет учётные данные и выдаёт токен.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Login: invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid email or password")
		default:
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	h.respondWithToken(w, user)
}

func (h *UserHandler) respondWithToken(w http.ResponseWriter, user *model.User) {
	token, err := h.Users.IssueToken(user)
	if err != nil {
		h.Logger.Errorw("failed to issue token", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"token":   token,
		"user":    toUserDTO(user),
	})
}

// AuthCheck отвечает 200 всегда; authenticated отражает результат резолва токена.
func (h *UserHandler) AuthCheck(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          toUserDTO(user),
	})
}

type telegramCallbackRequest struct {
	User service.TelegramAssertion `json:"user"`
}

// TelegramCallback привязывает Telegram-идентичность к текущему веб-аккаунту.
// Идентичность действующего аккаунта берётся из bearer-токена, утверждение
// платформы — из тела запроса.
func (h *UserHandler) TelegramCallback(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req telegramCallbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("TelegramCallback: invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.Users.LinkTelegram(r.Context(), user.ID, req.User); err != nil {
		switch {
		case errors.Is(err, service.ErrBadAssertion), errors.Is(err, service.ErrStaleAssertion):
			h.Logger.Warnw("TelegramCallback: assertion rejected", "user_id", user.ID, "error", err)
			writeError(w, http.StatusBadRequest, "telegram login data rejected")
		case errors.Is(err, service.ErrAlreadyLinked):
			writeError(w, http.StatusConflict, "telegram account is already linked")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusUnauthorized, "unauthorized")
		default:
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"telegramLinked": true,
	})
}
