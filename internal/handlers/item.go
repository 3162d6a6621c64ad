package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"TodoKeeper/internal/middleware"
	"TodoKeeper/internal/model"
	"TodoKeeper/internal/service"
)

// ItemHandler обрабатывает CRUD записей. Владелец всегда берётся из
// контекста запроса; id из URL сам по себе доступа не даёт.
type ItemHandler struct {
	Items  *service.ItemService
	Logger *zap.SugaredLogger
}

func NewItemHandler(items *service.ItemService, logger *zap.SugaredLogger) *ItemHandler {
	return &ItemHandler{Items: items, Logger: logger}
}

// RowDTO — строка списка в ответах API.
type RowDTO struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

func toRows(items []model.Item) []RowDTO {
	rows := make([]RowDTO, 0, len(items))
	for _, it := range items {
		rows = append(rows, RowDTO{ID: it.ID, Text: it.Text})
	}
	return rows
}

// pageShell — каркас страницы; строки и стили подгружает клиент.
const pageShell = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>TodoKeeper</title>
</head>
<body>
  <main id="app">
    <ul id="rows"><!-- rows --></ul>
  </main>
  <script src="/static/app.js"></script>
</body>
</html>
`

// Index отдаёт каркас страницы.
func (h *ItemHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(pageShell))
}

// List возвращает все записи владельца.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	h.respondWithRows(w, r, user.ID)
}

type addRequest struct {
	Text string `json:"text"`
}

// Add создаёт запись и возвращает обновлённый список.
func (h *ItemHandler) Add(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Add: invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if _, err := h.Items.Add(r.Context(), user.ID, req.Text); err != nil {
		h.itemError(w, err)
		return
	}

	h.respondWithRows(w, r, user.ID)
}

type editRequest struct {
	Text string `json:"text"`
}

// Edit меняет текст записи и возвращает обновлённый список.
func (h *ItemHandler) Edit(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	itemID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Edit: invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.Items.Update(r.Context(), user.ID, itemID, req.Text); err != nil {
		h.itemError(w, err)
		return
	}

	h.respondWithRows(w, r, user.ID)
}

// Delete удаляет запись и возвращает обновлённый список.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	itemID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.Items.Delete(r.Context(), user.ID, itemID); err != nil {
		h.itemError(w, err)
		return
	}

	h.respondWithRows(w, r, user.ID)
}

// respondWithRows отвечает свежим списком владельца: фронтенд после любой
// мутации перерисовывает список целиком.
func (h *ItemHandler) respondWithRows(w http.ResponseWriter, r *http.Request, ownerID int64) {
	items, err := h.Items.List(r.Context(), ownerID)
	if err != nil {
		h.itemError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"rows":    toRows(items),
	})
}

func (h *ItemHandler) itemError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyText):
		writeError(w, http.StatusBadRequest, "item text must not be empty")
	case errors.Is(err, service.ErrNotFoundOrForbidden):
		// чужая и несуществующая запись неразличимы в ответе
		writeError(w, http.StatusNotFound, "item not found")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
