package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nhattm/gameshelf/internal/api/request"
	"github.com/nhattm/gameshelf/internal/api/response"
	"github.com/nhattm/gameshelf/internal/model"
	"github.com/nhattm/gameshelf/internal/services/catalog"
)

// GameHandler handles catalog endpoints
type GameHandler struct {
	catalogService *catalog.Service
	logger         *slog.Logger
}

// NewGameHandler creates a new game handler
func NewGameHandler(catalogService *catalog.Service, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// List handles GET /game/all
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.catalogService.List(r.Context())
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GamesFromModel(games))
}

// Create handles POST /game/new
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, h.logger, NewInvalidRequestError("invalid request body"))
		return
	}

	game, err := req.ToGame()
	if err != nil {
		WriteError(w, h.logger, NewInvalidRequestError(err.Error()))
		return
	}

	created, err := h.catalogService.Create(r.Context(), game)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(created))
}

// Update handles PATCH /game/update/{id}
func (h *GameHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	var req request.UpdateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, h.logger, NewInvalidRequestError("invalid request body"))
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		WriteError(w, h.logger, NewInvalidRequestError(err.Error()))
		return
	}

	updated, err := h.catalogService.Update(r.Context(), id, patch)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(updated))
}

// Delete handles DELETE /game/delete/{id}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	if err := h.catalogService.Delete(r.Context(), id); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
