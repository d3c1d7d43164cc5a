package response

import (
	"time"

	"github.com/nhattm/gameshelf/internal/model"
)

// Game represents a catalog entry in API responses
type Game struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Author      string    `json:"author"`
	ReleaseDate time.Time `json:"releaseDate"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Price       int       `json:"price,omitempty"`
}

// GameFromModel converts a model.Game to a response Game
func GameFromModel(g *model.Game) Game {
	return Game{
		ID:          string(g.ID),
		Name:        g.Name,
		Author:      g.Author,
		ReleaseDate: g.ReleaseDate,
		Category:    g.Category,
		Description: g.Description,
		Price:       g.Price,
	}
}

// GamesFromModel converts a slice of catalog entries
func GamesFromModel(games []*model.Game) []Game {
	out := make([]Game, len(games))
	for i, g := range games {
		out[i] = GameFromModel(g)
	}
	return out
}

// MessageResponse carries a human-readable result message
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the response for the health endpoint
type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}
