package request

import (
	"fmt"
	"time"

	"github.com/nhattm/gameshelf/internal/model"
)

// RegisterRequest is the request body for registering an account
type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateGameRequest is the request body for adding a catalog entry
type CreateGameRequest struct {
	Name        string `json:"name"`
	Author      string `json:"author"`
	ReleaseDate string `json:"releaseDate"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Price       int    `json:"price"`
}

// ToGame converts the request into a catalog entry without an ID
func (r *CreateGameRequest) ToGame() (model.Game, error) {
	game := model.Game{
		Name:        r.Name,
		Author:      r.Author,
		Category:    r.Category,
		Description: r.Description,
		Price:       r.Price,
	}
	if r.ReleaseDate != "" {
		date, err := parseReleaseDate(r.ReleaseDate)
		if err != nil {
			return model.Game{}, err
		}
		game.ReleaseDate = date
	}
	return game, nil
}

// UpdateGameRequest is the request body for a partial catalog update.
// Omitted fields are left unchanged.
type UpdateGameRequest struct {
	Name        *string `json:"name"`
	Author      *string `json:"author"`
	ReleaseDate *string `json:"releaseDate"`
	Description *string `json:"description"`
	Price       *int    `json:"price"`
}

// ToPatch converts the request into a patch over the stored entry
func (r *UpdateGameRequest) ToPatch() (model.GamePatch, error) {
	patch := model.GamePatch{
		Name:        r.Name,
		Author:      r.Author,
		Description: r.Description,
		Price:       r.Price,
	}
	if r.ReleaseDate != nil {
		date, err := parseReleaseDate(*r.ReleaseDate)
		if err != nil {
			return model.GamePatch{}, err
		}
		patch.ReleaseDate = &date
	}
	return patch, nil
}

// parseReleaseDate accepts either a full RFC3339 timestamp or a bare date
func parseReleaseDate(raw string) (time.Time, error) {
	if date, err := time.Parse(time.RFC3339, raw); err == nil {
		return date, nil
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("releaseDate must be a valid date: %w", err)
	}
	return date, nil
}
