package model

import "time"

// GameID uniquely identifies a catalog entry (e.g. "GAMERP0001")
type GameID string

// Game is one catalog entry.
type Game struct {
	ID          GameID    `json:"id" bson:"id"`
	Name        string    `json:"name" bson:"name"`
	Author      string    `json:"author" bson:"author"`
	ReleaseDate time.Time `json:"releaseDate" bson:"releaseDate"`
	Category    string    `json:"category" bson:"category"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Price       int       `json:"price,omitempty" bson:"price,omitempty"`
}

// GamePatch describes a partial update. Nil fields are left unchanged.
type GamePatch struct {
	Name        *string
	Author      *string
	ReleaseDate *time.Time
	Description *string
	Price       *int
}

// Apply returns a copy of g with the patch applied.
func (p GamePatch) Apply(g Game) Game {
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.Author != nil {
		g.Author = *p.Author
	}
	if p.ReleaseDate != nil {
		g.ReleaseDate = *p.ReleaseDate
	}
	if p.Description != nil {
		g.Description = *p.Description
	}
	if p.Price != nil {
		g.Price = *p.Price
	}
	return g
}

// Empty reports whether the patch changes nothing.
func (p GamePatch) Empty() bool {
	return p.Name == nil && p.Author == nil && p.ReleaseDate == nil &&
		p.Description == nil && p.Price == nil
}

// Categories maps catalog category names to the code embedded in game IDs.
var Categories = map[string]string{
	"roleplay": "RP",
	"moba":     "MB",
	"sandbox":  "SB",
}

// CategoryNames returns the valid category names in a stable order.
func CategoryNames() []string {
	return []string{"moba", "roleplay", "sandbox"}
}
