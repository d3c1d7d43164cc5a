package model

// UserID uniquely identifies a registered user (e.g. "USR0001")
type UserID string

// User is a stored credential record.
// Created once at registration; never mutated, never deleted.
type User struct {
	ID           UserID `json:"id" bson:"id"`
	Username     string `json:"username" bson:"username"`
	PasswordHash string `json:"-" bson:"password"` // bcrypt digest, never serialized to clients
}

// Identity is the minimal claim set embedded in every token.
// It never carries the password digest.
type Identity struct {
	ID       UserID `json:"id"`
	Username string `json:"username"`
}

// Identity returns the claim set for this user.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Username: u.Username}
}
