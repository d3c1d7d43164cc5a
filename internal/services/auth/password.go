package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher digests plaintext passwords and checks candidates
// against stored digests.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Matches(plaintext, digest string) bool
}

// BcryptHasher implements PasswordHasher using bcrypt at a configured
// work factor.
type BcryptHasher struct {
	workFactor int
}

// NewBcryptHasher creates a bcrypt hasher. A zero work factor falls
// back to the bcrypt default cost.
func NewBcryptHasher(workFactor int) BcryptHasher {
	if workFactor <= 0 {
		workFactor = bcrypt.DefaultCost
	}
	return BcryptHasher{workFactor: workFactor}
}

func (h BcryptHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.workFactor)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func (h BcryptHasher) Matches(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
