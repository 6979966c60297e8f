package userstore

import "fmt"

type (
	// NotFound indicates that no user matches the given lookup key.
	NotFound struct {
		Username string
		ID       int64
	}

	// Conflict indicates that the username or email is already taken.
	Conflict struct {
		Username string
		Email    string
	}
)

func (n NotFound) Error() string {
	if n.Username != "" {
		return fmt.Sprintf("user %v not found", n.Username)
	}
	return fmt.Sprintf("user id %v not found", n.ID)
}

func (c Conflict) Error() string {
	return fmt.Sprintf("username %v or email %v already registered", c.Username, c.Email)
}
