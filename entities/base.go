package entities

import "github.com/google/uuid"

func newID(id string) string {
	if id == "" {
		return uuid.New().String()
	}
	return id
}
