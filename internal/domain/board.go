package domain

import (
	"fmt"
	"strings"
)

// to iterate thru layers: handler -> service -> storage
type BoardCreationData struct {
	Name        BoardName
	Description BoardDescription
}

// Board is persisted exactly when it carries a non-zero Id.
type Board struct {
	Id          BoardId          `json:"id"`
	Name        BoardName        `json:"name"`
	Description BoardDescription `json:"description"`
}

func NewBoard(name BoardName, description BoardDescription) Board {
	return Board{Name: name, Description: description}
}

func (b Board) Persisted() bool {
	return b.Id != 0
}

// HasName reports whether the name is non-blank.
func (b Board) HasName() bool {
	return strings.TrimSpace(b.Name) != ""
}

func (b Board) String() string {
	return fmt.Sprintf("Board[id=%d, name='%s', description='%s']", b.Id, b.Name, b.Description)
}

// NameHasPrefix matches prefix against the name ignoring case.
func NameHasPrefix(name BoardName, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(name), strings.ToLower(prefix))
}
