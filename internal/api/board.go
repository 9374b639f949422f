package api

import (
	"github.com/taskboards/boards/internal/domain"
)

// Request DTOs

// BoardRequest is the body of create and update. An id sent by the client
// is ignored: create lets the store assign one, update takes it from the path.
type BoardRequest struct {
	Name        string `json:"name" validate:"required,notblank"`
	Description string `json:"description"`
}

func (r BoardRequest) CreationData() domain.BoardCreationData {
	return domain.BoardCreationData{Name: r.Name, Description: r.Description}
}

// Response DTOs

const RelSelf = "self"

type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

// BoardResource is the wire representation of a board plus its links.
// Embed domain.Board to get all fields.
type BoardResource struct {
	domain.Board
	Persisted bool   `json:"persisted"`
	Links     []Link `json:"links"`
}

// Link returns the href for rel, empty if absent.
func (r BoardResource) Link(rel string) string {
	for _, l := range r.Links {
		if l.Rel == rel {
			return l.Href
		}
	}
	return ""
}
