package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/taskboards/boards/internal/domain"
)

const BoardsPath = "/boards"

// BoardPath is the canonical path of the get-by-id route.
func BoardPath(id domain.BoardId) string {
	return BoardsPath + "/" + strconv.FormatInt(id, 10)
}

// ResourceAssembler maps boards to resources carrying a self link.
type ResourceAssembler struct {
	baseURL string
}

func NewResourceAssembler(baseURL string) ResourceAssembler {
	return ResourceAssembler{baseURL: strings.TrimRight(baseURL, "/")}
}

func (a ResourceAssembler) ToResource(board domain.Board) BoardResource {
	resource := BoardResource{Board: board, Persisted: board.Persisted(), Links: []Link{}}
	if board.Persisted() {
		resource.Links = append(resource.Links, Link{Rel: RelSelf, Href: a.baseURL + BoardPath(board.Id)})
	}
	return resource
}

func (a ResourceAssembler) ToResources(boards []domain.Board) []BoardResource {
	resources := make([]BoardResource, len(boards))
	for i, b := range boards {
		resources[i] = a.ToResource(b)
	}
	return resources
}

// BaseURL returns configured if set, otherwise scheme://host of the request.
func BaseURL(r *http.Request, configured string) string {
	if configured != "" {
		return configured
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	host := r.Host
	if fwd := r.Header.Get("X-Forwarded-Host"); fwd != "" {
		host = strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	return scheme + "://" + host
}
