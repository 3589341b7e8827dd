package navigation

import (
	"sync"

	"github.com/google/uuid"
	"judoacademy.app/hub/internal/model"
)

const (
	PageDocuments      = "documents"
	PageProfile        = "profile"
	PageAdminDocuments = "admin-documents"
	PageAdminGroups    = "admin-groups"
	PageAdminUsers     = "admin-users"
)

// Resolve maps a requested page key and the caller's role to the view that
// should render. Unknown and unauthorized keys fall back to the documents
// view; that is the default case, never an error.
func Resolve(role, pageKey string) string {
	switch pageKey {
	case PageDocuments, PageProfile:
		return pageKey
	case PageAdminDocuments, PageAdminGroups, PageAdminUsers:
		if role == model.RoleAdmin {
			return pageKey
		}
	}
	return PageDocuments
}

type flashKey struct {
	userID uuid.UUID
	page   string
}

// Navigator carries one-shot filter payloads between views. A payload stored
// by Navigate is consumed by exactly one subsequent resolution of that page
// for that user; repeated visits see no filters unless Navigate runs again.
type Navigator struct {
	mu      sync.Mutex
	pending map[flashKey]map[string]string
}

func NewNavigator() *Navigator {
	return &Navigator{
		pending: make(map[flashKey]map[string]string),
	}
}

// Navigate records a navigation intent. Filters may be nil.
func (n *Navigator) Navigate(userID uuid.UUID, pageKey string, filters map[string]string) {
	if len(filters) == 0 {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending[flashKey{userID: userID, page: pageKey}] = filters
}

// Resolve returns the page to render for the caller and, at most once per
// Navigate call, the filters attached to it.
func (n *Navigator) Resolve(userID uuid.UUID, role, pageKey string) (string, map[string]string) {
	page := Resolve(role, pageKey)

	n.mu.Lock()
	defer n.mu.Unlock()
	key := flashKey{userID: userID, page: page}
	filters, ok := n.pending[key]
	if ok {
		delete(n.pending, key)
	}

	return page, filters
}
