package navigation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"judoacademy.app/hub/internal/model"
)

func TestResolveUnknownPageFallsBack(t *testing.T) {
	assert.Equal(t, PageDocuments, Resolve(model.RoleUser, "no-such-page"))
	assert.Equal(t, PageDocuments, Resolve(model.RoleAdmin, ""))
}

func TestResolveAdminPagesGated(t *testing.T) {
	assert.Equal(t, PageDocuments, Resolve(model.RoleUser, PageAdminUsers))
	assert.Equal(t, PageAdminUsers, Resolve(model.RoleAdmin, PageAdminUsers))
	assert.Equal(t, PageAdminGroups, Resolve(model.RoleAdmin, PageAdminGroups))
}

func TestResolveMemberPages(t *testing.T) {
	assert.Equal(t, PageProfile, Resolve(model.RoleUser, PageProfile))
	assert.Equal(t, PageDocuments, Resolve(model.RoleUser, PageDocuments))
}

func TestNavigatorFiltersAreOneShot(t *testing.T) {
	n := NewNavigator()
	userID := uuid.New()

	n.Navigate(userID, PageDocuments, map[string]string{"group": "none"})

	page, filters := n.Resolve(userID, model.RoleUser, PageDocuments)
	assert.Equal(t, PageDocuments, page)
	assert.Equal(t, map[string]string{"group": "none"}, filters)

	// The second visit sees a clean page.
	_, filters = n.Resolve(userID, model.RoleUser, PageDocuments)
	assert.Nil(t, filters)
}

func TestNavigatorFiltersArePerUser(t *testing.T) {
	n := NewNavigator()
	first := uuid.New()
	second := uuid.New()

	n.Navigate(first, PageDocuments, map[string]string{"type": "image"})

	_, filters := n.Resolve(second, model.RoleUser, PageDocuments)
	assert.Nil(t, filters)

	_, filters = n.Resolve(first, model.RoleUser, PageDocuments)
	assert.Equal(t, map[string]string{"type": "image"}, filters)
}

func TestNavigatorFiltersFollowResolvedPage(t *testing.T) {
	n := NewNavigator()
	userID := uuid.New()

	// Filters stored for an admin page a plain member cannot reach stay
	// put; the member lands on the documents view without them.
	n.Navigate(userID, PageAdminDocuments, map[string]string{"q": "cuotas"})

	page, filters := n.Resolve(userID, model.RoleUser, PageAdminDocuments)
	assert.Equal(t, PageDocuments, page)
	assert.Nil(t, filters)
}

func TestNavigateWithoutFiltersIsNoop(t *testing.T) {
	n := NewNavigator()
	userID := uuid.New()

	n.Navigate(userID, PageDocuments, nil)
	n.Navigate(userID, PageDocuments, map[string]string{})

	_, filters := n.Resolve(userID, model.RoleUser, PageDocuments)
	assert.Nil(t, filters)
}
