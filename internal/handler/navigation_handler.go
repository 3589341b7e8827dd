package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"judoacademy.app/hub/internal/dto"
	"judoacademy.app/hub/internal/middleware"
	"judoacademy.app/hub/internal/navigation"
	"judoacademy.app/hub/pkg/response"
)

type NavigationHandler struct {
	navigator *navigation.Navigator
}

func NewNavigationHandler(navigator *navigation.Navigator) *NavigationHandler {
	return &NavigationHandler{
		navigator: navigator,
	}
}

// Navigate records a navigation intent with optional one-shot filters for the
// target page.
func (h *NavigationHandler) Navigate(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.NavigateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	h.navigator.Navigate(userID, input.Page, input.Filters)

	c.JSON(http.StatusOK, gin.H{"message": "navigation recorded"})
}

// Resolve answers which view the caller should render for a page key. Filters
// stored by a prior Navigate are returned once and then discarded.
func (h *NavigationHandler) Resolve(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	profile, ok := middleware.ProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "profile not available"})
		return
	}

	page, filters := h.navigator.Resolve(userID, profile.Role, c.Param("page"))

	c.JSON(http.StatusOK, dto.NavigationResponse{
		Page:    page,
		Filters: filters,
	})
}
