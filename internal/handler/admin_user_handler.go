package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"judoacademy.app/hub/internal/dto"
	"judoacademy.app/hub/internal/service"
	"judoacademy.app/hub/pkg/response"
)

type AdminUserHandler struct {
	userService service.AdminUserService
}

func NewAdminUserHandler(userService service.AdminUserService) *AdminUserHandler {
	return &AdminUserHandler{
		userService: userService,
	}
}

func (h *AdminUserHandler) List(c *gin.Context) {
	profiles, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": profiles})
}

func (h *AdminUserHandler) Create(c *gin.Context) {
	var input dto.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	profile, err := h.userService.CreateUser(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": profile})
}

func (h *AdminUserHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	profile, err := h.userService.UpdateUser(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": profile})
}

func (h *AdminUserHandler) Remove(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.userService.RemoveUser(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user removed"})
}
