package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"judoacademy.app/hub/internal/dto"
	"judoacademy.app/hub/internal/middleware"
	"judoacademy.app/hub/internal/service"
	"judoacademy.app/hub/pkg/apperror"
	"judoacademy.app/hub/pkg/response"
)

type DocumentHandler struct {
	documentService service.DocumentService
}

func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
	}
}

func (h *DocumentHandler) List(c *gin.Context) {
	profile, ok := middleware.ProfileFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrUnauthorized)
		return
	}

	var filter dto.DocumentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	docs, err := h.documentService.List(c.Request.Context(), profile, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

func (h *DocumentHandler) Download(c *gin.Context) {
	profile, ok := middleware.ProfileFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrUnauthorized)
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.documentService.DownloadURL(c.Request.Context(), profile, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *DocumentHandler) Create(c *gin.Context) {
	profile, ok := middleware.ProfileFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrUnauthorized)
		return
	}

	var input dto.CreateDocumentInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil || fileHeader == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}
	defer file.Close()

	doc, err := h.documentService.Create(c.Request.Context(), profile, input, &service.UploadFile{
		Reader:   file,
		FileName: fileHeader.Filename,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"document": doc})
}

func (h *DocumentHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.UpdateDocumentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	doc, err := h.documentService.Update(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"document": doc})
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "document deleted"})
}
