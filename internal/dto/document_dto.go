package dto

// CreateDocumentInput is bound from the multipart form that carries the file.
type CreateDocumentInput struct {
	Title       string  `form:"title" binding:"required,max=200"`
	Description *string `form:"description"`
	FileType    string  `form:"file_type" binding:"required,oneof=document image"`
	GroupID     *string `form:"group_id"`
}

type UpdateDocumentInput struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description"`
	FileType    *string `json:"file_type" binding:"omitempty,oneof=document image"`
	GroupID     *string `json:"group_id"`
}

type DocumentFilter struct {
	Type  string `form:"type" binding:"omitempty,oneof=all document image"`
	Group string `form:"group"`
	Query string `form:"q"`
}

// DownloadResponse carries a time-limited signed URL for the backing blob.
type DownloadResponse struct {
	URL       string `json:"url"`
	ExpiresIn int64  `json:"expires_in"`
}
