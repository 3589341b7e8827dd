package service

import (
	"encoding/json"
	"log"

	"github.com/meilisearch/meilisearch-go"
	"judoacademy.app/hub/internal/model"
)

const documentIndex = "documents"

// SearchService maintains the full-text index over document metadata. A nil
// SearchService disables search-backed filtering; callers fall back to plain
// substring matching.
type SearchService interface {
	IndexDocument(doc *model.Document) error
	DeleteDocument(id string) error
	// SearchDocuments returns the ids of documents matching the query.
	SearchDocuments(query string) ([]string, error)
}

type meiliSearchService struct {
	client meilisearch.ServiceManager
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &meiliSearchService{client: client}
	s.initIndex()
	return s
}

func (s *meiliSearchService) initIndex() {
	searchable := []string{"title", "description", "uploader_email"}
	if _, err := s.client.Index(documentIndex).UpdateSearchableAttributes(&searchable); err != nil {
		log.Printf("Failed to update document searchable attributes: %v", err)
	}
}

type meiliDocumentDoc struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	FileType      string `json:"file_type"`
	UploaderEmail string `json:"uploader_email"`
	CreatedAt     int64  `json:"created_at"`
}

func (s *meiliSearchService) IndexDocument(document *model.Document) error {
	doc := meiliDocumentDoc{
		ID:            document.ID.String(),
		Title:         document.Title,
		FileType:      document.FileType,
		UploaderEmail: document.UploaderEmail,
		CreatedAt:     document.CreatedAt.Unix(),
	}
	if document.Description != nil {
		doc.Description = *document.Description
	}

	_, err := s.client.Index(documentIndex).AddDocuments([]meiliDocumentDoc{doc}, strPtr("id"))
	return err
}

func (s *meiliSearchService) DeleteDocument(id string) error {
	_, err := s.client.Index(documentIndex).DeleteDocument(id)
	return err
}

func (s *meiliSearchService) SearchDocuments(query string) ([]string, error) {
	raw, err := s.client.Index(documentIndex).SearchRaw(query, &meilisearch.SearchRequest{
		Limit: 200,
	})
	if err != nil {
		return nil, err
	}

	var result struct {
		Hits []struct {
			ID string `json:"id"`
		} `json:"hits"`
	}
	if err := json.Unmarshal(*raw, &result); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(result.Hits))
	for _, hit := range result.Hits {
		ids = append(ids, hit.ID)
	}

	return ids, nil
}

func strPtr(s string) *string {
	return &s
}
