package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"
	"judoacademy.app/hub/internal/dto"
	"judoacademy.app/hub/internal/model"
	"judoacademy.app/hub/internal/repository"
	"judoacademy.app/hub/pkg/apperror"
	"judoacademy.app/hub/pkg/storage"
)

// UploadFile is the file part of a document creation request.
type UploadFile struct {
	Reader   io.Reader
	FileName string
}

// signedURLTTLSeconds is echoed to clients so they know how long a download
// link stays valid.
const signedURLTTLSeconds = 60

type DocumentService interface {
	// List returns the documents visible to the caller, newest first.
	// Non-admin members only see group-less documents and those of their own
	// group; that restriction is applied here, server-side, never trusted to
	// the client.
	List(ctx context.Context, caller *model.Profile, filter dto.DocumentFilter) ([]*model.Document, error)
	DownloadURL(ctx context.Context, caller *model.Profile, id uuid.UUID) (*dto.DownloadResponse, error)
	Create(ctx context.Context, uploader *model.Profile, input dto.CreateDocumentInput, file *UploadFile) (*model.Document, error)
	Update(ctx context.Context, id uuid.UUID, input dto.UpdateDocumentInput) (*model.Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentService struct {
	docs        repository.DocumentRepository
	fileStorage storage.FileStorage
	search      SearchService
}

func NewDocumentService(docs repository.DocumentRepository, fileStorage storage.FileStorage, search SearchService) DocumentService {
	return &documentService{
		docs:        docs,
		fileStorage: fileStorage,
		search:      search,
	}
}

func (s *documentService) List(ctx context.Context, caller *model.Profile, filter dto.DocumentFilter) ([]*model.Document, error) {
	var (
		docs []*model.Document
		err  error
	)
	if caller.IsAdmin() {
		docs, err = s.docs.FindAll(ctx)
	} else {
		docs, err = s.docs.FindVisible(ctx, caller.GroupID)
	}
	if err != nil {
		return nil, err
	}

	docs = filterByType(docs, filter.Type)
	docs, err = filterByGroup(docs, filter.Group)
	if err != nil {
		return nil, err
	}

	if query := strings.TrimSpace(filter.Query); query != "" {
		docs = s.applyQuery(docs, query)
	}

	return docs, nil
}

func (s *documentService) DownloadURL(ctx context.Context, caller *model.Profile, id uuid.UUID) (*dto.DownloadResponse, error) {
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Same visibility rule as List: a document of another group does not
	// exist as far as the member is concerned.
	if !caller.IsAdmin() && doc.GroupID != nil {
		if caller.GroupID == nil || *caller.GroupID != *doc.GroupID {
			return nil, apperror.ErrNotFound
		}
	}

	url, err := s.fileStorage.SignedURL(ctx, doc.FilePath, doc.FileType)
	if err != nil {
		return nil, err
	}

	return &dto.DownloadResponse{
		URL:       url,
		ExpiresIn: signedURLTTLSeconds,
	}, nil
}

func (s *documentService) Create(ctx context.Context, uploader *model.Profile, input dto.CreateDocumentInput, file *UploadFile) (*model.Document, error) {
	if file == nil || file.Reader == nil {
		return nil, fmt.Errorf("missing file: %w", apperror.ErrBadRequest)
	}

	groupID, err := parseGroupRef(input.GroupID)
	if err != nil {
		return nil, err
	}

	// The blob goes first; the metadata row is only created once the upload
	// is known to have succeeded.
	filePath, err := s.fileStorage.Upload(ctx, file.Reader, input.FileType, file.FileName)
	if err != nil {
		return nil, err
	}

	uploaderID := uploader.ID
	doc := &model.Document{
		Title:         input.Title,
		Description:   input.Description,
		FilePath:      filePath,
		FileType:      input.FileType,
		GroupID:       groupID,
		UploaderID:    &uploaderID,
		UploaderEmail: uploader.Email,
	}

	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.indexDocument(doc)

	return s.docs.FindByID(ctx, doc.ID)
}

func (s *documentService) Update(ctx context.Context, id uuid.UUID, input dto.UpdateDocumentInput) (*model.Document, error) {
	if _, err := s.docs.FindByID(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Title != nil && *input.Title != "" {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.FileType != nil {
		updates["file_type"] = *input.FileType
	}
	if input.GroupID != nil {
		groupID, err := parseGroupRef(input.GroupID)
		if err != nil {
			return nil, err
		}
		updates["group_id"] = groupID
	}

	if len(updates) > 0 {
		if err := s.docs.UpdateFields(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.indexDocument(doc)

	return doc, nil
}

// Delete removes the backing blob before the row. A failing blob removal
// keeps the row and surfaces the error. A failing row removal after a
// successful blob removal leaves an orphaned row behind; that gap is accepted
// and surfaced, with no compensating action.
func (s *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.fileStorage.Delete(ctx, doc.FilePath, doc.FileType); err != nil {
		return err
	}

	if err := s.docs.Delete(ctx, id); err != nil {
		return err
	}

	if s.search != nil {
		if err := s.search.DeleteDocument(id.String()); err != nil {
			log.Printf("Error removing document %s from search index: %v", id, err)
		}
	}

	return nil
}

func (s *documentService) indexDocument(doc *model.Document) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexDocument(doc); err != nil {
		log.Printf("Error indexing document %s: %v", doc.ID, err)
	}
}

// applyQuery narrows docs to those matching the query, via the search index
// when configured and with a substring fallback otherwise.
func (s *documentService) applyQuery(docs []*model.Document, query string) []*model.Document {
	if s.search != nil {
		ids, err := s.search.SearchDocuments(query)
		if err == nil {
			matched := make(map[string]bool, len(ids))
			for _, id := range ids {
				matched[id] = true
			}
			filtered := make([]*model.Document, 0, len(docs))
			for _, doc := range docs {
				if matched[doc.ID.String()] {
					filtered = append(filtered, doc)
				}
			}
			return filtered
		}
		log.Printf("Error searching documents, falling back to substring match: %v", err)
	}

	lowered := strings.ToLower(query)
	filtered := make([]*model.Document, 0, len(docs))
	for _, doc := range docs {
		if strings.Contains(strings.ToLower(doc.Title), lowered) {
			filtered = append(filtered, doc)
			continue
		}
		if doc.Description != nil && strings.Contains(strings.ToLower(*doc.Description), lowered) {
			filtered = append(filtered, doc)
		}
	}
	return filtered
}

func filterByType(docs []*model.Document, fileType string) []*model.Document {
	if fileType == "" || fileType == "all" {
		return docs
	}

	filtered := make([]*model.Document, 0, len(docs))
	for _, doc := range docs {
		if doc.FileType == fileType {
			filtered = append(filtered, doc)
		}
	}
	return filtered
}

// filterByGroup understands three selector forms: empty or "all" keeps
// everything, "none" keeps group-less documents, anything else is a group id.
func filterByGroup(docs []*model.Document, selector string) ([]*model.Document, error) {
	if selector == "" || selector == "all" {
		return docs, nil
	}

	if selector == "none" {
		filtered := make([]*model.Document, 0, len(docs))
		for _, doc := range docs {
			if doc.GroupID == nil {
				filtered = append(filtered, doc)
			}
		}
		return filtered, nil
	}

	groupID, err := uuid.Parse(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid group selector %q: %w", selector, apperror.ErrBadRequest)
	}

	filtered := make([]*model.Document, 0, len(docs))
	for _, doc := range docs {
		if doc.GroupID != nil && *doc.GroupID == groupID {
			filtered = append(filtered, doc)
		}
	}
	return filtered, nil
}

// parseGroupRef maps the form convention onto a nullable group reference:
// nil and "" mean no group.
func parseGroupRef(ref *string) (*uuid.UUID, error) {
	if ref == nil || *ref == "" {
		return nil, nil
	}

	groupID, err := uuid.Parse(*ref)
	if err != nil {
		return nil, fmt.Errorf("invalid group id %q: %w", *ref, apperror.ErrBadRequest)
	}

	return &groupID, nil
}
