package model

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Document represents one text unit handed to the pipeline. SourceID ties
// extracted entities back to the document; TenantID is the isolation key.
type Document struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	SourceID  string    `json:"source_id"`
	TenantID  string    `json:"tenant_id"`
	Content   string    `json:"content,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewDocument creates a document with a fresh ID. If sourceID is empty the
// document ID is used as the source identifier.
func NewDocument(title, sourceID, tenantID, content string) *Document {
	id := uuid.New()
	if sourceID == "" {
		sourceID = id.String()
	}
	return &Document{
		ID:        id,
		Title:     title,
		SourceID:  sourceID,
		TenantID:  tenantID,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// NewDocumentFromFile reads a file and creates a Document with the file content
// The title defaults to the filename, and source to the file path
func NewDocumentFromFile(filePath string, tenantID string) (*Document, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	// Get filename without extension for default title
	filename := filepath.Base(filePath)
	title := filename[:len(filename)-len(filepath.Ext(filename))]
	if title == "" {
		title = filename
	}

	doc := NewDocument(title, filePath, tenantID, string(content))
	return doc, nil
}
