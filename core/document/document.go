package document

import (
	"context"
	"time"
)

// Document links a published artifact to a student.
type Document struct {
	ID           string    `json:"id"`
	StudentID    string    `json:"student_id"`
	DocumentType string    `json:"document_type"`
	URL          string    `json:"url"`
	PublicID     string    `json:"public_id"`
	FileName     string    `json:"file_name"`
	CreatedAt    time.Time `json:"created_at"` // UTC
}

type Repository interface {
	// CreateDocument inserts doc and assigns its ID.
	CreateDocument(ctx context.Context, doc Document) (Document, error)
	QueryStudentDocuments(ctx context.Context, studentID string) ([]Document, error)
}
