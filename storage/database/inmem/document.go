package inmemdb

import (
	"context"

	"github.com/ekta-foundation/casebook/core/document"
)

type documentRepository struct {
	db *documentTable
}

func NewDocumentRepository(db *DB) document.Repository {
	return &documentRepository{db: db.document}
}

func (repo *documentRepository) CreateDocument(_ context.Context, doc document.Document) (document.Document, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	doc.ID = newID("")
	repo.db.t = append(repo.db.t, doc)
	return doc, nil
}

func (repo *documentRepository) QueryStudentDocuments(_ context.Context, studentID string) ([]document.Document, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	docs := make([]document.Document, 0)
	for i := len(repo.db.t) - 1; i >= 0; i-- { // newest first
		if doc := repo.db.t[i]; doc.StudentID == studentID {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}
