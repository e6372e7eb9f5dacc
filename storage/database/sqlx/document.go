package sqlxrepos

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ekta-foundation/casebook/core"
	"github.com/ekta-foundation/casebook/core/document"
)

var documentColumns = []string{"id", "student_id", "document_type", "url", "public_id", "file_name", "created_at"}

type documentRow struct {
	ID           string    `db:"id"`
	StudentID    string    `db:"student_id"`
	DocumentType string    `db:"document_type"`
	URL          string    `db:"url"`
	PublicID     string    `db:"public_id"`
	FileName     string    `db:"file_name"`
	CreatedAt    time.Time `db:"created_at"`
}

type documentRepository struct {
	db core.DBExecutor
}

func NewDocumentRepository(db core.DBExecutor) document.Repository {
	return &documentRepository{db: db}
}

func (repo *documentRepository) CreateDocument(ctx context.Context, doc document.Document) (document.Document, error) {
	doc.ID = uuid.NewString()
	q, args, err := psql.
		Insert("documents").
		Columns(documentColumns...).
		Values(doc.ID, doc.StudentID, doc.DocumentType, doc.URL, doc.PublicID, doc.FileName, doc.CreatedAt).
		ToSql()
	if err != nil {
		return document.Document{}, errors.Wrap(err, "building document insert")
	}
	if _, err = repo.db.ExecContext(ctx, q, args...); err != nil {
		return document.Document{}, errors.Wrap(err, "inserting document")
	}
	return doc, nil
}

func (repo *documentRepository) QueryStudentDocuments(ctx context.Context, studentID string) ([]document.Document, error) {
	if !validID(studentID) {
		return []document.Document{}, nil
	}
	q, args, err := psql.
		Select(documentColumns...).
		From("documents").
		Where(sq.Eq{"student_id": studentID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building documents query")
	}
	var rows []documentRow
	if err = repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "selecting documents")
	}
	docs := make([]document.Document, 0, len(rows))
	for _, row := range rows {
		doc := document.Document(row)
		doc.CreatedAt = doc.CreatedAt.UTC()
		docs = append(docs, doc)
	}
	return docs, nil
}
