package publisher

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"

	"github.com/ekta-foundation/casebook/core"
)

var documentsBucket = []byte("Documents")

// FilesRoute is where the API serves artifacts stored by a BoltPublisher.
const FilesRoute = "/v1/documents/files/"

// BoltPublisher keeps artifacts in a local bbolt file. Meant for DEV and tests.
type BoltPublisher struct {
	db      *bbolt.DB
	baseURL string
}

var _ core.DocumentPublisher = (*BoltPublisher)(nil)

func NewBoltPublisher(path, baseURL string) (*BoltPublisher, error) {
	if path == "" {
		path = filepath.Join(os.TempDir(), "casebook-documents.db")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, "creating storage dir")
	}
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, errors.Wrap(err, "opening bolt db")
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(documentsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "creating documents bucket")
	}
	return &BoltPublisher{db: db, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (p *BoltPublisher) Publish(ctx context.Context, data []byte, folder string) (core.PublishedDocument, error) {
	if err := ctx.Err(); err != nil {
		return core.PublishedDocument{}, err
	}
	key := objectKey(folder)
	err := p.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(documentsBucket).Put([]byte(key), data)
	})
	if err != nil {
		return core.PublishedDocument{}, errors.Wrap(err, "storing document")
	}
	return core.PublishedDocument{URL: p.baseURL + FilesRoute + key, PublicID: key}, nil
}

// Open returns the artifact stored under key or ErrNotFound.
func (p *BoltPublisher) Open(key string) ([]byte, error) {
	var data []byte
	err := p.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(documentsBucket).Get([]byte(key))
		if v == nil {
			return ErrNotFound
		}
		data = append([]byte(nil), v...) // v is only valid inside the transaction
		return nil
	})
	return data, err
}

func (p *BoltPublisher) Close() error {
	return p.db.Close()
}
