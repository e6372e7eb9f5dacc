package publisher

import (
	"context"
	"path"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ekta-foundation/casebook/core"
)

const contentType = "application/pdf"

var ErrNotFound = errors.New("document not found")

// objectKey names a new artifact under folder.
func objectKey(folder string) string {
	return path.Join(folder, uuid.NewString()+".pdf")
}

// New returns the DocumentPublisher selected by conf.Backend.
func New(ctx context.Context, conf core.StorageConfig) (core.DocumentPublisher, error) {
	switch conf.Backend {
	case "b2":
		p, err := NewB2Publisher(ctx, conf)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "bolt", "":
		p, err := NewBoltPublisher(conf.BoltPath, conf.PublicBaseURL)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, errors.Errorf("unknown storage backend %q", conf.Backend)
	}
}
