package publisher

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/kurin/blazer/b2"
	"github.com/pkg/errors"

	"github.com/ekta-foundation/casebook/core"
)

// B2Publisher publishes artifacts to a Backblaze B2 bucket.
type B2Publisher struct {
	client  *b2.Client
	bucket  *b2.Bucket
	baseURL string
}

var _ core.DocumentPublisher = (*B2Publisher)(nil)

func NewB2Publisher(ctx context.Context, conf core.StorageConfig) (*B2Publisher, error) {
	client, err := b2.NewClient(ctx, conf.B2AccountID, conf.B2AppKey)
	if err != nil {
		return nil, errors.Wrap(err, "creating b2 client")
	}
	bucket, err := client.Bucket(ctx, conf.B2Bucket)
	if err != nil {
		return nil, errors.Wrapf(err, "opening bucket %s", conf.B2Bucket)
	}
	return &B2Publisher{client: client, bucket: bucket, baseURL: strings.TrimRight(conf.PublicBaseURL, "/")}, nil
}

// Publish uploads data once. Failed uploads are not retried.
func (p *B2Publisher) Publish(ctx context.Context, data []byte, folder string) (core.PublishedDocument, error) {
	key := objectKey(folder)
	obj := p.bucket.Object(key)

	w := obj.NewWriter(ctx).WithAttrs(&b2.Attrs{ContentType: contentType})
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return core.PublishedDocument{}, errors.Wrap(err, "writing object")
	}
	if err := w.Close(); err != nil {
		return core.PublishedDocument{}, errors.Wrap(err, "closing object")
	}

	url := obj.URL()
	if p.baseURL != "" {
		url = p.baseURL + "/" + key
	}
	return core.PublishedDocument{URL: url, PublicID: key}, nil
}
