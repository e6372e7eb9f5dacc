package core

import "context"

type (
	// PublishedDocument is the durable location of a published artifact.
	PublishedDocument struct {
		URL      string `json:"url"`
		PublicID string `json:"public_id"`
	}

	// DocumentPublisher is any object store that can durably publish rendered artifacts.
	// Implementations must not retry implicitly.
	DocumentPublisher interface {
		Publish(ctx context.Context, data []byte, folder string) (PublishedDocument, error)
	}
)
