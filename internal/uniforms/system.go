package uniforms

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/unifix/pkg/pagination"
	"github.com/JaimeStill/unifix/pkg/storage"
)

// System defines the public contract for uniform image operations.
type System interface {
	Handler(observer Observer, maxUploadSize int64) *Handler

	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Image], error)
	Find(ctx context.Context, id uuid.UUID) (*Image, error)

	// Upload stores every file or none. Blobs already written when a later
	// step fails are deleted before the error is returned.
	Upload(ctx context.Context, cmd UploadCommand) ([]Image, error)

	// Open returns the image metadata and its blob stream. The caller must
	// close the blob body.
	Open(ctx context.Context, id uuid.UUID) (*Image, *storage.Blob, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
