package violations

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/unifix/pkg/pagination"
)

// System defines the public contract for violation store operations.
type System interface {
	Handler(renderer Renderer, observer Observer, maxBody int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Violation], error)

	Find(ctx context.Context, id uuid.UUID) (*Violation, error)
	Create(ctx context.Context, cmd CreateCommand) (*Violation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
