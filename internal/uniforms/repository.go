package uniforms

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/unifix/pkg/pagination"
	"github.com/JaimeStill/unifix/pkg/query"
	"github.com/JaimeStill/unifix/pkg/repository"
	"github.com/JaimeStill/unifix/pkg/storage"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a uniform image repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		logger:     logger.With("system", "uniforms"),
		pagination: pagination,
	}
}

func (r *repo) Handler(observer Observer, maxUploadSize int64) *Handler {
	return NewHandler(r, observer, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Image], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort...).
		WhereSearch(page.Search, "Filename", "CollegeName", "DegreeName")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	total, err := repository.QueryCount(ctx, r.db, countSQL, countArgs)
	if err != nil {
		return nil, fmt.Errorf("count uniform images: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanImage)
	if err != nil {
		return nil, fmt.Errorf("query uniform images: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Image, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	img, err := repository.QueryOne(ctx, r.db, q, args, scanImage)
	if err != nil {
		return nil, r.mapError(err, "find uniform image")
	}
	return &img, nil
}

func (r *repo) Upload(ctx context.Context, cmd UploadCommand) ([]Image, error) {
	if err := cmd.Normalize(); err != nil {
		return nil, err
	}

	images, err := prepare(cmd)
	if err != nil {
		return nil, err
	}

	written, err := uploadAll(ctx, r.storage, images, cmd.Files)
	if err != nil {
		compensate(ctx, r.storage, r.logger, written)
		return nil, fmt.Errorf("store uniform images: %w", err)
	}

	q := `
		INSERT INTO uniform_images(id, filename, content_type, size_bytes, width, height, college_name, degree_name, storage_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + columns

	saved, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) ([]Image, error) {
		rows := make([]Image, 0, len(images))
		for _, img := range images {
			args := []any{
				img.ID,
				img.Filename,
				img.ContentType,
				img.SizeBytes,
				img.Width,
				img.Height,
				img.CollegeName,
				img.DegreeName,
				img.StorageKey,
			}

			row, err := repository.QueryOne(ctx, tx, q, args, scanImage)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
		return rows, nil
	})
	if err != nil {
		compensate(ctx, r.storage, r.logger, written)
		return nil, r.mapError(err, "insert uniform images")
	}

	r.logger.Info(
		"uniform images uploaded",
		"count", len(saved),
		"college", cmd.CollegeName,
		"degree", cmd.DegreeName,
	)
	return saved, nil
}

func (r *repo) Open(ctx context.Context, id uuid.UUID) (*Image, *storage.Blob, error) {
	img, err := r.Find(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	blob, err := r.storage.Download(ctx, img.StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		r.logger.Warn("uniform image blob missing", "id", id, "key", img.StorageKey)
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	return img, blob, nil
}

// Delete removes the row and its blob together; the row survives if the
// blob delete fails. A blob that is already gone does not block the delete.
func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		var key string
		row := tx.QueryRowContext(ctx, "DELETE FROM uniform_images WHERE id = $1 RETURNING storage_key", id)
		if err := row.Scan(&key); err != nil {
			return struct{}{}, err
		}

		if err := r.storage.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})
	if err != nil {
		return r.mapError(err, "delete uniform image")
	}

	r.logger.Info("uniform image deleted", "id", id)
	return nil
}

func (r *repo) mapError(err error, op string) error {
	mapped := repository.MapError(err, ErrNotFound, ErrDuplicate)
	if mapped == ErrNotFound || mapped == ErrDuplicate {
		return mapped
	}
	return fmt.Errorf("%s: %w", op, err)
}
