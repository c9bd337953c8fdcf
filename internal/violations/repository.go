package violations

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/unifix/pkg/pagination"
	"github.com/JaimeStill/unifix/pkg/query"
	"github.com/JaimeStill/unifix/pkg/repository"
)

const returningColumns = "id, student_id, name, uniform_status_image, date, face_score, compliance_status"

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a violation repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "violations"),
		pagination: pagination,
	}
}

func (r *repo) Handler(renderer Renderer, observer Observer, maxBody int64) *Handler {
	return NewHandler(r, renderer, observer, r.logger, r.pagination, maxBody)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Violation], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort...).
		WhereSearch(page.Search, "StudentID", "Name")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	total, err := repository.QueryCount(ctx, r.db, countSQL, countArgs)
	if err != nil {
		return nil, fmt.Errorf("count violations: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanViolation)
	if err != nil {
		return nil, fmt.Errorf("query violations: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Violation, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	v, err := repository.QueryOne(ctx, r.db, q, args, scanViolation)
	if err != nil {
		return nil, r.mapError(err, "find violation")
	}
	return &v, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Violation, error) {
	if err := cmd.Normalize(); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO violations(id, student_id, name, uniform_status_image, date, face_score, compliance_status)
		VALUES ($1, $2, $3, $4, COALESCE($5::timestamptz, now()), $6, $7)
		RETURNING ` + returningColumns

	args := []any{
		uuid.New(),
		cmd.StudentID,
		cmd.Name,
		cmd.UniformStatusImage,
		cmd.Date,
		cmd.FaceScore,
		cmd.ComplianceStatus,
	}

	v, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Violation, error) {
		return repository.QueryOne(ctx, tx, q, args, scanViolation)
	})
	if err != nil {
		return nil, r.mapError(err, "create violation")
	}

	r.logger.Info("violation created", "id", v.ID, "student_id", v.StudentID)
	return &v, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM violations WHERE id = $1",
			id,
		)
	})
	if err != nil {
		return r.mapError(err, "delete violation")
	}

	r.logger.Info("violation deleted", "id", id)
	return nil
}

func (r *repo) mapError(err error, op string) error {
	mapped := repository.MapError(err, ErrNotFound, ErrDuplicate)
	if mapped == ErrNotFound || mapped == ErrDuplicate {
		return mapped
	}
	return fmt.Errorf("%s: %w", op, err)
}
