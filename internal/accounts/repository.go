package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/unifix/internal/auth"
	"github.com/JaimeStill/unifix/pkg/repository"
)

type repo struct {
	db     *sql.DB
	issuer *auth.Issuer
	cost   int
	logger *slog.Logger

	// compared against when the email is unknown so both login failures
	// spend the same bcrypt work
	decoy string
}

// New creates an account repository implementing the System interface.
func New(
	db *sql.DB,
	issuer *auth.Issuer,
	cost int,
	logger *slog.Logger,
) (System, error) {
	decoy, err := hashPassword(uuid.NewString(), cost)
	if err != nil {
		return nil, err
	}

	return &repo{
		db:     db,
		issuer: issuer,
		cost:   cost,
		logger: logger.With("system", "accounts"),
		decoy:  decoy,
	}, nil
}

func (r *repo) Handler(observer Observer) *Handler {
	return NewHandler(r, observer, r.logger)
}

func (r *repo) Register(ctx context.Context, cmd RegisterCommand) (*Account, error) {
	if err := cmd.Normalize(); err != nil {
		return nil, err
	}

	hash, err := hashPassword(cmd.Password, r.cost)
	if err != nil {
		return nil, err
	}

	q := `
		INSERT INTO accounts(id, username, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, email, password_hash, created_at`

	args := []any{uuid.New(), cmd.Username, cmd.Email, hash}

	account, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Account, error) {
		return repository.QueryOne(ctx, tx, q, args, scanAccount)
	})
	if err != nil {
		mapped := repository.MapError(err, sql.ErrNoRows, ErrDuplicate)
		if errors.Is(mapped, ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("register account: %w", err)
	}

	r.logger.Info("account registered", "id", account.ID)
	return &account, nil
}

func (r *repo) Login(ctx context.Context, cmd LoginCommand) (*auth.Token, error) {
	if err := cmd.Normalize(); err != nil {
		return nil, err
	}

	q := `
		SELECT id, username, email, password_hash, created_at
		FROM accounts
		WHERE lower(email) = lower($1)`

	account, err := repository.QueryOne(ctx, r.db, q, []any{cmd.Email}, scanAccount)
	if errors.Is(err, sql.ErrNoRows) {
		checkPassword(r.decoy, cmd.Password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}

	if !checkPassword(account.PasswordHash, cmd.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := r.issuer.Issue(account.ID.String())
	if err != nil {
		return nil, err
	}

	r.logger.Info("login succeeded", "id", account.ID)
	return token, nil
}

func scanAccount(s repository.Scanner) (Account, error) {
	var a Account
	err := s.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.CreatedAt)
	return a, err
}
