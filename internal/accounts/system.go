package accounts

import (
	"context"

	"github.com/JaimeStill/unifix/internal/auth"
)

// System defines the public contract for account operations.
type System interface {
	Handler(observer Observer) *Handler

	Register(ctx context.Context, cmd RegisterCommand) (*Account, error)
	Login(ctx context.Context, cmd LoginCommand) (*auth.Token, error)
}
