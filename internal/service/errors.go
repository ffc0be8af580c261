// Package service implements the BookCircle business rules on top of store.Store.
//
// Services return typed errors from internal/errors; the API layer maps them
// onto HTTP statuses.
package service

import (
	"context"
	"errors"

	domainerrors "github.com/bookcircle/bookcircle-server/internal/errors"
	"github.com/bookcircle/bookcircle-server/internal/store"
)

// fromStore converts a store error into a domain error. notFoundMsg is used
// for missing rows and dangling references.
func fromStore(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}

	var domainErr *domainerrors.Error
	if errors.As(err, &domainErr) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrInvalidReference):
		return domainerrors.NotFound(notFoundMsg).WithCause(err)
	case errors.Is(err, store.ErrAlreadyExists):
		return domainerrors.Conflict("resource already exists").WithCause(err)
	case errors.Is(err, store.ErrInvalidInput):
		return domainerrors.InvalidArgument("invalid input").WithCause(err)
	}
	return domainerrors.StoreFailure(err)
}
