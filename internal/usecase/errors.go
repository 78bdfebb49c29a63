package usecase

import (
	"errors"
)

var (
	ErrNoTarget     = errors.New("no index or category specified")
	ErrNoData       = errors.New("no data found for this category")
	ErrWrongView    = errors.New("operation not available in the current view")
	ErrStale        = errors.New("superseded by a newer load")
	ErrInvalidParam = errors.New("invalid parameter")
)

// FetchError wraps a failed backend request.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return "failed to load data: " + e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// UserMessage is the text shown in place of a view when a load fails.
func UserMessage(err error) string {
	var fe *FetchError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoTarget):
		return "No index or category specified"
	case errors.Is(err, ErrNoData):
		return "No data found for this category"
	case errors.As(err, &fe):
		return "Failed to load data: " + fe.Err.Error()
	default:
		return err.Error()
	}
}
