package web

import (
	"errors"

	"RiskView/internal/services/sorter"
	"RiskView/internal/usecase"
	xhttp "RiskView/pkg/http"
)

var errRateLimited = errors.New("too many loads, slow down")

// toAppError maps usecase failures onto HTTP errors.
func toAppError(err error) *xhttp.AppError {
	if appErr, ok := xhttp.AsAppError(err); ok {
		return appErr
	}
	var fe *usecase.FetchError
	switch {
	case errors.Is(err, usecase.ErrNoTarget):
		return xhttp.BadRequestError(usecase.UserMessage(err)).WithError(err)
	case errors.Is(err, usecase.ErrInvalidParam), errors.Is(err, sorter.ErrUnknownColumn):
		return xhttp.BadRequestError(err.Error()).WithError(err)
	case errors.Is(err, usecase.ErrNoData):
		return xhttp.NotFoundError(usecase.UserMessage(err)).WithError(err)
	case errors.As(err, &fe):
		return xhttp.BadGatewayError(usecase.UserMessage(err)).WithError(err)
	case errors.Is(err, usecase.ErrWrongView), errors.Is(err, usecase.ErrStale):
		return xhttp.ConflictError(err.Error()).WithError(err)
	case errors.Is(err, errRateLimited):
		return xhttp.TooManyRequestsError(err.Error()).WithError(err)
	default:
		return xhttp.InternalError("Something went wrong").WithError(err)
	}
}
