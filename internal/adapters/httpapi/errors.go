package httpapi

import (
	"errors"
	"net/http"

	"github.com/andrescamacho/farmchain-go/internal/application/auth"
	"github.com/andrescamacho/farmchain-go/internal/domain/actions"
	"github.com/andrescamacho/farmchain-go/internal/domain/farm"
	"github.com/andrescamacho/farmchain-go/internal/domain/replay"
	"github.com/andrescamacho/farmchain-go/internal/domain/shared"
)

// HandlerError is an error returned from a route handler. Message is
// for the server log; ClientMessage is the only part sent on the wire.
type HandlerError struct {
	Code          int    `json:"-"`
	Message       string `json:"-"`
	ClientMessage string `json:"error"`
}

func (hErr *HandlerError) Error() string {
	return hErr.Message
}

// NewHandlerError returns a HandlerError with the given code and message.
func NewHandlerError(code int, message string) *HandlerError {
	return &HandlerError{
		Code:          code,
		Message:       message,
		ClientMessage: message,
	}
}

// NewHandlerErrorWithCustomClientMessage returns a HandlerError with
// the given code, message and client error message.
func NewHandlerErrorWithCustomClientMessage(code int, message, clientMessage string) *HandlerError {
	return &HandlerError{
		Code:          code,
		Message:       message,
		ClientMessage: clientMessage,
	}
}

// NewInternalServerHandlerError returns a HandlerError with
// the given message, and the http.StatusInternalServerError
// status text as client message.
func NewInternalServerHandlerError(message string) *HandlerError {
	return NewHandlerErrorWithCustomClientMessage(http.StatusInternalServerError, message, http.StatusText(http.StatusInternalServerError))
}

// as reports whether err's chain contains an error of type T.
func as[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}

// handlerErrorFrom maps a dispatch error to its HTTP status. Domain
// error messages are part of the client contract and pass through
// verbatim; anything unrecognized is an internal fault and its message
// stays out of the response.
func handlerErrorFrom(err error) *HandlerError {
	switch {
	case as[*farm.ErrFarmNotFound](err), as[*farm.ErrNotOwner](err):
		// Same status and body for both, so the response never reveals
		// whether the farm exists.
		return NewHandlerError(http.StatusNotFound, err.Error())
	case as[*farm.ErrSessionConflict](err):
		return NewHandlerError(http.StatusConflict, err.Error())
	case as[*auth.ErrBadSignature](err), as[*farm.ErrNotWhitelisted](err):
		return NewHandlerError(http.StatusForbidden, err.Error())
	case as[*shared.ExternalUnavailableError](err):
		return NewHandlerErrorWithCustomClientMessage(
			http.StatusServiceUnavailable, err.Error(), "External service unavailable")
	case rejectedInput(err):
		return NewHandlerError(http.StatusBadRequest, err.Error())
	default:
		return NewInternalServerHandlerError(err.Error())
	}
}

// rejectedInput reports whether the error blames the submitted request
// rather than the server: temporal gate rejections, replay rule
// violations, and malformed request values.
func rejectedInput(err error) bool {
	switch {
	case as[*shared.InvalidRequestError](err):
		return true
	case as[*actions.ErrTemporalOrder](err),
		as[*actions.ErrTemporalFuture](err),
		as[*actions.ErrTemporalPast](err),
		as[*actions.ErrTemporalRange](err),
		as[*actions.ErrTemporalGap](err),
		as[*actions.ErrTemporalDensity](err),
		as[*actions.ErrUnknownAction](err):
		return true
	case as[*replay.ErrUnknownItem](err),
		as[*replay.ErrNotCraftable](err),
		as[*replay.ErrNotSellable](err),
		as[*replay.ErrNotRedeemable](err),
		as[*replay.ErrFieldOccupied](err),
		as[*replay.ErrFieldEmpty](err),
		as[*replay.ErrNotGrown](err),
		as[*replay.ErrTreeNotRecovered](err),
		as[*replay.ErrInvalidIndex](err),
		as[*replay.ErrInvalidTool](err),
		as[*replay.ErrInvalidAmount](err):
		return true
	case as[*farm.ErrInsufficientInventory](err),
		as[*farm.ErrInsufficientBalance](err),
		as[*farm.ErrInsufficientStock](err),
		as[*farm.ErrMismatchedAmounts](err),
		as[*farm.ErrNotWithdrawable](err):
		return true
	}
	return false
}
