package domain

import (
	"errors"
)

var (
	ErrInternal = errors.New("internal error")

	// * Data errors.
	ErrNotFound             = errors.New("resource not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrBadEnvelope          = errors.New("response envelope has unexpected shape")

	// * Communication errors.
	ErrBadRequest    = errors.New("error parsing request")
	ErrTransport     = errors.New("transport failure")
	ErrServerReject  = errors.New("server rejected request")
	ErrStaleResponse = errors.New("response arrived for a no-longer-focused order")

	// * Authority errors.
	ErrNoSession                  = errors.New("no active session, login first")
	ErrInvalidCredentials         = errors.New("invalid email or password")
	ErrUnauthorized               = errors.New("user is unauthorized to access the resource")
	ErrForbidden                  = errors.New("user is forbidden to access the resource")
	ErrInvalidToken               = errors.New("access token is invalid")
	ErrExpiredToken               = errors.New("access token has expired")
	ErrEmptyAuthorizationHeader   = errors.New("authorization header is not provided")
	ErrInvalidAuthorizationHeader = errors.New("authorization header format is invalid")

	// * Business errors.
	ErrNoFocusedOrder      = errors.New("no order is open for editing")
	ErrOrderNotEditable    = errors.New("order cannot be edited")
	ErrOrderNotCancellable = errors.New("order cannot be cancelled")
	ErrEmptyCancelReason   = errors.New("cancellation reason is empty")
	ErrSaveInProgress      = errors.New("save is already in progress")
)
