package binder

import "errors"

var (
	// ErrBindFailed is returned when the tenant-annotation statement failed.
	// The enclosing transaction is rolled back and the connection discarded,
	// not returned to the pool.
	ErrBindFailed = errors.New("tenant binding statement failed")

	// ErrResetFailed is returned when the session reset statement failed
	// after the unit of work completed. The connection is discarded; the unit
	// itself may have committed.
	ErrResetFailed = errors.New("session reset failed")

	// ErrPoolExhausted is returned when no connection became available within
	// the acquire timeout.
	ErrPoolExhausted = errors.New("connection pool exhausted")
)
