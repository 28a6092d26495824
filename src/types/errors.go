package types

import "errors"

var (
	ErrAlreadyActive   = errors.New("elevator already active")
	ErrAlreadyStopping = errors.New("elevator already stopping")
	ErrInvalidRequest  = errors.New("invalid request")
	ErrWorkerStart     = errors.New("elevator worker could not be started")
)

// Result codes returned to the control dispatch layer.
const (
	CodeOK       = 0
	CodeRejected = 1
	CodeNoMemory = -12
)

// ResultCode maps an operation error to its integer result code.
func ResultCode(err error) int {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, ErrWorkerStart):
		return CodeNoMemory
	default:
		return CodeRejected
	}
}
