package domain

import (
	"errors"
	"fmt"
)

// Code classifies a domain failure. Every code is a recoverable, expected
// outcome of normal operation.
type Code int

const (
	CodeInvalidQuantity Code = iota + 1
	CodeInsufficientStock
	CodeInvalidIndex
	CodeExceedsLineQuantity
	CodeOrderClosed
	CodeOrderAlreadyOpen
	CodeEmptyOrder
	CodeNotCancelable
	CodeNotFinishable
	CodeInvalidAmount
	CodeNoOpenOrder
	CodeInvalidCustomerName
	CodePersistence
)

func (c Code) String() string {
	switch c {
	case CodeInvalidQuantity:
		return "InvalidQuantity"
	case CodeInsufficientStock:
		return "InsufficientStock"
	case CodeInvalidIndex:
		return "InvalidIndex"
	case CodeExceedsLineQuantity:
		return "ExceedsLineQuantity"
	case CodeOrderClosed:
		return "OrderClosed"
	case CodeOrderAlreadyOpen:
		return "OrderAlreadyOpen"
	case CodeEmptyOrder:
		return "EmptyOrder"
	case CodeNotCancelable:
		return "NotCancelable"
	case CodeNotFinishable:
		return "NotFinishable"
	case CodeInvalidAmount:
		return "InvalidAmount"
	case CodeNoOpenOrder:
		return "NoOpenOrder"
	case CodeInvalidCustomerName:
		return "InvalidCustomerName"
	case CodePersistence:
		return "PersistenceError"
	default:
		return "Unknown"
	}
}

// Error is the failure type returned by every domain and service operation.
// errors.Is matches two *Error values by Code, so callers compare against the
// exported sentinels below.
type Error struct {
	Code    Code
	Message string

	// OpenCustomer names the customer of the order that blocked the call.
	// Only set for CodeOrderAlreadyOpen.
	OpenCustomer string

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrInvalidQuantity     = &Error{Code: CodeInvalidQuantity, Message: "quantity must be positive"}
	ErrInsufficientStock   = &Error{Code: CodeInsufficientStock, Message: "insufficient stock"}
	ErrInvalidIndex        = &Error{Code: CodeInvalidIndex, Message: "index out of range"}
	ErrExceedsLineQuantity = &Error{Code: CodeExceedsLineQuantity, Message: "quantity exceeds line quantity"}
	ErrOrderClosed         = &Error{Code: CodeOrderClosed, Message: "order is closed"}
	ErrOrderAlreadyOpen    = &Error{Code: CodeOrderAlreadyOpen, Message: "an order is already open"}
	ErrEmptyOrder          = &Error{Code: CodeEmptyOrder, Message: "cannot finish an empty order"}
	ErrNotCancelable       = &Error{Code: CodeNotCancelable, Message: "only OPEN orders can be canceled"}
	ErrNotFinishable       = &Error{Code: CodeNotFinishable, Message: "only OPEN orders can be finished"}
	ErrInvalidAmount       = &Error{Code: CodeInvalidAmount, Message: "stock cannot be negative"}
	ErrNoOpenOrder         = &Error{Code: CodeNoOpenOrder, Message: "no open order"}
	ErrInvalidCustomerName = &Error{Code: CodeInvalidCustomerName, Message: "customer name cannot be empty"}
	ErrPersistence         = &Error{Code: CodePersistence, Message: "persistence failure"}
)

func newError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewPersistenceError wraps a storage failure. The in-memory state that led
// to the failed write is not rolled back.
func NewPersistenceError(op string, err error) *Error {
	return &Error{Code: CodePersistence, Message: op, cause: err}
}

// CodeOf extracts the Code from err, or 0 when err is not a domain error.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return 0
}
