package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindValidation Kind = iota
	KindAuth
	KindNotFound
	KindConflict
	KindInternal
)

// FieldViolation คือ field เดียวที่ validate ไม่ผ่าน
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	Kind    Kind
	Status  int
	Message string
	Fields  []FieldViolation
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports every offending field, not just the first.
func Validation(msg string, fields []FieldViolation) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: msg, Fields: fields}
}

func Auth(msg string, status int) *Error {
	if status == 0 {
		status = http.StatusUnauthorized
	}
	return &Error{Kind: KindAuth, Status: status, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Status: http.StatusConflict, Message: msg}
}

func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Status: http.StatusInternalServerError, Message: msg, Err: err}
}

// As ดึง *Error ออกจาก error chain
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func IsKind(err error, k Kind) bool {
	if e, ok := As(err); ok {
		return e.Kind == k
	}
	return false
}
