package httperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindSlotUnavailable
	KindNotFound
	KindInactiveResource
	KindInvalidState
	KindConflict
)

type BusinessError struct {
	Code    string
	Kind    Kind
	Message string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func Validation(code, format string, args ...any) error {
	return BusinessError{Code: code, Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func SlotUnavailable() error {
	return BusinessError{Code: "slot_unavailable", Kind: KindSlotUnavailable, Message: "the requested time overlaps another booking"}
}

func ErrNotFound(code string) error {
	return BusinessError{Code: code, Kind: KindNotFound}
}

func Inactive(code string) error {
	return BusinessError{Code: code, Kind: KindInactiveResource}
}

func InvalidState(code, format string, args ...any) error {
	return BusinessError{Code: code, Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func Conflict(code, format string, args ...any) error {
	return BusinessError{Code: code, Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func KindOf(err error) (Kind, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return 0, false
}
