package journal

import "errors"

var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrDuplicateEntry    = errors.New("entry already exists for today")
	ErrNotFound          = errors.New("entry not found")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

// StoreError 存储驱动错误，统一匹配 ErrStoreUnavailable，不做重试
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Op + ": " + ErrStoreUnavailable.Error() + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == ErrStoreUnavailable }

// WrapStore nil 原样返回
func WrapStore(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
