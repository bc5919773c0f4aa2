package errors

import "strings"

// Append clubs together two errors into a single one. Each of given errors
// can be nil, in which case the other one is returned. When both are nil, nil
// is returned as well.
// A multi error created this way matches (via Is) each error kind that any of
// its members matches.
func Append(a, b error) error {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}

	var errs []error
	if m, ok := a.(*multiError); ok {
		errs = append(errs, m.errs...)
	} else {
		errs = append(errs, a)
	}
	if m, ok := b.(*multiError); ok {
		errs = append(errs, m.errs...)
	} else {
		errs = append(errs, b)
	}
	return &multiError{errs: errs}
}

type multiError struct {
	errs []error
}

func (e *multiError) Error() string {
	msgs := make([]string, len(e.errs))
	for i, err := range e.errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Cause returns the first member of this multi error. This is the best
// approximation of a single root cause that a collection of errors can
// provide.
func (e *multiError) Cause() error {
	return e.errs[0]
}

func (e *multiError) contains(kind *Error) bool {
	for _, err := range e.errs {
		if kind.Is(err) {
			return true
		}
	}
	return false
}
