// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

import (
	"github.com/pkg/errors"
)

// ErrMemory is the failure reported when the node table cannot grow anymore:
// garbage collection found no reclaimable node and the table is already at its
// maximal size (see Maxnodesize).
var ErrMemory = errors.New("unable to free memory or resize the node table")

// ErrTimeout is the failure reported when the deadline set with SetTimeout
// expired while a computation was in progress. The computation is abandoned as
// a whole; there is no partial result.
var ErrTimeout = errors.New("timeout expired")

// errReorder signals that the variable order changed while a computation was
// in flight, invalidating intermediate results. It never escapes the top-level
// retry loop in Apply and MonadicApply.
var errReorder = errors.New("variable reordering invalidated the computation")

var errNilNode = errors.New("nil node")

var errBadNode = errors.New("not a valid node")

// Error returns the error status of the ADD. We return an empty string if
// there are no errors.
func (b *ADD) Error() string {
	if b.error == nil {
		return ""
	}
	return b.error.Error()
}

// Err returns the error status of the ADD as an error value, nil when there
// are none. Failures keep their cause, so errors.Is(b.Err(), ErrTimeout) and
// errors.Is(b.Err(), ErrMemory) can be used to discriminate them.
func (b *ADD) Err() error {
	return b.error
}

func (b *ADD) seterror(format string, a ...interface{}) Node {
	if b.error != nil {
		b.error = errors.Wrapf(b.error, format, a...)
		return nil
	}
	b.error = errors.Errorf(format, a...)
	return nil
}

// setfailure records a failure with its sentinel cause so that callers can
// test it with errors.Is.
func (b *ADD) setfailure(err error, format string, a ...interface{}) Node {
	b.error = errors.Wrapf(err, format, a...)
	return nil
}
