package common

// ConstError is a error type that can be used to define immutable
// error constants.
type ConstError string

func (e ConstError) Error() string {
	return string(e)
}

// ErrClosed is returned by operations on grids and sources whose
// resources have already been released.
const ErrClosed = ConstError("already closed")
