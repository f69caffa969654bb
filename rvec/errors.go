package rvec

import (
	"errors"
	"math"
	"strconv"
)

// MaxIndex is the highest index Insert accepts.
const MaxIndex = math.MaxInt - 1

var (
	ErrNegativeIndex    = errors.New("rvec: negative index")
	ErrIndexOutOfDomain = errors.New("rvec: index above MaxIndex")
)

// IndexError is the panic value raised when an index outside [0, MaxIndex]
// is passed to an operation that would otherwise mutate the Vec.
type IndexError struct {
	Op    string
	Index int
}

func (e *IndexError) Error() string {
	if e.Index < 0 {
		return "rvec: " + e.Op + ": negative index " + strconv.Itoa(e.Index)
	}
	return "rvec: " + e.Op + ": index " + strconv.Itoa(e.Index) + " above MaxIndex"
}

// Unwrap returns ErrNegativeIndex or ErrIndexOutOfDomain.
func (e *IndexError) Unwrap() error {
	if e.Index < 0 {
		return ErrNegativeIndex
	}
	return ErrIndexOutOfDomain
}
