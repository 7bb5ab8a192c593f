package hnsw

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidShape is returned when a vector or batch has the wrong
	// number of columns, or when two distance-function operands disagree
	// on inner dimension. It is a programmer error and is never retried.
	ErrInvalidShape = errors.New("hnsw: invalid shape")

	// ErrInvalidConfig is returned by NewHNSWConfig when the requested
	// parameters cannot produce a usable index (M < 2, EfConstruction <
	// M, or ML <= 0).
	ErrInvalidConfig = errors.New("hnsw: invalid config")

	// ErrIoFailure wraps an underlying read/write error surfaced from
	// Save/Load's byte sink or source.
	ErrIoFailure = errors.New("hnsw: io failure")
)

func shapeErrorf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, any(ErrInvalidShape))...)
}

func configErrorf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, any(ErrInvalidConfig))...)
}

func ioErrorf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, any(ErrIoFailure))...)
}
