package engine

import "errors"

var (
	// ErrInvalidSampleRate is returned by Configure for non-positive or
	// non-finite sample rates.
	ErrInvalidSampleRate = errors.New("engine: invalid sample rate")
	// ErrInvalidBlockSize is returned by Configure when the block size is
	// not in [1, MaxBlockSize].
	ErrInvalidBlockSize = errors.New("engine: invalid block size")
	// ErrNilStore is returned by New when no parameter store is given.
	ErrNilStore = errors.New("engine: nil parameter store")
	// ErrBusy is returned by Configure when it overlaps a Process call.
	ErrBusy = errors.New("engine: configure during processing")
)
