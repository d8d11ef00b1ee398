package compressor

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode reports input data that could not be decoded as an image.
	ErrDecode = errors.New("decode image")
	// ErrEncode reports an encoder failure or an encoder that produced no data.
	ErrEncode = errors.New("encode image")
	// ErrSurfaceUnavailable reports that no drawing surface of the target size could be allocated.
	ErrSurfaceUnavailable = errors.New("drawing surface unavailable")
)

// ItemError identifies the input that aborted a batch.
type ItemError struct {
	Index int
	Name  string
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("image %d (%s): %v", e.Index+1, e.Name, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}
