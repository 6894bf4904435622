package gpu

import (
	"errors"
	"fmt"
)

var (
	ErrNoAdapter  = errors.New("gpu: no compatible adapter")
	ErrNoFormat   = errors.New("gpu: surface reports no formats")
	ErrReleased   = errors.New("gpu: renderer released")
	ErrZeroTarget = errors.New("gpu: zero-sized target")
)

// InitError records which acquisition stage failed.
type InitError struct {
	Stage string
	Err   error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("gpu: %s: %v", e.Stage, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

func stageErr(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &InitError{Stage: stage, Err: err}
}
