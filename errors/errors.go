// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package errors

import (
	"errors"
	"fmt"
)

// actor lifecycle
var (
	ErrDead               = errors.New("actor is dead")
	ErrUndefinedActor     = errors.New("undefined actor")
	ErrActorNotFound      = errors.New("no such actor")
	ErrActorAlreadyExists = errors.New("actor name already taken")
	ErrInitFailure        = errors.New("actor failed to start")
	ErrInvalidActorName   = errors.New("actor names are made of letters, digits, '-' and '_', and cannot start with '-' or '_'")
	ErrUnhandled          = errors.New("unhandled message")
)

// messaging
var (
	ErrRequestTimeout = errors.New("ask timed out")
	ErrInvalidTimeout = errors.New("timeout must be positive")
)

// actor system
var (
	ErrActorSystemNotStarted     = errors.New("actor system not started")
	ErrActorSystemAlreadyStarted = errors.New("actor system already started")
	ErrInvalidActorSystemName    = errors.New("actor system names are made of letters, digits, '-' and '_', and cannot start with '-' or '_'")
)

// scheduling
var (
	ErrSchedulerNotStarted        = errors.New("scheduler not started")
	ErrScheduledReferenceNotFound = errors.New("no scheduled message with this reference")
)

// NewErrActorNotFound reports the missing actor path
func NewErrActorNotFound(path string) error {
	return fmt.Errorf("%w: %s", ErrActorNotFound, path)
}

// NewErrActorAlreadyExists reports the taken actor name
func NewErrActorAlreadyExists(name string) error {
	return fmt.Errorf("%w: %s", ErrActorAlreadyExists, name)
}

// NewErrInitFailure marks err as a PreStart failure
func NewErrInitFailure(err error) error {
	return fmt.Errorf("%w: %w", ErrInitFailure, err)
}

// NewErrScheduledReferenceNotFound reports the unknown schedule reference
func NewErrScheduledReferenceNotFound(reference string) error {
	return fmt.Errorf("%w: %s", ErrScheduledReferenceNotFound, reference)
}

// PanicError carries a value recovered from a panicking actor
type PanicError struct {
	err error
}

var _ error = (*PanicError)(nil)

// NewPanicError wraps the recovered error
func NewPanicError(err error) *PanicError {
	return &PanicError{err: err}
}

func (e *PanicError) Error() string { return "panic: " + e.err.Error() }
func (e *PanicError) Unwrap() error { return e.err }

// UnhandledError is the failure raised by ReceiveContext.Unhandled.
// errors.Is matches it against ErrUnhandled.
type UnhandledError struct {
	messageType string
}

var _ error = (*UnhandledError)(nil)

// NewUnhandledError records the type of the unhandled message
func NewUnhandledError(message any) *UnhandledError {
	return &UnhandledError{messageType: fmt.Sprintf("%T", message)}
}

func (e *UnhandledError) Error() string        { return ErrUnhandled.Error() + ": " + e.messageType }
func (e *UnhandledError) Is(target error) bool { return target == ErrUnhandled }

// MessageType returns the Go type of the unhandled message
func (e *UnhandledError) MessageType() string {
	return e.messageType
}

// AnyError is the key of the supervisor directive applied to every error
type AnyError struct{}

var _ error = (*AnyError)(nil)

func (*AnyError) Error() string { return "*" }
