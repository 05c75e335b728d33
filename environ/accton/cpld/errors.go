// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cpld

import (
	"errors"
	"fmt"
)

var (
	ErrBus               = errors.New("bus error")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInvalidConfig     = errors.New("invalid config")
	ErrResourceExhausted = errors.New("resource exhausted")
	ErrNotFound          = errors.New("no such device")
	ErrPermissionDenied  = errors.New("permission denied")
)

// BusError is returned once the retry budget of a register transfer is
// spent; Err is the last transport error.
type BusError struct {
	Op  string
	Reg uint8
	Err error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("%s reg 0x%02x: %v", e.Op, e.Reg, e.Err)
}

func (e *BusError) Unwrap() error { return e.Err }

func (e *BusError) Is(target error) bool { return target == ErrBus }
