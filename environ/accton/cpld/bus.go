// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cpld

import (
	"time"

	"github.com/jpillora/backoff"
)

const (
	RetryCount    = 10
	RetryInterval = 60 * time.Millisecond
)

// Bus retries each transfer of its Transport up to Retries times with a
// constant Interval pause before every retry. A Bus is not atomic across
// calls; hold the Device lock for read-modify-write.
type Bus struct {
	Transport
	Retries  int
	Interval time.Duration
}

// NewBus returns a Bus with the default retry budget.
func NewBus(t Transport) *Bus {
	return &Bus{
		Transport: t,
		Retries:   RetryCount,
		Interval:  RetryInterval,
	}
}

func (b *Bus) Read(reg uint8) (v uint8, err error) {
	err = b.retry("read", reg, func() (err error) {
		v, err = b.ReadByteData(reg)
		return
	})
	return
}

func (b *Bus) Write(reg, v uint8) error {
	return b.retry("write", reg, func() error {
		return b.WriteByteData(reg, v)
	})
}

func (b *Bus) retry(op string, reg uint8, f func() error) error {
	retries := b.Retries
	if retries <= 0 {
		retries = 1
	}
	interval := b.Interval
	if interval <= 0 {
		interval = RetryInterval
	}
	pace := &backoff.Backoff{
		Min:    interval,
		Max:    interval,
		Factor: 1,
	}
	var err error
	for i := 0; i < retries; i++ {
		if i > 0 {
			time.Sleep(pace.Duration())
		}
		if err = f(); err == nil {
			return nil
		}
	}
	return &BusError{Op: op, Reg: reg, Err: err}
}
