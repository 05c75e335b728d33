// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cpld

import (
	"errors"
	"sync"
	"testing"
	"time"
)

var errNak = errors.New("nak")

// fake is an in memory register file; it fails the next failN transfers.
type fake struct {
	sync.Mutex
	regs   [256]uint8
	failN  int
	reads  int
	writes int
}

func (f *fake) ReadByteData(reg uint8) (uint8, error) {
	f.Lock()
	defer f.Unlock()
	f.reads++
	if f.failN != 0 {
		if f.failN > 0 {
			f.failN--
		}
		return 0, errNak
	}
	return f.regs[reg], nil
}

func (f *fake) WriteByteData(reg, v uint8) error {
	f.Lock()
	defer f.Unlock()
	f.writes++
	if f.failN != 0 {
		if f.failN > 0 {
			f.failN--
		}
		return errNak
	}
	f.regs[reg] = v
	return nil
}

func (f *fake) transfers() int {
	f.Lock()
	defer f.Unlock()
	return f.reads + f.writes
}

func fastBus(t Transport) *Bus {
	return &Bus{
		Transport: t,
		Retries:   RetryCount,
		Interval:  time.Microsecond,
	}
}

func newTestDevice(t *testing.T, m Model, addr int, r *Registry) (*Device, *fake) {
	t.Helper()
	f := new(fake)
	d, err := newDevice(Config{
		Bus:      11,
		Addr:     addr,
		Model:    m,
		Registry: r,
	}, fastBus(f))
	if err != nil {
		t.Fatal(err)
	}
	return d, f
}

func mustSensor(t *testing.T, d *Device, name string) *Sensor {
	t.Helper()
	s, found := d.Sensor(name)
	if !found {
		t.Fatalf("%s: not found", name)
	}
	return s
}
