// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cpld

import (
	"fmt"
	"strconv"
	"strings"
)

type Class uint8

const (
	Common Class = iota
	Port
)

func (c Class) String() string {
	if c == Port {
		return "port"
	}
	return "common"
}

// Sensor is one named register field. Mask is 0xff for byte wide fields,
// otherwise a single bit.
type Sensor struct {
	Name   string
	Reg    uint8
	Mask   uint8
	Invert bool
	Class  Class
	Get    Getter
	Set    Setter
}

func (s *Sensor) Readable() bool { return s.Get != GetNone }
func (s *Sensor) Writable() bool { return s.Set != SetNone }

// Mode is the ls-style access of s, "r-", "-w" or "rw".
func (s *Sensor) Mode() string {
	m := []byte("--")
	if s.Readable() {
		m[0] = 'r'
	}
	if s.Writable() {
		m[1] = 'w'
	}
	return string(m)
}

// Show formats the current value of s followed by a newline.
func (d *Device) Show(s *Sensor) (string, error) {
	switch s.Get {
	case GetBit:
		return d.showBit(s)
	case GetPresentAll:
		return d.showPresentAll(s)
	}
	return "", fmt.Errorf("%s: %w: write only", s.Name, ErrPermissionDenied)
}

// Store writes value to s.
func (d *Device) Store(s *Sensor, value string) error {
	switch s.Set {
	case SetBit:
		return d.set1bit(s, value)
	case SetAccess:
		return d.access(value)
	}
	return fmt.Errorf("%s: %w: read only", s.Name, ErrPermissionDenied)
}

func (d *Device) showBit(s *Sensor) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := d.bus.Read(s.Reg)
	if err != nil {
		return "", err
	}
	v &= s.Mask
	if s.Invert {
		if v == 0 {
			v = 1
		} else {
			v = 0
		}
	}
	return fmt.Sprintf("%x\n", v), nil
}

func (d *Device) showPresentAll(s *Sensor) (string, error) {
	n := d.ports / 8
	vs := make([]string, 0, n)
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := 0; i < n; i++ {
		v, err := d.bus.Read(s.Reg + uint8(i))
		if err != nil {
			return "", err
		}
		vs = append(vs, fmt.Sprintf("%x", v))
	}
	return strings.Join(vs, " ") + "\n", nil
}

func (d *Device) set1bit(s *Sensor, value string) error {
	i, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return fmt.Errorf("%s: %q: %w", s.Name, value, ErrInvalidArgument)
	}
	on := i != 0
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := d.bus.Read(s.Reg)
	if err != nil {
		return err
	}
	if s.Invert {
		on = !on
	}
	if on {
		v |= s.Mask
	} else {
		v &^= s.Mask
	}
	return d.bus.Write(s.Reg, v)
}

// access writes "0xREG 0xVALUE" straight to the chip.
func (d *Device) access(value string) error {
	var reg, v uint32
	if n, err := fmt.Sscanf(value, "0x%x 0x%x", &reg, &v); err != nil || n != 2 {
		return fmt.Errorf("access: %q: %w", value, ErrInvalidArgument)
	}
	if reg > 0xff || v > 0xff {
		return fmt.Errorf("access: %q: %w", value, ErrInvalidArgument)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.bus.Write(uint8(reg), uint8(v))
}
