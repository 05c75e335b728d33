// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cpld

import "fmt"

const (
	MaxPorts = 64
	NameSize = 24
)

// RegBit returns the register and mask of the zero based port index with
// eight ports packed per register, port 0 in bit 0 of start.
func RegBit(start uint8, index int) (reg, mask uint8) {
	return start + uint8(index/8), 1 << uint(index%8)
}

func newSensor(name string, reg, mask uint8, invert bool, class Class,
	b *Base) (Sensor, error) {
	if len(name) > NameSize {
		return Sensor{}, fmt.Errorf("%s: name exceeds %d: %w",
			name, NameSize, ErrResourceExhausted)
	}
	return Sensor{
		Name:   name,
		Reg:    reg,
		Mask:   mask,
		Invert: invert,
		Class:  class,
		Get:    b.Get,
		Set:    b.Set,
	}, nil
}

// Sensors expands the catalog entry of m for the given port count into
// the complete attribute list; common attributes first, then each port
// template in port order.
func Sensors(m Model, ports int) ([]Sensor, error) {
	cmn, portly := Catalog(m)
	if cmn == nil {
		return nil, fmt.Errorf("%v: no attributes: %w", m, ErrInvalidConfig)
	}
	if ports < 0 || ports > MaxPorts {
		return nil, fmt.Errorf("%v: %d ports: %w", m, ports,
			ErrResourceExhausted)
	}
	sensors := make([]Sensor, 0, len(cmn)+ports*len(portly))
	for _, c := range cmn {
		s, err := newSensor(c.Name, c.Reg, 0xff, c.Invert, Common, c.Base)
		if err != nil {
			return nil, err
		}
		sensors = append(sensors, s)
	}
	for _, p := range portly {
		for i := 0; i < ports; i++ {
			reg, mask := RegBit(p.Reg, i)
			name := fmt.Sprintf("%s_%d", p.Name, i+1)
			s, err := newSensor(name, reg, mask, p.Invert, Port, p.Base)
			if err != nil {
				return nil, err
			}
			sensors = append(sensors, s)
		}
	}
	if len(sensors) == 0 {
		return nil, fmt.Errorf("%v: no attributes found: %w", m,
			ErrInvalidConfig)
	}
	return sensors, nil
}
