// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cpldd

import (
	"github.com/platinasystems/cpld/environ/accton/cpld"
	"github.com/platinasystems/log"
)

type presence uint8

const (
	unknown presence = iota
	removed
	inserted
)

func (p presence) String() string {
	switch p {
	case removed:
		return "removed"
	case inserted:
		return "inserted"
	}
	return "unknown"
}

// monitor logs module insertion and removal.
func (i *Info) monitor(d *dev) error {
	spec, found := cpld.PresentSpec(d.Model())
	if !found || len(d.present) == 0 {
		return nil
	}
	regs := make([]uint8, (len(d.present)+7)/8)
	for j := range regs {
		v, err := d.ReadRegister(spec.Reg + uint8(j))
		if err != nil {
			return err
		}
		regs[j] = v
	}
	for port := range d.present {
		reg, mask := cpld.RegBit(spec.Reg, port)
		on := regs[reg-spec.Reg]&mask != 0
		if spec.Invert {
			on = !on
		}
		p := removed
		if on {
			p = inserted
		}
		if p == d.present[port] {
			continue
		}
		d.present[port] = p
		if p == removed {
			log.Print("warning: ", d, ": module ", port+1, " ", p)
		} else {
			log.Print("notice: ", d, ": module ", port+1, " ", p)
		}
	}
	return nil
}
