// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cpld

import "github.com/platinasystems/i2c"

// Transport is a single shot SMBus byte-data transfer to one chip.
type Transport interface {
	ReadByteData(reg uint8) (uint8, error)
	WriteByteData(reg, v uint8) error
}

// I2cDev is the /dev/i2c-BUS transport for the chip at Addr.
type I2cDev struct {
	Bus  int
	Addr int
}

func (h *I2cDev) i2cDo(rw i2c.RW, reg uint8, data *i2c.SMBusData) (err error) {
	var bus i2c.Bus

	err = bus.Open(h.Bus)
	if err != nil {
		return
	}
	defer bus.Close()

	err = bus.ForceSlaveAddress(h.Addr)
	if err != nil {
		return
	}

	err = bus.Do(rw, reg, i2c.ByteData, data)
	return
}

func (h *I2cDev) ReadByteData(reg uint8) (uint8, error) {
	var data i2c.SMBusData
	if err := h.i2cDo(i2c.Read, reg, &data); err != nil {
		return 0, err
	}
	return data[0], nil
}

func (h *I2cDev) WriteByteData(reg, v uint8) error {
	var data i2c.SMBusData
	data[0] = v
	return h.i2cDo(i2c.Write, reg, &data)
}
