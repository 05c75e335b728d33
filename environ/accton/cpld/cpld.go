// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package cpld provides access to the Accton I2C CPLD of the AS7712-32X,
// AS7716-32X and AS7816-64X switches.
//
// Each register field of the chip is a named Sensor, e.g. "version" or
// "module_reset_12". The sensor set of a Device is generated from the
// model catalog when the Device is created and never changes after.
// Other drivers on the same bus may reach a CPLD by address through
// ReadRegister and WriteRegister.
package cpld

import (
	"fmt"
	"sync"

	"github.com/platinasystems/log"
)

type Config struct {
	// Bus is the /dev/i2c-BUS index and Addr the chip's address.
	Bus   int
	Addr  int
	Model Model

	// Transport defaults to &I2cDev{Bus, Addr}.
	Transport Transport
	// Registry defaults to DefaultRegistry.
	Registry *Registry
}

type Device struct {
	model   Model
	busno   int
	addr    int
	ports   int
	types   PortType
	sensors []Sensor
	byName  map[string]int

	mu  sync.Mutex
	bus *Bus
	reg *Registry
}

// New builds the attribute set of the configured chip then registers it.
// On error nothing is registered.
func New(cfg Config) (*Device, error) {
	t := cfg.Transport
	if t == nil {
		t = &I2cDev{Bus: cfg.Bus, Addr: cfg.Addr}
	}
	return newDevice(cfg, NewBus(t))
}

func newDevice(cfg Config, bus *Bus) (*Device, error) {
	d := &Device{
		model: cfg.Model,
		busno: cfg.Bus,
		addr:  cfg.Addr,
		bus:   bus,
		reg:   cfg.Registry,
	}
	if d.reg == nil {
		d.reg = DefaultRegistry
	}
	d.ports, d.types = PortSpec(d.model)
	sensors, err := Sensors(d.model, d.ports)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d, err)
	}
	d.byName = make(map[string]int, len(sensors))
	for i, s := range sensors {
		if _, found := d.byName[s.Name]; found {
			return nil, fmt.Errorf("%s: %s: duplicate: %w",
				d, s.Name, ErrInvalidConfig)
		}
		d.byName[s.Name] = i
	}
	d.sensors = sensors
	log.Print("notice: ", d, ": chip found, ", len(sensors), " attributes")
	d.reg.Register(d)
	return d, nil
}

// Close unregisters d. Sensors may not be used after.
func (d *Device) Close() error {
	d.reg.Unregister(d)
	return nil
}

// String is the linux style device name, BUS-00ADDR.
func (d *Device) String() string {
	return fmt.Sprintf("%d-%04x", d.busno, d.addr)
}

func (d *Device) Model() Model { return d.model }
func (d *Device) Bus() int     { return d.busno }
func (d *Device) Addr() int    { return d.addr }

func (d *Device) Ports() (int, PortType) { return d.ports, d.types }

// Sensors returns the attribute list in creation order; the caller
// mustn't modify it.
func (d *Device) Sensors() []Sensor { return d.sensors }

func (d *Device) Sensor(name string) (*Sensor, bool) {
	i, found := d.byName[name]
	if !found {
		return nil, false
	}
	return &d.sensors[i], true
}

// ReadRegister reads reg while holding the device lock.
func (d *Device) ReadRegister(reg uint8) (uint8, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.bus.Read(reg)
}

// WriteRegister writes reg while holding the device lock.
func (d *Device) WriteRegister(reg, v uint8) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.bus.Write(reg, v)
}
