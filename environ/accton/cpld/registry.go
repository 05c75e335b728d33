// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cpld

import (
	"fmt"
	"sync"
)

// Registry is an address keyed list of live devices. It doesn't own the
// devices; New adds and Close removes them. A later registration at the
// same address shadows the earlier one until it's removed.
type Registry struct {
	mutex   sync.RWMutex
	devices []*Device
}

var DefaultRegistry = NewRegistry()

func NewRegistry() *Registry { return new(Registry) }

func (r *Registry) Register(d *Device) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.devices = append([]*Device{d}, r.devices...)
}

func (r *Registry) Unregister(d *Device) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	for i, x := range r.devices {
		if x == d {
			r.devices = append(r.devices[:i], r.devices[i+1:]...)
			return
		}
	}
}

func (r *Registry) Find(addr int) (*Device, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	d := r.find(addr)
	return d, d != nil
}

func (r *Registry) find(addr int) *Device {
	for _, d := range r.devices {
		if d.addr == addr {
			return d
		}
	}
	return nil
}

// Read reg of the device registered at addr. Unregister waits for the
// transfer to finish.
func (r *Registry) Read(addr int, reg uint8) (uint8, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	d := r.find(addr)
	if d == nil {
		return 0, fmt.Errorf("cpld 0x%02x: %w", addr, ErrPermissionDenied)
	}
	return d.ReadRegister(reg)
}

// Write reg of the device registered at addr.
func (r *Registry) Write(addr int, reg, v uint8) error {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	d := r.find(addr)
	if d == nil {
		return fmt.Errorf("cpld 0x%02x: %w", addr, ErrNotFound)
	}
	return d.WriteRegister(reg, v)
}

// ReadRegister reads reg of the CPLD at addr in the DefaultRegistry.
func ReadRegister(addr int, reg uint8) (uint8, error) {
	return DefaultRegistry.Read(addr, reg)
}

// WriteRegister writes reg of the CPLD at addr in the DefaultRegistry.
func WriteRegister(addr int, reg, v uint8) error {
	return DefaultRegistry.Write(addr, reg, v)
}
