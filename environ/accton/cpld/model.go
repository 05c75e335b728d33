// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cpld

type Model int

const (
	AS7712_32X Model = iota
	AS7716_32X
	AS7816_64X
	// PlainCPLD has no port attributes; it's only reachable by address.
	PlainCPLD
	NModels
)

var modelNames = [NModels]string{
	AS7712_32X: "cpld_as7712",
	AS7716_32X: "cpld_as7716",
	AS7816_64X: "cpld_as7816",
	PlainCPLD:  "cpld_plain",
}

func (m Model) String() string {
	if m < 0 || m >= NModels {
		return "cpld_unknown"
	}
	return modelNames[m]
}

// ModelByName resolves a platform name like "cpld_as7712".
func ModelByName(name string) (Model, bool) {
	for m, s := range modelNames {
		if s == name {
			return Model(m), true
		}
	}
	return 0, false
}

// ModelNames lists the platform names in catalog order.
func ModelNames() []string {
	return append([]string(nil), modelNames[:]...)
}

type PortType uint8

const (
	HasSFP PortType = 1 << iota
	HasQSFP
)

type Getter uint8

const (
	GetNone Getter = iota
	GetBit
	GetPresentAll
)

type Setter uint8

const (
	SetNone Setter = iota
	SetBit
	SetAccess
)

// Base is a named attribute with its behaviours.
type Base struct {
	Name string
	Get  Getter
	Set  Setter
}

var (
	version    = &Base{"version", GetBit, SetNone}
	access     = &Base{"access", GetNone, SetAccess}
	presentAll = &Base{"module_present_all", GetPresentAll, SetNone}

	modulePresent = &Base{"module_present", GetBit, SetNone}
	moduleReset   = &Base{"module_reset", GetBit, SetBit}
)

// Spec places a Base at a register. For port templates Reg is the
// register holding ports 1 through 8.
type Spec struct {
	Reg    uint8
	Invert bool
	*Base
}

type modelSpecs struct {
	cmn    []Spec
	portly []Spec
}

var catalog = [NModels]modelSpecs{
	AS7712_32X: {
		cmn: []Spec{
			{0x01, false, version},
			{0x00, false, access},
			{0x30, false, presentAll},
		},
		portly: []Spec{
			{0x30, true, modulePresent},
			{0x04, true, moduleReset},
		},
	},
	AS7716_32X: {
		cmn: []Spec{
			{0x01, false, version},
			{0x00, false, access},
			{0x30, false, presentAll},
		},
		portly: []Spec{
			{0x30, true, modulePresent},
			{0x04, true, moduleReset},
		},
	},
	AS7816_64X: {
		cmn: []Spec{
			{0x01, false, version},
			{0x00, false, access},
			{0x30, false, presentAll},
		},
		portly: []Spec{
			{0x70, true, modulePresent},
			{0x04, true, moduleReset},
		},
	},
	PlainCPLD: {
		cmn: []Spec{
			{0x01, false, version},
		},
	},
}

// Catalog returns the common and per-port attribute specs of m. Both are
// nil for an unknown model.
func Catalog(m Model) (cmn, portly []Spec) {
	if m < 0 || m >= NModels {
		return nil, nil
	}
	return catalog[m].cmn, catalog[m].portly
}

// PortSpec returns the number of front panel ports of m and their type.
func PortSpec(m Model) (n int, types PortType) {
	switch m {
	case AS7712_32X, AS7716_32X:
		return 32, HasQSFP
	case AS7816_64X:
		return 64, HasQSFP
	}
	return 0, 0
}

// PresentSpec returns the per-port presence template of m, if any.
func PresentSpec(m Model) (Spec, bool) {
	_, portly := Catalog(m)
	for _, s := range portly {
		if s.Base == modulePresent {
			return s, true
		}
	}
	return Spec{}, false
}
