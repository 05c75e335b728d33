// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cpld

import (
	"bytes"
	"strings"
	"testing"

	"github.com/platinasystems/cpld/environ/accton/cpld"
)

type regs [256]uint8

func (r *regs) ReadByteData(reg uint8) (uint8, error) { return r[reg], nil }

func (r *regs) WriteByteData(reg, v uint8) error {
	r[reg] = v
	return nil
}

func withChip(t *testing.T) *regs {
	t.Helper()
	r := new(regs)
	open := Open
	Open = func(int, int) cpld.Transport { return r }
	t.Cleanup(func() { Open = open })
	return r
}

func newTestDevice(t *testing.T, m cpld.Model) (*cpld.Device, *regs) {
	t.Helper()
	r := new(regs)
	d, err := cpld.New(cpld.Config{
		Bus:       11,
		Addr:      0x60,
		Model:     m,
		Transport: r,
		Registry:  cpld.NewRegistry(),
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { d.Close() })
	return d, r
}

func TestMainStore(t *testing.T) {
	r := withChip(t)
	r[0x04] = 0xff
	err := Command{}.Main("-bus", "11", "-model", "cpld_as7712",
		"0x60", "module_reset_3", "1")
	if err != nil {
		t.Fatal(err)
	}
	if r[0x04] != 0xfb {
		t.Errorf("reg 0x%x, expected 0xfb", r[0x04])
	}
	err = Command{}.Main("-bus=11", "-model=cpld_as7712", "0x60",
		"access", "0x10 0x2a")
	if err != nil {
		t.Fatal(err)
	}
	if r[0x10] != 0x2a {
		t.Errorf("reg 0x%x, expected 0x2a", r[0x10])
	}
}

func TestMainErrors(t *testing.T) {
	withChip(t)
	for _, args := range [][]string{
		{},
		{"-bus", "x", "0x60"},
		{"-model", "cpld_as9999", "0x60"},
		{"0x80"},
		{"sixty"},
		{"0x60", "no_such_attribute"},
		{"0x60", "version", "1"},
		{"0x60", "version", "1", "2"},
		{"-l", "0x60", "version"},
		{"-watch", "0x60"},
	} {
		if err := (Command{}).Main(args...); err == nil {
			t.Errorf("%q: expected error", args)
		}
	}
}

func TestRunShowAll(t *testing.T) {
	d, r := newTestDevice(t, cpld.AS7712_32X)
	r[0x01] = 0x2c
	for i := 0x30; i < 0x34; i++ {
		r[i] = 0xff
	}
	r[0x30] = 0xfe
	buf := new(bytes.Buffer)
	if err := run(buf, d); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, line := range []string{
		"version: 2c\n",
		"module_present_all: fe ff ff ff\n",
		"module_present_1: 1\n",
		"module_present_2: 0\n",
	} {
		if !strings.Contains(out, line) {
			t.Errorf("missing %q", line)
		}
	}
	if strings.Contains(out, "access") {
		t.Error("showed write only attribute")
	}
}

func TestRunShowOne(t *testing.T) {
	d, r := newTestDevice(t, cpld.PlainCPLD)
	r[0x01] = 0x07
	buf := new(bytes.Buffer)
	if err := run(buf, d, "version"); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "7\n" {
		t.Errorf("%q", buf.String())
	}
	if err := run(buf, d, "access"); err == nil {
		t.Error("showed write only attribute")
	}
}

func TestList(t *testing.T) {
	d, _ := newTestDevice(t, cpld.AS7816_64X)
	buf := new(bytes.Buffer)
	list(buf, d)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if n := len(d.Sensors()); len(lines) != n {
		t.Fatalf("%d lines, expected %d", len(lines), n)
	}
	var found bool
	for _, line := range lines {
		f := strings.Fields(line)
		if f[0] != "module_present_64" {
			continue
		}
		found = true
		expect := []string{"module_present_64", "port", "0x77", "0x80",
			"true", "r-"}
		if strings.Join(f, " ") != strings.Join(expect, " ") {
			t.Errorf("%q", line)
		}
	}
	if !found {
		t.Error("module_present_64 not listed")
	}
}
