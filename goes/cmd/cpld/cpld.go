// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package cpld shows and sets the attributes of an Accton CPLD.
package cpld

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	redigo "github.com/garyburd/redigo/redis"
	"github.com/platinasystems/cpld/environ/accton/cpld"
	"github.com/platinasystems/cpld/goes/cmd/cpldd"
	"github.com/platinasystems/cpld/goes/lang"
	"github.com/platinasystems/flags"
	"github.com/platinasystems/parms"
	"github.com/platinasystems/redis"
)

const Name = "cpld"

// Open returns the transport of the chip at BUS, ADDR.
var Open = func(bus, addr int) cpld.Transport {
	return &cpld.I2cDev{Bus: bus, Addr: addr}
}

type Command struct{}

func (Command) String() string { return Name }

func (Command) Usage() string {
	return "cpld [-bus BUS] [-model MODEL] [-l] ADDR [ATTRIBUTE [VALUE]]"
}

func (Command) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "show or set accton cpld attributes",
	}
}

func (Command) Man() lang.Alt {
	return lang.Alt{
		lang.EnUS: `
DESCRIPTION
	Without ATTRIBUTE, print every readable attribute of the CPLD at
	ADDR. With ATTRIBUTE, print its value, or store VALUE to it.

	cpld -bus 11 -model cpld_as7712 0x60 module_reset_3 1
	cpld -bus 11 -model cpld_as7712 0x60 access "0x10 0x2a"

OPTIONS
	-bus BUS	/dev/i2c-BUS, default 0
	-model MODEL	one of: ` + strings.Join(cpld.ModelNames(), ", ") + `
			default cpld_plain
	-l	list attributes with register, mask, invert and mode
	-watch	print the cpldd redis publications`,
	}
}

func (Command) Main(args ...string) error {
	flag, args := flags.New(args, "-l", "-watch")
	parm, args := parms.New(args, "-bus", "-model")

	if flag.ByName["-watch"] {
		if len(args) > 0 {
			return fmt.Errorf("%v: unexpected", args)
		}
		return watch(os.Stdout)
	}

	if len(parm.ByName["-bus"]) == 0 {
		parm.ByName["-bus"] = "0"
	}
	if len(parm.ByName["-model"]) == 0 {
		parm.ByName["-model"] = cpld.PlainCPLD.String()
	}
	busno, err := strconv.Atoi(parm.ByName["-bus"])
	if err != nil || busno < 0 {
		return fmt.Errorf("%s: invalid bus", parm.ByName["-bus"])
	}
	m, found := cpld.ModelByName(parm.ByName["-model"])
	if !found {
		return fmt.Errorf("%s: unknown model", parm.ByName["-model"])
	}

	switch len(args) {
	case 0:
		return fmt.Errorf("ADDR: missing")
	case 1, 2, 3:
	default:
		return fmt.Errorf("%v: unexpected", args[3:])
	}
	addr, err := strconv.ParseUint(args[0], 0, 7)
	if err != nil {
		return fmt.Errorf("%s: invalid address", args[0])
	}

	d, err := cpld.New(cpld.Config{
		Bus:       busno,
		Addr:      int(addr),
		Model:     m,
		Transport: Open(busno, int(addr)),
		Registry:  cpld.NewRegistry(),
	})
	if err != nil {
		return err
	}
	defer d.Close()

	if flag.ByName["-l"] {
		if len(args) > 1 {
			return fmt.Errorf("%v: unexpected", args[1:])
		}
		list(os.Stdout, d)
		return nil
	}
	return run(os.Stdout, d, args[1:]...)
}

func list(w io.Writer, d *cpld.Device) {
	for _, s := range d.Sensors() {
		fmt.Fprintf(w, "%-24s %-6s 0x%02x 0x%02x %-5t %s\n",
			s.Name, s.Class, s.Reg, s.Mask, s.Invert, s.Mode())
	}
}

func run(w io.Writer, d *cpld.Device, args ...string) error {
	if len(args) == 0 {
		sensors := d.Sensors()
		for i := range sensors {
			s := &sensors[i]
			if !s.Readable() {
				continue
			}
			v, err := d.Show(s)
			if err != nil {
				return err
			}
			fmt.Fprint(w, s.Name, ": ", v)
		}
		return nil
	}
	s, found := d.Sensor(args[0])
	if !found {
		return fmt.Errorf("%s: %s: not found", d, args[0])
	}
	if len(args) == 1 {
		v, err := d.Show(s)
		if err != nil {
			return err
		}
		fmt.Fprint(w, v)
		return nil
	}
	return d.Store(s, args[1])
}

func watch(w io.Writer) error {
	psc, err := redis.Subscribe(redis.DefaultHash)
	if err != nil {
		return err
	}
	defer psc.Close()
	for {
		switch t := psc.Receive().(type) {
		case redigo.Message:
			if t.Channel != redis.DefaultHash {
				continue
			}
			if s := string(t.Data); strings.HasPrefix(s, cpldd.KeyPrefix) {
				fmt.Fprintln(w, s)
			}
		case error:
			return t
		}
	}
}
