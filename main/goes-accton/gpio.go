// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package main

import (
	"io/ioutil"
	"strconv"
	"strings"

	"github.com/platinasystems/fdt"
	"github.com/platinasystems/gpio"
)

const Dtb = "/boot/" + Machine + ".dtb"

// loadPins maps the named output pins of the device tree's gpio
// controllers; other pins are left to the platform.
func loadPins(fn string, names ...string) error {
	b, err := ioutil.ReadFile(fn)
	if err != nil {
		return err
	}
	want := make(map[string]bool, len(names))
	for _, name := range names {
		want[name] = true
	}
	gpio.Aliases = make(gpio.GpioAliasMap)
	gpio.Pins = make(gpio.PinMap)
	t := &fdt.Tree{Debug: false, IsLittleEndian: false}
	t.Parse(b)
	t.MatchNode("aliases", func(n *fdt.Node) {
		for p, v := range n.Properties {
			if strings.Contains(p, "gpio") {
				path := strings.Split(strings.Split(string(v),
					"\x00")[0], "/")
				gpio.Aliases[p] = path[len(path)-1]
			}
		}
	})
	t.EachProperty("gpio-controller", "",
		func(n *fdt.Node, name string, value string) {
			for bank, alias := range gpio.Aliases {
				if alias != n.Name {
					continue
				}
				for _, c := range n.Children {
					pin := strings.Split(c.Name, "@")
					if len(pin) != 2 || !want[pin[0]] {
						continue
					}
					for p := range c.Properties {
						if p != "output-high" &&
							p != "output-low" {
							continue
						}
						i, _ := strconv.Atoi(pin[1])
						gpio.Pins[pin[0]] =
							gpio.GpioPinMode[p] |
								gpio.GpioBankToBase[bank] |
								gpio.Pin(i)
					}
				}
			}
		})
	for name := range want {
		if pin, found := gpio.Pins[name]; found {
			if err = pin.SetDirection(); err != nil {
				return err
			}
		}
	}
	return nil
}
