// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// This is the goes machine of the Accton AS7712-32X.
package main

import (
	"github.com/platinasystems/cpld/goes"
	"github.com/platinasystems/cpld/goes/cmd/cpld"
	"github.com/platinasystems/cpld/goes/cmd/cpldd"
)

const Machine = "accton-as7712-32x"

func Goes() goes.ByName {
	g := make(goes.ByName)
	g.Plot(
		cpld.Command{},
		new(cpldd.Command),
	)
	return g
}

func main() {
	Goes().Main()
}
