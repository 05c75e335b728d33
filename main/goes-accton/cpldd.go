// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package main

import (
	"time"

	"github.com/platinasystems/cpld/goes/cmd"
	"github.com/platinasystems/cpld/goes/cmd/cpldd"
	"github.com/platinasystems/log"
)

const QsfpMuxReset = "QSFP_MUX_RST_L"

func init() {
	if cmd.Initters == nil {
		cmd.Initters = make(map[string]func())
	}
	cmd.Initters[cpldd.Name] = cplddInit
}

func cplddInit() {
	cpldd.PollInterval = 5 * time.Second
	cpldd.Devices = []cpldd.Config{
		{Bus: 0, Addr: 0x60, Model: "cpld_plain"},
		{
			Bus:         0,
			Addr:        0x62,
			Model:       "cpld_as7712",
			MuxResetPin: QsfpMuxReset,
		},
	}
	if err := loadPins(Dtb, QsfpMuxReset); err != nil {
		log.Print("warning: ", Dtb, ": ", err)
	}
}
