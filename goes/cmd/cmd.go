// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cmd

import (
	"sync"

	"github.com/platinasystems/cpld/goes/lang"
)

// Machines provide this map of command initters
var Initters map[string]func()

var cmdinit struct {
	mutex sync.Mutex
	done  map[string]bool
}

// Commands use Init(Name) to perform the machine specific init
func Init(name string) {
	cmdinit.mutex.Lock()
	defer cmdinit.mutex.Unlock()
	if cmdinit.done == nil {
		cmdinit.done = make(map[string]bool)
	}
	if !cmdinit.done[name] {
		if init, ok := Initters[name]; ok {
			init()
			cmdinit.done[name] = true
		}
	}
}

type Cmd interface {
	Apropos() lang.Alt
	Main(...string) error
	// String returns the command name.
	String() string
	Usage() string
	/* Optional
	Close() error
	Kind() Kind
	Man() lang.Alt
	*/
}
