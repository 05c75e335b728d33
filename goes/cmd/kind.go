// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cmd

// Daemon commands run in the foreground until signaled, then Close.
const Daemon Kind = 1 << iota

func WhatKind(v interface{}) Kind {
	if m, found := v.(kinder); found {
		return m.Kind()
	}
	return 0
}

type kinder interface {
	Kind() Kind
}

type Kind uint16

func (k Kind) IsDaemon() bool { return (k & Daemon) == Daemon }

func (k Kind) String() string {
	if k == Daemon {
		return "daemon"
	}
	return "command"
}
