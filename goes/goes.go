// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package goes is a small monolithic command dispatcher; the command is
// chosen by the program name or the first argument.
package goes

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/platinasystems/cpld/goes/cmd"
	"github.com/platinasystems/cpld/goes/lang"
	"github.com/platinasystems/flags"
	"github.com/platinasystems/log"
)

var Exit = os.Exit

type ByName map[string]*Goes

type Goes struct {
	Name    string
	Main    func(...string) error
	Close   func() error
	Kind    cmd.Kind
	Usage   string
	Apropos lang.Alt
	Man     lang.Alt
}

type manner interface {
	Man() lang.Alt
}

// Plot commands on map.
func (byName ByName) Plot(cmds ...cmd.Cmd) {
	for _, v := range cmds {
		g := &Goes{
			Name:    v.String(),
			Main:    v.Main,
			Kind:    cmd.WhatKind(v),
			Usage:   v.Usage(),
			Apropos: v.Apropos(),
		}
		if _, found := byName[g.Name]; found {
			panic(fmt.Errorf("%s: duplicate", g.Name))
		}
		if method, found := v.(io.Closer); found {
			g.Close = method.Close
		}
		if method, found := v.(manner); found {
			g.Man = method.Man()
		}
		byName[g.Name] = g
	}
}

func (byName ByName) Keys() []string {
	keys := make([]string, 0, len(byName))
	for k := range byName {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Main runs the named command. When run w/o args this uses os.Args and
// exits instead of returns on error.
//
// If the args has "-h", "-help", or "--help", this prints the command
// usage and man text; "-apropos" and "-usage" print just that.
//
// A daemon runs in the foreground until SIGTERM or SIGINT, then its
// Close method is called.
func (byName ByName) Main(args ...string) (err error) {
	if len(args) == 0 {
		args = os.Args
		if len(args) == 0 {
			return
		}
		defer func() {
			if err != nil && err != io.EOF {
				fmt.Fprintf(os.Stderr, "%s: %v\n",
					filepath.Base(os.Args[0]), err)
				Exit(1)
			}
		}()
	}
	if _, found := byName[filepath.Base(args[0])]; found {
		args[0] = filepath.Base(args[0])
	} else {
		args = args[1:]
	}
	if len(args) < 1 {
		byName.help(os.Stdout)
		return nil
	}
	name := args[0]
	g := byName[name]
	if g == nil {
		return fmt.Errorf("%s: command not found", name)
	}
	flag, args := flags.New(args[1:],
		"-h", "-help", "--help",
		"-apropos", "--apropos",
		"-usage", "--usage")
	switch {
	case flag.ByName["-h"] || flag.ByName["-help"] ||
		flag.ByName["--help"]:
		fmt.Println("usage:", g.Usage)
		if s := g.Man.String(); len(s) > 0 {
			fmt.Println(strings.TrimLeft(s, "\n"))
		}
		return nil
	case flag.ByName["-apropos"] || flag.ByName["--apropos"]:
		fmt.Println(g.Apropos)
		return nil
	case flag.ByName["-usage"] || flag.ByName["--usage"]:
		fmt.Println("usage:", g.Usage)
		return nil
	}
	if !g.Kind.IsDaemon() {
		err = g.Main(args...)
		if err == io.EOF {
			err = nil
		}
		return
	}
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, syscall.SIGTERM, syscall.SIGINT)
	defer func() {
		signal.Stop(sigch)
		close(sigch)
	}()
	go func() {
		if _, ok := <-sigch; ok && g.Close != nil {
			if err := g.Close(); err != nil {
				log.Print("err: ", name, ": close: ", err)
			}
		}
	}()
	log.Print("notice: ", name, ": started")
	if err = g.Main(args...); err != nil {
		log.Print("err: ", name, ": ", err)
	}
	return
}

func (byName ByName) help(w io.Writer) {
	for _, k := range byName.Keys() {
		fmt.Fprintf(w, "%-12s%s\n", k, byName[k].Apropos)
	}
}
