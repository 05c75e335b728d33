// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package cpldd publishes the attributes of the machine's Accton CPLDs to
// redis and stores redis hset of writable attributes to the chip.
//
// Keys are "cpld.BUS-00ADDR.ATTRIBUTE", e.g. cpld.11-0060.module_reset_3
package cpldd

import (
	"fmt"
	"net/rpc"
	"strings"
	"sync"
	"time"

	"github.com/platinasystems/atsock"
	"github.com/platinasystems/cpld/environ/accton/cpld"
	"github.com/platinasystems/cpld/goes/cmd"
	"github.com/platinasystems/cpld/goes/lang"
	"github.com/platinasystems/gpio"
	"github.com/platinasystems/log"
	"github.com/platinasystems/redis"
	"github.com/platinasystems/redis/publisher"
	"github.com/platinasystems/redis/rpc/args"
	"github.com/platinasystems/redis/rpc/reply"
)

const (
	Name      = "cpldd"
	KeyPrefix = "cpld."
)

var (
	// Machines set these in their cmd.Initters["cpldd"].
	Devices      []Config
	PollInterval = 5 * time.Second
)

type Config struct {
	Bus   int
	Addr  int
	Model string
	// MuxResetPin, if any, is pulsed low after a failed poll.
	MuxResetPin string
}

type Command struct {
	Info
	stopOnce  sync.Once
	closeOnce sync.Once
}

type printer interface {
	Print(...interface{}) (int, error)
}

type Info struct {
	mutex sync.Mutex
	rpc   *atsock.RpcServer
	pub   printer
	stop  chan struct{}
	devs  []*dev
	lasts map[string]string

	registry  *cpld.Registry
	transport func(Config) cpld.Transport
}

type dev struct {
	*cpld.Device
	muxResetPin string
	prefix      string
	present     []presence
}

func (*Command) String() string { return Name }

func (*Command) Usage() string { return Name }

func (*Command) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "accton cpld daemon, publishes to redis",
	}
}

func (*Command) Man() lang.Alt {
	return lang.Alt{
		lang.EnUS: `
DESCRIPTION
	The cpldd daemon publishes every readable attribute of the machine's
	CPLDs as cpld.BUS-00ADDR.ATTRIBUTE and stores hset of the writable
	ones, e.g.

	goes hset platina cpld.11-0060.module_reset_3 1
	goes hset platina cpld.11-0060.access "0x10 0x2a"`,
	}
}

func (*Command) Kind() cmd.Kind { return cmd.Daemon }

func (c *Command) Main(...string) error {
	stop := c.stopped()
	cmd.Init(Name)

	err := redis.IsReady()
	if err != nil {
		return err
	}

	c.lasts = make(map[string]string)

	pub, err := publisher.New()
	if err != nil {
		return err
	}
	defer pub.Close()
	c.pub = pub

	if err = c.probe(Devices); err != nil {
		return err
	}
	defer c.remove()

	if c.rpc, err = atsock.NewRpcServer(Name); err != nil {
		return err
	}
	defer c.rpc.Close()

	rpc.Register(&c.Info)
	key := redis.DefaultHash + ":" + KeyPrefix
	if err = redis.Assign(key, Name, "Info"); err != nil {
		return err
	}
	defer redis.Unassign(key)

	c.update()
	t := time.NewTicker(PollInterval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return nil
		case <-t.C:
			c.update()
		}
	}
}

// Close may be called before or during Main; a Main still starting up
// returns as soon as it reaches its poll loop.
func (c *Command) Close() error {
	stop := c.stopped()
	c.closeOnce.Do(func() { close(stop) })
	return nil
}

func (c *Command) stopped() chan struct{} {
	c.stopOnce.Do(func() { c.stop = make(chan struct{}) })
	return c.stop
}

// probe creates every configured device; on error, those already
// created are removed.
func (i *Info) probe(cfgs []Config) error {
	i.mutex.Lock()
	defer i.mutex.Unlock()
	if i.registry == nil {
		i.registry = cpld.DefaultRegistry
	}
	for _, cfg := range cfgs {
		m, found := cpld.ModelByName(cfg.Model)
		if !found {
			i.removeLocked()
			return fmt.Errorf("%d-%04x: %s: unknown model",
				cfg.Bus, cfg.Addr, cfg.Model)
		}
		var t cpld.Transport
		if i.transport != nil {
			t = i.transport(cfg)
		}
		d, err := cpld.New(cpld.Config{
			Bus:       cfg.Bus,
			Addr:      cfg.Addr,
			Model:     m,
			Transport: t,
			Registry:  i.registry,
		})
		if err != nil {
			i.removeLocked()
			return err
		}
		n, _ := d.Ports()
		i.devs = append(i.devs, &dev{
			Device:      d,
			muxResetPin: cfg.MuxResetPin,
			prefix:      KeyPrefix + d.String() + ".",
			present:     make([]presence, n),
		})
	}
	return nil
}

func (i *Info) remove() {
	i.mutex.Lock()
	defer i.mutex.Unlock()
	i.removeLocked()
}

func (i *Info) removeLocked() {
	for _, d := range i.devs {
		d.Close()
		log.Print("notice: ", d, ": removed")
	}
	i.devs = nil
}

func (i *Info) update() {
	i.mutex.Lock()
	defer i.mutex.Unlock()
	for _, d := range i.devs {
		if err := i.publishDevice(d); err != nil {
			log.Print("warning: ", d, ": ", err)
			d.muxReset()
			continue
		}
		if err := i.monitor(d); err != nil {
			log.Print("warning: ", d, ": ", err)
		}
	}
}

func (i *Info) publishDevice(d *dev) error {
	sensors := d.Sensors()
	for j := range sensors {
		s := &sensors[j]
		if !s.Readable() {
			continue
		}
		v, err := d.Show(s)
		if err != nil {
			return err
		}
		i.publish(d.prefix+s.Name, strings.TrimSpace(v))
	}
	return nil
}

func (i *Info) publish(key, value string) {
	if last, found := i.lasts[key]; found && last == value {
		return
	}
	i.pub.Print(key, ": ", value)
	i.lasts[key] = value
}

func (i *Info) lookup(field string) (*dev, *cpld.Sensor, error) {
	for _, d := range i.devs {
		if strings.HasPrefix(field, d.prefix) {
			s, found := d.Sensor(strings.TrimPrefix(field, d.prefix))
			if found {
				return d, s, nil
			}
			break
		}
	}
	return nil, nil, fmt.Errorf("cannot hset: %s", field)
}

func (i *Info) Hset(args args.Hset, reply *reply.Hset) error {
	i.mutex.Lock()
	defer i.mutex.Unlock()
	d, s, err := i.lookup(args.Field)
	if err != nil {
		return err
	}
	if !s.Writable() {
		return fmt.Errorf("cannot hset: %s: read only", args.Field)
	}
	if err = d.Store(s, string(args.Value)); err != nil {
		return err
	}
	if err = i.publishDevice(d); err != nil {
		log.Print("warning: ", d, ": ", err)
	}
	*reply = 1
	return nil
}

func (d *dev) muxReset() {
	if len(d.muxResetPin) == 0 {
		return
	}
	pin, found := gpio.Pins[d.muxResetPin]
	if !found {
		return
	}
	log.Print("notice: ", d, ": reset ", d.muxResetPin)
	pin.SetValue(false)
	time.Sleep(10 * time.Microsecond)
	pin.SetValue(true)
}
