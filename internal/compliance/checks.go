// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package compliance

import (
	"github.com/go-logr/logr"

	"github.com/ironcore-dev/peripheral-registry/internal/peripheral"
)

// PeripheralChecks returns the peripheral battery in execution order.
func PeripheralChecks(log logr.Logger, q Querier) []Check {
	return []Check{
		&usbInterfaceCheck{log: log.WithValues("check", "d001"), q: q},
		&sataInterfaceCheck{log: log.WithValues("check", "d002"), q: q},
		&uartCheck{log: log.WithValues("check", "d003"), q: q},
		&memoryMapCheck{log: log.WithValues("check", "m001"), q: q},
	}
}

// usbInterfaceCheck requires every USB controller to be EHCI or xHCI.
type usbInterfaceCheck struct {
	log logr.Logger
	q   Querier
}

func (c *usbInterfaceCheck) ID() string { return "d001" }

func (c *usbInterfaceCheck) Run(_ uint32) Status {
	count := uint32(c.q.Info(peripheral.NumUSB, 0))
	if count == 0 {
		c.log.Info("No USB controllers found")
		return StatusSkip
	}
	for i := range count {
		if c.q.Resolve(peripheral.TypeUSB, i) == peripheral.NotFound {
			c.log.Error(nil, "USB controller is missing from the table", "instance", i, "expected", count)
			return StatusFail
		}
		iface := uint32(c.q.Info(peripheral.USBFlags, i))
		if iface != peripheral.InterfaceEHCI && iface != peripheral.InterfaceXHCI {
			c.log.Error(nil, "USB controller is neither EHCI nor xHCI", "instance", i, "interface", iface)
			return StatusFail
		}
	}
	return StatusPass
}

// sataInterfaceCheck requires every SATA controller to be AHCI.
type sataInterfaceCheck struct {
	log logr.Logger
	q   Querier
}

func (c *sataInterfaceCheck) ID() string { return "d002" }

func (c *sataInterfaceCheck) Run(_ uint32) Status {
	count := uint32(c.q.Info(peripheral.NumSATA, 0))
	if count == 0 {
		c.log.Info("No SATA controllers found")
		return StatusSkip
	}
	for i := range count {
		if c.q.Resolve(peripheral.TypeSATA, i) == peripheral.NotFound {
			c.log.Error(nil, "SATA controller is missing from the table", "instance", i, "expected", count)
			return StatusFail
		}
		iface := uint32(c.q.Info(peripheral.SATAFlags, i))
		if iface != peripheral.InterfaceAHCI {
			c.log.Error(nil, "SATA controller is not AHCI", "instance", i, "interface", iface)
			return StatusFail
		}
	}
	return StatusPass
}

// uartCheck requires every UART to expose a base address and an interrupt.
type uartCheck struct {
	log logr.Logger
	q   Querier
}

func (c *uartCheck) ID() string { return "d003" }

func (c *uartCheck) Run(_ uint32) Status {
	count := uint32(c.q.Info(peripheral.NumUART, 0))
	if count == 0 {
		c.log.Info("No UART controllers found")
		return StatusSkip
	}
	for i := range count {
		base := c.q.Info(peripheral.UARTBase0, i)
		if base == 0 {
			c.log.Error(nil, "UART base address is not set", "instance", i)
			return StatusFail
		}
		if c.q.Info(peripheral.UARTGSIV, i) == 0 {
			c.log.Error(nil, "UART interrupt is not set", "instance", i, "base", base)
			return StatusFail
		}
	}
	return StatusPass
}

// memoryMapCheck requires controllers not to share a BAR0 base address.
type memoryMapCheck struct {
	log logr.Logger
	q   Querier
}

func (c *memoryMapCheck) ID() string { return "m001" }

func (c *memoryMapCheck) Run(_ uint32) Status {
	groups := []struct {
		typ   peripheral.Type
		count peripheral.InfoKind
		base  peripheral.InfoKind
	}{
		{peripheral.TypeUSB, peripheral.NumUSB, peripheral.USBBase0},
		{peripheral.TypeSATA, peripheral.NumSATA, peripheral.SATABase0},
		{peripheral.TypeUART, peripheral.NumUART, peripheral.UARTBase0},
	}

	seen := map[uint64]peripheral.Type{}
	checked := 0
	for _, g := range groups {
		count := min(uint32(c.q.Info(g.count, 0)), uint32(peripheral.MaxCapacity))
		for i := range count {
			base := c.q.Info(g.base, i)
			if base == 0 {
				continue
			}
			checked++
			if owner, ok := seen[base]; ok {
				c.log.Error(nil, "Controllers share a base address", "base", base, "type", g.typ.String(), "instance", i, "owner", owner.String())
				return StatusFail
			}
			seen[base] = g.typ
		}
	}
	if checked == 0 {
		c.log.Info("No mapped controllers found")
		return StatusSkip
	}
	return StatusPass
}
