// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/jaypipes/ghw"

	"github.com/ironcore-dev/peripheral-registry/internal/peripheral"
)

// Platform discovers the peripherals of the running host. USB and SATA
// controllers are found on PCI, UARTs through the serial core.
type Platform struct {
	log     logr.Logger
	pciInfo func() (*ghw.PCIInfo, error)
}

var _ peripheral.Producer = &Platform{}

// NewPlatform creates a Platform probing the host.
func NewPlatform(log logr.Logger) *Platform {
	return &Platform{
		log: log,
		pciInfo: func() (*ghw.PCIInfo, error) {
			return ghw.PCI()
		},
	}
}

// Populate implements peripheral.Producer. PCI controllers come first in bus
// order, followed by UARTs. If the table fills up, the rows added so far are
// kept and the error is returned.
func (p *Platform) Populate(t *peripheral.Table) error {
	p.logIdentity()

	controllers, err := p.collectPCIControllers()
	if err != nil {
		return err
	}
	uarts, err := p.collectUARTs()
	if err != nil {
		return err
	}

	for _, d := range append(controllers, uarts...) {
		if err := t.Append(d); err != nil {
			return fmt.Errorf("failed to add %s controller: %w", d.Type, err)
		}
		countController(&t.Header, d.Type)
	}
	p.log.V(1).Info("Probed platform peripherals", "rows", t.Len())
	return nil
}

func countController(h *peripheral.Header, typ peripheral.Type) {
	switch typ {
	case peripheral.TypeUSB:
		h.NumUSB++
	case peripheral.TypeSATA:
		h.NumSATA++
	case peripheral.TypeUART:
		h.NumUART++
	}
}
