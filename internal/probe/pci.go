// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jaypipes/ghw"

	"github.com/ironcore-dev/peripheral-registry/internal/peripheral"
)

const (
	pciClassMassStorage = "01"
	pciSubclassSATA     = "06"
	pciClassSerialBus   = "0c"
	pciSubclassUSB      = "03"

	// AHCI exposes its register block (ABAR) in BAR5.
	sataABAR = 5
)

func classifyPCIDevice(dev *ghw.PCIDevice) (peripheral.Type, bool) {
	if dev == nil || dev.Class == nil || dev.Subclass == nil {
		return 0, false
	}
	switch {
	case strings.EqualFold(dev.Class.ID, pciClassSerialBus) && strings.EqualFold(dev.Subclass.ID, pciSubclassUSB):
		return peripheral.TypeUSB, true
	case strings.EqualFold(dev.Class.ID, pciClassMassStorage) && strings.EqualFold(dev.Subclass.ID, pciSubclassSATA):
		return peripheral.TypeSATA, true
	default:
		return 0, false
	}
}

func (p *Platform) collectPCIControllers() ([]peripheral.Descriptor, error) {
	pci, err := p.pciInfo()
	if err != nil {
		return nil, fmt.Errorf("could not get PCI info: %w", err)
	}

	var controllers []peripheral.Descriptor
	for _, dev := range pci.Devices {
		typ, ok := classifyPCIDevice(dev)
		if !ok {
			continue
		}
		controllers = append(controllers, p.pciDescriptor(typ, dev))
	}
	return controllers, nil
}

// pciDescriptor fills what the host exposes. Missing attributes stay zero.
func (p *Platform) pciDescriptor(typ peripheral.Type, dev *ghw.PCIDevice) peripheral.Descriptor {
	log := p.log.WithValues("address", dev.Address, "type", typ.String())
	d := peripheral.Descriptor{Type: typ}

	bdf, err := peripheral.ParseBDF(dev.Address)
	if err != nil {
		log.Error(err, "Failed to parse PCI address")
	}
	d.BDF = bdf

	if dev.ProgrammingInterface != nil {
		iface, err := strconv.ParseUint(dev.ProgrammingInterface.ID, 16, 8)
		if err != nil {
			log.Error(err, "Failed to parse programming interface", "id", dev.ProgrammingInterface.ID)
		}
		d.Flags = uint32(iface)
	}

	devDir := filepath.Join(pathSysBusPCIDevices, dev.Address)
	bars, err := readPCIResources(filepath.Join(devDir, "resource"))
	if err != nil {
		log.V(1).Info("No PCI resources found", "error", err.Error())
	}
	if len(bars) > 0 {
		d.Base0 = bars[0]
	}
	if typ == peripheral.TypeSATA && len(bars) > sataABAR {
		d.Base1 = bars[sataABAR]
	}

	irq, err := readUint(filepath.Join(devDir, "irq"))
	if err != nil {
		log.V(1).Info("No interrupt found", "error", err.Error())
	}
	d.IRQ = uint32(irq)
	return d
}
