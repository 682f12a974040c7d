// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ironcore-dev/peripheral-registry/internal/peripheral"
)

// portUnknown is the serial core port type of an unused line.
const portUnknown = 0

// collectUARTs returns the serial core ports backed by hardware, in
// /sys/class/tty order. Unreadable attributes stay zero.
func (p *Platform) collectUARTs() ([]peripheral.Descriptor, error) {
	entries, err := os.ReadDir(pathSysClassTTY)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list tty devices: %w", err)
	}

	var uarts []peripheral.Descriptor
	for _, entry := range entries {
		dir := filepath.Join(pathSysClassTTY, entry.Name())
		// Only serial core ports carry a type attribute.
		portType, err := readUint(filepath.Join(dir, "type"))
		if err != nil || portType == portUnknown {
			continue
		}
		log := p.log.WithValues("tty", entry.Name())

		base, err := readUint(filepath.Join(dir, "iomem_base"))
		if err != nil {
			log.V(1).Info("No UART memory base found", "error", err.Error())
		}
		if base == 0 {
			if base, err = readUint(filepath.Join(dir, "port")); err != nil {
				log.V(1).Info("No UART I/O port found", "error", err.Error())
			}
		}
		irq, err := readUint(filepath.Join(dir, "irq"))
		if err != nil {
			log.V(1).Info("No UART interrupt found", "error", err.Error())
		}
		flags, err := readUint(filepath.Join(dir, "flags"))
		if err != nil {
			log.V(1).Info("No UART flags found", "error", err.Error())
		}

		uarts = append(uarts, peripheral.Descriptor{
			Type:  peripheral.TypeUART,
			Base0: base,
			IRQ:   uint32(irq),
			Flags: uint32(flags),
		})
	}
	return uarts, nil
}
