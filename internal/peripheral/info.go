// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package peripheral

import (
	"fmt"
	"strings"
)

// InfoKind selects the value returned by Registry.Info.
type InfoKind uint32

const (
	NumUSB InfoKind = iota + 1
	USBBase0
	USBFlags
	USBGSIV
	USBBDF
	NumSATA
	SATABase0
	SATABase1
	SATAFlags
	SATABDF
	NumUART
	UARTBase0
	UARTGSIV
	UARTFlags
)

var infoKindNames = [...]string{
	NumUSB:    "NUM_USB",
	USBBase0:  "USB_BASE0",
	USBFlags:  "USB_FLAGS",
	USBGSIV:   "USB_GSIV",
	USBBDF:    "USB_BDF",
	NumSATA:   "NUM_SATA",
	SATABase0: "SATA_BASE0",
	SATABase1: "SATA_BASE1",
	SATAFlags: "SATA_FLAGS",
	SATABDF:   "SATA_BDF",
	NumUART:   "NUM_UART",
	UARTBase0: "UART_BASE0",
	UARTGSIV:  "UART_GSIV",
	UARTFlags: "UART_FLAGS",
}

func (k InfoKind) String() string {
	if k > 0 && int(k) < len(infoKindNames) {
		return infoKindNames[k]
	}
	return fmt.Sprintf("InfoKind(%d)", uint32(k))
}

// InfoKinds returns every known kind in declaration order.
func InfoKinds() []InfoKind {
	kinds := make([]InfoKind, 0, len(infoKindNames)-1)
	for k := NumUSB; k <= UARTFlags; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseInfoKind returns the kind for a case-insensitive name such as "usb_base0".
func ParseInfoKind(s string) (InfoKind, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for _, k := range InfoKinds() {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown peripheral info kind %q", s)
}

// Info returns the value selected by kind for the given zero-based instance.
// Count kinds ignore instance. It returns 0 when no table is bound, when the
// instance does not exist and for unknown kinds.
func (r *Registry) Info(kind InfoKind, instance uint32) uint64 {
	t := r.table
	if t == nil {
		return 0
	}

	switch kind {
	case NumUSB:
		return uint64(t.Header.NumUSB)
	case NumSATA:
		return uint64(t.Header.NumSATA)
	case NumUART:
		return uint64(t.Header.NumUART)

	case USBBase0:
		if d, ok := t.lookup(TypeUSB, instance); ok {
			return d.Base0
		}
		return 0
	case USBFlags:
		if d, ok := t.lookup(TypeUSB, instance); ok {
			return uint64(d.Flags)
		}
		return 0
	case USBGSIV:
		if d, ok := t.lookup(TypeUSB, instance); ok {
			return uint64(d.IRQ)
		}
		return 0
	case USBBDF:
		if d, ok := t.lookup(TypeUSB, instance); ok {
			return uint64(d.BDF)
		}
		return 0

	case SATABase0:
		if d, ok := t.lookup(TypeSATA, instance); ok {
			return d.Base0
		}
		return 0
	case SATABase1:
		if d, ok := t.lookup(TypeSATA, instance); ok {
			return d.Base1
		}
		return 0
	case SATAFlags:
		if d, ok := t.lookup(TypeSATA, instance); ok {
			return uint64(d.Flags)
		}
		return 0
	case SATABDF:
		if d, ok := t.lookup(TypeSATA, instance); ok {
			return uint64(d.BDF)
		}
		return 0

	case UARTBase0:
		if d, ok := t.lookup(TypeUART, instance); ok {
			return d.Base0
		}
		return 0
	case UARTGSIV:
		if d, ok := t.lookup(TypeUART, instance); ok {
			return uint64(d.IRQ)
		}
		return 0
	case UARTFlags:
		if d, ok := t.lookup(TypeUART, instance); ok {
			return uint64(d.Flags)
		}
		return 0

	default:
		return 0
	}
}
