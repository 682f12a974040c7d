// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package peripheral

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Type identifies the kind of peripheral a table row describes.
type Type uint32

const (
	TypeUSB  Type = 0x2000
	TypeSATA Type = 0x2001
	TypeUART Type = 0x2002

	// TypeTerminator marks the end of the row sequence in the binary layout.
	TypeTerminator Type = 0xFF
)

// Programming interfaces reported in the flags of PCI attached controllers.
const (
	InterfaceAHCI uint32 = 0x01
	InterfaceEHCI uint32 = 0x20
	InterfaceXHCI uint32 = 0x30
)

var ErrInvalidType = errors.New("invalid peripheral type")

var typeNames = map[Type]string{
	TypeUSB:        "USB",
	TypeSATA:       "SATA",
	TypeUART:       "UART",
	TypeTerminator: "TERMINATOR",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%#x)", uint32(t))
}

// ParseType returns the Type for a case-insensitive name such as "usb".
func ParseType(s string) (Type, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for t, n := range typeNames {
		if n == name && t != TypeTerminator {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidType, s)
}

// Header carries the aggregate controller counts supplied by the producer.
// The counts are not derived from the rows.
type Header struct {
	NumUSB  uint32
	NumSATA uint32
	NumUART uint32
}

// Descriptor is a single peripheral row.
type Descriptor struct {
	Type  Type
	BDF   uint32
	Base0 uint64
	Base1 uint64
	IRQ   uint32
	Flags uint32
}

// CreateBDF packs a PCI segment, bus, device and function into a locator.
func CreateBDF(seg, bus, dev, fn uint32) uint32 {
	return (seg&0xFF)<<24 | (bus&0xFF)<<16 | (dev&0xFF)<<8 | fn&0xFF
}

// ParseBDF parses a PCI address of the form "SSSS:BB:DD.F" or "BB:DD.F".
func ParseBDF(addr string) (uint32, error) {
	parts := strings.Split(addr, ":")
	var seg uint64
	switch len(parts) {
	case 3:
		// The locator holds 8 bits of segment.
		v, err := strconv.ParseUint(parts[0], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid PCI segment in %q: %w", addr, err)
		}
		seg = v
		parts = parts[1:]
	case 2:
	default:
		return 0, fmt.Errorf("invalid PCI address %q", addr)
	}

	bus, err := strconv.ParseUint(parts[0], 16, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid PCI bus in %q: %w", addr, err)
	}
	devFn := strings.Split(parts[1], ".")
	if len(devFn) != 2 {
		return 0, fmt.Errorf("invalid PCI device/function in %q", addr)
	}
	dev, err := strconv.ParseUint(devFn[0], 16, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid PCI device in %q: %w", addr, err)
	}
	fn, err := strconv.ParseUint(devFn[1], 16, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid PCI function in %q: %w", addr, err)
	}
	return CreateBDF(uint32(seg), uint32(bus), uint32(dev), uint32(fn)), nil
}

// FormatBDF renders a locator created by CreateBDF as "SSSS:BB:DD.F".
func FormatBDF(bdf uint32) string {
	return fmt.Sprintf("%04x:%02x:%02x.%x", bdf>>24&0xFF, bdf>>16&0xFF, bdf>>8&0xFF, bdf&0xFF)
}
