// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package inventory

import (
	"fmt"

	"github.com/ironcore-dev/peripheral-registry/internal/peripheral"
)

// Table is the printable form of a peripheral table.
type Table struct {
	Header      Header       `json:"header"`
	Peripherals []Peripheral `json:"peripherals"`
}

type Header struct {
	NumUSB  uint32 `json:"numUSB"`
	NumSATA uint32 `json:"numSATA"`
	NumUART uint32 `json:"numUART"`
}

// Peripheral is one row. Addresses and flags are hexadecimal strings.
type Peripheral struct {
	Index    int    `json:"index"`
	Type     string `json:"type"`
	Instance int    `json:"instance"`
	BDF      string `json:"bdf,omitempty"`
	Base0    string `json:"base0"`
	Base1    string `json:"base1,omitempty"`
	GSIV     uint32 `json:"gsiv"`
	Flags    string `json:"flags"`
}

// FromTable converts t. Rows after a terminator row are not listed.
func FromTable(t *peripheral.Table) Table {
	if t == nil {
		return Table{Peripherals: []Peripheral{}}
	}

	out := Table{
		Header: Header{
			NumUSB:  t.Header.NumUSB,
			NumSATA: t.Header.NumSATA,
			NumUART: t.Header.NumUART,
		},
		Peripherals: make([]Peripheral, 0, t.Len()),
	}
	instances := map[peripheral.Type]int{}
	for i, d := range t.Rows() {
		if d.Type == peripheral.TypeTerminator {
			break
		}
		p := Peripheral{
			Index:    i,
			Type:     d.Type.String(),
			Instance: instances[d.Type],
			Base0:    hex(d.Base0),
			GSIV:     d.IRQ,
			Flags:    hex(uint64(d.Flags)),
		}
		if d.Type != peripheral.TypeUART {
			p.BDF = peripheral.FormatBDF(d.BDF)
		}
		if d.Base1 != 0 {
			p.Base1 = hex(d.Base1)
		}
		instances[d.Type]++
		out.Peripherals = append(out.Peripherals, p)
	}
	return out
}

func hex(v uint64) string {
	return fmt.Sprintf("%#x", v)
}
