// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
	"k8s.io/utils/ptr"

	"github.com/ironcore-dev/peripheral-registry/internal/peripheral"
)

// Fixture describes a platform's peripherals in YAML, for running the
// harness without the hardware:
//
//	header:
//	  numUSB: 1
//	peripherals:
//	  - type: USB
//	    bdf: "0000:00:14.0"
//	    base0: 0x1000
//	    irq: 5
//	    flags: 0x30
//
// Header counts default to the number of listed peripherals of each type.
type Fixture struct {
	Header      *FixtureHeader      `yaml:"header,omitempty"`
	Peripherals []FixturePeripheral `yaml:"peripherals"`

	rows []peripheral.Descriptor
}

// FixtureHeader overrides the counts reported in the table header.
type FixtureHeader struct {
	NumUSB  *uint32 `yaml:"numUSB,omitempty"`
	NumSATA *uint32 `yaml:"numSATA,omitempty"`
	NumUART *uint32 `yaml:"numUART,omitempty"`
}

type FixturePeripheral struct {
	Type  string `yaml:"type"`
	BDF   string `yaml:"bdf,omitempty"`
	Base0 uint64 `yaml:"base0,omitempty"`
	Base1 uint64 `yaml:"base1,omitempty"`
	IRQ   uint32 `yaml:"irq,omitempty"`
	Flags uint32 `yaml:"flags,omitempty"`
}

var _ peripheral.Producer = &Fixture{}

// LoadFixture reads a fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}
	f, err := ParseFixture(data)
	if err != nil {
		return nil, fmt.Errorf("invalid fixture %s: %w", path, err)
	}
	return f, nil
}

// ParseFixture decodes a fixture document. Unknown fields are rejected.
func ParseFixture(data []byte) (*Fixture, error) {
	f := &Fixture{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	f.rows = make([]peripheral.Descriptor, 0, len(f.Peripherals))
	for i, p := range f.Peripherals {
		typ, err := peripheral.ParseType(p.Type)
		if err != nil {
			return nil, fmt.Errorf("peripherals[%d]: %w", i, err)
		}
		var bdf uint32
		if p.BDF != "" {
			if bdf, err = peripheral.ParseBDF(p.BDF); err != nil {
				return nil, fmt.Errorf("peripherals[%d]: %w", i, err)
			}
		}
		f.rows = append(f.rows, peripheral.Descriptor{
			Type:  typ,
			BDF:   bdf,
			Base0: p.Base0,
			Base1: p.Base1,
			IRQ:   p.IRQ,
			Flags: p.Flags,
		})
	}
	return f, nil
}

// Populate implements peripheral.Producer. If the table fills up, the rows
// added so far are kept, the header is still written and the error is returned.
func (f *Fixture) Populate(t *peripheral.Table) error {
	var (
		counted peripheral.Header
		err     error
	)
	for _, d := range f.rows {
		if aerr := t.Append(d); aerr != nil {
			err = fmt.Errorf("failed to add %s controller: %w", d.Type, aerr)
			break
		}
		countController(&counted, d.Type)
	}

	t.Header = counted
	if h := f.Header; h != nil {
		t.Header = peripheral.Header{
			NumUSB:  ptr.Deref(h.NumUSB, counted.NumUSB),
			NumSATA: ptr.Deref(h.NumSATA, counted.NumSATA),
			NumUART: ptr.Deref(h.NumUART, counted.NumUART),
		}
	}
	return err
}

// Image reads a peripheral table in its binary form, as written by a
// platform layer filling the table memory in place.
type Image struct {
	path string
}

var _ peripheral.Producer = &Image{}

func NewImage(path string) *Image {
	return &Image{path: path}
}

// Populate implements peripheral.Producer.
func (i *Image) Populate(t *peripheral.Table) error {
	data, err := os.ReadFile(i.path)
	if err != nil {
		return fmt.Errorf("failed to read peripheral table image %s: %w", i.path, err)
	}
	if err := t.UnmarshalBinary(data); err != nil {
		return fmt.Errorf("failed to decode peripheral table image %s: %w", i.path, err)
	}
	return nil
}
