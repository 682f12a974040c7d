// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package peripheral

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Binary layout shared with platform layers that fill the table in place:
//
//	header: num_usb u32 | num_sata u32 | num_uart u32 | reserved u32
//	row:    type u32 | bdf u32 | base0 u64 | base1 u64 | irq u32 | flags u32
//
// All fields are little endian. The rows are followed by exactly one row
// whose type is TypeTerminator.
const (
	HeaderSize = 16
	RowSize    = 32
)

var ErrMissingTerminator = errors.New("peripheral table is not terminated")

// ImageSize returns the number of bytes needed for the binary form of a
// table holding capacity rows plus the terminator.
func ImageSize(capacity int) int {
	return HeaderSize + (capacity+1)*RowSize
}

// MarshalBinary encodes the table in its sentinel terminated form. Rows are
// written up to the first terminator row.
func (t *Table) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, ImageSize(len(t.rows)))
	buf = binary.LittleEndian.AppendUint32(buf, t.Header.NumUSB)
	buf = binary.LittleEndian.AppendUint32(buf, t.Header.NumSATA)
	buf = binary.LittleEndian.AppendUint32(buf, t.Header.NumUART)
	buf = binary.LittleEndian.AppendUint32(buf, 0)
	for _, row := range t.rows {
		if row.Type == TypeTerminator {
			break
		}
		buf = appendRow(buf, row)
	}
	return appendRow(buf, Descriptor{Type: TypeTerminator}), nil
}

// UnmarshalBinary replaces the table contents with the decoded image. Decoding
// stops at the terminator row. If the image holds more rows than the table
// capacity, or ends before a terminator is found, the rows read so far are
// kept and ErrMissingTerminator is returned. A zero Table decodes up to
// MaxCapacity rows; a table from NewTable keeps its capacity.
func (t *Table) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("peripheral table header: %w", io.ErrUnexpectedEOF)
	}
	if t.rows == nil {
		t.rows = make([]Descriptor, 0, MaxCapacity)
	}
	t.Reset()
	t.Header = Header{
		NumUSB:  binary.LittleEndian.Uint32(data[0:4]),
		NumSATA: binary.LittleEndian.Uint32(data[4:8]),
		NumUART: binary.LittleEndian.Uint32(data[8:12]),
	}

	data = data[HeaderSize:]
	for len(data) >= RowSize {
		row := decodeRow(data[:RowSize])
		if row.Type == TypeTerminator {
			return nil
		}
		if err := t.Append(row); err != nil {
			return fmt.Errorf("%w within %d rows", ErrMissingTerminator, t.Cap())
		}
		data = data[RowSize:]
	}
	return ErrMissingTerminator
}

func appendRow(buf []byte, d Descriptor) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(d.Type))
	buf = binary.LittleEndian.AppendUint32(buf, d.BDF)
	buf = binary.LittleEndian.AppendUint64(buf, d.Base0)
	buf = binary.LittleEndian.AppendUint64(buf, d.Base1)
	buf = binary.LittleEndian.AppendUint32(buf, d.IRQ)
	return binary.LittleEndian.AppendUint32(buf, d.Flags)
}

func decodeRow(b []byte) Descriptor {
	return Descriptor{
		Type:  Type(binary.LittleEndian.Uint32(b[0:4])),
		BDF:   binary.LittleEndian.Uint32(b[4:8]),
		Base0: binary.LittleEndian.Uint64(b[8:16]),
		Base1: binary.LittleEndian.Uint64(b[16:24]),
		IRQ:   binary.LittleEndian.Uint32(b[24:28]),
		Flags: binary.LittleEndian.Uint32(b[28:32]),
	}
}
