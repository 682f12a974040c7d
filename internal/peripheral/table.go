// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package peripheral

import "errors"

const (
	// NotFound is returned by Resolve when no row matches. It is outside the
	// index domain because a table never holds more than MaxCapacity rows.
	NotFound uint32 = 0xFF

	// MaxCapacity is the largest number of rows a table can hold.
	MaxCapacity = int(NotFound)
)

var ErrTableFull = errors.New("peripheral table is full")

// Table is the peripheral descriptor table. It is allocated by the caller
// with a fixed capacity and filled once by a Producer.
type Table struct {
	Header Header

	rows []Descriptor
}

// NewTable allocates an empty table able to hold capacity rows. The capacity
// is clamped to [0, MaxCapacity].
func NewTable(capacity int) *Table {
	capacity = max(0, min(capacity, MaxCapacity))
	return &Table{rows: make([]Descriptor, 0, capacity)}
}

// Append adds a row at the end of the table.
func (t *Table) Append(d Descriptor) error {
	if len(t.rows) == cap(t.rows) {
		return ErrTableFull
	}
	t.rows = append(t.rows, d)
	return nil
}

// Len returns the number of populated rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Cap returns the row capacity.
func (t *Table) Cap() int {
	return cap(t.rows)
}

// Row returns the row at index i.
func (t *Table) Row(i int) (Descriptor, bool) {
	if i < 0 || i >= len(t.rows) {
		return Descriptor{}, false
	}
	return t.rows[i], true
}

// Rows returns a copy of the populated rows.
func (t *Table) Rows() []Descriptor {
	rows := make([]Descriptor, len(t.rows))
	copy(rows, t.rows)
	return rows
}

// Reset clears the header and all rows, keeping the capacity.
func (t *Table) Reset() {
	t.Header = Header{}
	clear(t.rows)
	t.rows = t.rows[:0]
}

func (t *Table) lookup(typ Type, instance uint32) (Descriptor, bool) {
	i := Resolve(t, typ, instance)
	if i == NotFound {
		return Descriptor{}, false
	}
	return t.rows[i], true
}
