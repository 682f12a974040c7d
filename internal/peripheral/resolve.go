// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package peripheral

// Resolve returns the index of the row holding the given zero-based instance
// of typ, or NotFound. Instances are counted per type in table order. The scan
// stops at the last populated row or at the first terminator row, whichever
// comes first.
func Resolve(t *Table, typ Type, instance uint32) uint32 {
	if t == nil {
		return NotFound
	}
	for i := 0; i < len(t.rows) && i < MaxCapacity; i++ {
		rowType := t.rows[i].Type
		if rowType == TypeTerminator {
			break
		}
		if rowType != typ {
			continue
		}
		if instance == 0 {
			return uint32(i)
		}
		instance--
	}
	return NotFound
}
