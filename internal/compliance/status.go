// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package compliance

import "fmt"

// Status is the outcome of a check. Statuses combine with bitwise OR, and the
// FAIL bits dominate PASS and SKIP.
type Status uint32

const (
	StatusPass Status = 0x0
	StatusSkip Status = 0x10000000
	StatusFail Status = 0x90000000

	failBit Status = 0x80000000
)

const (
	// PeripheralTestNumBase identifies the peripheral test group. Setting the
	// skip switch to it skips the whole group.
	PeripheralTestNumBase uint32 = 600

	// SkipNone leaves every test group enabled.
	SkipNone uint32 = ^uint32(0)
)

// Failed reports whether the status carries a failure.
func (s Status) Failed() bool {
	return s&failBit != 0
}

func (s Status) String() string {
	switch {
	case s == StatusPass:
		return "PASS"
	case s == StatusSkip:
		return "SKIP"
	case s == StatusFail:
		return "FAIL"
	default:
		return fmt.Sprintf("Status(%#x)", uint32(s))
	}
}
