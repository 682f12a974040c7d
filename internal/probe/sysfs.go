// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
)

var (
	pathSysBusPCIDevices = "/sys/bus/pci/devices"
	pathSysClassTTY      = "/sys/class/tty"
)

func readString(path string) (string, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("unable to read file %s: %w", path, err)
	}
	return strings.TrimSpace(string(contents)), nil
}

// readUint parses decimal or 0x prefixed hexadecimal sysfs attributes.
func readUint(path string) (uint64, error) {
	s, err := readString(path)
	if err != nil {
		return 0, err
	}
	num, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("unable to convert %s to uint: %w", path, err)
	}
	return num, nil
}

// readPCIResources returns the start address of every region listed in a
// PCI device resource file. Index i holds BAR i.
func readPCIResources(path string) ([]uint64, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read file %s: %w", path, err)
	}

	var starts []uint64
	scanner := bufio.NewScanner(bytes.NewReader(contents))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		start, err := strconv.ParseUint(fields[0], 0, 64)
		if err != nil {
			return nil, fmt.Errorf("unable to parse resource line %q in %s: %w", scanner.Text(), path, err)
		}
		starts = append(starts, start)
	}
	return starts, scanner.Err()
}
