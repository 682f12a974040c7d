// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

//go:build linux

package probe

import (
	"github.com/siderolabs/go-smbios/smbios"
)

func (p *Platform) logIdentity() {
	sm, err := smbios.New()
	if err != nil {
		p.log.V(1).Info("SMBIOS is not available", "error", err.Error())
		return
	}
	p.log.Info("Probing platform",
		"manufacturer", sm.SystemInformation.Manufacturer,
		"product", sm.SystemInformation.ProductName,
		"version", sm.SystemInformation.Version)
}
