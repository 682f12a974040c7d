// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package peripheral_test

import (
	"encoding/binary"
	"io"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ironcore-dev/peripheral-registry/internal/peripheral"
)

var _ = Describe("Table", func() {
	It("clamps the capacity", func() {
		Expect(peripheral.NewTable(-1).Cap()).To(BeZero())
		Expect(peripheral.NewTable(1000).Cap()).To(Equal(peripheral.MaxCapacity))
	})

	It("rejects rows beyond its capacity", func() {
		t := peripheral.NewTable(1)
		Expect(t.Append(peripheral.Descriptor{Type: peripheral.TypeUSB})).To(Succeed())
		Expect(t.Append(peripheral.Descriptor{Type: peripheral.TypeUSB})).To(MatchError(peripheral.ErrTableFull))
		Expect(t.Len()).To(Equal(1))
	})

	It("hands out copies of its rows", func() {
		t := peripheral.NewTable(2)
		Expect(t.Append(peripheral.Descriptor{Type: peripheral.TypeUART, Base0: 0x10})).To(Succeed())
		rows := t.Rows()
		rows[0].Base0 = 0x20
		row, ok := t.Row(0)
		Expect(ok).To(BeTrue())
		Expect(row.Base0).To(Equal(uint64(0x10)))
		_, ok = t.Row(1)
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Resolve", func() {
	var t *peripheral.Table

	BeforeEach(func() {
		t = peripheral.NewTable(16)
		for _, typ := range []peripheral.Type{
			peripheral.TypeSATA, peripheral.TypeUSB, peripheral.TypeSATA, peripheral.TypeUART, peripheral.TypeUSB, peripheral.TypeSATA,
		} {
			Expect(t.Append(peripheral.Descriptor{Type: typ})).To(Succeed())
		}
	})

	DescribeTable("returns the k-th matching row in table order",
		func(typ peripheral.Type, instance, expected uint32) {
			Expect(peripheral.Resolve(t, typ, instance)).To(Equal(expected))
		},
		Entry("first SATA", peripheral.TypeSATA, uint32(0), uint32(0)),
		Entry("second SATA", peripheral.TypeSATA, uint32(1), uint32(2)),
		Entry("third SATA", peripheral.TypeSATA, uint32(2), uint32(5)),
		Entry("fourth SATA", peripheral.TypeSATA, uint32(3), peripheral.NotFound),
		Entry("first USB", peripheral.TypeUSB, uint32(0), uint32(1)),
		Entry("second USB", peripheral.TypeUSB, uint32(1), uint32(4)),
		Entry("third USB", peripheral.TypeUSB, uint32(2), peripheral.NotFound),
		Entry("first UART", peripheral.TypeUART, uint32(0), uint32(3)),
		Entry("unknown type", peripheral.Type(0x42), uint32(0), peripheral.NotFound),
	)

	It("stops at a terminator row", func() {
		t = peripheral.NewTable(4)
		Expect(t.Append(peripheral.Descriptor{Type: peripheral.TypeUSB})).To(Succeed())
		Expect(t.Append(peripheral.Descriptor{Type: peripheral.TypeTerminator})).To(Succeed())
		Expect(t.Append(peripheral.Descriptor{Type: peripheral.TypeUSB})).To(Succeed())
		Expect(peripheral.Resolve(t, peripheral.TypeUSB, 0)).To(Equal(uint32(0)))
		Expect(peripheral.Resolve(t, peripheral.TypeUSB, 1)).To(Equal(peripheral.NotFound))
	})

	It("handles a nil or empty table", func() {
		Expect(peripheral.Resolve(nil, peripheral.TypeUSB, 0)).To(Equal(peripheral.NotFound))
		Expect(peripheral.Resolve(peripheral.NewTable(0), peripheral.TypeUSB, 0)).To(Equal(peripheral.NotFound))
	})
})

var _ = Describe("Binary form", func() {
	It("encodes the header, the rows and one terminator", func() {
		t := peripheral.NewTable(4)
		t.Header = peripheral.Header{NumUSB: 1, NumUART: 1}
		Expect(t.Append(peripheral.Descriptor{Type: peripheral.TypeUSB, Base0: 0x1000, IRQ: 5, BDF: 0x1400})).To(Succeed())
		Expect(t.Append(peripheral.Descriptor{Type: peripheral.TypeUART, Base0: 0x2000, IRQ: 7})).To(Succeed())

		data, err := t.MarshalBinary()
		Expect(err).NotTo(HaveOccurred())
		Expect(data).To(HaveLen(peripheral.ImageSize(2)))
		Expect(binary.LittleEndian.Uint32(data[0:4])).To(Equal(uint32(1)))
		Expect(binary.LittleEndian.Uint32(data[4:8])).To(Equal(uint32(0)))
		Expect(binary.LittleEndian.Uint32(data[8:12])).To(Equal(uint32(1)))

		row := data[peripheral.HeaderSize:]
		Expect(binary.LittleEndian.Uint32(row[0:4])).To(Equal(uint32(peripheral.TypeUSB)))
		Expect(binary.LittleEndian.Uint32(row[4:8])).To(Equal(uint32(0x1400)))
		Expect(binary.LittleEndian.Uint64(row[8:16])).To(Equal(uint64(0x1000)))
		Expect(binary.LittleEndian.Uint32(row[24:28])).To(Equal(uint32(5)))

		last := data[len(data)-peripheral.RowSize:]
		Expect(binary.LittleEndian.Uint32(last[0:4])).To(Equal(uint32(peripheral.TypeTerminator)))

		decoded := peripheral.NewTable(4)
		Expect(decoded.UnmarshalBinary(data)).To(Succeed())
		Expect(decoded.Header).To(Equal(t.Header))
		Expect(decoded.Rows()).To(Equal(t.Rows()))
	})

	It("reports a missing terminator and keeps the decoded rows", func() {
		t := peripheral.NewTable(4)
		Expect(t.Append(peripheral.Descriptor{Type: peripheral.TypeSATA, Base0: 0xa000})).To(Succeed())
		data, err := t.MarshalBinary()
		Expect(err).NotTo(HaveOccurred())

		decoded := peripheral.NewTable(4)
		Expect(decoded.UnmarshalBinary(data[:len(data)-peripheral.RowSize])).To(MatchError(peripheral.ErrMissingTerminator))
		Expect(decoded.Len()).To(Equal(1))
		Expect(peripheral.Resolve(decoded, peripheral.TypeSATA, 0)).To(Equal(uint32(0)))
	})

	It("stops decoding at the table capacity", func() {
		t := peripheral.NewTable(3)
		for range 3 {
			Expect(t.Append(peripheral.Descriptor{Type: peripheral.TypeUART})).To(Succeed())
		}
		data, err := t.MarshalBinary()
		Expect(err).NotTo(HaveOccurred())

		small := peripheral.NewTable(2)
		Expect(small.UnmarshalBinary(data)).To(MatchError(peripheral.ErrMissingTerminator))
		Expect(small.Len()).To(Equal(2))
	})

	It("decodes into a zero table", func() {
		data, err := peripheral.NewTable(0).MarshalBinary()
		Expect(err).NotTo(HaveOccurred())
		var t peripheral.Table
		Expect(t.UnmarshalBinary(data)).To(Succeed())
		Expect(t.Len()).To(BeZero())
		Expect(t.Cap()).To(Equal(peripheral.MaxCapacity))
	})

	It("keeps the capacity of an empty allocated table", func() {
		src := peripheral.NewTable(3)
		for range 3 {
			Expect(src.Append(peripheral.Descriptor{Type: peripheral.TypeUSB})).To(Succeed())
		}
		data, err := src.MarshalBinary()
		Expect(err).NotTo(HaveOccurred())

		t := peripheral.NewTable(0)
		Expect(t.UnmarshalBinary(data)).To(MatchError(peripheral.ErrMissingTerminator))
		Expect(t.Cap()).To(BeZero())
		Expect(t.Len()).To(BeZero())
	})

	It("rejects a truncated header", func() {
		Expect(peripheral.NewTable(1).UnmarshalBinary(make([]byte, 4))).To(MatchError(io.ErrUnexpectedEOF))
	})
})

var _ = Describe("Names", func() {
	It("parses peripheral types", func() {
		Expect(peripheral.ParseType("usb")).To(Equal(peripheral.TypeUSB))
		Expect(peripheral.ParseType(" SATA ")).To(Equal(peripheral.TypeSATA))
		_, err := peripheral.ParseType("terminator")
		Expect(err).To(MatchError(peripheral.ErrInvalidType))
		Expect(peripheral.Type(0x42).String()).To(Equal("Type(0x42)"))
	})

	It("parses info kinds", func() {
		for _, kind := range peripheral.InfoKinds() {
			Expect(peripheral.ParseInfoKind(kind.String())).To(Equal(kind))
		}
		Expect(peripheral.ParseInfoKind("uart_gsiv")).To(Equal(peripheral.UARTGSIV))
		_, err := peripheral.ParseInfoKind("USB_BASE1")
		Expect(err).To(HaveOccurred())
	})

	It("parses and formats PCI locators", func() {
		bdf, err := peripheral.ParseBDF("0000:00:14.0")
		Expect(err).NotTo(HaveOccurred())
		Expect(bdf).To(Equal(peripheral.CreateBDF(0, 0, 0x14, 0)))
		Expect(peripheral.FormatBDF(bdf)).To(Equal("0000:00:14.0"))

		bdf, err = peripheral.ParseBDF("3a:1f.7")
		Expect(err).NotTo(HaveOccurred())
		Expect(bdf).To(Equal(uint32(0x003a1f07)))

		bdf, err = peripheral.ParseBDF("00ff:00:14.0")
		Expect(err).NotTo(HaveOccurred())
		Expect(peripheral.FormatBDF(bdf)).To(Equal("00ff:00:14.0"))

		for _, addr := range []string{"", "00", "0000:00:14", "zz:00.0", "0000:00:14.0:1", "0100:00:14.0"} {
			_, err = peripheral.ParseBDF(addr)
			Expect(err).To(HaveOccurred(), addr)
		}
	})
})
