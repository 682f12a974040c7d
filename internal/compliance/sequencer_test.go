// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package compliance_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ironcore-dev/peripheral-registry/internal/compliance"
)

var _ = Describe("Status", func() {
	It("lets FAIL dominate the combination", func() {
		Expect(compliance.StatusPass | compliance.StatusFail).To(Equal(compliance.StatusFail))
		Expect(compliance.StatusSkip | compliance.StatusFail).To(Equal(compliance.StatusFail))
		Expect(compliance.StatusPass | compliance.StatusSkip).To(Equal(compliance.StatusSkip))
		Expect((compliance.StatusSkip | compliance.StatusFail).Failed()).To(BeTrue())
		Expect(compliance.StatusSkip.Failed()).To(BeFalse())
		Expect(compliance.StatusPass.Failed()).To(BeFalse())
	})

	It("names the statuses", func() {
		Expect(compliance.StatusPass.String()).To(Equal("PASS"))
		Expect(compliance.StatusSkip.String()).To(Equal("SKIP"))
		Expect(compliance.StatusFail.String()).To(Equal("FAIL"))
		Expect(compliance.Status(0x3).String()).To(Equal("Status(0x3)"))
	})
})

var _ = Describe("Sequencer", func() {
	var (
		calls  []string
		checks []compliance.Check
	)

	newChecks := func(statuses ...compliance.Status) []compliance.Check {
		ids := []string{"d001", "d002", "d003", "m001"}
		out := make([]compliance.Check, 0, len(statuses))
		for i, st := range statuses {
			out = append(out, &fakeCheck{id: ids[i], status: st, calls: &calls})
		}
		return out
	}

	BeforeEach(func() {
		calls = nil
	})

	It("starts in NotRun", func() {
		s := compliance.NewSequencer(GinkgoLogr, compliance.SkipNone, nil)
		Expect(s.State()).To(Equal(compliance.StateNotRun))
		_, ok := s.Result()
		Expect(ok).To(BeFalse())
	})

	It("runs every check once in declaration order", func() {
		checks = newChecks(compliance.StatusPass, compliance.StatusPass, compliance.StatusPass, compliance.StatusPass)
		s := compliance.NewSequencer(GinkgoLogr, compliance.SkipNone, checks)
		Expect(s.RunAll(3, 4)).To(Equal(compliance.StatusPass))
		Expect(calls).To(Equal([]string{"d001", "d002", "d003", "m001"}))
		for _, c := range checks {
			Expect(c.(*fakeCheck).peCount).To(Equal(uint32(4)))
		}
		Expect(s.State()).To(Equal(compliance.StateDone))
		status, ok := s.Result()
		Expect(ok).To(BeTrue())
		Expect(status).To(Equal(compliance.StatusPass))
	})

	It("returns FAIL when any check fails and still runs the rest", func() {
		checks = newChecks(compliance.StatusPass, compliance.StatusFail, compliance.StatusSkip, compliance.StatusPass)
		s := compliance.NewSequencer(GinkgoLogr, compliance.SkipNone, checks)
		Expect(s.RunAll(3, 1)).To(Equal(compliance.StatusFail))
		Expect(calls).To(HaveLen(4))
	})

	It("returns SKIP when checks only pass or skip", func() {
		checks = newChecks(compliance.StatusSkip, compliance.StatusPass, compliance.StatusSkip, compliance.StatusPass)
		s := compliance.NewSequencer(GinkgoLogr, compliance.SkipNone, checks)
		Expect(s.RunAll(3, 1)).To(Equal(compliance.StatusSkip))
	})

	It("skips the whole group when the skip switch names it", func() {
		checks = newChecks(compliance.StatusFail, compliance.StatusFail, compliance.StatusFail, compliance.StatusFail)
		s := compliance.NewSequencer(GinkgoLogr, compliance.PeripheralTestNumBase, checks)
		Expect(s.RunAll(3, 1)).To(Equal(compliance.StatusSkip))
		Expect(calls).To(BeEmpty())
		Expect(s.State()).To(Equal(compliance.StateDone))
	})

	It("ignores a skip switch naming another group", func() {
		checks = newChecks(compliance.StatusPass)
		s := compliance.NewSequencer(GinkgoLogr, compliance.PeripheralTestNumBase+1, checks)
		Expect(s.RunAll(3, 1)).To(Equal(compliance.StatusPass))
		Expect(calls).To(Equal([]string{"d001"}))
	})

	It("runs the checks again on every RunAll", func() {
		checks = newChecks(compliance.StatusPass, compliance.StatusPass)
		s := compliance.NewSequencer(GinkgoLogr, compliance.SkipNone, checks)
		s.RunAll(3, 1)
		s.RunAll(3, 1)
		Expect(calls).To(Equal([]string{"d001", "d002", "d001", "d002"}))
	})

	It("reports every status to the recorder", func() {
		recorder := &fakeRecorder{}
		checks = newChecks(compliance.StatusPass, compliance.StatusFail)
		s := compliance.NewSequencer(GinkgoLogr, compliance.SkipNone, checks, compliance.WithRecorder(recorder))
		s.RunAll(3, 1)
		Expect(recorder.observed).To(Equal([]recorded{
			{check: "d001", status: compliance.StatusPass},
			{check: "d002", status: compliance.StatusFail},
		}))
	})
})
