// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package compliance

import (
	"github.com/go-logr/logr"

	"github.com/ironcore-dev/peripheral-registry/internal/peripheral"
)

// Querier is the view of the peripheral table available to checks.
type Querier interface {
	Info(kind peripheral.InfoKind, instance uint32) uint64
	Resolve(typ peripheral.Type, instance uint32) uint32
}

// Check is a single compliance check of the peripheral battery.
type Check interface {
	ID() string
	Run(peCount uint32) Status
}

// Recorder observes the status of every check run by a Sequencer.
type Recorder interface {
	Observe(check string, status Status)
}

// State is the lifecycle state of a Sequencer.
type State int

const (
	StateNotRun State = iota
	StateDone
)

func (s State) String() string {
	if s == StateDone {
		return "Done"
	}
	return "NotRun"
}

// SequencerOption configures a Sequencer.
type SequencerOption func(*Sequencer)

// WithRecorder reports every check status to r.
func WithRecorder(r Recorder) SequencerOption {
	return func(s *Sequencer) {
		s.recorder = r
	}
}

// Sequencer runs a fixed battery of checks and folds their statuses.
type Sequencer struct {
	log         logr.Logger
	skipTestNum uint32
	checks      []Check
	recorder    Recorder

	state  State
	result Status
}

// NewSequencer creates a Sequencer running checks in the given order.
// skipTestNum is the process wide skip switch, SkipNone when unset.
func NewSequencer(log logr.Logger, skipTestNum uint32, checks []Check, opts ...SequencerOption) *Sequencer {
	s := &Sequencer{
		log:         log,
		skipTestNum: skipTestNum,
		checks:      checks,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RunAll runs every check once, in order, and returns the consolidated status.
func (s *Sequencer) RunAll(level, peCount uint32) Status {
	log := s.log.WithValues("level", level, "peCount", peCount)

	if s.skipTestNum == PeripheralTestNumBase {
		log.Info("USER Override - Skipping all Peripheral tests")
		return s.finish(StatusSkip)
	}

	status := StatusPass
	for _, check := range s.checks {
		result := check.Run(peCount)
		log.V(1).Info("Peripheral check finished", "check", check.ID(), "status", result.String())
		if s.recorder != nil {
			s.recorder.Observe(check.ID(), result)
		}
		status |= result
	}

	if status.Failed() {
		log.Error(nil, "One or more Peripheral tests have failed", "status", status.String())
	}
	return s.finish(status)
}

func (s *Sequencer) finish(status Status) Status {
	s.state = StateDone
	s.result = status
	return status
}

// State returns the lifecycle state.
func (s *Sequencer) State() State {
	return s.state
}

// Result returns the consolidated status of the last run. ok is false until
// RunAll has been called.
func (s *Sequencer) Result() (status Status, ok bool) {
	return s.result, s.state == StateDone
}
