// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package peripheral

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"
)

var ErrNilTable = errors.New("peripheral table is nil")

// Producer fills a caller allocated table with the platform's peripherals.
// It must write the header and the rows before returning.
type Producer interface {
	Populate(t *Table) error
}

// ProducerFunc adapts a function to the Producer interface.
type ProducerFunc func(t *Table) error

func (f ProducerFunc) Populate(t *Table) error {
	return f(t)
}

// Freer releases the memory backing a table.
type Freer interface {
	Free(t *Table)
}

// FreerFunc adapts a function to the Freer interface.
type FreerFunc func(t *Table)

func (f FreerFunc) Free(t *Table) {
	f(t)
}

// Option configures a Registry.
type Option func(*Registry)

// WithFreer sets the Freer called on Release. The default resets the table.
func WithFreer(f Freer) Option {
	return func(r *Registry) {
		r.freer = f
	}
}

// Registry owns the active peripheral table for the duration of a run.
type Registry struct {
	log      logr.Logger
	producer Producer
	freer    Freer
	table    *Table
}

// NewRegistry creates a Registry that populates tables with producer.
func NewRegistry(log logr.Logger, producer Producer, opts ...Option) *Registry {
	r := &Registry{
		log:      log,
		producer: producer,
		freer:    FreerFunc((*Table).Reset),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create binds t as the active table, has the producer populate it and logs
// the controller counts. A producer error is returned, but the table stays
// bound so whatever was populated remains visible to queries.
func (r *Registry) Create(t *Table) error {
	if t == nil {
		r.log.Error(ErrNilTable, "Peripheral table memory is missing")
		return ErrNilTable
	}
	r.table = t

	var err error
	if r.producer != nil {
		if perr := r.producer.Populate(t); perr != nil {
			err = fmt.Errorf("failed to populate peripheral table: %w", perr)
			r.log.Error(err, "Peripheral table may be incomplete")
		}
	}

	r.log.Info("Peripheral: Num of USB controllers", "count", r.Info(NumUSB, 0))
	r.log.Info("Peripheral: Num of SATA controllers", "count", r.Info(NumSATA, 0))
	r.log.Info("Peripheral: Num of UART controllers", "count", r.Info(NumUART, 0))
	return err
}

// Release unbinds the active table and hands it to the Freer. Calling it
// again, or without a bound table, does nothing.
func (r *Registry) Release() {
	t := r.table
	if t == nil {
		return
	}
	r.table = nil
	if r.freer != nil {
		r.freer.Free(t)
	}
	r.log.V(1).Info("Released peripheral table")
}

// Resolve returns the row index of the given instance of typ in the active
// table, or NotFound.
func (r *Registry) Resolve(typ Type, instance uint32) uint32 {
	return Resolve(r.table, typ, instance)
}

// Table returns the active table, or nil.
func (r *Registry) Table() *Table {
	return r.table
}

// Summary returns the controller counts of the active table.
func (r *Registry) Summary() Header {
	return Header{
		NumUSB:  uint32(r.Info(NumUSB, 0)),
		NumSATA: uint32(r.Info(NumSATA, 0)),
		NumUART: uint32(r.Info(NumUART, 0)),
	}
}
