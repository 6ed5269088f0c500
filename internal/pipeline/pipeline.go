/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/

// Package pipeline wires the validator, slot reconciler, classifier and
// content extractor into the forward (config to page), reverse (page to
// config) and validate-only runs. Each run reads its inputs fully, works in
// memory and writes at most one file.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/fulmenhq/pagesmith/pkg/logger"
	"github.com/fulmenhq/pagesmith/pkg/slots"
)

// Error classes. Returned errors wrap one of these together with the cause.
var (
	// ErrInput covers missing, unreadable or unparsable inputs.
	ErrInput = errors.New("input error")
	// ErrOutput covers failures writing the produced file.
	ErrOutput = errors.New("output error")
	// ErrValidation means the config has validation errors; nothing was written.
	ErrValidation = errors.New("config validation failed")
	// ErrSettings covers tool settings such as a broken signature manifest.
	ErrSettings = errors.New("settings error")
)

// Options carries tool settings into a run.
type Options struct {
	// SlotAttribute names the placeholder marker; empty means data-slot.
	SlotAttribute string
	// CheckStructure enables the advisory markup structure checks.
	CheckStructure bool
	// SignaturesFile is an optional manifest merged over the embedded one.
	SignaturesFile string
	// IgnoreRoot, when set, drops glob matches listed in .gitignore or
	// .pagesmithignore files under this directory.
	IgnoreRoot string
}

// DefaultOptions mirrors the built-in settings.
func DefaultOptions() Options {
	return Options{SlotAttribute: slots.DefaultAttribute, CheckStructure: true}
}

func (o Options) slotOptions() []slots.Option {
	return []slots.Option{slots.WithAttribute(o.SlotAttribute)}
}

func inputErr(err error) error {
	return fmt.Errorf("%w: %w", ErrInput, err)
}

func outputErr(err error) error {
	return fmt.Errorf("%w: %w", ErrOutput, err)
}

// checkpoint aborts between stages when ctx is done.
func checkpoint(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	return ctx.Err()
}

var dumper = spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true, DisableCapacities: true}

// traceSlots dumps a slot map when trace logging is on.
func traceSlots(stage string, m *slots.Map) {
	if !logger.IsEnabled(logger.TraceLevel) {
		return
	}
	logger.Trace("slot map", logger.String("stage", stage), logger.String("dump", dumper.Sdump(m.ToMap())))
}
