package postfx

import (
	"errors"
	"fmt"
	"log/slog"
)

// Engine is the post-process orchestrator. It polls the configuration
// store for parameter changes, recomputes and uploads the coefficient
// block when needed, and dispatches the full-screen pass.
//
// Engine methods must be driven from a single render thread. Update is
// called once per frame; Process once per draw (or per slice). Both are
// bounded, synchronous operations with no internal blocking.
type Engine struct {
	device Device
	store  Store
	log    *slog.Logger

	source   string
	instance int

	set  shaderSet
	gate updateGate
	mode Mode

	block CoefficientBlock

	// recomputes counts transform+upload runs, for tests.
	recomputes int
}

// New creates an engine on the given device, building all GPU resources
// up front. Resource creation failure is fatal: the error is returned
// and no partially initialized engine is left behind.
//
// store may be nil; the engine then stays in ModeOff with neutral
// coefficients, which keeps it usable headless.
func New(device Device, store Store, opts ...Option) (*Engine, error) {
	if device == nil {
		return nil, errors.New("postfx: device is required")
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{
		device:   device,
		store:    store,
		log:      o.logger,
		source:   o.source,
		instance: o.instance,
	}
	if e.log == nil {
		e.log = Logger()
	}

	if err := e.set.build(device, e.source); err != nil {
		return nil, err
	}
	if err := e.recompute(); err != nil {
		e.set.destroy()
		return nil, fmt.Errorf("postfx: initial coefficient upload: %w", err)
	}
	return e, nil
}

// Update refreshes engine state for the current tick. It reads the
// processing mode and, when the mode is active and either just changed
// or any relevant setting is dirty, re-reads the raw parameters, runs
// the transform and uploads the result. In ModeOff it does no work.
func (e *Engine) Update() {
	mode := readMode(e.store)
	e.mode = mode

	if e.gate.decide(e.store, mode) {
		if err := e.recompute(); err != nil {
			// Stale coefficients are recoverable; the next successful
			// upload replaces them. Creation failures are what's fatal.
			e.log.Warn("postfx: coefficient upload failed", "err", err)
		}
	}
}

// Process dispatches the pass from input to output at the given array
// slice. It always dispatches, even in ModeOff, so downstream consumers
// always see a defined output: ModeOff selects the pass-through
// variant, otherwise the single-texture or VPRT variant is chosen by
// the input's shape. slice is ignored for non-array textures.
func (e *Engine) Process(input, output Texture, slice int) error {
	variant := variantPassThrough
	if e.mode != ModeOff {
		if input.IsArray() {
			variant = variantPostProcessVPRT
		} else {
			variant = variantPostProcess
		}
	}

	d := e.device
	d.SetShader(e.set.shaders[variant], SamplerLinearClamp)
	d.SetShaderInputBuffer(0, e.set.coeffs)
	d.SetShaderInputTexture(0, input, slice)
	d.SetShaderOutput(0, output, slice)
	return d.DispatchShader()
}

// Reload rebuilds the shader variants and constant buffer, then forces
// a full recompute and upload, bypassing the dirty check. Use after a
// shader source edit. On failure the previous resources remain active.
func (e *Engine) Reload() error {
	if err := e.set.build(e.device, e.source); err != nil {
		return err
	}
	if err := e.recompute(); err != nil {
		return fmt.Errorf("postfx: reload coefficient upload: %w", err)
	}
	return nil
}

// Close releases the engine's GPU resources. The engine must not be
// used afterwards.
func (e *Engine) Close() {
	e.set.destroy()
}

// Mode returns the processing mode observed by the last Update.
func (e *Engine) Mode() Mode {
	return e.mode
}

// Coefficients returns a copy of the current coefficient block, as last
// uploaded to the GPU.
func (e *Engine) Coefficients() CoefficientBlock {
	return e.block
}

func (e *Engine) recompute() error {
	raw := readUserParams(e.store, e.instance)
	preset := readPreset(e.store)
	e.block = Transform(raw, preset)
	e.recomputes++
	return e.set.upload(&e.block)
}
