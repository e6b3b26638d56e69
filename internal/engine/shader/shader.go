// Package shader provides shared, reference-counted shader programs.
package shader

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/boardview/internal/engine/gfx"
	"github.com/Faultbox/boardview/internal/logger"
)

var (
	// ErrCompile wraps any failure to compile or link a program.
	ErrCompile = errors.New("shader compile failed")
	// ErrReleased is returned when a program is used after its last reference was released.
	ErrReleased = errors.New("shader program released")
)

// Program is a compiled shader program shared between materials.
// The device program is deleted when the last reference is released.
type Program struct {
	dev    gfx.Device
	handle gfx.ProgramHandle
	name   string
	refs   int
}

// Compile compiles and links vertexSrc and fragmentSrc on dev.
// The returned program holds one reference.
func Compile(dev gfx.Device, name, vertexSrc, fragmentSrc string) (*Program, error) {
	h, err := dev.CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", name, ErrCompile, err)
	}
	logger.Debug("shader program compiled", zap.String("name", name), zap.Uint32("handle", uint32(h)))
	return &Program{dev: dev, handle: h, name: name, refs: 1}, nil
}

// Name returns the name the program was compiled under.
func (p *Program) Name() string {
	return p.name
}

// Handle returns the device handle, or ErrReleased once the program is gone.
func (p *Program) Handle() (gfx.ProgramHandle, error) {
	if p == nil || p.refs <= 0 {
		return 0, ErrReleased
	}
	return p.handle, nil
}

// Refs returns the number of live references.
func (p *Program) Refs() int {
	return p.refs
}

// Retain adds a reference. Retaining a released program is an error.
func (p *Program) Retain() error {
	if p.refs <= 0 {
		return fmt.Errorf("retain %s: %w", p.name, ErrReleased)
	}
	p.refs++
	return nil
}

// Release drops a reference and deletes the device program at zero.
func (p *Program) Release() {
	if p.refs <= 0 {
		logger.Warn("shader program released too many times", zap.String("name", p.name))
		return
	}
	p.refs--
	if p.refs == 0 {
		p.dev.DeleteProgram(p.handle)
		logger.Debug("shader program deleted", zap.String("name", p.name))
	}
}
