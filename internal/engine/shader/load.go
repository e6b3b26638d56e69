package shader

import (
	"fmt"

	"github.com/Faultbox/boardview/internal/engine/gfx"
	"github.com/Faultbox/boardview/internal/engine/shader/shaders"
)

// Source loads raw file contents by path.
type Source interface {
	Load(path string) ([]byte, error)
}

// LoadFiles reads both stages through src and compiles them.
func LoadFiles(dev gfx.Device, src Source, vertexPath, fragmentPath string) (*Program, error) {
	vs, err := src.Load(vertexPath)
	if err != nil {
		return nil, fmt.Errorf("loading vertex shader: %w", err)
	}
	fs, err := src.Load(fragmentPath)
	if err != nil {
		return nil, fmt.Errorf("loading fragment shader: %w", err)
	}
	return Compile(dev, vertexPath+"+"+fragmentPath, string(vs), string(fs))
}

// Lambert compiles the embedded default program.
func Lambert(dev gfx.Device) (*Program, error) {
	return Compile(dev, "lambert", shaders.LambertVertex, shaders.LambertFragment)
}
