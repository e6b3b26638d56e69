package shader

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Faultbox/boardview/internal/engine/gfx/gfxtest"
)

type mapSource map[string]string

func (m mapSource) Load(path string) ([]byte, error) {
	s, ok := m[path]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	return []byte(s), nil
}

func TestProgramRefCounting(t *testing.T) {
	dev := gfxtest.New()
	p, err := Compile(dev, "test", "vs", "fs")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if p.Refs() != 1 {
		t.Errorf("Refs() = %d, want 1", p.Refs())
	}

	if err := p.Retain(); err != nil {
		t.Fatalf("Retain: %v", err)
	}
	p.Release()
	if len(dev.DeletedPrograms) != 0 {
		t.Fatalf("program deleted with %d refs left", p.Refs())
	}
	if _, err := p.Handle(); err != nil {
		t.Errorf("Handle() error = %v while referenced", err)
	}

	p.Release()
	if len(dev.DeletedPrograms) != 1 {
		t.Fatalf("DeletedPrograms = %v, want one entry", dev.DeletedPrograms)
	}
	if _, err := p.Handle(); !errors.Is(err, ErrReleased) {
		t.Errorf("Handle() error = %v, want ErrReleased", err)
	}

	// Extra releases are ignored.
	p.Release()
	if len(dev.DeletedPrograms) != 1 {
		t.Errorf("program deleted twice")
	}
	if err := p.Retain(); !errors.Is(err, ErrReleased) {
		t.Errorf("Retain() after release error = %v, want ErrReleased", err)
	}
}

func TestCompileFailure(t *testing.T) {
	dev := gfxtest.New()
	dev.FailCompile = errors.New("syntax error at line 3")

	_, err := Compile(dev, "broken", "vs", "fs")
	if !errors.Is(err, ErrCompile) {
		t.Errorf("Compile() error = %v, want ErrCompile", err)
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("Compile() error = %q, want device log included", err)
	}
}

func TestLoadFiles(t *testing.T) {
	dev := gfxtest.New()
	src := mapSource{"a.vert": "vertex source", "a.frag": "fragment source"}

	p, err := LoadFiles(dev, src, "a.vert", "a.frag")
	if err != nil {
		t.Fatalf("LoadFiles: %v", err)
	}
	h, _ := p.Handle()
	got := dev.Programs[h]
	if got.Vertex != "vertex source" || got.Fragment != "fragment source" {
		t.Errorf("compiled sources = %+v", got)
	}

	if _, err := LoadFiles(dev, src, "missing.vert", "a.frag"); err == nil {
		t.Error("expected error for missing vertex shader")
	}
}

func TestLambertSourcesEmbedded(t *testing.T) {
	dev := gfxtest.New()
	p, err := Lambert(dev)
	if err != nil {
		t.Fatalf("Lambert: %v", err)
	}
	h, _ := p.Handle()
	got := dev.Programs[h]
	for _, uniform := range []string{"uModel", "uView", "uProjection", "uNormal", "uAlbedo", "uLightDir", "uLightColor"} {
		if !strings.Contains(got.Vertex+got.Fragment, uniform) {
			t.Errorf("embedded sources missing uniform %s", uniform)
		}
	}
}
