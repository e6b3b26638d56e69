package gfx

import (
	"fmt"
	"strings"
)

// DepthTest selects how incoming fragment depth is compared to the stored depth.
type DepthTest int

// Depth test modes.
const (
	DepthAlways DepthTest = iota
	DepthNever
	DepthIfLess
	DepthIfLessOrEqual
	DepthIfEqual
	DepthIfGreater
	DepthIfGreaterOrEqual
	DepthIfNotEqual
)

var depthTestNames = map[DepthTest]string{
	DepthAlways:           "always",
	DepthNever:            "never",
	DepthIfLess:           "if_less",
	DepthIfLessOrEqual:    "if_less_or_equal",
	DepthIfEqual:          "if_equal",
	DepthIfGreater:        "if_greater",
	DepthIfGreaterOrEqual: "if_greater_or_equal",
	DepthIfNotEqual:       "if_not_equal",
}

// String returns the config name of the mode.
func (d DepthTest) String() string {
	if name, ok := depthTestNames[d]; ok {
		return name
	}
	return fmt.Sprintf("DepthTest(%d)", int(d))
}

// Pass reports whether a fragment at depth incoming survives against stored.
func (d DepthTest) Pass(incoming, stored float32) bool {
	switch d {
	case DepthAlways:
		return true
	case DepthNever:
		return false
	case DepthIfLess:
		return incoming < stored
	case DepthIfLessOrEqual:
		return incoming <= stored
	case DepthIfEqual:
		return incoming == stored
	case DepthIfGreater:
		return incoming > stored
	case DepthIfGreaterOrEqual:
		return incoming >= stored
	case DepthIfNotEqual:
		return incoming != stored
	default:
		return false
	}
}

// ParseDepthTest parses a config name such as "if_less".
func ParseDepthTest(s string) (DepthTest, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for mode, name := range depthTestNames {
		if name == s {
			return mode, nil
		}
	}
	return DepthAlways, fmt.Errorf("unknown depth test %q", s)
}

// CullMode selects which triangles are discarded by winding.
// Winding is judged in normalized device coordinates with +Y up.
type CullMode int

// Culling modes.
const (
	CullNone CullMode = iota
	CullClockwise
	CullCounterClockwise
)

// String returns the config name of the mode.
func (c CullMode) String() string {
	switch c {
	case CullNone:
		return "none"
	case CullClockwise:
		return "clockwise"
	case CullCounterClockwise:
		return "counter_clockwise"
	default:
		return fmt.Sprintf("CullMode(%d)", int(c))
	}
}

// Culls reports whether a triangle with the given signed NDC area is discarded.
// Positive area means counter-clockwise winding.
func (c CullMode) Culls(signedArea float32) bool {
	switch c {
	case CullClockwise:
		return signedArea < 0
	case CullCounterClockwise:
		return signedArea > 0
	default:
		return false
	}
}

// ParseCullMode parses a config name such as "clockwise".
func ParseCullMode(s string) (CullMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return CullNone, nil
	case "clockwise", "cw":
		return CullClockwise, nil
	case "counter_clockwise", "ccw":
		return CullCounterClockwise, nil
	default:
		return CullNone, fmt.Errorf("unknown cull mode %q", s)
	}
}

// DrawState is the fixed-function state applied uniformly to a frame's draws.
type DrawState struct {
	DepthTest  DepthTest
	DepthWrite bool
	Cull       CullMode
}

// DefaultDrawState returns less-than depth testing with writes and no culling.
func DefaultDrawState() DrawState {
	return DrawState{
		DepthTest:  DepthIfLess,
		DepthWrite: true,
		Cull:       CullNone,
	}
}
