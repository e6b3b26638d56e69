package soft

import (
	"image"

	"github.com/Faultbox/boardview/internal/engine/gfx"
)

// frameBuffer holds the render target as flat slices for cache locality.
type frameBuffer struct {
	width  int
	height int
	color  []gfx.Color // len = w*h
	depth  []float32   // window depth per pixel in [0, 1], 1 = far
}

func newFrameBuffer(w, h int) *frameBuffer {
	fb := &frameBuffer{
		width:  w,
		height: h,
		color:  make([]gfx.Color, w*h),
		depth:  make([]float32, w*h),
	}
	fb.clear(gfx.ColorBlack)
	return fb
}

func (fb *frameBuffer) clear(c gfx.Color) {
	for i := range fb.color {
		fb.color[i] = c
		fb.depth[i] = 1
	}
}

// image converts the color buffer to 8-bit, row 0 at the top.
func (fb *frameBuffer) image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.width, fb.height))
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			img.SetNRGBA(x, y, fb.color[y*fb.width+x].NRGBA())
		}
	}
	return img
}
