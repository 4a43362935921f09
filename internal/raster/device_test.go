package raster

import (
	"image/color"
	"testing"

	"github.com/kjkrol/rrect/pkg/gfx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(t *testing.T, size int) (*Device, *gfx.Context) {
	t.Helper()
	dev := New(size, size)
	ctx, err := gfx.Initialize(dev, gfx.DefaultRendererConfig())
	require.NoError(t, err)
	ctx.SetViewport(size, size)
	return dev, ctx
}

func TestDevice_ClearColor(t *testing.T) {
	dev, ctx := newContext(t, 8)
	ctx.BeginFrame(8, 8)
	assert.Equal(t, color.RGBA{26, 26, 26, 255}, dev.Target.RGBAAt(3, 3))
	assert.Zero(t, dev.Draws)
}

func TestDevice_FillsRectangle(t *testing.T) {
	dev, ctx := newContext(t, 40)
	ctx.SubmitRectangle(10, 10, 0, 20, 20, 1, 0, 0, 1, 0, 0, 0, 0)
	ctx.BeginFrame(40, 40)

	assert.Equal(t, 1, dev.Draws)
	red := color.RGBA{255, 0, 0, 255}
	assert.Equal(t, red, dev.Target.RGBAAt(20, 20))
	assert.Equal(t, red, dev.Target.RGBAAt(10, 10), "top-left pixel")
	assert.Equal(t, red, dev.Target.RGBAAt(29, 29), "bottom-right pixel")
	assert.NotEqual(t, red, dev.Target.RGBAAt(9, 20))
	assert.NotEqual(t, red, dev.Target.RGBAAt(30, 20))
}

func TestDevice_RoundedCornerIsDiscarded(t *testing.T) {
	dev, ctx := newContext(t, 20)
	ctx.SubmitRectangle(0, 0, 0, 20, 20, 0, 0, 1, 1, 10, 10, 10, 10)
	ctx.BeginFrame(20, 20)

	background := color.RGBA{26, 26, 26, 255}
	for _, p := range [][2]int{{0, 0}, {19, 0}, {0, 19}, {19, 19}} {
		assert.Equal(t, background, dev.Target.RGBAAt(p[0], p[1]), "corner %v", p)
	}
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, dev.Target.RGBAAt(10, 10))
}

func TestDevice_OnlyTheRoundedCornerIsCut(t *testing.T) {
	dev, ctx := newContext(t, 20)
	// bottom-right only
	ctx.SubmitRectangle(0, 0, 0, 20, 20, 0, 1, 0, 1, 0, 0, 10, 0)
	ctx.BeginFrame(20, 20)

	green := color.RGBA{0, 255, 0, 255}
	assert.Equal(t, green, dev.Target.RGBAAt(0, 0))
	assert.Equal(t, green, dev.Target.RGBAAt(19, 0))
	assert.Equal(t, green, dev.Target.RGBAAt(0, 19))
	assert.NotEqual(t, green, dev.Target.RGBAAt(19, 19))
}

func TestDevice_LaterSubmissionWinsAtEqualDepth(t *testing.T) {
	dev, ctx := newContext(t, 20)
	ctx.SubmitRectangle(0, 0, 0, 20, 20, 1, 0, 0, 1, 0, 0, 0, 0)
	ctx.SubmitRectangle(5, 5, 0, 10, 10, 0, 1, 0, 1, 0, 0, 0, 0)
	ctx.BeginFrame(20, 20)

	assert.Equal(t, color.RGBA{0, 255, 0, 255}, dev.Target.RGBAAt(10, 10))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, dev.Target.RGBAAt(2, 2))
	assert.Equal(t, 1, dev.Draws)
}

func TestDevice_FramesDoNotAccumulate(t *testing.T) {
	dev, ctx := newContext(t, 20)
	ctx.SubmitRectangle(0, 0, 0, 10, 10, 1, 1, 1, 1, 0, 0, 0, 0)
	ctx.BeginFrame(20, 20)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, dev.Target.RGBAAt(5, 5))

	ctx.BeginFrame(20, 20)
	assert.Equal(t, color.RGBA{26, 26, 26, 255}, dev.Target.RGBAAt(5, 5))
	assert.Equal(t, 1, dev.Draws)
}

func TestDevice_RejectsForeignLayout(t *testing.T) {
	dev := New(4, 4)
	_, err := dev.BindVertexLayout(gfx.VertexLayout{Attribs: []gfx.VertexAttrib{gfx.QuadAttrib(1)}})
	assert.Error(t, err)

	attribs := gfx.RectLayout(1, 2).Attribs
	attribs[2].Offset += 4
	_, err = dev.BindVertexLayout(gfx.VertexLayout{Attribs: attribs})
	assert.Error(t, err)
}

func TestDevice_LinkNeedsBothStages(t *testing.T) {
	dev := New(4, 4)
	vs := dev.CreateShader(gfx.VertexStage, "")
	_, err := gfx.LinkProgram(dev, vs, vs)
	var linkErr *gfx.LinkError
	require.ErrorAs(t, err, &linkErr)
	assert.Contains(t, linkErr.Log, "vertex and one fragment")
}
