package gfx

// Context is the entry point for a frame driver. It replaces process-wide
// renderer state: everything lives behind the value Initialize returns.
type Context struct {
	dev      Device
	renderer *Renderer
	frame    *FrameState
	clear    [4]float32
}

// Initialize builds the renderer on dev and sets the blend and depth state.
// Errors wrap ErrInitFailed.
func Initialize(dev Device, conf RendererConfig) (*Context, error) {
	r, err := NewRenderer(dev, conf)
	if err != nil {
		return nil, err
	}
	dev.SetState(DrawState{DepthTest: conf.DepthTest, Blend: true})
	return &Context{
		dev:      dev,
		renderer: r,
		frame:    NewFrameState(0, 0),
		clear:    conf.ClearColor,
	}, nil
}

// BeginFrame clears the target, recomputes the transforms for the given
// viewport size and flushes everything submitted since the last call.
func (c *Context) BeginFrame(width, height int) {
	c.dev.Clear(c.clear)
	c.frame.Resize(width, height)
	c.renderer.Flush(c.frame)
}

// SubmitRectangle queues one rounded rectangle. It reports false when the
// batch is full and the rectangle was dropped.
func (c *Context) SubmitRectangle(x, y, z, width, height, r, g, b, a, radiusTL, radiusTR, radiusBR, radiusBL float32) bool {
	return c.renderer.SubmitRect(x, y, z, width, height, r, g, b, a, radiusTL, radiusTR, radiusBR, radiusBL)
}

// SetViewport sets the rasterizer viewport to the full width x height target.
func (c *Context) SetViewport(width, height int) {
	c.dev.Viewport(0, 0, width, height)
}

func (c *Context) Renderer() *Renderer { return c.renderer }
func (c *Context) Frame() *FrameState  { return c.frame }

// Close releases the renderer's GPU objects.
func (c *Context) Close() {
	c.renderer.Close()
}
