package gfx

import (
	"errors"
	"fmt"
)

// ErrInitFailed wraps every error returned while building a Renderer.
var ErrInitFailed = errors.New("gfx: renderer init failed")

// Renderer batches rounded rectangles and draws them with one instanced call
// per Flush. It owns the shader, the quad and instance buffers and the batch.
type Renderer struct {
	dev    Device
	shader *ShaderProgram
	batch  *InstanceBatch

	quadVbo     Buffer
	instanceVbo Buffer
	vao         VertexArray

	dropped int
}

// NewRenderer allocates the GPU resources of the rectangle pipeline.
func NewRenderer(dev Device, conf RendererConfig) (*Renderer, error) {
	conf = conf.withDefaults()
	r := &Renderer{
		dev:   dev,
		batch: NewInstanceBatch(conf.Capacity),
	}
	if err := r.init(conf); err != nil {
		r.Close()
		return nil, fmt.Errorf("%w: %w", ErrInitFailed, err)
	}
	Logger().Info("rect renderer initialized", "capacity", conf.Capacity)
	return r, nil
}

func (r *Renderer) init(conf RendererConfig) error {
	shader, err := NewShaderProgram(r.dev, conf.VertexSource, conf.FragmentSource)
	if err != nil {
		return err
	}
	r.shader = shader

	quad := quadBytes()
	r.quadVbo, err = r.dev.CreateBuffer(StaticDraw, len(quad), quad)
	if err != nil {
		return fmt.Errorf("quad buffer: %w", err)
	}

	size := conf.Capacity * RecordSize
	r.instanceVbo, err = r.dev.CreateBuffer(DynamicDraw, size, nil)
	if err != nil {
		return fmt.Errorf("instance buffer (%d bytes): %w", size, err)
	}
	Logger().Debug("instance buffer allocated", "bytes", size)

	r.vao, err = r.dev.BindVertexLayout(RectLayout(r.quadVbo, r.instanceVbo))
	if err != nil {
		return fmt.Errorf("vertex layout: %w", err)
	}
	return nil
}

// Submit queues rec for the next Flush. It reports false when the batch is
// full; the record is dropped and counted.
func (r *Renderer) Submit(rec InstanceRecord) bool {
	if r.batch.Push(rec) {
		return true
	}
	r.dropped++
	return false
}

// SubmitRect is Submit with the flat argument list of NewRect.
func (r *Renderer) SubmitRect(x, y, z, width, height, cr, cg, cb, ca, radiusTL, radiusTR, radiusBR, radiusBL float32) bool {
	return r.Submit(NewRect(x, y, z, width, height, cr, cg, cb, ca, radiusTL, radiusTR, radiusBR, radiusBL))
}

// Flush draws every queued rectangle in submission order with a single
// instanced draw and empties the batch. An empty batch touches no GPU state.
func (r *Renderer) Flush(frame *FrameState) {
	if r.dropped > 0 {
		Logger().Warn("instances dropped at capacity", "dropped", r.dropped, "capacity", r.batch.Cap())
		r.dropped = 0
	}
	if r.batch.IsEmpty() {
		return
	}

	r.shader.Activate()
	view := [16]float32(frame.View)
	projection := [16]float32(frame.Projection)
	r.shader.SetMatrix(r.shader.ViewLocation(), &view)
	r.shader.SetMatrix(r.shader.ProjectionLocation(), &projection)

	r.dev.UploadSubrange(r.instanceVbo, 0, r.batch.Bytes())
	r.dev.DrawInstanced(r.vao, QuadVertexCount, r.batch.Len())

	r.batch.Clear()
}

// Len is the number of queued instances.
func (r *Renderer) Len() int { return r.batch.Len() }

// Remaining is how many more instances fit before Flush.
func (r *Renderer) Remaining() int { return r.batch.Remaining() }

// Dropped is the number of submissions rejected since the last Flush.
func (r *Renderer) Dropped() int { return r.dropped }

func (r *Renderer) Shader() *ShaderProgram { return r.shader }

// Close releases the GPU objects. The renderer must not be used afterwards.
func (r *Renderer) Close() {
	if r.vao != 0 {
		r.dev.DeleteVertexArray(r.vao)
		r.vao = 0
	}
	if r.instanceVbo != 0 {
		r.dev.DeleteBuffer(r.instanceVbo)
		r.instanceVbo = 0
	}
	if r.quadVbo != 0 {
		r.dev.DeleteBuffer(r.quadVbo)
		r.quadVbo = 0
	}
	if r.shader != nil {
		r.shader.Delete()
		r.shader = nil
	}
}
