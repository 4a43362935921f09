package gfx_test

import (
	"errors"
	"testing"

	"github.com/kjkrol/rrect/pkg/gfx"
	"github.com/kjkrol/rrect/pkg/gfx/gfxtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T, capacity int) (*gfx.Renderer, *gfxtest.Recorder) {
	t.Helper()
	dev := gfxtest.NewRecorder()
	conf := gfx.DefaultRendererConfig()
	conf.Capacity = capacity
	r, err := gfx.NewRenderer(dev, conf)
	require.NoError(t, err)
	dev.Reset()
	return r, dev
}

func TestNewRenderer_AllocatesResources(t *testing.T) {
	dev := gfxtest.NewRecorder()
	r, err := gfx.NewRenderer(dev, gfx.DefaultRendererConfig())
	require.NoError(t, err)
	require.NotNil(t, r)

	sizes := make([]int, 0, 2)
	for _, c := range dev.Calls {
		if c.Method == "CreateBuffer" {
			sizes = append(sizes, c.Args[1].(int))
		}
	}
	assert.Equal(t, []int{4 * 2 * 4, gfx.DefaultCapacity * gfx.RecordSize}, sizes)

	require.Len(t, dev.Layouts, 1)
	for _, layout := range dev.Layouts {
		require.Len(t, layout.Attribs, 5)
		assert.Equal(t, uint32(0), layout.Attribs[0].Divisor)
		for _, a := range layout.Attribs[1:] {
			assert.Equal(t, uint32(1), a.Divisor)
		}
	}
}

func TestNewRenderer_CompileFailureIsInitFailure(t *testing.T) {
	dev := gfxtest.NewRecorder()
	stage := gfx.FragmentStage
	dev.FailStage = &stage
	dev.StageLog = []byte("undeclared identifier 'vRadiii'")

	_, err := gfx.NewRenderer(dev, gfx.DefaultRendererConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, gfx.ErrInitFailed))

	var ce *gfx.CompileError
	require.True(t, errors.As(err, &ce))
	assert.Contains(t, err.Error(), "vRadiii")
	assert.Equal(t, 0, dev.Live(), "nothing leaks from a failed init")
}

func TestNewRenderer_BufferFailureReleasesShader(t *testing.T) {
	dev := gfxtest.NewRecorder()
	usage := gfx.DynamicDraw
	dev.FailBuffer = &usage

	_, err := gfx.NewRenderer(dev, gfx.DefaultRendererConfig())
	require.ErrorIs(t, err, gfx.ErrInitFailed)
	assert.Equal(t, 0, dev.Live())
}

func TestFlush_EmptyBatchTouchesNothing(t *testing.T) {
	r, dev := newTestRenderer(t, 16)
	r.Flush(gfx.NewFrameState(800, 600))
	assert.Empty(t, dev.Calls)
	assert.Equal(t, 0, r.Len())
}

func TestFlush_OneDrawInSubmissionOrder(t *testing.T) {
	r, dev := newTestRenderer(t, gfx.DefaultCapacity)
	const n = 257
	for i := 0; i < n; i++ {
		require.True(t, r.Submit(rectAt(i)))
	}
	r.Flush(gfx.NewFrameState(800, 600))

	require.Len(t, dev.Draws, 1)
	assert.Equal(t, n, dev.Draws[0].Instances)
	assert.Equal(t, gfx.QuadVertexCount, dev.Draws[0].Vertices)

	require.Len(t, dev.Uploads, 1)
	up := dev.Uploads[0]
	assert.Equal(t, 0, up.Offset)
	assert.Len(t, up.Data, n*gfx.RecordSize, "only the populated prefix is uploaded")
	for i, rec := range up.Records() {
		assert.Equal(t, rectAt(i), rec, "instance %d", i)
	}
	assert.Equal(t, 0, r.Len())
}

func TestFlush_CallOrder(t *testing.T) {
	r, dev := newTestRenderer(t, 4)
	r.Submit(rectAt(0))
	r.Flush(gfx.NewFrameState(10, 10))

	methods := make([]string, 0, len(dev.Calls))
	for _, c := range dev.Calls {
		methods = append(methods, c.Method)
	}
	assert.Equal(t, []string{"UseProgram", "UniformMatrix4", "UniformMatrix4", "UploadSubrange", "DrawInstanced"}, methods)
}

func TestFlush_UploadsFrameMatrices(t *testing.T) {
	r, dev := newTestRenderer(t, 4)
	frame := gfx.NewFrameState(640, 480)
	r.Submit(rectAt(0))
	r.Flush(frame)

	view, ok := dev.UniformMatrix("view")
	require.True(t, ok)
	assert.Equal(t, [16]float32(frame.View), view)
	proj, ok := dev.UniformMatrix("projection")
	require.True(t, ok)
	assert.Equal(t, [16]float32(frame.Projection), proj)
}

func TestSubmit_OverflowIsDroppedAndCounted(t *testing.T) {
	r, dev := newTestRenderer(t, gfx.DefaultCapacity)
	const k = 25
	accepted := 0
	for i := 0; i < gfx.DefaultCapacity+k; i++ {
		if r.Submit(rectAt(i)) {
			accepted++
		}
	}
	assert.Equal(t, gfx.DefaultCapacity, accepted)
	assert.Equal(t, k, r.Dropped())
	assert.Equal(t, 0, r.Remaining())

	r.Flush(gfx.NewFrameState(100, 100))
	require.Len(t, dev.Draws, 1)
	assert.Equal(t, gfx.DefaultCapacity, dev.Draws[0].Instances)
	recs := dev.Uploads[0].Records()
	assert.Equal(t, rectAt(gfx.DefaultCapacity-1), recs[len(recs)-1], "the first submissions are kept")
	assert.Equal(t, 0, r.Dropped())
}

func TestFlush_NoResidueBetweenFrames(t *testing.T) {
	r, dev := newTestRenderer(t, 8)
	frame := gfx.NewFrameState(100, 100)
	for i := 0; i < 5; i++ {
		r.Submit(rectAt(i))
	}
	r.Flush(frame)

	a := gfx.NewRect(1, 1, 0, 5, 5, 1, 0, 0, 1, 0, 0, 0, 0)
	b := gfx.NewRect(2, 2, 0, 5, 5, 0, 0, 1, 1, 0, 0, 0, 0)
	r.SubmitRect(1, 1, 0, 5, 5, 1, 0, 0, 1, 0, 0, 0, 0)
	r.Submit(b)
	r.Flush(frame)

	require.Len(t, dev.Draws, 2)
	assert.Equal(t, 2, dev.Draws[1].Instances)
	assert.Equal(t, []gfx.InstanceRecord{a, b}, dev.Uploads[1].Records())

	r.Flush(frame)
	assert.Len(t, dev.Draws, 2, "a flushed batch is not drawn again")
}

func TestRenderer_CloseReleasesEverything(t *testing.T) {
	dev := gfxtest.NewRecorder()
	r, err := gfx.NewRenderer(dev, gfx.DefaultRendererConfig())
	require.NoError(t, err)
	assert.Positive(t, dev.Live())
	r.Close()
	assert.Equal(t, 0, dev.Live())
}
