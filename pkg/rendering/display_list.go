package rendering

import (
	"errors"

	"github.com/go-loom/loom/pkg/graphics"
)

// ErrUnbalancedRestore is returned when Restore is called without a
// matching Save.
var ErrUnbalancedRestore = errors.New("rendering: restore without matching save")

// DisplayList is an immutable list of recorded drawing operations.
// It can be replayed onto any Canvas implementation.
type DisplayList struct {
	ops  []displayOp
	size graphics.Size
}

// Replay executes the recorded operations onto the provided canvas,
// stopping at the first error.
func (d *DisplayList) Replay(canvas Canvas) error {
	for _, op := range d.ops {
		if err := op.execute(canvas); err != nil {
			return err
		}
	}
	return nil
}

// Size returns the size recorded when the display list was created.
func (d *DisplayList) Size() graphics.Size {
	return d.size
}

// Len returns the number of recorded operations.
func (d *DisplayList) Len() int {
	return len(d.ops)
}

// DrawOps returns the number of recorded operations that draw content,
// excluding state management (save/restore/translate).
func (d *DisplayList) DrawOps() int {
	n := 0
	for _, op := range d.ops {
		if _, ok := op.(opDrawRect); ok {
			n++
		}
	}
	return n
}

// PictureRecorder records drawing commands into a display list.
type PictureRecorder struct {
	ops       []displayOp
	recording bool
	size      graphics.Size
}

// BeginRecording starts a new recording session and returns the canvas to
// draw into.
func (r *PictureRecorder) BeginRecording(size graphics.Size) Canvas {
	r.ops = r.ops[:0]
	r.recording = true
	r.size = size
	return &recordingCanvas{recorder: r}
}

// EndRecording finishes the recording and returns a display list.
func (r *PictureRecorder) EndRecording() *DisplayList {
	if !r.recording {
		return &DisplayList{size: r.size}
	}
	r.recording = false
	ops := make([]displayOp, len(r.ops))
	copy(ops, r.ops)
	return &DisplayList{ops: ops, size: r.size}
}

func (r *PictureRecorder) append(op displayOp) {
	if !r.recording {
		return
	}
	r.ops = append(r.ops, op)
}

type displayOp interface {
	execute(canvas Canvas) error
}

// recordingCanvas validates save/restore balance while recording so that
// replay never produces an unbalanced stack.
type recordingCanvas struct {
	recorder  *PictureRecorder
	saveDepth int
}

func (c *recordingCanvas) Save() error {
	c.saveDepth++
	c.recorder.append(opSave{})
	return nil
}

func (c *recordingCanvas) Restore() error {
	if c.saveDepth == 0 {
		return ErrUnbalancedRestore
	}
	c.saveDepth--
	c.recorder.append(opRestore{})
	return nil
}

func (c *recordingCanvas) Translate(dx, dy float64) {
	c.recorder.append(opTranslate{dx: dx, dy: dy})
}

func (c *recordingCanvas) DrawRect(rect graphics.Rect, paint Paint) {
	c.recorder.append(opDrawRect{rect: rect, paint: paint})
}

type opSave struct{}

func (opSave) execute(canvas Canvas) error { return canvas.Save() }

type opRestore struct{}

func (opRestore) execute(canvas Canvas) error { return canvas.Restore() }

type opTranslate struct {
	dx, dy float64
}

func (op opTranslate) execute(canvas Canvas) error {
	canvas.Translate(op.dx, op.dy)
	return nil
}

type opDrawRect struct {
	rect  graphics.Rect
	paint Paint
}

func (op opDrawRect) execute(canvas Canvas) error {
	canvas.DrawRect(op.rect, op.paint)
	return nil
}
