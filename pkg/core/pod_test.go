package core

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-loom/loom/pkg/errors"
	"github.com/go-loom/loom/pkg/graphics"
	"github.com/go-loom/loom/pkg/platform"
	"github.com/go-loom/loom/pkg/rendering"
)

type testData struct {
	N int
}

func (d testData) Same(other testData) bool { return d == other }
func (d testData) Clone() testData          { return d }

// stubWidget counts calls into the widget contract and records the events
// it receives.
type stubWidget struct {
	events     []Event
	updates    int
	paints     int
	layoutSize graphics.Size
	onEvent    func(ctx *EventCtx, event Event, data *testData)
}

func (w *stubWidget) Event(ctx *EventCtx, event Event, data *testData, env *Env) {
	w.events = append(w.events, event)
	if w.onEvent != nil {
		w.onEvent(ctx, event, data)
	}
}

func (w *stubWidget) Update(ctx *UpdateCtx, oldData *testData, data *testData, env *Env) {
	w.updates++
}

func (w *stubWidget) Layout(ctx *LayoutCtx, bc BoxConstraints, data *testData, env *Env) graphics.Size {
	return bc.Constrain(w.layoutSize)
}

func (w *stubWidget) Paint(ctx *PaintCtx, state *BaseState, data *testData, env *Env) {
	w.paints++
}

func (w *stubWidget) mouseDowns() []MouseDownEvent {
	var out []MouseDownEvent
	for _, ev := range w.events {
		if md, ok := ev.(MouseDownEvent); ok {
			out = append(out, md)
		}
	}
	return out
}

func dispatch(t *testing.T, pod *WidgetPod[testData], event Event, data *testData, env *Env) *BaseState {
	t.Helper()
	var rootState BaseState
	var cursor platform.Cursor
	queue := &CommandQueue{}
	ctx := NewRootEventCtx(platform.NewStubWindow(), platform.NextWindowID(), queue, &rootState, &cursor)
	pod.Event(ctx, event, data, env)
	return &rootState
}

func TestUpdateSkipsUnchangedData(t *testing.T) {
	stub := &stubWidget{}
	pod := NewWidgetPod[testData](stub)
	env := EmptyEnv()
	d := testData{N: 1}

	ctx := NewUpdateCtx(rendering.BasicTextFactory(), platform.NextWindowID())
	pod.Update(ctx, &d, &env)
	if stub.updates != 1 {
		t.Fatalf("first update must reach the widget, got %d calls", stub.updates)
	}

	pod.Update(ctx, &d, &env)
	if stub.updates != 1 {
		t.Fatalf("unchanged data and env must be skipped, got %d calls", stub.updates)
	}

	d.N = 2
	pod.Update(ctx, &d, &env)
	if stub.updates != 2 {
		t.Fatalf("changed data must reach the widget, got %d calls", stub.updates)
	}

	// Env change alone also propagates.
	env2 := Add(env, Key[float64]("metrics.scale"), 2.0)
	pod.Update(ctx, &d, &env2)
	if stub.updates != 3 {
		t.Fatalf("changed env must reach the widget, got %d calls", stub.updates)
	}
}

func TestMouseDownInsideRectSetsHotAndRecurses(t *testing.T) {
	stub := &stubWidget{}
	pod := NewWidgetPod[testData](stub)
	pod.SetLayoutRect(graphics.RectFromLTWH(10, 10, 20, 20))
	d := testData{}
	env := EmptyEnv()

	dispatch(t, pod, MouseDownEvent{MouseEvent{Pos: graphics.Offset{X: 15, Y: 15}}}, &d, &env)

	if !pod.IsHot() {
		t.Fatalf("pod should be hot after mouse-down inside its rect")
	}
	downs := stub.mouseDowns()
	if len(downs) != 1 {
		t.Fatalf("expected 1 mouse-down into the child, got %d", len(downs))
	}
	want := graphics.Offset{X: 5, Y: 5}
	if downs[0].Pos != want {
		t.Fatalf("expected position translated to %v, got %v", want, downs[0].Pos)
	}
	// Newly-hot pods hear about it before the main event.
	if hot, ok := stub.events[0].(HotChangedEvent); !ok || !hot.Hot {
		t.Fatalf("expected a HotChanged(true) before the mouse event, got %v", stub.events[0])
	}
}

func TestMouseDownOutsideRectDoesNotRecurse(t *testing.T) {
	stub := &stubWidget{}
	pod := NewWidgetPod[testData](stub)
	pod.SetLayoutRect(graphics.RectFromLTWH(10, 10, 20, 20))
	d := testData{}
	env := EmptyEnv()

	dispatch(t, pod, MouseDownEvent{MouseEvent{Pos: graphics.Offset{X: 5, Y: 5}}}, &d, &env)

	if pod.IsHot() {
		t.Fatalf("pod must not be hot for a miss")
	}
	if len(stub.events) != 0 {
		t.Fatalf("inactive pod must not recurse on a miss, got %d events", len(stub.events))
	}
}

func TestActivePodReceivesMouseOutsideRect(t *testing.T) {
	stub := &stubWidget{
		onEvent: func(ctx *EventCtx, event Event, data *testData) {
			if _, ok := event.(MouseDownEvent); ok {
				ctx.SetActive(true)
			}
		},
	}
	pod := NewWidgetPod[testData](stub)
	pod.SetLayoutRect(graphics.RectFromLTWH(10, 10, 20, 20))
	d := testData{}
	env := EmptyEnv()

	dispatch(t, pod, MouseDownEvent{MouseEvent{Pos: graphics.Offset{X: 15, Y: 15}}}, &d, &env)
	if !pod.IsActive() || !pod.HasActive() {
		t.Fatalf("pod should be active after SetActive(true)")
	}

	// Drag away: active widgets keep receiving mouse events.
	dispatch(t, pod, MouseMoveEvent{MouseEvent{Pos: graphics.Offset{X: 500, Y: 500}}}, &d, &env)
	var moves int
	for _, ev := range stub.events {
		if _, ok := ev.(MouseMoveEvent); ok {
			moves++
		}
	}
	if moves != 1 {
		t.Fatalf("active pod should receive the move outside its rect, got %d moves", moves)
	}
	if pod.IsHot() {
		t.Fatalf("pod should no longer be hot after the cursor left")
	}
}

func TestMouseMoveTogglesHotWithNotification(t *testing.T) {
	stub := &stubWidget{}
	pod := NewWidgetPod[testData](stub)
	pod.SetLayoutRect(graphics.RectFromLTWH(0, 0, 10, 10))
	d := testData{}
	env := EmptyEnv()

	dispatch(t, pod, MouseMoveEvent{MouseEvent{Pos: graphics.Offset{X: 5, Y: 5}}}, &d, &env)
	if !pod.IsHot() {
		t.Fatalf("move inside should set hot")
	}

	dispatch(t, pod, MouseMoveEvent{MouseEvent{Pos: graphics.Offset{X: 50, Y: 50}}}, &d, &env)
	if pod.IsHot() {
		t.Fatalf("move outside should clear hot")
	}
	var hots []bool
	for _, ev := range stub.events {
		if hc, ok := ev.(HotChangedEvent); ok {
			hots = append(hots, hc.Hot)
		}
	}
	if len(hots) != 2 || !hots[0] || hots[1] {
		t.Fatalf("expected HotChanged true then false, got %v", hots)
	}
}

func TestFocusChangedConsumesRequest(t *testing.T) {
	stub := &stubWidget{
		onEvent: func(ctx *EventCtx, event Event, data *testData) {
			if _, ok := event.(MouseDownEvent); ok {
				ctx.RequestFocus()
			}
		},
	}
	pod := NewWidgetPod[testData](stub)
	pod.SetLayoutRect(graphics.RectFromLTWH(0, 0, 10, 10))
	d := testData{}
	env := EmptyEnv()

	rootState := dispatch(t, pod, MouseDownEvent{MouseEvent{Pos: graphics.Offset{X: 5, Y: 5}}}, &d, &env)
	if !rootState.FocusRequested() {
		t.Fatalf("focus request should merge up to the root")
	}

	dispatch(t, pod, FocusChangedEvent{Focused: true}, &d, &env)
	if !pod.HasFocus() {
		t.Fatalf("pod should hold focus after the FocusChanged pass")
	}
	if pod.State().FocusRequested() {
		t.Fatalf("the focus request must be cleared by the dispatch")
	}
	var focuses []FocusChangedEvent
	for _, ev := range stub.events {
		if f, ok := ev.(FocusChangedEvent); ok {
			focuses = append(focuses, f)
		}
	}
	if len(focuses) != 1 || !focuses[0].Focused {
		t.Fatalf("expected exactly one FocusChanged(true) into the child, got %v", focuses)
	}

	// Keyboard events now reach the focused pod.
	dispatch(t, pod, KeyDownEvent{KeyEvent{Code: 'a'}}, &d, &env)
	var keys int
	for _, ev := range stub.events {
		if _, ok := ev.(KeyDownEvent); ok {
			keys++
		}
	}
	if keys != 1 {
		t.Fatalf("focused pod should receive key events, got %d", keys)
	}
}

func TestKeyEventsSkipUnfocusedPod(t *testing.T) {
	stub := &stubWidget{}
	pod := NewWidgetPod[testData](stub)
	d := testData{}
	env := EmptyEnv()

	dispatch(t, pod, KeyDownEvent{KeyEvent{Code: 'a'}}, &d, &env)
	dispatch(t, pod, PasteEvent{Text: "clip"}, &d, &env)

	if len(stub.events) != 0 {
		t.Fatalf("unfocused pod must not receive keyboard events, got %d", len(stub.events))
	}
}

func TestAnimFrameConsumesRequestTimerStays(t *testing.T) {
	stub := &stubWidget{}
	pod := NewWidgetPod[testData](stub)
	d := testData{}
	env := EmptyEnv()

	// Neither was requested: both are skipped.
	dispatch(t, pod, AnimFrameEvent{}, &d, &env)
	dispatch(t, pod, TimerEvent{Token: 1}, &d, &env)
	if len(stub.events) != 0 {
		t.Fatalf("unrequested anim/timer events must be skipped, got %d", len(stub.events))
	}

	stub.onEvent = func(ctx *EventCtx, event Event, data *testData) {
		if _, ok := event.(LifeCycleEvent); ok {
			ctx.RequestAnimFrame()
			ctx.RequestTimer(time.Now().Add(10 * time.Millisecond))
		}
	}
	dispatch(t, pod, LifeCycleEvent{Kind: LifeCycleConnected}, &d, &env)

	dispatch(t, pod, AnimFrameEvent{}, &d, &env)
	dispatch(t, pod, AnimFrameEvent{}, &d, &env)
	var anims int
	for _, ev := range stub.events {
		if _, ok := ev.(AnimFrameEvent); ok {
			anims++
		}
	}
	if anims != 1 {
		t.Fatalf("anim request is consumed by the first frame, got %d frames", anims)
	}

	// The timer request flag is sticky: it is never cleared, so timer
	// events keep being delivered.
	dispatch(t, pod, TimerEvent{Token: 2}, &d, &env)
	dispatch(t, pod, TimerEvent{Token: 3}, &d, &env)
	var timers int
	for _, ev := range stub.events {
		if _, ok := ev.(TimerEvent); ok {
			timers++
		}
	}
	if timers != 2 {
		t.Fatalf("sticky timer request should keep delivering, got %d timer events", timers)
	}
}

func TestHandledEventStopsPropagation(t *testing.T) {
	stub := &stubWidget{}
	pod := NewWidgetPod[testData](stub)
	pod.SetLayoutRect(graphics.RectFromLTWH(0, 0, 10, 10))
	d := testData{}
	env := EmptyEnv()

	var rootState BaseState
	var cursor platform.Cursor
	ctx := NewRootEventCtx(platform.NewStubWindow(), platform.NextWindowID(), &CommandQueue{}, &rootState, &cursor)
	ctx.SetHandled()
	pod.Event(ctx, MouseDownEvent{MouseEvent{Pos: graphics.Offset{X: 5, Y: 5}}}, &d, &env)

	if len(stub.events) != 0 {
		t.Fatalf("handled events must not propagate, got %d events", len(stub.events))
	}
}

func TestSizeEventOnlyRecursesAtRoot(t *testing.T) {
	stub := &stubWidget{}
	pod := NewWidgetPod[testData](stub)
	d := testData{}
	env := EmptyEnv()

	// Root dispatch: delivered.
	dispatch(t, pod, SizeEvent{Size: graphics.Size{Width: 100, Height: 100}}, &d, &env)
	if len(stub.events) != 1 {
		t.Fatalf("root pod should receive size events, got %d", len(stub.events))
	}

	// A nested pod never sees them.
	inner := &stubWidget{}
	child := NewWidgetPod[testData](inner)
	outer := &containerWidget{child: child, childOrigin: graphics.Offset{}}
	root := NewWidgetPod[testData](outer)
	dispatch(t, root, SizeEvent{Size: graphics.Size{Width: 50, Height: 50}}, &d, &env)
	if len(inner.events) != 0 {
		t.Fatalf("size events must not walk past the root, child got %d", len(inner.events))
	}
}

func TestPaintCullsOutsideVisibleRegion(t *testing.T) {
	stub := &stubWidget{}
	pod := NewWidgetPod[testData](stub)
	pod.SetLayoutRect(graphics.RectFromLTWH(1000, 1000, 10, 10))
	d := testData{}
	env := EmptyEnv()

	recorder := &rendering.PictureRecorder{}
	canvas := recorder.BeginRecording(graphics.Size{Width: 100, Height: 100})
	region := graphics.RegionFromRect(graphics.RectFromLTWH(0, 0, 100, 100))

	ctx := NewPaintCtx(canvas, platform.NextWindowID(), region)
	pod.PaintWithOffset(ctx, &d, &env)
	if stub.paints != 0 {
		t.Fatalf("offscreen pod must be culled, got %d paints", stub.paints)
	}

	pod.PaintWithOffsetAlways(ctx, &d, &env)
	if stub.paints != 1 {
		t.Fatalf("PaintWithOffsetAlways must skip the cull, got %d paints", stub.paints)
	}
}

func TestPaintNarrowsChildRegion(t *testing.T) {
	var childRegion graphics.Rect
	rec := &regionRecorder{onPaint: func(ctx *PaintCtx) {
		childRegion = ctx.Region().ToRect()
	}}
	pod := NewWidgetPod[testData](rec)
	pod.SetLayoutRect(graphics.RectFromLTWH(20, 30, 40, 40))
	d := testData{}
	env := EmptyEnv()

	recorder := &rendering.PictureRecorder{}
	canvas := recorder.BeginRecording(graphics.Size{Width: 100, Height: 100})
	ctx := NewPaintCtx(canvas, platform.NextWindowID(), graphics.RegionFromRect(graphics.RectFromLTWH(0, 0, 100, 100)))

	pod.PaintWithOffset(ctx, &d, &env)

	want := graphics.RectFromLTWH(-20, -30, 100, 100)
	if childRegion != want {
		t.Fatalf("child should observe the region in its own space: want %+v got %+v", want, childRegion)
	}
}

// containerWidget delegates every operation to a single child pod, the way
// real containers do.
type containerWidget struct {
	child       *WidgetPod[testData]
	childOrigin graphics.Offset
}

func (w *containerWidget) Event(ctx *EventCtx, event Event, data *testData, env *Env) {
	w.child.Event(ctx, event, data, env)
}

func (w *containerWidget) Update(ctx *UpdateCtx, oldData *testData, data *testData, env *Env) {
	w.child.Update(ctx, data, env)
}

func (w *containerWidget) Layout(ctx *LayoutCtx, bc BoxConstraints, data *testData, env *Env) graphics.Size {
	size := w.child.Layout(ctx, bc.Loosen(), data, env)
	w.child.SetLayoutRect(graphics.RectFromOriginSize(w.childOrigin, size))
	return bc.Constrain(size)
}

func (w *containerWidget) Paint(ctx *PaintCtx, state *BaseState, data *testData, env *Env) {
	w.child.PaintWithOffset(ctx, data, env)
}

// regionRecorder records the paint context it was handed.
type regionRecorder struct {
	onPaint func(ctx *PaintCtx)
}

func (p *regionRecorder) Event(ctx *EventCtx, event Event, data *testData, env *Env)         {}
func (p *regionRecorder) Update(ctx *UpdateCtx, oldData *testData, data *testData, env *Env) {}
func (p *regionRecorder) Layout(ctx *LayoutCtx, bc BoxConstraints, data *testData, env *Env) graphics.Size {
	return bc.Min
}
func (p *regionRecorder) Paint(ctx *PaintCtx, state *BaseState, data *testData, env *Env) {
	if p.onPaint != nil {
		p.onPaint(ctx)
	}
}

func TestTwoLevelTreeTranslatesAndMerges(t *testing.T) {
	stub := &stubWidget{
		layoutSize: graphics.Size{Width: 20, Height: 20},
		onEvent: func(ctx *EventCtx, event Event, data *testData) {
			if _, ok := event.(MouseDownEvent); ok {
				ctx.SetActive(true)
				data.N++
			}
		},
	}
	child := NewWidgetPod[testData](stub)
	container := &containerWidget{child: child, childOrigin: graphics.Offset{X: 10, Y: 20}}
	root := NewWidgetPod[testData](container)
	root.SetLayoutRect(graphics.RectFromLTWH(0, 0, 100, 100))

	d := testData{}
	env := EmptyEnv()

	// Lay the child out at (10,20) size 20x20.
	layoutCtx := NewLayoutCtx(rendering.BasicTextFactory(), platform.NextWindowID())
	root.Layout(layoutCtx, BoxConstraints{Max: graphics.Size{Width: 100, Height: 100}}, &d, &env)

	// Mouse-down at (15, 25): inside the child, at (5, 5) in child space.
	rootState := dispatch(t, root, MouseDownEvent{MouseEvent{Pos: graphics.Offset{X: 15, Y: 25}}}, &d, &env)

	downs := stub.mouseDowns()
	if len(downs) != 1 {
		t.Fatalf("child should receive exactly one mouse-down, got %d", len(downs))
	}
	want := graphics.Offset{X: 5, Y: 5}
	if downs[0].Pos != want {
		t.Fatalf("expected position %v in child coordinates, got %v", want, downs[0].Pos)
	}
	if d.N != 1 {
		t.Fatalf("child mutation should reach the shared data, N=%d", d.N)
	}

	// The child's post-event state merges up through the root pod.
	if !root.IsHot() || !root.HasActive() {
		t.Fatalf("root flags should reflect the child via OR-merge: hot=%v hasActive=%v",
			root.IsHot(), root.HasActive())
	}
	if !rootState.HasActive() || !rootState.IsHot() {
		t.Fatalf("root context state should reflect the merged flags")
	}
}

func TestCommandsQueueInSubmissionOrder(t *testing.T) {
	stub := &stubWidget{
		onEvent: func(ctx *EventCtx, event Event, data *testData) {
			if _, ok := event.(MouseDownEvent); ok {
				ctx.SubmitCommand(Command{Selector: "first"})
				ctx.SubmitCommand(Command{Selector: "second"})
			}
		},
	}
	pod := NewWidgetPod[testData](stub)
	pod.SetLayoutRect(graphics.RectFromLTWH(0, 0, 10, 10))
	d := testData{}
	env := EmptyEnv()

	var rootState BaseState
	var cursor platform.Cursor
	queue := &CommandQueue{}
	id := platform.NextWindowID()
	ctx := NewRootEventCtx(platform.NewStubWindow(), id, queue, &rootState, &cursor)
	pod.Event(ctx, MouseDownEvent{MouseEvent{Pos: graphics.Offset{X: 5, Y: 5}}}, &d, &env)

	drained := queue.Drain()
	if len(drained) != 2 || drained[0].Command.Selector != "first" || drained[1].Command.Selector != "second" {
		t.Fatalf("commands must drain in submission order, got %v", drained)
	}
	if drained[0].Target != id {
		t.Fatalf("commands default to the submitting window")
	}
	if queue.Len() != 0 {
		t.Fatalf("drain must empty the queue")
	}
}

// failingCanvas errors on demand so paint error paths can be exercised.
type failingCanvas struct {
	saveErr    error
	restoreErr error
	draws      int
}

func (c *failingCanvas) Save() error              { return c.saveErr }
func (c *failingCanvas) Restore() error           { return c.restoreErr }
func (c *failingCanvas) Translate(dx, dy float64) {}
func (c *failingCanvas) DrawRect(rect graphics.Rect, paint rendering.Paint) {
	c.draws++
}

type capturingHandler struct {
	errs []*errors.Error
}

func (h *capturingHandler) HandleError(err *errors.Error)      { h.errs = append(h.errs, err) }
func (h *capturingHandler) HandlePanic(err *errors.PanicError) {}

func TestPaintSaveFailureAbortsSubtree(t *testing.T) {
	h := &capturingHandler{}
	errors.SetHandler(h)
	defer errors.SetHandler(nil)

	stub := &stubWidget{}
	pod := NewWidgetPod[testData](stub)
	pod.SetLayoutRect(graphics.RectFromLTWH(0, 0, 10, 10))
	d := testData{}
	env := EmptyEnv()

	canvas := &failingCanvas{saveErr: fmt.Errorf("context lost")}
	ctx := NewPaintCtx(canvas, platform.NextWindowID(), graphics.RegionFromRect(graphics.RectFromLTWH(0, 0, 100, 100)))
	pod.PaintWithOffset(ctx, &d, &env)

	if stub.paints != 0 {
		t.Fatalf("a failed save must abort the subtree's paint, got %d paints", stub.paints)
	}
	if len(h.errs) != 1 {
		t.Fatalf("expected 1 reported error, got %d", len(h.errs))
	}
	if h.errs[0].Kind != errors.KindRender {
		t.Fatalf("expected a render error, got %v", h.errs[0].Kind)
	}
}

func TestPaintRestoreFailureIsReportedNotFatal(t *testing.T) {
	h := &capturingHandler{}
	errors.SetHandler(h)
	defer errors.SetHandler(nil)

	stub := &stubWidget{}
	pod := NewWidgetPod[testData](stub)
	pod.SetLayoutRect(graphics.RectFromLTWH(0, 0, 10, 10))
	d := testData{}
	env := EmptyEnv()

	canvas := &failingCanvas{restoreErr: fmt.Errorf("unbalanced stack")}
	ctx := NewPaintCtx(canvas, platform.NextWindowID(), graphics.RegionFromRect(graphics.RectFromLTWH(0, 0, 100, 100)))
	pod.PaintWithOffset(ctx, &d, &env)

	if stub.paints != 1 {
		t.Fatalf("the subtree still paints before the restore fails, got %d paints", stub.paints)
	}
	if len(h.errs) != 1 || h.errs[0].Kind != errors.KindRender {
		t.Fatalf("the restore failure should be reported as a render error, got %v", h.errs)
	}
}
