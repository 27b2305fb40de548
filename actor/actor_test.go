package actor_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/hfsm"
	"github.com/comalice/hfsm/actor"
	"github.com/comalice/hfsm/testutil"
)

type door string

const (
	closed door = "closed"
	opened door = "opened"
	ajar   door = "ajar"
	wide   door = "wide"
	broken door = "broken"
)

type action string

const (
	open  action = "open"
	push  action = "push"
	shut  action = "shut"
	smash action = "smash"
)

type doorMachine = hfsm.Machine[door, action]

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newDoor(t *testing.T, rec *testutil.Recorder) *doorMachine {
	t.Helper()
	m, err := hfsm.New(closed, func(b *hfsm.Builder[door, action]) {
		b.State(closed, hfsm.OnExit(rec.Hook("exit closed"))).
			Edge(open, ajar).
			Edge(smash, broken)
		b.State(opened, hfsm.OnEntry(rec.Hook("enter opened")), hfsm.OnExit(rec.Hook("exit opened"))).Within(func(s *hfsm.StateBuilder[door, action]) {
			s.State(ajar, hfsm.OnEntry(rec.Hook("enter ajar"))).Edge(push, wide)
			s.State(wide, hfsm.OnExit(rec.Hook("exit wide"))).Edge(shut, closed)
		})
		b.State(broken, hfsm.OnEntry(func() { panic("glass everywhere") }))
	}, hfsm.WithLogger(quietLogger()), hfsm.WithName("door"))
	require.NoError(t, err)
	return m
}

func startActor(t *testing.T, m *doorMachine, cfg actor.Config) *actor.Actor[door, action] {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = quietLogger()
	}
	a := actor.New(m, cfg)
	require.NoError(t, a.Start(context.Background()))
	t.Cleanup(func() { a.Stop() })
	return a
}

// sendRuntime drives an actor through Send so scenarios can be replayed.
type sendRuntime struct {
	t *testing.T
	a *actor.Actor[door, action]
}

func (r sendRuntime) Dispatch(evt hfsm.Event[action]) door {
	s, err := r.a.Send(context.Background(), evt)
	require.NoError(r.t, err)
	return s
}

func (r sendRuntime) Current() door {
	return r.a.Current()
}

func TestActorReplay(t *testing.T) {
	var rec testutil.Recorder
	a := startActor(t, newDoor(t, &rec), actor.Config{})

	testutil.Replay[door, hfsm.Event[action]](t, sendRuntime{t: t, a: a}, &rec, []testutil.Step[door, hfsm.Event[action]]{
		{Name: "open", Event: hfsm.Tag(open), Want: ajar, Hooks: []string{"exit closed", "enter opened", "enter ajar"}},
		{Name: "shut while ajar is ignored", Event: hfsm.Tag(shut), Want: ajar},
		{Name: "push", Event: hfsm.Tag(push), Want: wide},
		{Name: "shut", Event: hfsm.Tag(shut), Want: closed, Hooks: []string{"exit wide", "exit opened"}},
	})
}

func TestActorPostProcessesInOrder(t *testing.T) {
	var rec testutil.Recorder
	a := startActor(t, newDoor(t, &rec), actor.Config{})

	require.NoError(t, a.Post(hfsm.Tag(open)))
	require.NoError(t, a.Post(hfsm.Tag(push)))
	require.NoError(t, a.Post(hfsm.Tag(shut)))

	require.Eventually(t, func() bool { return a.Current() == closed && len(rec.Calls()) == 5 }, time.Second, time.Millisecond)
	assert.Equal(t, []string{"exit closed", "enter opened", "enter ajar", "exit wide", "exit opened"}, rec.Calls())
}

func TestActorQueueFull(t *testing.T) {
	var rec testutil.Recorder
	a := actor.New(newDoor(t, &rec), actor.Config{QueueSize: 1, Logger: quietLogger()})

	// Not started: nothing drains the queue.
	require.NoError(t, a.Post(hfsm.Tag(open)))
	assert.ErrorIs(t, a.Post(hfsm.Tag(push)), actor.ErrQueueFull)

	require.NoError(t, a.Start(context.Background()))
	defer a.Stop()
	require.Eventually(t, func() bool { return a.Current() == ajar }, time.Second, time.Millisecond)
}

func TestActorStopped(t *testing.T) {
	var rec testutil.Recorder
	a := startActor(t, newDoor(t, &rec), actor.Config{})
	require.NoError(t, a.Stop())
	require.NoError(t, a.Stop(), "Stop is idempotent")

	assert.ErrorIs(t, a.Post(hfsm.Tag(open)), actor.ErrStopped)
	_, err := a.Send(context.Background(), hfsm.Tag(open))
	assert.ErrorIs(t, err, actor.ErrStopped)
	assert.ErrorIs(t, a.Start(context.Background()), actor.ErrStopped)
	assert.Equal(t, closed, a.Current())
}

func TestActorStopWithoutStart(t *testing.T) {
	var rec testutil.Recorder
	a := actor.New(newDoor(t, &rec), actor.Config{Logger: quietLogger()})
	require.NoError(t, a.Stop())

	select {
	case <-a.Done():
	default:
		t.Fatal("Done must be closed after Stop")
	}
}

func TestActorParentContextCancel(t *testing.T) {
	var rec testutil.Recorder
	a := actor.New(newDoor(t, &rec), actor.Config{Logger: quietLogger()})
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, a.Start(ctx))

	cancel()
	<-a.Done()
	assert.ErrorIs(t, a.Post(hfsm.Tag(open)), actor.ErrStopped)
	require.NoError(t, a.Stop())
}

func TestActorSendContextDeadline(t *testing.T) {
	var rec testutil.Recorder
	a := actor.New(newDoor(t, &rec), actor.Config{Logger: quietLogger()})
	defer a.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := a.Send(ctx, hfsm.Tag(open))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestActorRecoversFromPanickingHook(t *testing.T) {
	var rec testutil.Recorder
	a := startActor(t, newDoor(t, &rec), actor.Config{})

	_, err := a.Send(context.Background(), hfsm.Tag(smash))
	require.ErrorIs(t, err, actor.ErrPanicked)
	assert.Contains(t, err.Error(), "glass everywhere")
	assert.Equal(t, closed, a.Current(), "state is not written when a hook panics")

	got, err := a.Send(context.Background(), hfsm.Tag(open))
	require.NoError(t, err)
	assert.Equal(t, ajar, got)
}

func TestActorConcurrentSenders(t *testing.T) {
	var rec testutil.Recorder
	a := startActor(t, newDoor(t, &rec), actor.Config{QueueSize: 4})

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, k := range []action{open, push, shut} {
				_, err := a.Send(context.Background(), hfsm.Tag(k))
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
	assert.Contains(t, []door{closed, ajar, wide}, a.Current())
}
