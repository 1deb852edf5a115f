package connection

import (
	"context"
	"errors"
	"testing"

	"github.com/marmos91/sessiongate/pkg/restriction"
	"github.com/marmos91/sessiongate/pkg/tunnel"
)

// connectableFunc adapts a function to the Connectable interface.
type connectableFunc func(ctx context.Context, params map[string]string) (tunnel.Tunnel, error)

func (f connectableFunc) Connect(ctx context.Context, params map[string]string) (tunnel.Tunnel, error) {
	return f(ctx, params)
}

// fakeTunnel is an in-memory tunnel recording written instructions.
type fakeTunnel struct {
	written    []*tunnel.Instruction
	closeCalls int
}

func (f *fakeTunnel) Reader() tunnel.Reader {
	return readerFunc(func() (*tunnel.Instruction, error) {
		return &tunnel.Instruction{Opcode: "sync", Args: []string{"0"}}, nil
	})
}

func (f *fakeTunnel) Writer() tunnel.Writer {
	return writerFunc(func(in *tunnel.Instruction) error {
		f.written = append(f.written, in)
		return nil
	})
}

func (f *fakeTunnel) Close() error {
	f.closeCalls++
	return nil
}

type readerFunc func() (*tunnel.Instruction, error)

func (f readerFunc) Read() (*tunnel.Instruction, error) { return f() }

type writerFunc func(in *tunnel.Instruction) error

func (f writerFunc) Write(in *tunnel.Instruction) error { return f(in) }

func newSession(user string, restrictions ...restriction.Restriction) *Session {
	return &Session{User: user, Restrictions: restriction.NewSet(restrictions...)}
}

func connectOK(raw tunnel.Tunnel) Connectable {
	return connectableFunc(func(context.Context, map[string]string) (tunnel.Tunnel, error) {
		return raw, nil
	})
}

func TestConnect_Success(t *testing.T) {
	manager := NewManager(nil)
	id := testID("desk-1")
	raw := &fakeTunnel{}

	tun, err := manager.Connect(context.Background(), newSession("alice"), id, connectOK(raw), nil)
	if err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	if tun == nil {
		t.Fatal("Connect() returned nil tunnel")
	}
	if !manager.Tracker().InUse(id) {
		t.Error("resource should be in use while the tunnel is open")
	}
}

func TestConnect_DeniedWhenBusy(t *testing.T) {
	manager := NewManager(nil)
	id := testID("desk-1")

	// First session (unrestricted) holds the resource.
	if _, err := manager.Connect(context.Background(), newSession("alice"), id, connectOK(&fakeTunnel{}), nil); err != nil {
		t.Fatalf("first Connect() error: %v", err)
	}

	// A restricted session must be turned away without touching the target.
	targetCalled := false
	target := connectableFunc(func(context.Context, map[string]string) (tunnel.Tunnel, error) {
		targetCalled = true
		return &fakeTunnel{}, nil
	})

	_, err := manager.Connect(context.Background(), newSession("bob", restriction.DisallowConcurrent), id, target, nil)
	if !errors.Is(err, ErrConcurrentAccess) {
		t.Fatalf("Connect() error = %v, want ErrConcurrentAccess", err)
	}
	if targetCalled {
		t.Error("target must not be contacted when admission is denied")
	}
	if got := manager.Tracker().Active()[id]; got != 1 {
		t.Errorf("count after denial = %d, want 1", got)
	}
}

func TestConnect_ReleasesOnTransportError(t *testing.T) {
	manager := NewManager(nil)
	id := testID("desk-1")
	transportErr := errors.New("broker unreachable")

	target := connectableFunc(func(context.Context, map[string]string) (tunnel.Tunnel, error) {
		return nil, transportErr
	})

	_, err := manager.Connect(context.Background(), newSession("alice", restriction.DisallowConcurrent), id, target, nil)
	if !errors.Is(err, transportErr) {
		t.Fatalf("Connect() error = %v, want wrapped transport error", err)
	}

	// The reservation must not leak: the same exclusive session can retry.
	if _, err := manager.Connect(context.Background(), newSession("alice", restriction.DisallowConcurrent), id, connectOK(&fakeTunnel{}), nil); err != nil {
		t.Errorf("retry after transport error should succeed, got %v", err)
	}
}

func TestConnect_ReleasesOnTransportPanic(t *testing.T) {
	manager := NewManager(nil)
	id := testID("desk-1")

	target := connectableFunc(func(context.Context, map[string]string) (tunnel.Tunnel, error) {
		panic("transport blew up")
	})

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected the transport panic to propagate")
			}
		}()
		manager.Connect(context.Background(), newSession("alice"), id, target, nil) //nolint:errcheck
	}()

	if manager.Tracker().InUse(id) {
		t.Error("reservation leaked after transport panic")
	}
}

func TestConnect_CloseReleasesExactlyOnce(t *testing.T) {
	manager := NewManager(nil)
	id := testID("desk-1")
	raw := &fakeTunnel{}

	tun, err := manager.Connect(context.Background(), newSession("alice"), id, connectOK(raw), nil)
	if err != nil {
		t.Fatalf("Connect() error: %v", err)
	}

	if err := tun.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
	if manager.Tracker().InUse(id) {
		t.Error("resource should be free after Close")
	}

	// A second Close must not release again or close the inner tunnel twice.
	tun.Close() //nolint:errcheck
	if raw.closeCalls != 1 {
		t.Errorf("inner tunnel closed %d times, want 1", raw.closeCalls)
	}
	if !manager.Tracker().Acquire(id, false) {
		t.Error("double Close corrupted the usage count")
	}
}

func TestConnect_BusyResourceFreesAfterClose(t *testing.T) {
	manager := NewManager(nil)
	id := testID("desk-1")

	held, err := manager.Connect(context.Background(), newSession("alice"), id, connectOK(&fakeTunnel{}), nil)
	if err != nil {
		t.Fatalf("Connect() error: %v", err)
	}

	restricted := newSession("bob", restriction.DisallowConcurrent)
	if _, err := manager.Connect(context.Background(), restricted, id, connectOK(&fakeTunnel{}), nil); !errors.Is(err, ErrConcurrentAccess) {
		t.Fatalf("expected denial while held, got %v", err)
	}

	held.Close() //nolint:errcheck

	if _, err := manager.Connect(context.Background(), restricted, id, connectOK(&fakeTunnel{}), nil); err != nil {
		t.Errorf("Connect() after release should succeed, got %v", err)
	}
}

func TestConnect_ReadOnlySessionGetsFilteredTunnel(t *testing.T) {
	manager := NewManager(nil)
	id := testID("desk-1")
	raw := &fakeTunnel{}

	tun, err := manager.Connect(context.Background(), newSession("alice", restriction.ForceReadOnly), id, connectOK(raw), nil)
	if err != nil {
		t.Fatalf("Connect() error: %v", err)
	}

	w := tun.Writer()
	w.Write(&tunnel.Instruction{Opcode: "key", Args: []string{"65", "1"}})  //nolint:errcheck
	w.Write(&tunnel.Instruction{Opcode: "sync", Args: []string{"12345"}})   //nolint:errcheck
	w.Write(&tunnel.Instruction{Opcode: "mouse", Args: []string{"10", "10", "1"}}) //nolint:errcheck

	if len(raw.written) != 1 {
		t.Fatalf("%d instructions reached the inner tunnel, want 1", len(raw.written))
	}
	if raw.written[0].Opcode != "sync" {
		t.Errorf("forwarded opcode = %q, want sync", raw.written[0].Opcode)
	}
}
