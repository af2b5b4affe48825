package pool

import (
	"sync"
	"testing"
	"time"

	"github.com/coreflux/reactor/codec"
	"github.com/coreflux/reactor/handler"
	"github.com/coreflux/reactor/internal/netio"
	"github.com/coreflux/reactor/poll"
	"github.com/coreflux/reactor/transport"
)

// blockingStream is a transport.Stream that never has data available
// and silently accepts every write, so a Connection bound to it stays
// in its Reading phase forever. It exists only to keep a test
// connection alive without ever invoking the handler.
type blockingStream struct{}

func (blockingStream) Read([]byte) (int, error)    { return 0, netio.ErrWouldBlock }
func (blockingStream) Write(p []byte) (int, error) { return len(p), nil }

// TestQueueRoundRobinFairness verifies the dispatcher's round-robin
// guarantee: M streams queued onto N workers land with each worker
// getting ceil(M/N) or floor(M/N) streams, and the first M%N workers
// (by id) get the extra one.
func TestQueueRoundRobinFairness(t *testing.T) {
	const workers = 3
	const streams = 10

	bind := transport.TCPBind[[]byte, []byte]{Codec: codec.LengthPrefix{}}
	echo := handler.Func[[]byte, []byte](func(req []byte) poll.Pollable[[]byte] {
		return poll.Into(req, error(nil))
	})
	p := New[[]byte, []byte](bind, echo, Options{Workers: workers})
	defer p.Close()

	var mu sync.Mutex
	counts := make(map[int]int)
	var wg sync.WaitGroup
	wg.Add(streams)
	p.Events.On(EventConnection, func(args ...any) {
		id := args[0].(int)
		mu.Lock()
		counts[id]++
		mu.Unlock()
		wg.Done()
	})

	for i := 0; i < streams; i++ {
		p.Queue(blockingStream{})
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for every queued stream to bind")
	}

	mu.Lock()
	defer mu.Unlock()

	floor := streams / workers
	remainder := streams % workers
	for id := 0; id < workers; id++ {
		want := floor
		if id < remainder {
			want++
		}
		if counts[id] != want {
			t.Fatalf("worker %d: expected %d connections, got %d (counts=%v)", id, want, counts[id], counts)
		}
	}
}

// TestQueueDefaultsToDefaultWorkers verifies a zero Options.Workers
// falls back to DefaultWorkers rather than a single worker or a panic
// on division by the worker count.
func TestQueueDefaultsToDefaultWorkers(t *testing.T) {
	bind := transport.TCPBind[[]byte, []byte]{Codec: codec.LengthPrefix{}}
	echo := handler.Func[[]byte, []byte](func(req []byte) poll.Pollable[[]byte] {
		return poll.Into(req, error(nil))
	})
	p := New[[]byte, []byte](bind, echo, Options{})
	defer p.Close()

	if len(p.workers) != DefaultWorkers {
		t.Fatalf("expected %d workers, got %d", DefaultWorkers, len(p.workers))
	}
}
