package output

import (
	"testing"
	"time"

	"github.com/pidge/LX/color"
	"github.com/pidge/LX/doublebuffer"
)

func TestNetworkWorkerSendsOnNotify(t *testing.T) {
	bufs := doublebuffer.NewSet(2)
	color.Fill(bufs.Main.Render(), color.White)
	bufs.Flip(false, true)

	sink := newRecordingSink(2)
	w := NewNetworkWorker(bufs, sink, 2)
	w.Start()
	defer w.Stop()

	w.Notify()

	deadline := time.Now().Add(time.Second)
	for len(sink.received) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if len(sink.received) == 0 {
		t.Fatalf("expected network worker to deliver a frame after Notify")
	}
	if sink.received[0][0] != color.White {
		t.Fatalf("expected the published white frame, got %08X", sink.received[0][0])
	}
}

func TestNetworkWorkerStopIsIdempotent(t *testing.T) {
	bufs := doublebuffer.NewSet(1)
	sink := newRecordingSink(1)
	w := NewNetworkWorker(bufs, sink, 1)
	w.Start()
	w.Stop()
	w.Stop()
}
