package audio

import (
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"

	"github.com/xetibo/resetd/internal/errorkinds"
	"github.com/xetibo/resetd/internal/eventbus"
)

// Bridge is the audio worker: a single goroutine owns the PulseAudio
// client and serves requests submitted over a channel in FIFO order. The
// request channel is buffered to 256 entries, not unbounded; a submitter
// blocks while it is full.
type Bridge struct {
	bus *eventbus.Bus
	log *logrus.Entry

	active  atomic.Bool
	reqCh   chan AudioRequest
	stopped chan struct{}
}

// New returns a Bridge that has not yet started its worker.
func New(bus *eventbus.Bus, log *logrus.Entry) *Bridge {
	return &Bridge{bus: bus, log: log}
}

// StartAudioListener spawns the worker goroutine if not already active.
func (b *Bridge) StartAudioListener() bool {
	if !b.active.CompareAndSwap(false, true) {
		return true
	}

	b.reqCh = make(chan AudioRequest, 256)
	b.stopped = make(chan struct{})

	go b.run()

	return true
}

// StopAudioListener requests the worker to stop and wait for it to exit.
func (b *Bridge) StopAudioListener() bool {
	if !b.active.Load() {
		return true
	}

	reply := make(chan AudioResponse, 1)
	b.reqCh <- AudioRequest{kind: reqStopListener, reply: reply}
	<-b.stopped
	return true
}

// submit sends a request and blocks for its single response: every
// request, including mutations, gets exactly one reply so a caller can
// observe failure.
func (b *Bridge) submit(req AudioRequest) (AudioResponse, error) {
	if !b.active.Load() {
		return AudioResponse{}, errorkinds.ErrAudioNotRunning
	}

	b.reqCh <- req
	resp := <-req.reply
	return resp, resp.Err
}

func (b *Bridge) run() {
	defer close(b.stopped)
	defer b.active.Store(false)

	c, err := connect()
	if err != nil {
		b.log.WithError(err).Error("audio worker failed to connect to pulseaudio")
		return
	}
	defer c.close()

	signals := c.signalChannel()

	for {
		select {
		case sig := <-signals:
			b.handleSignal(c, sig)

		case req := <-b.reqCh:
			if req.kind == reqStopListener {
				if req.reply != nil {
					req.reply <- AudioResponse{OK: true}
				}
				return
			}
			b.handleRequest(c, req)
		}
	}
}
