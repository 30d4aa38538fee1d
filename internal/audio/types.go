// Package audio implements the audio bridge: a single worker goroutine
// owns the PulseAudio D-Bus client connection and services enumeration,
// default-device, and mutation requests sent over an in-process channel,
// republishing subscription events onto the eventbus.
package audio

import "github.com/godbus/dbus/v5"

// Sink mirrors a PulseAudio Core1.Device of type sink. Wire signature
// `(usssqaubi)`: index, name, description, form factor, channel count,
// channel volumes, muted, and the parent card index.
type Sink struct {
	Index       uint32
	Name        string
	Description string
	FormFactor  string
	Channels    uint16
	Volume      []uint32
	Muted       bool
	CardIndex   int32
}

// Source mirrors a PulseAudio Core1.Device of type source; same shape as Sink.
type Source struct {
	Index       uint32
	Name        string
	Description string
	FormFactor  string
	Channels    uint16
	Volume      []uint32
	Muted       bool
	CardIndex   int32
}

// InputStream mirrors a PulseAudio Core1.Stream playing into a sink. Wire
// signature `(usssuqaubbb)`: index, name, description, application name,
// parent sink index, channel count, channel volumes, muted, corked, has
// volume.
type InputStream struct {
	Index          uint32
	Name           string
	Description    string
	ApplicationName string
	SinkIndex      uint32
	Channels       uint16
	Volume         []uint32
	Muted          bool
	Corked         bool
	HasVolume      bool
}

// OutputStream mirrors a PulseAudio Core1.Stream recording from a source;
// same shape as InputStream with a parent source index.
type OutputStream struct {
	Index           uint32
	Name            string
	Description     string
	ApplicationName string
	SourceIndex     uint32
	Channels        uint16
	Volume          []uint32
	Muted           bool
	Corked          bool
	HasVolume       bool
}

// CardProfile is one entry of a Card's profile list.
type CardProfile struct {
	Name        string
	Description string
	Available   bool
}

// Card mirrors a PulseAudio Core1.Card: index, name, and its profile list
// with the active one marked.
type Card struct {
	Index         uint32
	Name          string
	ActiveProfile string
	Profiles      []CardProfile
}

// requestKind enumerates the audio worker's request vocabulary.
type requestKind int

const (
	reqListSinks requestKind = iota
	reqListSources
	reqListInputStreams
	reqListOutputStreams
	reqListCards
	reqGetDefaultSink
	reqGetDefaultSource
	reqSetSinkVolume
	reqSetSinkMute
	reqSetDefaultSink
	reqSetSourceVolume
	reqSetSourceMute
	reqSetDefaultSource
	reqSetSinkOfInputStream
	reqSetInputStreamVolume
	reqSetInputStreamMute
	reqSetSourceOfOutputStream
	reqSetOutputStreamVolume
	reqSetOutputStreamMute
	reqSetCardProfileOfDevice
	reqStopListener
)

// volumeSet is the (index, channel count, single volume) argument shape:
// the same volume is written to every one of Channels channels.
type volumeSet struct {
	Index    uint32
	Channels uint16
	Volume   uint32
}

// AudioRequest is the façade-to-worker message.
type AudioRequest struct {
	kind requestKind

	index   uint32
	name    string
	path    dbus.ObjectPath
	volume  volumeSet
	mute    bool
	profile string

	reply chan AudioResponse
}

// AudioResponse is the worker-to-façade reply. Exactly one non-nil payload
// field (or Err) is meaningful per request kind; list and mutation requests
// always receive a response, mutations reporting success through OK.
type AudioResponse struct {
	Sinks         []Sink
	Sources       []Source
	InputStreams  []InputStream
	OutputStreams []OutputStream
	Cards         []Card

	Sink   *Sink
	Source *Source

	OK  bool
	Err error
}
