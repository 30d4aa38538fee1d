package audio

import (
	"strings"

	"github.com/godbus/dbus/v5"

	"github.com/xetibo/resetd/internal/eventbus"
)

// handleSignal synthesises the matching Added/Changed/Removed eventbus
// publication for a subscription callback. The Removed case is
// short-circuited using the index alone, with no introspection call.
func (b *Bridge) handleSignal(c *client, sig *dbus.Signal) {
	name := sig.Name
	switch {
	case strings.HasSuffix(name, ".NewSink"), strings.HasSuffix(name, ".SinkUpdated"):
		path, ok := signalPath(sig)
		if !ok {
			return
		}
		s, err := c.readSink(path)
		if err != nil {
			return
		}
		if strings.HasSuffix(name, ".NewSink") {
			b.bus.Publish(eventbus.TopicSinkAdded, s)
		} else {
			b.bus.Publish(eventbus.TopicSinkChanged, s)
		}

	case strings.HasSuffix(name, ".SinkRemoved"):
		if idx, ok := signalIndex(sig); ok {
			b.bus.Publish(eventbus.TopicSinkRemoved, idx)
		}

	case strings.HasSuffix(name, ".NewSource"), strings.HasSuffix(name, ".SourceUpdated"):
		path, ok := signalPath(sig)
		if !ok {
			return
		}
		s, err := c.readSource(path)
		if err != nil {
			return
		}
		if strings.HasSuffix(name, ".NewSource") {
			b.bus.Publish(eventbus.TopicSourceAdded, s)
		} else {
			b.bus.Publish(eventbus.TopicSourceChanged, s)
		}

	case strings.HasSuffix(name, ".SourceRemoved"):
		if idx, ok := signalIndex(sig); ok {
			b.bus.Publish(eventbus.TopicSourceRemoved, idx)
		}

	case strings.HasSuffix(name, ".NewPlaybackStream"), strings.HasSuffix(name, ".PlaybackStreamUpdated"):
		path, ok := signalPath(sig)
		if !ok {
			return
		}
		s, err := c.readInputStream(path)
		if err != nil {
			return
		}
		if strings.HasSuffix(name, ".NewPlaybackStream") {
			b.bus.Publish(eventbus.TopicInputStreamAdded, s)
		} else {
			b.bus.Publish(eventbus.TopicInputStreamChanged, s)
		}

	case strings.HasSuffix(name, ".PlaybackStreamRemoved"):
		if idx, ok := signalIndex(sig); ok {
			b.bus.Publish(eventbus.TopicInputStreamRemoved, idx)
		}

	case strings.HasSuffix(name, ".NewRecordStream"), strings.HasSuffix(name, ".RecordStreamUpdated"):
		path, ok := signalPath(sig)
		if !ok {
			return
		}
		s, err := c.readOutputStream(path)
		if err != nil {
			return
		}
		if strings.HasSuffix(name, ".NewRecordStream") {
			b.bus.Publish(eventbus.TopicOutputStreamAdded, s)
		} else {
			b.bus.Publish(eventbus.TopicOutputStreamChanged, s)
		}

	case strings.HasSuffix(name, ".RecordStreamRemoved"):
		if idx, ok := signalIndex(sig); ok {
			b.bus.Publish(eventbus.TopicOutputStreamRemoved, idx)
		}
	}
}

func signalPath(sig *dbus.Signal) (dbus.ObjectPath, bool) {
	if len(sig.Body) < 1 {
		return "", false
	}
	p, ok := sig.Body[0].(dbus.ObjectPath)
	return p, ok
}

func signalIndex(sig *dbus.Signal) (uint32, bool) {
	if len(sig.Body) < 1 {
		return 0, false
	}
	p, ok := sig.Body[0].(dbus.ObjectPath)
	if !ok {
		return 0, false
	}
	return indexOf(p), true
}
