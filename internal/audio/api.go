package audio

import "github.com/godbus/dbus/v5"

// ListSinks returns every sink PulseAudio currently exposes.
func (b *Bridge) ListSinks() ([]Sink, error) {
	resp, err := b.submit(AudioRequest{kind: reqListSinks, reply: make(chan AudioResponse, 1)})
	return resp.Sinks, err
}

// ListSources returns every source PulseAudio currently exposes.
func (b *Bridge) ListSources() ([]Source, error) {
	resp, err := b.submit(AudioRequest{kind: reqListSources, reply: make(chan AudioResponse, 1)})
	return resp.Sources, err
}

// ListInputStreams returns every playback stream.
func (b *Bridge) ListInputStreams() ([]InputStream, error) {
	resp, err := b.submit(AudioRequest{kind: reqListInputStreams, reply: make(chan AudioResponse, 1)})
	return resp.InputStreams, err
}

// ListOutputStreams returns every record stream.
func (b *Bridge) ListOutputStreams() ([]OutputStream, error) {
	resp, err := b.submit(AudioRequest{kind: reqListOutputStreams, reply: make(chan AudioResponse, 1)})
	return resp.OutputStreams, err
}

// ListCards returns every card and its profile list.
func (b *Bridge) ListCards() ([]Card, error) {
	resp, err := b.submit(AudioRequest{kind: reqListCards, reply: make(chan AudioResponse, 1)})
	return resp.Cards, err
}

// GetDefaultSink resolves name to the current default sink. An empty name
// is a soft failure: no request is even submitted.
func (b *Bridge) GetDefaultSink(name string) (Sink, error) {
	if name == "" {
		return Sink{}, nil
	}
	resp, err := b.submit(AudioRequest{kind: reqGetDefaultSink, name: name, reply: make(chan AudioResponse, 1)})
	if resp.Sink == nil {
		return Sink{}, err
	}
	return *resp.Sink, err
}

// GetDefaultSource resolves name to the current default source.
func (b *Bridge) GetDefaultSource(name string) (Source, error) {
	if name == "" {
		return Source{}, nil
	}
	resp, err := b.submit(AudioRequest{kind: reqGetDefaultSource, name: name, reply: make(chan AudioResponse, 1)})
	if resp.Source == nil {
		return Source{}, err
	}
	return *resp.Source, err
}

// SetSinkVolume writes the same volume to every one of channels channels on
// sink index.
func (b *Bridge) SetSinkVolume(index uint32, channels uint16, volume uint32) bool {
	return b.fireAndForget(AudioRequest{kind: reqSetSinkVolume, index: index, volume: volumeSet{index, channels, volume}})
}

// SetSinkMute mutes or unmutes sink index.
func (b *Bridge) SetSinkMute(index uint32, muted bool) bool {
	return b.fireAndForget(AudioRequest{kind: reqSetSinkMute, index: index, mute: muted})
}

// SetDefaultSink makes sink index the fallback sink.
func (b *Bridge) SetDefaultSink(index uint32) bool {
	return b.fireAndForget(AudioRequest{kind: reqSetDefaultSink, index: index})
}

// SetSourceVolume writes the same volume to every one of channels channels
// on source index.
func (b *Bridge) SetSourceVolume(index uint32, channels uint16, volume uint32) bool {
	return b.fireAndForget(AudioRequest{kind: reqSetSourceVolume, index: index, volume: volumeSet{index, channels, volume}})
}

// SetSourceMute mutes or unmutes source index.
func (b *Bridge) SetSourceMute(index uint32, muted bool) bool {
	return b.fireAndForget(AudioRequest{kind: reqSetSourceMute, index: index, mute: muted})
}

// SetDefaultSource makes source index the fallback source.
func (b *Bridge) SetDefaultSource(index uint32) bool {
	return b.fireAndForget(AudioRequest{kind: reqSetDefaultSource, index: index})
}

// SetSinkOfInputStream moves playback stream index onto sink sinkObjectPath.
func (b *Bridge) SetSinkOfInputStream(index uint32, sinkObjectPath dbus.ObjectPath) bool {
	return b.fireAndForget(AudioRequest{kind: reqSetSinkOfInputStream, index: index, path: sinkObjectPath})
}

// SetInputStreamVolume writes a volume to a playback stream.
func (b *Bridge) SetInputStreamVolume(index uint32, channels uint16, volume uint32) bool {
	return b.fireAndForget(AudioRequest{kind: reqSetInputStreamVolume, index: index, volume: volumeSet{index, channels, volume}})
}

// SetInputStreamMute mutes or unmutes a playback stream.
func (b *Bridge) SetInputStreamMute(index uint32, muted bool) bool {
	return b.fireAndForget(AudioRequest{kind: reqSetInputStreamMute, index: index, mute: muted})
}

// SetSourceOfOutputStream moves a record stream onto a different source.
func (b *Bridge) SetSourceOfOutputStream(index uint32, sourceObjectPath dbus.ObjectPath) bool {
	return b.fireAndForget(AudioRequest{kind: reqSetSourceOfOutputStream, index: index, path: sourceObjectPath})
}

// SetOutputStreamVolume writes a volume to a record stream.
func (b *Bridge) SetOutputStreamVolume(index uint32, channels uint16, volume uint32) bool {
	return b.fireAndForget(AudioRequest{kind: reqSetOutputStreamVolume, index: index, volume: volumeSet{index, channels, volume}})
}

// SetOutputStreamMute mutes or unmutes a record stream.
func (b *Bridge) SetOutputStreamMute(index uint32, muted bool) bool {
	return b.fireAndForget(AudioRequest{kind: reqSetOutputStreamMute, index: index, mute: muted})
}

// SetCardProfileOfDevice switches card index to profile.
func (b *Bridge) SetCardProfileOfDevice(index uint32, profile string) bool {
	return b.fireAndForget(AudioRequest{kind: reqSetCardProfileOfDevice, index: index, profile: profile})
}

// fireAndForget enqueues a mutation request and waits for the worker's
// single response so a caller can observe failure; the worker always
// answers mutation requests, not just list/get ones.
func (b *Bridge) fireAndForget(req AudioRequest) bool {
	req.reply = make(chan AudioResponse, 1)
	resp, err := b.submit(req)
	return err == nil && resp.OK
}
