package daemon

import (
	"github.com/godbus/dbus/v5"

	"github.com/xetibo/resetd/internal/audio"
)

// audioIface implements <ns>.Audio.
type audioIface struct {
	bridge *audio.Bridge
}

func (a *audioIface) ListSinks() ([]audio.Sink, *dbus.Error) {
	sinks, err := a.bridge.ListSinks()
	if err != nil {
		return nil, dbus.MakeFailedError(err)
	}
	return sinks, nil
}

func (a *audioIface) ListSources() ([]audio.Source, *dbus.Error) {
	sources, err := a.bridge.ListSources()
	if err != nil {
		return nil, dbus.MakeFailedError(err)
	}
	return sources, nil
}

func (a *audioIface) ListInputStreams() ([]audio.InputStream, *dbus.Error) {
	streams, err := a.bridge.ListInputStreams()
	if err != nil {
		return nil, dbus.MakeFailedError(err)
	}
	return streams, nil
}

func (a *audioIface) ListOutputStreams() ([]audio.OutputStream, *dbus.Error) {
	streams, err := a.bridge.ListOutputStreams()
	if err != nil {
		return nil, dbus.MakeFailedError(err)
	}
	return streams, nil
}

func (a *audioIface) ListCards() ([]audio.Card, *dbus.Error) {
	cards, err := a.bridge.ListCards()
	if err != nil {
		return nil, dbus.MakeFailedError(err)
	}
	return cards, nil
}

func (a *audioIface) GetDefaultSink(name string) (audio.Sink, *dbus.Error) {
	sink, err := a.bridge.GetDefaultSink(name)
	if err != nil {
		return audio.Sink{}, dbus.MakeFailedError(err)
	}
	return sink, nil
}

func (a *audioIface) GetDefaultSource(name string) (audio.Source, *dbus.Error) {
	source, err := a.bridge.GetDefaultSource(name)
	if err != nil {
		return audio.Source{}, dbus.MakeFailedError(err)
	}
	return source, nil
}

func (a *audioIface) SetSinkVolume(index uint32, channels uint16, volume uint32) (bool, *dbus.Error) {
	return a.bridge.SetSinkVolume(index, channels, volume), nil
}

func (a *audioIface) SetSinkMute(index uint32, muted bool) (bool, *dbus.Error) {
	return a.bridge.SetSinkMute(index, muted), nil
}

func (a *audioIface) SetDefaultSink(index uint32) (bool, *dbus.Error) {
	return a.bridge.SetDefaultSink(index), nil
}

func (a *audioIface) SetSourceVolume(index uint32, channels uint16, volume uint32) (bool, *dbus.Error) {
	return a.bridge.SetSourceVolume(index, channels, volume), nil
}

func (a *audioIface) SetSourceMute(index uint32, muted bool) (bool, *dbus.Error) {
	return a.bridge.SetSourceMute(index, muted), nil
}

func (a *audioIface) SetDefaultSource(index uint32) (bool, *dbus.Error) {
	return a.bridge.SetDefaultSource(index), nil
}

func (a *audioIface) SetSinkOfInputStream(index uint32, sinkPath dbus.ObjectPath) (bool, *dbus.Error) {
	return a.bridge.SetSinkOfInputStream(index, sinkPath), nil
}

func (a *audioIface) SetInputStreamVolume(index uint32, channels uint16, volume uint32) (bool, *dbus.Error) {
	return a.bridge.SetInputStreamVolume(index, channels, volume), nil
}

func (a *audioIface) SetInputStreamMute(index uint32, muted bool) (bool, *dbus.Error) {
	return a.bridge.SetInputStreamMute(index, muted), nil
}

func (a *audioIface) SetSourceOfOutputStream(index uint32, sourcePath dbus.ObjectPath) (bool, *dbus.Error) {
	return a.bridge.SetSourceOfOutputStream(index, sourcePath), nil
}

func (a *audioIface) SetOutputStreamVolume(index uint32, channels uint16, volume uint32) (bool, *dbus.Error) {
	return a.bridge.SetOutputStreamVolume(index, channels, volume), nil
}

func (a *audioIface) SetOutputStreamMute(index uint32, muted bool) (bool, *dbus.Error) {
	return a.bridge.SetOutputStreamMute(index, muted), nil
}

func (a *audioIface) SetCardProfileOfDevice(index uint32, profile string) (bool, *dbus.Error) {
	return a.bridge.SetCardProfileOfDevice(index, profile), nil
}
