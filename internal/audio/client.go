package audio

import (
	"fmt"
	"os"

	"github.com/godbus/dbus/v5"

	"github.com/xetibo/resetd/internal/errorkinds"
)

// PulseAudio's D-Bus protocol module (module-dbus-protocol) interfaces.
const (
	ifaceCore   = "org.PulseAudio.Core1"
	ifaceDevice = "org.PulseAudio.Core1.Device"
	ifaceStream = "org.PulseAudio.Core1.Stream"
	ifaceCard   = "org.PulseAudio.Core1.Card"

	corePath = dbus.ObjectPath("/org/pulseaudio/core1")

	lookupService   = "org.PulseAudio1"
	lookupPath      = dbus.ObjectPath("/org/pulseaudio/server_lookup1")
	lookupInterface = "org.PulseAudio.ServerLookup1"
)

// client wraps the PulseAudio D-Bus connection and its Core1 object,
// built on godbus's own connection and signal-channel primitives.
type client struct {
	conn *dbus.Conn
	core dbus.BusObject
}

// dial connects to the user's PulseAudio instance, preferring the
// XDG_RUNTIME_DIR socket path and falling back to a server-lookup query on
// the session bus (grounded on barista's pulseaudio module).
func dial() (*dbus.Conn, error) {
	if xdgDir := os.Getenv("XDG_RUNTIME_DIR"); xdgDir != "" {
		addr := fmt.Sprintf("unix:path=%s/pulse/dbus-socket", xdgDir)
		if conn, err := dialAndAuth(addr); err == nil {
			return conn, nil
		}
	}

	session, err := dbus.SessionBusPrivate()
	if err != nil {
		return nil, err
	}
	defer session.Close()
	if err := session.Auth(nil); err != nil {
		return nil, err
	}

	locator := session.Object(lookupService, lookupPath)
	addr, err := locator.GetProperty(lookupInterface + ".Address")
	if err != nil {
		return nil, err
	}

	return dialAndAuth(addr.Value().(string))
}

func dialAndAuth(addr string) (*dbus.Conn, error) {
	conn, err := dbus.Dial(addr)
	if err != nil {
		return nil, err
	}
	if err := conn.Auth(nil); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// connect dials PulseAudio and returns a ready client with Sink/Source/
// playback-stream/record-stream subscriptions active; card events are not
// subscribed.
func connect() (*client, error) {
	conn, err := dial()
	if err != nil {
		return nil, err
	}

	core := conn.Object(ifaceCore, corePath)

	c := &client{conn: conn, core: core}
	if err := c.subscribe(); err != nil {
		conn.Close()
		return nil, err
	}

	return c, nil
}

func (c *client) close() {
	c.conn.Close()
}

func (c *client) subscribe() error {
	signals := []string{
		"NewSink", "SinkUpdated", "SinkRemoved",
		"NewSource", "SourceUpdated", "SourceRemoved",
		"NewPlaybackStream", "PlaybackStreamUpdated", "PlaybackStreamRemoved",
		"NewRecordStream", "RecordStreamUpdated", "RecordStreamRemoved",
	}
	for _, sig := range signals {
		call := c.core.Call(ifaceCore+".ListenForSignal", 0, ifaceCore+"."+sig, []dbus.ObjectPath{})
		if call.Err != nil {
			return call.Err
		}
	}
	return nil
}

func (c *client) signalChannel() chan *dbus.Signal {
	ch := make(chan *dbus.Signal, 64)
	c.conn.Signal(ch)
	return ch
}

func (c *client) listPaths(property string) ([]dbus.ObjectPath, error) {
	variant, err := c.core.GetProperty(ifaceCore + "." + property)
	if err != nil {
		return nil, err
	}
	paths, ok := variant.Value().([]dbus.ObjectPath)
	if !ok {
		return nil, nil
	}
	return paths, nil
}

func (c *client) deviceObject(path dbus.ObjectPath) dbus.BusObject {
	return c.conn.Object(ifaceCore, path)
}

func (c *client) readSink(path dbus.ObjectPath) (Sink, error) {
	obj := c.deviceObject(path)

	s := Sink{Index: indexOf(path)}
	s.Name = propString(obj, ifaceDevice, "Name")
	s.Description = propString(obj, ifaceDevice, "Description")
	s.FormFactor = propString(obj, ifaceDevice, "FormFactor")
	vol := propVolume(obj, ifaceDevice)
	s.Volume = vol
	s.Channels = uint16(len(vol))
	s.Muted = propBool(obj, ifaceDevice, "Mute")
	s.CardIndex = propCardIndex(obj, ifaceDevice)

	return s, nil
}

func (c *client) readSource(path dbus.ObjectPath) (Source, error) {
	obj := c.deviceObject(path)

	s := Source{Index: indexOf(path)}
	s.Name = propString(obj, ifaceDevice, "Name")
	s.Description = propString(obj, ifaceDevice, "Description")
	s.FormFactor = propString(obj, ifaceDevice, "FormFactor")
	vol := propVolume(obj, ifaceDevice)
	s.Volume = vol
	s.Channels = uint16(len(vol))
	s.Muted = propBool(obj, ifaceDevice, "Mute")
	s.CardIndex = propCardIndex(obj, ifaceDevice)

	return s, nil
}

func (c *client) readInputStream(path dbus.ObjectPath) (InputStream, error) {
	obj := c.deviceObject(path)

	s := InputStream{Index: indexOf(path)}
	s.Name = propString(obj, ifaceStream, "Name")
	s.ApplicationName = propString(obj, ifaceStream, "ClientName")
	if sink, err := obj.GetProperty(ifaceStream + ".Device"); err == nil {
		if p, ok := sink.Value().(dbus.ObjectPath); ok {
			s.SinkIndex = indexOf(p)
		}
	}
	vol := propVolume(obj, ifaceStream)
	s.Volume = vol
	s.Channels = uint16(len(vol))
	s.Muted = propBool(obj, ifaceStream, "Mute")
	s.Corked = propBool(obj, ifaceStream, "Corked")
	s.HasVolume = propBool(obj, ifaceStream, "HasVolume")

	return s, nil
}

func (c *client) readOutputStream(path dbus.ObjectPath) (OutputStream, error) {
	obj := c.deviceObject(path)

	s := OutputStream{Index: indexOf(path)}
	s.Name = propString(obj, ifaceStream, "Name")
	s.ApplicationName = propString(obj, ifaceStream, "ClientName")
	if src, err := obj.GetProperty(ifaceStream + ".Device"); err == nil {
		if p, ok := src.Value().(dbus.ObjectPath); ok {
			s.SourceIndex = indexOf(p)
		}
	}
	vol := propVolume(obj, ifaceStream)
	s.Volume = vol
	s.Channels = uint16(len(vol))
	s.Muted = propBool(obj, ifaceStream, "Mute")
	s.Corked = propBool(obj, ifaceStream, "Corked")
	s.HasVolume = propBool(obj, ifaceStream, "HasVolume")

	return s, nil
}

func (c *client) readCard(path dbus.ObjectPath) (Card, error) {
	obj := c.deviceObject(path)

	card := Card{Index: indexOf(path)}
	card.Name = propString(obj, ifaceCard, "Name")

	if active, err := obj.GetProperty(ifaceCard + ".ActiveProfile"); err == nil {
		if p, ok := active.Value().(dbus.ObjectPath); ok {
			card.ActiveProfile = propString(c.deviceObject(p), ifaceCard+".Profile", "Name")
		}
	}

	if profiles, err := obj.GetProperty(ifaceCard + ".Profiles"); err == nil {
		if paths, ok := profiles.Value().([]dbus.ObjectPath); ok {
			for _, p := range paths {
				profObj := c.deviceObject(p)
				card.Profiles = append(card.Profiles, CardProfile{
					Name:        propString(profObj, ifaceCard+".Profile", "Name"),
					Description: propString(profObj, ifaceCard+".Profile", "Description"),
					Available:   propBool(profObj, ifaceCard+".Profile", "Available"),
				})
			}
		}
	}

	return card, nil
}

func (c *client) setVolume(path dbus.ObjectPath, iface string, channels uint16, volume uint32) error {
	vols := make([]uint32, channels)
	for i := range vols {
		vols[i] = volume
	}
	return c.deviceObject(path).Call("org.freedesktop.DBus.Properties.Set", 0, iface, "Volume", dbus.MakeVariant(vols)).Err
}

func (c *client) setMute(path dbus.ObjectPath, iface string, muted bool) error {
	return c.deviceObject(path).Call("org.freedesktop.DBus.Properties.Set", 0, iface, "Mute", dbus.MakeVariant(muted)).Err
}

func (c *client) setFallback(which string, path dbus.ObjectPath) error {
	return c.core.Call("org.freedesktop.DBus.Properties.Set", 0, ifaceCore, "Fallback"+which, dbus.MakeVariant(path)).Err
}

func (c *client) setStreamDevice(streamPath, devicePath dbus.ObjectPath) error {
	return c.deviceObject(streamPath).Call("org.freedesktop.DBus.Properties.Set", 0, ifaceStream, "Device", dbus.MakeVariant(devicePath)).Err
}

func (c *client) setCardProfile(cardPath dbus.ObjectPath, profileName string) error {
	profiles, err := c.deviceObject(cardPath).GetProperty(ifaceCard + ".Profiles")
	if err != nil {
		return err
	}
	paths, _ := profiles.Value().([]dbus.ObjectPath)
	for _, p := range paths {
		if propString(c.deviceObject(p), ifaceCard+".Profile", "Name") == profileName {
			return c.deviceObject(cardPath).Call("org.freedesktop.DBus.Properties.Set", 0, ifaceCard, "ActiveProfile", dbus.MakeVariant(p)).Err
		}
	}
	return errorkinds.ErrCardProfileNotFound
}

func (c *client) fallbackPath(which string) (dbus.ObjectPath, error) {
	v, err := c.core.GetProperty(ifaceCore + ".Fallback" + which)
	if err != nil {
		return "", err
	}
	p, _ := v.Value().(dbus.ObjectPath)
	return p, nil
}

func (c *client) pathByName(which, name string) (dbus.ObjectPath, error) {
	var path dbus.ObjectPath
	err := c.core.Call(ifaceCore+".Get"+which+"ByName", 0, name).Store(&path)
	return path, err
}

func propString(obj dbus.BusObject, iface, name string) string {
	v, err := obj.GetProperty(iface + "." + name)
	if err != nil {
		return ""
	}
	s, _ := v.Value().(string)
	return s
}

func propBool(obj dbus.BusObject, iface, name string) bool {
	v, err := obj.GetProperty(iface + "." + name)
	if err != nil {
		return false
	}
	b, _ := v.Value().(bool)
	return b
}

func propCardIndex(obj dbus.BusObject, iface string) int32 {
	v, err := obj.GetProperty(iface + ".Card")
	if err != nil {
		return -1
	}
	p, ok := v.Value().(dbus.ObjectPath)
	if !ok {
		return -1
	}
	return int32(indexOf(p))
}

func propVolume(obj dbus.BusObject, iface string) []uint32 {
	v, err := obj.GetProperty(iface + ".Volume")
	if err != nil {
		return nil
	}
	vols, _ := v.Value().([]uint32)
	return vols
}

func sinkPath(index uint32) dbus.ObjectPath {
	return dbus.ObjectPath(fmt.Sprintf("%s/sink%d", corePath, index))
}

func sourcePath(index uint32) dbus.ObjectPath {
	return dbus.ObjectPath(fmt.Sprintf("%s/source%d", corePath, index))
}

func streamPath(index uint32) dbus.ObjectPath {
	return dbus.ObjectPath(fmt.Sprintf("%s/playback_stream%d", corePath, index))
}

func recordStreamPath(index uint32) dbus.ObjectPath {
	return dbus.ObjectPath(fmt.Sprintf("%s/record_stream%d", corePath, index))
}

func cardPath(index uint32) dbus.ObjectPath {
	return dbus.ObjectPath(fmt.Sprintf("%s/card%d", corePath, index))
}

// indexOf recovers the numeric suffix PulseAudio's D-Bus module assigns
// object paths (.../core1/sink3 -> 3); it returns 0 on any mismatch.
func indexOf(path dbus.ObjectPath) uint32 {
	s := string(path)
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	if i == len(s) {
		return 0
	}
	var n uint32
	for _, r := range s[i:] {
		n = n*10 + uint32(r-'0')
	}
	return n
}
