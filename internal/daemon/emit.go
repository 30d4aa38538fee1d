package daemon

import (
	"context"

	"github.com/godbus/dbus/v5"

	"github.com/xetibo/resetd/internal/bluetooth"
	"github.com/xetibo/resetd/internal/eventbus"
	"github.com/xetibo/resetd/internal/wireless"
)

// emit turns one eventbus event into a session-bus signal on member under
// the given interface, logging (rather than failing the goroutine) on a
// transient bus error.
func (d *Daemon) emit(iface, member string, body ...interface{}) {
	if err := d.session.Emit(d.basePath, d.namespace+"."+iface+"."+member, body...); err != nil {
		d.log.WithError(err).WithField("signal", member).Warn("failed to emit signal")
	}
}

// emitWireless republishes wireless listener events as <ns>.Wireless signals
// until ctx is cancelled.
func (d *Daemon) emitWireless(ctx context.Context) error {
	added := d.bus.Subscribe(eventbus.TopicAccessPointAdded)
	removed := d.bus.Subscribe(eventbus.TopicAccessPointRemoved)
	changed := d.bus.Subscribe(eventbus.TopicAccessPointChanged)
	deviceChanged := d.bus.Subscribe(eventbus.TopicWifiDeviceChanged)
	defer d.bus.Unsubscribe(added, eventbus.TopicAccessPointAdded)
	defer d.bus.Unsubscribe(removed, eventbus.TopicAccessPointRemoved)
	defer d.bus.Unsubscribe(changed, eventbus.TopicAccessPointChanged)
	defer d.bus.Unsubscribe(deviceChanged, eventbus.TopicWifiDeviceChanged)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-added:
			if !ok {
				return nil
			}
			if ap, ok := ev.(wireless.AccessPoint); ok {
				d.emit("Wireless", "AccessPointAdded", ap)
			}

		case ev, ok := <-removed:
			if !ok {
				return nil
			}
			if path, ok := ev.(dbus.ObjectPath); ok {
				d.emit("Wireless", "AccessPointRemoved", path)
			}

		case ev, ok := <-changed:
			if !ok {
				return nil
			}
			if ap, ok := ev.(wireless.AccessPoint); ok {
				d.emit("Wireless", "AccessPointChanged", ap)
			}

		case ev, ok := <-deviceChanged:
			if !ok {
				return nil
			}
			if dev, ok := ev.(wireless.Device); ok {
				d.emit("Wireless", "WifiDeviceChanged", dev)
			}
		}
	}
}

// emitBluetooth republishes Bluetooth listener and pairing-agent events as
// <ns>.Bluetooth signals until ctx is cancelled.
func (d *Daemon) emitBluetooth(ctx context.Context) error {
	added := d.bus.Subscribe(eventbus.TopicBluetoothDeviceAdded)
	removed := d.bus.Subscribe(eventbus.TopicBluetoothDeviceRemoved)
	changed := d.bus.Subscribe(eventbus.TopicBluetoothDeviceChanged)
	pincodeReq := d.bus.Subscribe(eventbus.TopicPincodeRequested)
	displayPin := d.bus.Subscribe(eventbus.TopicDisplayPinCode)
	passkeyReq := d.bus.Subscribe(eventbus.TopicPassKeyRequested)
	displayPasskey := d.bus.Subscribe(eventbus.TopicDisplayPassKey)
	confirm := d.bus.Subscribe(eventbus.TopicRequestConfirmation)
	authorize := d.bus.Subscribe(eventbus.TopicRequestAuthorization)
	authorizeService := d.bus.Subscribe(eventbus.TopicAuthorizeService)
	defer d.bus.Unsubscribe(added, eventbus.TopicBluetoothDeviceAdded)
	defer d.bus.Unsubscribe(removed, eventbus.TopicBluetoothDeviceRemoved)
	defer d.bus.Unsubscribe(changed, eventbus.TopicBluetoothDeviceChanged)
	defer d.bus.Unsubscribe(pincodeReq, eventbus.TopicPincodeRequested)
	defer d.bus.Unsubscribe(displayPin, eventbus.TopicDisplayPinCode)
	defer d.bus.Unsubscribe(passkeyReq, eventbus.TopicPassKeyRequested)
	defer d.bus.Unsubscribe(displayPasskey, eventbus.TopicDisplayPassKey)
	defer d.bus.Unsubscribe(confirm, eventbus.TopicRequestConfirmation)
	defer d.bus.Unsubscribe(authorize, eventbus.TopicRequestAuthorization)
	defer d.bus.Unsubscribe(authorizeService, eventbus.TopicAuthorizeService)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-added:
			if !ok {
				return nil
			}
			if dev, ok := ev.(bluetooth.Device); ok {
				d.emit("Bluetooth", "BluetoothDeviceAdded", toWireDevice(dev))
			}

		case ev, ok := <-removed:
			if !ok {
				return nil
			}
			if path, ok := ev.(dbus.ObjectPath); ok {
				d.emit("Bluetooth", "BluetoothDeviceRemoved", path)
			}

		case ev, ok := <-changed:
			if !ok {
				return nil
			}
			if dev, ok := ev.(bluetooth.Device); ok {
				d.emit("Bluetooth", "BluetoothDeviceChanged", toWireDevice(dev))
			}

		case ev, ok := <-pincodeReq:
			if !ok {
				return nil
			}
			if path, ok := ev.(dbus.ObjectPath); ok {
				d.emit("Bluetooth", "PincodeRequested", path)
			}

		case ev, ok := <-displayPin:
			if !ok {
				return nil
			}
			if payload, ok := ev.(struct {
				Device  dbus.ObjectPath
				PinCode string
			}); ok {
				d.emit("Bluetooth", "DisplayPinCode", payload.PinCode)
			}

		case ev, ok := <-passkeyReq:
			if !ok {
				return nil
			}
			if path, ok := ev.(dbus.ObjectPath); ok {
				d.emit("Bluetooth", "PassKeyRequested", path)
			}

		case ev, ok := <-displayPasskey:
			if !ok {
				return nil
			}
			if payload, ok := ev.(struct {
				Device  dbus.ObjectPath
				Passkey uint32
				Entered uint16
			}); ok {
				d.emit("Bluetooth", "DisplayPassKey", payload.Passkey, payload.Entered)
			}

		case ev, ok := <-confirm:
			if !ok {
				return nil
			}
			if payload, ok := ev.(struct {
				Device  dbus.ObjectPath
				Passkey uint32
			}); ok {
				d.emit("Bluetooth", "RequestConfirmation", payload.Passkey)
			}

		case ev, ok := <-authorize:
			if !ok {
				return nil
			}
			if path, ok := ev.(dbus.ObjectPath); ok {
				d.emit("Bluetooth", "RequestAuthorization", path)
			}

		case ev, ok := <-authorizeService:
			if !ok {
				return nil
			}
			if payload, ok := ev.(struct {
				Device dbus.ObjectPath
				UUID   string
			}); ok {
				d.emit("Bluetooth", "AuthorizeService", payload.UUID)
			}
		}
	}
}

// emitAudio republishes PulseAudio subscription events as <ns>.Audio
// signals until ctx is cancelled. Each topic gets its own forwarding
// goroutine since the set is small, fixed, and known at compile time; a
// single fan-in channel keeps the actual Emit calls serialized on one
// goroutine, since the underlying bus connection serializes sends anyway.
func (d *Daemon) emitAudio(ctx context.Context) error {
	type audioEvent struct {
		member string
		body   interface{}
	}

	topics := []struct {
		topic  eventbus.Topic
		member string
	}{
		{eventbus.TopicSinkAdded, "SinkAdded"},
		{eventbus.TopicSinkChanged, "SinkChanged"},
		{eventbus.TopicSinkRemoved, "SinkRemoved"},
		{eventbus.TopicSourceAdded, "SourceAdded"},
		{eventbus.TopicSourceChanged, "SourceChanged"},
		{eventbus.TopicSourceRemoved, "SourceRemoved"},
		{eventbus.TopicInputStreamAdded, "InputStreamAdded"},
		{eventbus.TopicInputStreamChanged, "InputStreamChanged"},
		{eventbus.TopicInputStreamRemoved, "InputStreamRemoved"},
		{eventbus.TopicOutputStreamAdded, "OutputStreamAdded"},
		{eventbus.TopicOutputStreamChanged, "OutputStreamChanged"},
		{eventbus.TopicOutputStreamRemoved, "OutputStreamRemoved"},
	}

	events := make(chan audioEvent, 64)
	subs := make([]chan any, len(topics))
	for i, t := range topics {
		subs[i] = d.bus.Subscribe(t.topic)
	}
	defer func() {
		for i, t := range topics {
			d.bus.Unsubscribe(subs[i], t.topic)
		}
	}()

	for i, t := range topics {
		go func(ch chan any, member string) {
			for ev := range ch {
				select {
				case events <- audioEvent{member, ev}:
				case <-ctx.Done():
					return
				}
			}
		}(subs[i], t.member)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			d.emit("Audio", ev.member, ev.body)
		}
	}
}
