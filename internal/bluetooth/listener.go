package bluetooth

import (
	"strings"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/xetibo/resetd/internal/dbusutil"
	"github.com/xetibo/resetd/internal/eventbus"
)

// StartBluetoothScan toggles discovery on the current adapter directly,
// independent of the listener thread.
func (c *Controller) StartBluetoothScan() bool {
	current, err := c.requireCurrent()
	if err != nil {
		return false
	}

	if err := dbusutil.Call(c.conn, c.callTimeout, Service, current.Path, ifaceAdapter, "StartDiscovery", nil); err != nil {
		return false
	}
	c.inDiscovery.Store(true)
	return true
}

// StopBluetoothScan stops discovery on the current adapter.
func (c *Controller) StopBluetoothScan() bool {
	current, err := c.requireCurrent()
	if err != nil {
		return false
	}

	if err := dbusutil.Call(c.conn, c.callTimeout, Service, current.Path, ifaceAdapter, "StopDiscovery", nil); err != nil {
		return false
	}
	c.inDiscovery.Store(false)
	return true
}

// StartBluetoothListener starts the topology listener thread: it invokes
// StartDiscovery, subscribes to InterfacesAdded/Removed and device property
// changes, and after durationMS stops discovery while keeping the
// subscriptions alive. It is idempotent: starting while active is a no-op
// that still reports success.
func (c *Controller) StartBluetoothListener(durationMS int) bool {
	if !c.listenerActive.CompareAndSwap(false, true) {
		return true
	}

	current, err := c.requireCurrent()
	if err != nil {
		c.listenerActive.Store(false)
		return false
	}

	duration := time.Duration(durationMS) * time.Millisecond
	if duration <= 0 {
		duration = c.scanDuration
	}

	if err := dbusutil.Call(c.conn, c.callTimeout, Service, current.Path, ifaceAdapter, "StartDiscovery", nil); err != nil {
		c.listenerActive.Store(false)
		return false
	}
	c.inDiscovery.Store(true)

	stopCh := make(chan struct{})
	c.mu.Lock()
	c.listenerStopCh = stopCh
	c.mu.Unlock()

	signals := make(chan *dbus.Signal, 64)
	c.conn.Signal(signals)
	_ = c.conn.AddMatchSignal(dbus.WithMatchInterface(ifaceObjectManager))
	_ = c.conn.AddMatchSignal(
		dbus.WithMatchInterface("org.freedesktop.DBus.Properties"),
		dbus.WithMatchMember("PropertiesChanged"),
	)

	go c.runListener(current.Path, signals, stopCh, duration)

	return true
}

// StopBluetoothListener terminates the listener thread by closing its stop
// channel; the active-listener flag returns to false once the thread exits.
func (c *Controller) StopBluetoothListener() bool {
	if !c.listenerActive.Load() {
		return true
	}

	c.mu.RLock()
	stopCh := c.listenerStopCh
	c.mu.RUnlock()
	if stopCh != nil {
		close(stopCh)
	}

	return true
}

func (c *Controller) runListener(adapterPath dbus.ObjectPath, signals chan *dbus.Signal, stopCh chan struct{}, duration time.Duration) {
	defer c.listenerActive.Store(false)

	timeout := time.NewTimer(duration)
	defer timeout.Stop()
	discoveryStopped := false

	for {
		select {
		case <-stopCh:
			return

		case <-timeout.C:
			if !discoveryStopped {
				_ = dbusutil.Call(c.conn, c.callTimeout, Service, adapterPath, ifaceAdapter, "StopDiscovery", nil)
				c.inDiscovery.Store(false)
				discoveryStopped = true
			}

		case sig, ok := <-signals:
			if !ok {
				return
			}
			c.handleSignal(adapterPath, sig)
		}
	}
}

func (c *Controller) handleSignal(adapterPath dbus.ObjectPath, sig *dbus.Signal) {
	switch {
	case strings.HasSuffix(sig.Name, ".InterfacesAdded"):
		c.handleInterfacesAdded(sig)

	case strings.HasSuffix(sig.Name, ".InterfacesRemoved"):
		c.handleInterfacesRemoved(sig)

	case strings.HasSuffix(sig.Name, ".PropertiesChanged"):
		c.handlePropertiesChanged(sig)
	}
}

func (c *Controller) handleInterfacesAdded(sig *dbus.Signal) {
	if len(sig.Body) < 2 {
		return
	}
	path, ok := sig.Body[0].(dbus.ObjectPath)
	if !ok {
		return
	}
	ifaces, ok := sig.Body[1].(map[string]map[string]dbus.Variant)
	if !ok {
		return
	}

	props, ok := ifaces[ifaceDevice]
	if !ok {
		return
	}

	d := NewDevice()
	if err := dbusutil.DecodeVariantMap(props, &d); err != nil {
		return
	}
	d.Path = path

	c.devices.Store(path, &d)
	c.bus.Publish(eventbus.TopicBluetoothDeviceAdded, d)
}

func (c *Controller) handleInterfacesRemoved(sig *dbus.Signal) {
	if len(sig.Body) < 2 {
		return
	}
	path, ok := sig.Body[0].(dbus.ObjectPath)
	if !ok {
		return
	}
	ifaces, ok := sig.Body[1].([]string)
	if !ok {
		return
	}

	for _, iface := range ifaces {
		if iface == ifaceDevice {
			c.devices.Delete(path)
			c.bus.Publish(eventbus.TopicBluetoothDeviceRemoved, path)
			return
		}
	}
}

func (c *Controller) handlePropertiesChanged(sig *dbus.Signal) {
	if len(sig.Body) < 2 {
		return
	}
	iface, ok := sig.Body[0].(string)
	if !ok || iface != ifaceDevice {
		return
	}

	d, ok := c.lookupDevice(sig.Path)
	if !ok {
		props, err := dbusutil.GetAllProperties(c.conn, c.callTimeout, Service, sig.Path, ifaceDevice)
		if err != nil {
			return
		}
		fresh := NewDevice()
		if err := dbusutil.DecodeVariantMap(props, &fresh); err != nil {
			return
		}
		fresh.Path = sig.Path
		c.devices.Store(sig.Path, &fresh)
		c.bus.Publish(eventbus.TopicBluetoothDeviceChanged, fresh)
		return
	}

	changed, ok := sig.Body[1].(map[string]dbus.Variant)
	if !ok {
		return
	}
	_ = dbusutil.DecodeVariantMap(changed, d)

	c.bus.Publish(eventbus.TopicBluetoothDeviceChanged, *d)
}
