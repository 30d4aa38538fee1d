package wireless

import (
	"strings"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/xetibo/resetd/internal/dbusutil"
	"github.com/xetibo/resetd/internal/eventbus"
)

// StartNetworkListener subscribes to access-point and device topology
// events on the system bus and republishes them on the eventbus. It is
// idempotent: starting while active is a no-op that still reports success.
func (c *Controller) StartNetworkListener() bool {
	if !c.listenerActive.CompareAndSwap(false, true) {
		return true
	}

	current, err := c.requireCurrent()
	if err != nil {
		c.listenerActive.Store(false)
		return false
	}

	c.mu.Lock()
	c.stopCh = make(chan struct{})
	c.mu.Unlock()

	c.stopRequested.Store(false)

	signals := make(chan *dbus.Signal, 64)
	c.conn.Signal(signals)

	c.addListenerMatches(current.Path)

	go c.runListener(current.Path, signals)

	return true
}

// StopNetworkListener signals the listener goroutine to terminate; no
// event is emitted after termination.
func (c *Controller) StopNetworkListener() bool {
	if !c.listenerActive.Load() {
		return true
	}

	c.stopRequested.Store(true)

	c.mu.RLock()
	stopCh := c.stopCh
	c.mu.RUnlock()
	if stopCh != nil {
		close(stopCh)
	}

	return true
}

func (c *Controller) addListenerMatches(devicePath dbus.ObjectPath) {
	matches := []dbus.MatchOption{
		dbus.WithMatchObjectPath(devicePath),
		dbus.WithMatchInterface(ifaceDeviceWireless),
	}
	_ = c.conn.AddMatchSignal(matches...)

	_ = c.conn.AddMatchSignal(
		dbus.WithMatchInterface("org.freedesktop.DBus.Properties"),
		dbus.WithMatchMember("PropertiesChanged"),
	)
}

// runListener is the topology listener thread. It republishes
// AccessPointAdded/Removed/Changed and WifiDeviceChanged events, and
// requests a rescan at most once every rescanInterval.
func (c *Controller) runListener(devicePath dbus.ObjectPath, signals chan *dbus.Signal) {
	defer c.listenerActive.Store(false)

	lastScan := time.Time{}
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopSignal():
			return

		case sig, ok := <-signals:
			if !ok {
				return
			}
			if c.stopRequested.Load() {
				return
			}
			c.handleSignal(devicePath, sig)

		case <-ticker.C:
			if c.stopRequested.Load() {
				return
			}
			if time.Since(lastScan) >= c.rescanInterval {
				c.requestScan(devicePath)
				lastScan = time.Now()
			}
		}
	}
}

func (c *Controller) requestScan(devicePath dbus.ObjectPath) {
	_ = dbusutil.Call(c.conn, c.callTimeout, Service, devicePath, ifaceDeviceWireless, "RequestScan", nil, map[string]dbus.Variant{})
}

func (c *Controller) handleSignal(devicePath dbus.ObjectPath, sig *dbus.Signal) {
	switch {
	case strings.HasSuffix(sig.Name, ".AccessPointAdded"):
		if len(sig.Body) < 1 {
			return
		}
		path, ok := sig.Body[0].(dbus.ObjectPath)
		if !ok {
			return
		}
		ap, err := c.readAccessPoint(path)
		if err != nil {
			return
		}
		c.bus.Publish(eventbus.TopicAccessPointAdded, ap)

	case strings.HasSuffix(sig.Name, ".AccessPointRemoved"):
		if len(sig.Body) < 1 {
			return
		}
		path, ok := sig.Body[0].(dbus.ObjectPath)
		if !ok {
			return
		}
		c.bus.Publish(eventbus.TopicAccessPointRemoved, path)

	case strings.HasSuffix(sig.Name, ".PropertiesChanged"):
		c.handlePropertiesChanged(devicePath, sig)
	}
}

func (c *Controller) handlePropertiesChanged(devicePath dbus.ObjectPath, sig *dbus.Signal) {
	if len(sig.Body) < 2 {
		return
	}
	iface, ok := sig.Body[0].(string)
	if !ok {
		return
	}
	changed, ok := sig.Body[1].(map[string]dbus.Variant)
	if !ok {
		return
	}

	switch iface {
	case ifaceAccessPoint:
		ap, err := c.readAccessPoint(sig.Path)
		if err != nil {
			return
		}
		c.bus.Publish(eventbus.TopicAccessPointChanged, ap)

	case ifaceDevice, ifaceDeviceWireless:
		if sig.Path != devicePath {
			return
		}
		if _, ok := changed["ActiveAccessPoint"]; !ok {
			if _, ok := changed["ActiveConnection"]; !ok {
				return
			}
		}

		c.mu.RLock()
		current := c.current
		c.mu.RUnlock()
		if current == nil {
			return
		}

		c.refreshDeviceState(current)

		c.mu.RLock()
		dev := *current
		c.mu.RUnlock()
		c.bus.Publish(eventbus.TopicWifiDeviceChanged, dev)

	case ifaceNM:
		if _, ok := changed["ActiveConnections"]; !ok {
			return
		}

		c.mu.RLock()
		current := c.current
		c.mu.RUnlock()
		if current == nil {
			return
		}

		c.refreshDeviceState(current)

		c.mu.RLock()
		dev := *current
		c.mu.RUnlock()
		c.bus.Publish(eventbus.TopicWifiDeviceChanged, dev)
	}
}
