package wireless

import (
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/xetibo/resetd/internal/dbusutil"
	"github.com/xetibo/resetd/internal/errorkinds"
)

// ConnectToKnownAccessPoint activates the connection already associated
// with ap on the current device, then polls the outcome.
func (c *Controller) ConnectToKnownAccessPoint(ap AccessPoint) bool {
	current, err := c.requireCurrent()
	if err != nil {
		return false
	}
	if ap.AssociatedConnection == "" || ap.AssociatedConnection == RootPath {
		return false
	}

	var activeConn dbus.ObjectPath
	err = dbusutil.Call(c.conn, c.callTimeout, Service, rootPath, ifaceNM, "ActivateConnection", &activeConn,
		ap.AssociatedConnection, current.Path, ap.Path)
	if err != nil {
		return false
	}

	return c.awaitOutcome(current, ap, activeConn)
}

// ConnectToNewAccessPoint adds and activates a new connection built by
// NewAccessPointSecuritySettings, whose 802-11-wireless-security section
// carries psk=password.
func (c *Controller) ConnectToNewAccessPoint(ap AccessPoint, password string) bool {
	current, err := c.requireCurrent()
	if err != nil {
		return false
	}

	settings := NewAccessPointSecuritySettings(ap.SSID, password)

	var connPath, activeConn dbus.ObjectPath
	err = dbusutil.CallMulti(c.conn, c.callTimeout, Service, rootPath, ifaceNM, "AddAndActivateConnection",
		[]any{&connPath, &activeConn}, settings, current.Path, ap.Path)
	if err != nil {
		return false
	}

	return c.awaitOutcome(current, ap, activeConn)
}

// awaitOutcome polls activeConn's State property until it leaves
// "activating"; it succeeds only on "activated" and is responsive to a
// stop request from the topology listener.
func (c *Controller) awaitOutcome(current *Device, ap AccessPoint, activeConn dbus.ObjectPath) bool {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		var state uint32
		if err := dbusutil.GetProperty(c.conn, c.callTimeout, Service, activeConn, ifaceActiveConnection, "State", &state); err != nil {
			return false
		}

		if state == activeConnStateActivating {
			select {
			case <-ticker.C:
				continue
			case <-c.stopSignal():
				return false
			}
		}

		if state != activeConnStateActivated {
			return false
		}

		c.mu.Lock()
		current.Connected = true
		current.CurrentConnection = activeConn
		apCopy := ap
		apCopy.Connected = true
		current.AccessPoint = &apCopy
		c.mu.Unlock()

		return true
	}
}

func (c *Controller) stopSignal() <-chan struct{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.stopCh == nil {
		return nil
	}
	return c.stopCh
}

// DisconnectFromCurrentAccessPoint deactivates every active connection that
// includes the current device among its devices.
func (c *Controller) DisconnectFromCurrentAccessPoint() bool {
	current, err := c.requireCurrent()
	if err != nil {
		return false
	}

	var activeConns []dbus.ObjectPath
	if err := dbusutil.GetProperty(c.conn, c.callTimeout, Service, rootPath, ifaceNM, "ActiveConnections", &activeConns); err != nil {
		return false
	}

	disconnected := false
	for _, ac := range activeConns {
		var devices []dbus.ObjectPath
		if err := dbusutil.GetProperty(c.conn, c.callTimeout, Service, ac, ifaceActiveConnection, "Devices", &devices); err != nil {
			continue
		}

		if !containsPath(devices, current.Path) {
			continue
		}

		if err := dbusutil.Call(c.conn, c.callTimeout, Service, rootPath, ifaceNM, "DeactivateConnection", nil, ac); err == nil {
			disconnected = true
		}
	}

	if disconnected {
		c.mu.Lock()
		current.Connected = false
		current.CurrentConnection = ""
		current.AccessPoint = nil
		c.mu.Unlock()
	}

	return disconnected
}

func containsPath(paths []dbus.ObjectPath, target dbus.ObjectPath) bool {
	for _, p := range paths {
		if p == target {
			return true
		}
	}
	return false
}

func (c *Controller) requireCurrent() (*Device, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return nil, errorkinds.ErrNoCurrentDevice
	}
	return c.current, nil
}
