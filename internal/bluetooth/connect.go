package bluetooth

import (
	"github.com/godbus/dbus/v5"

	"github.com/xetibo/resetd/internal/dbusutil"
)

// ConnectToBluetoothDevice calls Device1.Connect.
func (c *Controller) ConnectToBluetoothDevice(path dbus.ObjectPath) bool {
	err := dbusutil.Call(c.conn, c.pairTimeout, Service, path, ifaceDevice, "Connect", nil)
	if err != nil {
		return false
	}

	if d, ok := c.lookupDevice(path); ok {
		d.Connected = true
	}
	return true
}

// DisconnectFromBluetoothDevice calls Device1.Disconnect.
func (c *Controller) DisconnectFromBluetoothDevice(path dbus.ObjectPath) bool {
	err := dbusutil.Call(c.conn, c.callTimeout, Service, path, ifaceDevice, "Disconnect", nil)
	if err != nil {
		return false
	}

	if d, ok := c.lookupDevice(path); ok {
		d.Connected = false
	}
	return true
}

// PairWithBluetoothDevice registers the pairing agent as the default agent
// on demand, then calls Device1.Pair. Pairing can legitimately block for a
// long time awaiting a PIN/passkey round trip handled by Agent.
func (c *Controller) PairWithBluetoothDevice(path dbus.ObjectPath, agent *Agent) bool {
	if _, err := c.requireCurrent(); err != nil {
		return false
	}

	if agent != nil && !c.agentRegistered.Load() {
		if agent.Register(c.conn) == nil {
			c.agentRegistered.Store(true)
		}
	}

	err := dbusutil.Call(c.conn, c.pairTimeout, Service, path, ifaceDevice, "Pair", nil)
	if err != nil {
		return false
	}

	if d, ok := c.lookupDevice(path); ok {
		d.Paired = true
	}
	return true
}

// RemoveDevicePairing removes a paired device from its adapter, erasing the
// pairing and any bonding keys.
func (c *Controller) RemoveDevicePairing(path dbus.ObjectPath) bool {
	current, err := c.requireCurrent()
	if err != nil {
		return false
	}

	err = dbusutil.Call(c.conn, c.callTimeout, Service, current.Path, ifaceAdapter, "RemoveDevice", nil, path)
	if err != nil {
		return false
	}

	c.devices.Delete(path)
	return true
}

// TrustBluetoothDevice sets a device's Trusted property.
func (c *Controller) TrustBluetoothDevice(path dbus.ObjectPath, trusted bool) bool {
	err := dbusutil.SetProperty(c.conn, c.callTimeout, Service, path, ifaceDevice, "Trusted", trusted)
	if err != nil {
		return false
	}

	if d, ok := c.lookupDevice(path); ok {
		d.Trusted = trusted
	}
	return true
}
