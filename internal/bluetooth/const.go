// Package bluetooth implements the Bluetooth controller and pairing agent:
// it models bluez adapters and devices, runs the discovery listener, and
// services pairing callbacks by forwarding them as bus signals.
package bluetooth

import "github.com/godbus/dbus/v5"

// bluez D-Bus surface (org.bluez).
const (
	Service = "org.bluez"

	rootPath = dbus.ObjectPath("/")

	ifaceObjectManager = "org.freedesktop.DBus.ObjectManager"
	ifaceAdapter       = "org.bluez.Adapter1"
	ifaceDevice        = "org.bluez.Device1"
	ifaceAgentManager  = "org.bluez.AgentManager1"

	// AgentPath is the fixed object path the pairing agent is exported on.
	AgentPath = dbus.ObjectPath("/org/xetibo/resetd/agent")

	// AgentInterface is the bluez pairing-callback interface the agent
	// implements.
	AgentInterface = "org.bluez.Agent1"

	agentCapability = "DisplayYesNo"
)
