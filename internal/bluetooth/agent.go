package bluetooth

import (
	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/xetibo/resetd/internal/eventbus"
)

// Agent is the exported org.bluez.Agent1 object. Pairing callbacks are
// forwarded to the eventbus; RequestPinCode and RequestPasskey answer bluez
// with an empty PIN and a zero passkey. Neither the Base nor the Bluetooth
// interface exports a method through which a client supplies the answer.
type Agent struct {
	conn *dbus.Conn
	bus  *eventbus.Bus

	inProgress atomic.Bool
}

// NewAgent constructs an unregistered pairing agent.
func NewAgent(conn *dbus.Conn, bus *eventbus.Bus) *Agent {
	return &Agent{conn: conn, bus: bus}
}

// Register exports the agent on AgentPath and asks bluez to use it as the
// default agent for new pairing requests.
func (a *Agent) Register(conn *dbus.Conn) error {
	if err := conn.Export(a, AgentPath, AgentInterface); err != nil {
		return err
	}

	node := &introspect.Node{
		Interfaces: []introspect.Interface{introspect.IntrospectData, {
			Name: AgentInterface,
		}},
	}
	_ = conn.Export(introspect.NewIntrospectable(node), AgentPath, "org.freedesktop.DBus.Introspectable")

	obj := conn.Object(Service, rootPath)
	call := obj.Call(ifaceAgentManager+".RegisterAgent", 0, AgentPath, agentCapability)
	if call.Err != nil {
		return call.Err
	}

	call = obj.Call(ifaceAgentManager+".RequestDefaultAgent", 0, AgentPath)
	return call.Err
}

// Unregister asks bluez to forget the agent and stops exporting it.
func (a *Agent) Unregister() error {
	obj := a.conn.Object(Service, rootPath)
	call := obj.Call(ifaceAgentManager+".UnregisterAgent", 0, AgentPath)
	_ = a.conn.Export(nil, AgentPath, AgentInterface)
	return call.Err
}

// Release is called by bluez when the agent is unregistered or bluez exits.
func (a *Agent) Release() *dbus.Error {
	a.inProgress.Store(false)
	a.bus.Publish(eventbus.TopicDisplayPinCode, "")
	return nil
}

// RequestPinCode is called for devices that only support legacy pairing.
func (a *Agent) RequestPinCode(device dbus.ObjectPath) (string, *dbus.Error) {
	a.inProgress.Store(true)
	a.bus.Publish(eventbus.TopicPincodeRequested, device)
	return "", nil
}

// DisplayPinCode is called to show a PIN the user should enter on the peer
// device.
func (a *Agent) DisplayPinCode(device dbus.ObjectPath, pincode string) *dbus.Error {
	a.bus.Publish(eventbus.TopicDisplayPinCode, struct {
		Device  dbus.ObjectPath
		PinCode string
	}{device, pincode})
	return nil
}

// RequestPasskey is called for devices that use a numeric passkey.
func (a *Agent) RequestPasskey(device dbus.ObjectPath) (uint32, *dbus.Error) {
	a.inProgress.Store(true)
	a.bus.Publish(eventbus.TopicPassKeyRequested, device)
	return 0, nil
}

// DisplayPasskey is called to show a passkey as it is entered on the peer.
func (a *Agent) DisplayPasskey(device dbus.ObjectPath, passkey uint32, entered uint16) *dbus.Error {
	a.bus.Publish(eventbus.TopicDisplayPassKey, struct {
		Device  dbus.ObjectPath
		Passkey uint32
		Entered uint16
	}{device, passkey, entered})
	return nil
}

// RequestConfirmation is called to confirm a passkey matches on both ends.
func (a *Agent) RequestConfirmation(device dbus.ObjectPath, passkey uint32) *dbus.Error {
	a.inProgress.Store(true)
	a.bus.Publish(eventbus.TopicRequestConfirmation, struct {
		Device  dbus.ObjectPath
		Passkey uint32
	}{device, passkey})
	return nil
}

// RequestAuthorization is called before a pairing-less connection.
func (a *Agent) RequestAuthorization(device dbus.ObjectPath) *dbus.Error {
	a.inProgress.Store(true)
	a.bus.Publish(eventbus.TopicRequestAuthorization, device)
	return nil
}

// AuthorizeService is called before a device is allowed to use a profile.
// The profile UUID bluez passes is parsed so malformed input never reaches
// a subscriber.
func (a *Agent) AuthorizeService(device dbus.ObjectPath, profileUUID string) *dbus.Error {
	parsed, err := uuid.Parse(profileUUID)
	if err != nil {
		return dbus.NewError("org.bluez.Error.Rejected", []any{"malformed service uuid"})
	}

	a.bus.Publish(eventbus.TopicAuthorizeService, struct {
		Device dbus.ObjectPath
		UUID   string
	}{device, parsed.String()})
	return nil
}

// Cancel is called when bluez gives up on the in-progress request.
func (a *Agent) Cancel() *dbus.Error {
	a.inProgress.Store(false)
	return nil
}
