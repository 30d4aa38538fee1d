package wireless

import (
	"sort"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"

	"github.com/xetibo/resetd/internal/dbusutil"
	"github.com/xetibo/resetd/internal/errorkinds"
	"github.com/xetibo/resetd/internal/eventbus"
)

// Controller is the wireless controller. It maintains an ordered list of
// devices, a designated current device, and for that device the optional
// current access point/connection and connected flag.
type Controller struct {
	conn *dbus.Conn
	bus  *eventbus.Bus
	log  *logrus.Entry

	callTimeout    time.Duration
	rescanInterval time.Duration
	pollInterval   time.Duration

	mu      sync.RWMutex
	devices []*Device
	current *Device

	listenerActive atomic.Bool
	stopRequested  atomic.Bool
	stopCh         chan struct{}
}

// Options configures a Controller's timeouts.
type Options struct {
	CallTimeout    time.Duration
	RescanInterval time.Duration
	PollInterval   time.Duration
}

// New returns a Controller that has not yet enumerated any devices; call
// Enumerate before using it.
func New(conn *dbus.Conn, bus *eventbus.Bus, log *logrus.Entry, opts Options) *Controller {
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = dbusutil.DefaultTimeout
	}
	if opts.RescanInterval <= 0 {
		opts.RescanInterval = rescanMinInterval
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Second
	}

	return &Controller{
		conn:           conn,
		bus:            bus,
		log:            log,
		callTimeout:    opts.CallTimeout,
		rescanInterval: opts.RescanInterval,
		pollInterval:   opts.PollInterval,
	}
}

// Enumerate lists every wireless device NetworkManager knows about and
// designates the first one current.
func (c *Controller) Enumerate() error {
	var paths []dbus.ObjectPath
	if err := dbusutil.Call(c.conn, c.callTimeout, Service, rootPath, ifaceNM, "GetDevices", &paths); err != nil {
		return err
	}

	var devices []*Device
	for _, path := range paths {
		var devType uint32
		if err := dbusutil.GetProperty(c.conn, c.callTimeout, Service, path, ifaceDevice, "DeviceType", &devType); err != nil {
			continue
		}
		if devType != deviceTypeWifi {
			continue
		}

		var name string
		_ = dbusutil.GetProperty(c.conn, c.callTimeout, Service, path, ifaceDevice, "Interface", &name)

		devices = append(devices, &Device{Path: path, Name: name})
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.devices = devices
	if len(devices) > 0 {
		c.current = devices[0]
	}

	return nil
}

// GetCurrentNetworkDevice returns the current device, refreshed with the
// latest connected/active-access-point state.
func (c *Controller) GetCurrentNetworkDevice() (Device, error) {
	c.mu.RLock()
	current := c.current
	c.mu.RUnlock()

	if current == nil {
		return Device{}, errorkinds.ErrNoCurrentDevice
	}

	c.refreshDeviceState(current)

	c.mu.RLock()
	defer c.mu.RUnlock()
	return *current, nil
}

// GetAllNetworkDevices returns every enumerated wireless device.
func (c *Controller) GetAllNetworkDevices() []Device {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Device, 0, len(c.devices))
	for _, d := range c.devices {
		out = append(out, *d)
	}
	return out
}

// SetNetworkDevice makes path the current device; it fails if path was not
// enumerated.
func (c *Controller) SetNetworkDevice(path dbus.ObjectPath) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, d := range c.devices {
		if d.Path == path {
			c.current = d
			return true
		}
	}
	return false
}

// refreshDeviceState reads ActiveConnection/ActiveAccessPoint for dev and
// updates it in place.
func (c *Controller) refreshDeviceState(dev *Device) {
	var activeConn dbus.ObjectPath
	if err := dbusutil.GetProperty(c.conn, c.callTimeout, Service, dev.Path, ifaceDevice, "ActiveConnection", &activeConn); err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if activeConn == "" || activeConn == RootPath {
		dev.CurrentConnection = ""
		dev.Connected = false
		return
	}

	dev.CurrentConnection = activeConn
	dev.Connected = true

	var apPath dbus.ObjectPath
	if err := dbusutil.GetProperty(c.conn, c.callTimeout, Service, dev.Path, ifaceDeviceWireless, "ActiveAccessPoint", &apPath); err == nil && apPath != "" && apPath != RootPath {
		ap, err := c.readAccessPoint(apPath)
		if err == nil {
			ap.Connected = true
			dev.AccessPoint = &ap
		}
	}
}

// readAccessPoint materializes a single access point object.
func (c *Controller) readAccessPoint(path dbus.ObjectPath) (AccessPoint, error) {
	props, err := dbusutil.GetAllProperties(c.conn, c.callTimeout, Service, path, ifaceAccessPoint)
	if err != nil {
		return AccessPoint{}, err
	}

	var ap AccessPoint
	if err := dbusutil.DecodeVariantMap(props, &ap); err != nil {
		return AccessPoint{}, err
	}
	ap.Path = path
	ap.AssociatedConnection = RootPath

	return ap, nil
}

// ListAccessPoints fetches every access point visible to the current
// device, materializes each, deduplicates by SSID (keeping the active AP
// first), and annotates stored/associated-connection state.
func (c *Controller) ListAccessPoints() ([]AccessPoint, error) {
	c.mu.RLock()
	current := c.current
	c.mu.RUnlock()
	if current == nil {
		return nil, errorkinds.ErrNoCurrentDevice
	}

	var paths []dbus.ObjectPath
	if err := dbusutil.Call(c.conn, c.callTimeout, Service, current.Path, ifaceDeviceWireless, "GetAccessPoints", &paths); err != nil {
		return nil, err
	}

	var activeAP dbus.ObjectPath
	_ = dbusutil.GetProperty(c.conn, c.callTimeout, Service, current.Path, ifaceDeviceWireless, "ActiveAccessPoint", &activeAP)

	stored, err := c.ListStoredConnections()
	if err != nil {
		stored = nil
	}
	storedBySSID := make(map[string]dbus.ObjectPath, len(stored))
	for _, s := range stored {
		storedBySSID[string(s.SSID)] = s.Path
	}

	var aps []AccessPoint
	for _, path := range paths {
		ap, err := c.readAccessPoint(path)
		if err != nil {
			continue
		}

		if path == activeAP {
			ap.Connected = true
		}

		if connPath, ok := storedBySSID[ap.SSIDString()]; ok {
			ap.Stored = true
			ap.AssociatedConnection = connPath
		}

		aps = append(aps, ap)
	}

	return dedupeBySSID(aps), nil
}

// dedupeBySSID keeps the first (active-first, per caller ordering)
// occurrence of each SSID.
func dedupeBySSID(aps []AccessPoint) []AccessPoint {
	sort.SliceStable(aps, func(i, j int) bool {
		return aps[i].Connected && !aps[j].Connected
	})

	seen := make(map[string]bool, len(aps))
	out := make([]AccessPoint, 0, len(aps))
	for _, ap := range aps {
		key := ap.SSIDString()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ap)
	}
	return out
}

// ListStoredConnections returns every saved connection that carries a
// 802-11-wireless SSID.
func (c *Controller) ListStoredConnections() ([]StoredConnection, error) {
	var paths []dbus.ObjectPath
	if err := dbusutil.Call(c.conn, c.callTimeout, Service, settingsPath, ifaceSettings, "ListConnections", &paths); err != nil {
		return nil, err
	}

	var out []StoredConnection
	for _, path := range paths {
		raw, err := c.getRawSettings(path)
		if err != nil {
			continue
		}

		wireless, ok := raw[sectionWireless]
		if !ok {
			continue
		}

		ssid := variantBytes(wireless, "ssid")
		if len(ssid) == 0 {
			continue
		}

		out = append(out, StoredConnection{Path: path, SSID: ssid})
	}

	return out, nil
}

func (c *Controller) getRawSettings(path dbus.ObjectPath) (RawSettings, error) {
	var raw RawSettings
	if err := dbusutil.Call(c.conn, c.callTimeout, Service, path, ifaceSettingsConn, "GetSettings", &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// GetConnectionSettings reads every section of a stored connection and, if
// available, merges in the 802-11-wireless-security secrets. Returning
// settings without security is not an error.
func (c *Controller) GetConnectionSettings(path dbus.ObjectPath) (RawSettings, error) {
	raw, err := c.getRawSettings(path)
	if err != nil {
		return nil, err
	}

	var secrets RawSettings
	if err := dbusutil.Call(c.conn, c.callTimeout, Service, path, ifaceSettingsConn, "GetSecrets", &secrets, sectionWirelessSecurity); err == nil {
		if sec, ok := secrets[sectionWirelessSecurity]; ok {
			if raw[sectionWirelessSecurity] == nil {
				raw[sectionWirelessSecurity] = map[string]dbus.Variant{}
			}
			for k, v := range sec {
				raw[sectionWirelessSecurity][k] = v
			}
		}
	}

	return raw, nil
}

// SetConnectionSettings writes settings back via Update.
func (c *Controller) SetConnectionSettings(path dbus.ObjectPath, settings RawSettings) bool {
	err := dbusutil.Call(c.conn, c.callTimeout, Service, path, ifaceSettingsConn, "Update", nil, settings)
	return err == nil
}

// DeleteConnection deletes a stored connection.
func (c *Controller) DeleteConnection(path dbus.ObjectPath) bool {
	err := dbusutil.Call(c.conn, c.callTimeout, Service, path, ifaceSettingsConn, "Delete", nil)
	return err == nil
}
