package bluetooth

import (
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"

	"github.com/xetibo/resetd/internal/dbusutil"
	"github.com/xetibo/resetd/internal/errorkinds"
	"github.com/xetibo/resetd/internal/eventbus"
)

// Controller is the Bluetooth controller. It tracks every adapter bluez
// exposes, a designated current adapter, and the set of devices discovered
// under that adapter.
type Controller struct {
	conn *dbus.Conn
	bus  *eventbus.Bus
	log  *logrus.Entry

	callTimeout  time.Duration
	pairTimeout  time.Duration
	scanDuration time.Duration

	mu       sync.RWMutex
	adapters []*Adapter
	current  *Adapter

	devices *xsync.MapOf[dbus.ObjectPath, *Device]

	listenerActive  atomic.Bool
	inDiscovery     atomic.Bool
	agentRegistered atomic.Bool
	listenerStopCh  chan struct{}
}

// Options configures a Controller's timeouts.
type Options struct {
	CallTimeout  time.Duration
	PairTimeout  time.Duration
	ScanDuration time.Duration
}

// New returns a Controller that has not yet enumerated any adapters; call
// Enumerate before using it.
func New(conn *dbus.Conn, bus *eventbus.Bus, log *logrus.Entry, opts Options) *Controller {
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = dbusutil.DefaultTimeout
	}
	if opts.PairTimeout <= 0 {
		opts.PairTimeout = dbusutil.PairTimeout
	}
	if opts.ScanDuration <= 0 {
		opts.ScanDuration = scanDefaultDuration
	}

	return &Controller{
		conn:         conn,
		bus:          bus,
		log:          log,
		callTimeout:  opts.CallTimeout,
		pairTimeout:  opts.PairTimeout,
		scanDuration: opts.ScanDuration,
		devices:      xsync.NewMapOf[dbus.ObjectPath, *Device](),
	}
}

// Enumerate walks bluez's object tree, powers on every adapter found, and
// records any already-known devices under it.
func (c *Controller) Enumerate() error {
	objects, err := dbusutil.GetManagedObjects(c.conn, c.callTimeout, Service, rootPath)
	if err != nil {
		return err
	}

	var adapters []*Adapter
	for path, ifaces := range objects {
		props, ok := ifaces[ifaceAdapter]
		if !ok {
			continue
		}

		var a Adapter
		if err := dbusutil.DecodeVariantMap(props, &a); err != nil {
			continue
		}
		a.Path = path

		if !a.Powered {
			if err := dbusutil.SetProperty(c.conn, c.callTimeout, Service, path, ifaceAdapter, "Powered", true); err == nil {
				a.Powered = true
			}
		}

		adapters = append(adapters, &a)
	}

	for path, ifaces := range objects {
		props, ok := ifaces[ifaceDevice]
		if !ok {
			continue
		}

		d := NewDevice()
		if err := dbusutil.DecodeVariantMap(props, &d); err != nil {
			continue
		}
		d.Path = path
		c.devices.Store(path, &d)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.adapters = adapters
	if len(adapters) > 0 {
		c.current = adapters[0]
	}

	return nil
}

// GetBluetoothAdapters returns every enumerated adapter.
func (c *Controller) GetBluetoothAdapters() []Adapter {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Adapter, 0, len(c.adapters))
	for _, a := range c.adapters {
		out = append(out, *a)
	}
	return out
}

// GetCurrentBluetoothAdapter returns the current adapter.
func (c *Controller) GetCurrentBluetoothAdapter() (Adapter, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return Adapter{}, errorkinds.ErrNoAdapter
	}
	return *c.current, nil
}

// SetBluetoothAdapter makes path the current adapter.
func (c *Controller) SetBluetoothAdapter(path dbus.ObjectPath) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, a := range c.adapters {
		if a.Path == path {
			c.current = a
			return true
		}
	}
	return false
}

// GetConnectedBluetoothDevices returns every known device that is currently
// connected under the current adapter.
func (c *Controller) GetConnectedBluetoothDevices() ([]Device, error) {
	current, err := c.requireCurrent()
	if err != nil {
		return nil, err
	}

	var out []Device
	c.devices.Range(func(_ dbus.ObjectPath, d *Device) bool {
		if d.Adapter == current.Path && d.Connected {
			out = append(out, *d)
		}
		return true
	})
	return out, nil
}

// GetBluetoothDevices returns every device known under the current adapter,
// connected or not (spec testable property S6).
func (c *Controller) GetBluetoothDevices() ([]Device, error) {
	current, err := c.requireCurrent()
	if err != nil {
		return nil, err
	}

	var out []Device
	c.devices.Range(func(_ dbus.ObjectPath, d *Device) bool {
		if d.Adapter == current.Path {
			out = append(out, *d)
		}
		return true
	})
	return out, nil
}

func (c *Controller) requireCurrent() (*Adapter, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return nil, errorkinds.ErrNoAdapter
	}
	return c.current, nil
}

func (c *Controller) lookupDevice(path dbus.ObjectPath) (*Device, bool) {
	return c.devices.Load(path)
}
