package daemon

import (
	"context"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/xetibo/resetd/internal/audio"
	"github.com/xetibo/resetd/internal/bluetooth"
	"github.com/xetibo/resetd/internal/config"
	"github.com/xetibo/resetd/internal/eventbus"
	"github.com/xetibo/resetd/internal/wireless"
)

// Daemon is the shared daemon-data record: it owns the session/system bus
// connections, the three controllers, and the set of registered client
// names.
type Daemon struct {
	cfg *config.Config
	log *logrus.Entry

	session *dbus.Conn
	system  *dbus.Conn

	bus       *eventbus.Bus
	wireless  *wireless.Controller
	bluetooth *bluetooth.Controller
	audio     *audio.Bridge
	agent     *bluetooth.Agent

	namespace string
	basePath  dbus.ObjectPath

	clientsMu sync.Mutex
	clients   map[string]bool

	group  *errgroup.Group
	cancel context.CancelFunc
}

// New dials the session and system buses and wires up the three
// controllers; it does not yet enumerate, listen, or export anything.
func New(cfg *config.Config, log *logrus.Entry) (*Daemon, error) {
	session, err := dbus.SessionBusPrivate()
	if err != nil {
		return nil, err
	}
	if err := session.Auth(nil); err != nil {
		return nil, err
	}
	if err := session.Hello(); err != nil {
		return nil, err
	}

	system, err := dbus.SystemBusPrivate()
	if err != nil {
		return nil, err
	}
	if err := system.Auth(nil); err != nil {
		return nil, err
	}
	if err := system.Hello(); err != nil {
		return nil, err
	}

	bus := eventbus.New(64)

	wirelessCtl := wireless.New(system, bus, log.WithField("controller", "wireless"), wireless.Options{
		CallTimeout:    time.Duration(cfg.Values.CallTimeoutMS) * time.Millisecond,
		RescanInterval: time.Duration(cfg.Values.RescanIntervalSeconds) * time.Second,
		PollInterval:   time.Duration(cfg.Values.ListenerPollIntervalMS) * time.Millisecond,
	})

	bluetoothCtl := bluetooth.New(system, bus, log.WithField("controller", "bluetooth"), bluetooth.Options{
		CallTimeout:  time.Duration(cfg.Values.CallTimeoutMS) * time.Millisecond,
		PairTimeout:  time.Duration(cfg.Values.PairTimeoutMS) * time.Millisecond,
		ScanDuration: time.Duration(cfg.Values.BluetoothScanDurationMS) * time.Millisecond,
	})

	agent := bluetooth.NewAgent(system, bus)
	audioBridge := audio.New(bus, log.WithField("controller", "audio"))

	return &Daemon{
		cfg:       cfg,
		log:       log,
		session:   session,
		system:    system,
		bus:       bus,
		wireless:  wirelessCtl,
		bluetooth: bluetoothCtl,
		audio:     audioBridge,
		agent:     agent,
		namespace: cfg.Values.Namespace,
		basePath:  dbus.ObjectPath(pathFromNamespace(cfg.Values.Namespace)),
		clients:   make(map[string]bool),
	}, nil
}

// Run enumerates both providers, starts the listener threads and the audio
// worker, exports the Daemon, Wireless, Bluetooth and Audio interfaces,
// claims the well-known name (unless embedded), and blocks until ctx is
// cancelled or Shutdown is called. The org.bluez.Agent1 interface is not
// exported here; PairWithBluetoothDevice registers it on first use.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.wireless.Enumerate(); err != nil {
		d.log.WithError(err).Warn("initial wireless enumeration failed")
	}
	if err := d.bluetooth.Enumerate(); err != nil {
		d.log.WithError(err).Warn("initial bluetooth enumeration failed")
	}

	d.wireless.StartNetworkListener()
	d.bluetooth.StartBluetoothListener(d.cfg.Values.BluetoothScanDurationMS)
	d.audio.StartAudioListener()

	if err := d.export(); err != nil {
		return err
	}

	if !d.cfg.Values.Embedded {
		reply, err := d.session.RequestName(d.namespace+".Daemon", dbus.NameFlagDoNotQueue)
		if err != nil {
			return err
		}
		if reply != dbus.RequestNameReplyPrimaryOwner {
			d.log.Warn("namespace name already owned, continuing in embedded mode")
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	group, runCtx := errgroup.WithContext(runCtx)
	d.group = group

	group.Go(func() error { return d.emitWireless(runCtx) })
	group.Go(func() error { return d.emitBluetooth(runCtx) })
	group.Go(func() error { return d.emitAudio(runCtx) })

	<-runCtx.Done()
	return group.Wait()
}

func (d *Daemon) export() error {
	if err := d.session.Export(&baseIface{d: d}, d.basePath, d.namespace+".Daemon"); err != nil {
		return err
	}
	if err := d.session.Export(&wirelessIface{ctl: d.wireless}, d.basePath, d.namespace+".Wireless"); err != nil {
		return err
	}
	if err := d.session.Export(&bluetoothIface{ctl: d.bluetooth, agent: d.agent}, d.basePath, d.namespace+".Bluetooth"); err != nil {
		return err
	}
	if err := d.session.Export(&audioIface{bridge: d.audio}, d.basePath, d.namespace+".Audio"); err != nil {
		return err
	}
	return nil
}

// RegisterClient records name as an active client; re-registering an
// already-registered name succeeds idempotently.
func (d *Daemon) RegisterClient(name string) bool {
	d.clientsMu.Lock()
	defer d.clientsMu.Unlock()
	d.clients[name] = true
	return true
}

// UnregisterClient forgets name; it fails if name was never registered.
func (d *Daemon) UnregisterClient(name string) bool {
	d.clientsMu.Lock()
	defer d.clientsMu.Unlock()
	if !d.clients[name] {
		return false
	}
	delete(d.clients, name)
	return true
}

// Shutdown unregisters the Bluetooth agent, aborts the long-running
// connection task, and stops every listener/worker; it is
// the daemon-internal half of the exported Shutdown method, which additionally
// exits the process.
func (d *Daemon) Shutdown() {
	if d.agent != nil {
		_ = d.agent.Unregister()
	}
	d.wireless.StopNetworkListener()
	d.bluetooth.StopBluetoothListener()
	d.audio.StopAudioListener()
	d.bus.Shutdown()

	if d.cancel != nil {
		d.cancel()
	}
}
