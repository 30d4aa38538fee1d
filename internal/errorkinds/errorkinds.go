// Package errorkinds collects the sentinel errors shared across the
// provider-facing packages (wireless, bluetooth, audio).
package errorkinds

import "errors"

var (
	// ErrProviderUnavailable means the underlying system-bus service could
	// not be reached or returned a bus error.
	ErrProviderUnavailable = errors.New("provider is unavailable")

	// ErrNoCurrentDevice means no wireless device has been selected yet.
	ErrNoCurrentDevice = errors.New("no current network device")

	// ErrDeviceNotFound means a requested device path is not enumerated.
	ErrDeviceNotFound = errors.New("network device not found")

	// ErrAccessPointNotFound means an access point path could not be read.
	ErrAccessPointNotFound = errors.New("access point not found")

	// ErrWrongPassword means a connection attempt settled on a terminal,
	// non-activated state.
	ErrWrongPassword = errors.New("password was wrong")

	// ErrListenerAlreadyRunning names the already-running listener case. No
	// caller returns it: starting a listener that is already running
	// reports success instead.
	ErrListenerAlreadyRunning = errors.New("listener is already running")

	// ErrNoAdapter means no Bluetooth adapter is available.
	ErrNoAdapter = errors.New("no bluetooth adapter available")

	// ErrAdapterNotFound means a requested adapter path is not enumerated.
	ErrAdapterNotFound = errors.New("bluetooth adapter not found")

	// ErrBluetoothDeviceNotFound means a requested device path is unknown.
	ErrBluetoothDeviceNotFound = errors.New("bluetooth device not found")

	// ErrAudioNotReady means the sound-server context never reached Ready.
	ErrAudioNotReady = errors.New("audio subsystem is not ready")

	// ErrAudioNotRunning means a request was made while the worker was
	// not started.
	ErrAudioNotRunning = errors.New("audio listener is not running")

	// ErrCardProfileNotFound means a card has no profile by that name.
	ErrCardProfileNotFound = errors.New("card profile not found")
)
