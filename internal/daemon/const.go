// Package daemon implements the bus façade: one object, five interfaces,
// a shared daemon-data record, dispatching each call to the controller
// that owns the relevant state.
package daemon

import "strings"

// pathFromNamespace derives the daemon's object path from a dotted
// namespace by replacing dots with slashes.
func pathFromNamespace(namespace string) string {
	return "/" + strings.ReplaceAll(namespace, ".", "/") + "/Daemon"
}

const apiVersion = "1.0"

var capabilities = []string{"wireless", "bluetooth", "audio"}
