package daemon

import "testing"

func newTestDaemon() *Daemon {
	return &Daemon{clients: make(map[string]bool)}
}

func TestRegisterClient_IsIdempotent(t *testing.T) {
	d := newTestDaemon()

	if !d.RegisterClient("alice") {
		t.Fatal("RegisterClient(alice) = false on first call; want true")
	}
	if !d.RegisterClient("alice") {
		t.Error("RegisterClient(alice) = false on re-registration; want true")
	}
	if len(d.clients) != 1 {
		t.Errorf("len(clients) = %d; want 1", len(d.clients))
	}
}

func TestUnregisterClient_FailsOnUnknownName(t *testing.T) {
	d := newTestDaemon()

	if d.UnregisterClient("ghost") {
		t.Error("UnregisterClient(ghost) = true; want false for never-registered name")
	}
}

func TestUnregisterClient_RemovesRegisteredName(t *testing.T) {
	d := newTestDaemon()
	d.RegisterClient("alice")

	if !d.UnregisterClient("alice") {
		t.Fatal("UnregisterClient(alice) = false; want true")
	}
	if d.clients["alice"] {
		t.Error("clients[alice] still true after UnregisterClient")
	}
	if d.UnregisterClient("alice") {
		t.Error("UnregisterClient(alice) second call = true; want false")
	}
}
