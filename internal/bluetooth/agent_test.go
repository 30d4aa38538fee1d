package bluetooth_test

import (
	"testing"
	"time"

	"github.com/xetibo/resetd/internal/bluetooth"
	"github.com/xetibo/resetd/internal/eventbus"
)

func TestAgent_AuthorizeService_RejectsMalformedUUID(t *testing.T) {
	agent := bluetooth.NewAgent(nil, eventbus.New(1))

	dbusErr := agent.AuthorizeService("/org/bluez/hci0/dev_AA_BB", "not-a-uuid")

	if dbusErr == nil {
		t.Fatal("AuthorizeService with malformed uuid: got nil error, want rejection")
	}
	if dbusErr.Name != "org.bluez.Error.Rejected" {
		t.Errorf("dbusErr.Name = %q; want org.bluez.Error.Rejected", dbusErr.Name)
	}
}

func TestAgent_AuthorizeService_AcceptsWellFormedUUID(t *testing.T) {
	bus := eventbus.New(1)
	ch := bus.Subscribe(eventbus.TopicAuthorizeService)
	agent := bluetooth.NewAgent(nil, bus)

	dbusErr := agent.AuthorizeService("/org/bluez/hci0/dev_AA_BB", "00001101-0000-1000-8000-00805f9b34fb")

	if dbusErr != nil {
		t.Fatalf("AuthorizeService with well-formed uuid: got error %v, want nil", dbusErr)
	}

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Error("AuthorizeService did not publish to TopicAuthorizeService")
	}
}
