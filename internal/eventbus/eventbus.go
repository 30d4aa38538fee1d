// Package eventbus decouples the three listener threads (wireless,
// Bluetooth, audio) from the bus façade's signal emitter. Each listener
// publishes a typed event; the façade's signal emitter subscribes once per
// topic and turns every event into a session-bus signal.
package eventbus

import "github.com/cskr/pubsub/v2"

// Topic identifies a class of event flowing from a listener to the façade.
type Topic uint

const (
	TopicAccessPointAdded Topic = iota
	TopicAccessPointRemoved
	TopicAccessPointChanged
	TopicWifiDeviceChanged

	TopicBluetoothDeviceAdded
	TopicBluetoothDeviceRemoved
	TopicBluetoothDeviceChanged

	TopicPincodeRequested
	TopicDisplayPinCode
	TopicPassKeyRequested
	TopicDisplayPassKey
	TopicRequestConfirmation
	TopicRequestAuthorization
	TopicAuthorizeService

	TopicSinkAdded
	TopicSinkChanged
	TopicSinkRemoved
	TopicSourceAdded
	TopicSourceChanged
	TopicSourceRemoved
	TopicInputStreamAdded
	TopicInputStreamChanged
	TopicInputStreamRemoved
	TopicOutputStreamAdded
	TopicOutputStreamChanged
	TopicOutputStreamRemoved
)

// Bus is a small typed wrapper around a pubsub.PubSub, capacity-bounded so a
// slow subscriber cannot stall a listener thread indefinitely.
type Bus struct {
	ps *pubsub.PubSub[Topic, any]
}

// New returns a new event bus with the given per-topic channel capacity.
func New(capacity int) *Bus {
	return &Bus{ps: pubsub.New[Topic, any](capacity)}
}

// Publish publishes data under topic to every current subscriber.
// It never blocks: slow subscribers drop events rather than stall
// the listener thread that called Publish.
func (b *Bus) Publish(topic Topic, data any) {
	b.ps.TryPub(data, topic)
}

// Subscribe returns a channel receiving every event published under topic
// from now on.
func (b *Bus) Subscribe(topic Topic) chan any {
	return b.ps.Sub(topic)
}

// Unsubscribe removes ch from future publications on topic.
func (b *Bus) Unsubscribe(ch chan any, topics ...Topic) {
	b.ps.Unsub(ch, topics...)
}

// Shutdown closes every subscriber channel.
func (b *Bus) Shutdown() {
	b.ps.Shutdown()
}
