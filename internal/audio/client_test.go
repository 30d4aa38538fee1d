package audio

import (
	"testing"

	"github.com/godbus/dbus/v5"
)

func TestIndexOf(t *testing.T) {
	cases := []struct {
		path string
		want uint32
	}{
		{"/org/pulseaudio/core1/sink3", 3},
		{"/org/pulseaudio/core1/source12", 12},
		{"/org/pulseaudio/core1/card0", 0},
		{"/org/pulseaudio/core1/nosuffix", 0},
	}

	for _, c := range cases {
		if got := indexOf(dbus.ObjectPath(c.path)); got != c.want {
			t.Errorf("indexOf(%q) = %d; want %d", c.path, got, c.want)
		}
	}
}

func TestSinkSourceCardPaths_CarryIndex(t *testing.T) {
	if got := indexOf(sinkPath(7)); got != 7 {
		t.Errorf("indexOf(sinkPath(7)) = %d; want 7", got)
	}
	if got := indexOf(sourcePath(9)); got != 9 {
		t.Errorf("indexOf(sourcePath(9)) = %d; want 9", got)
	}
	if got := indexOf(streamPath(2)); got != 2 {
		t.Errorf("indexOf(streamPath(2)) = %d; want 2", got)
	}
	if got := indexOf(recordStreamPath(4)); got != 4 {
		t.Errorf("indexOf(recordStreamPath(4)) = %d; want 4", got)
	}
	if got := indexOf(cardPath(1)); got != 1 {
		t.Errorf("indexOf(cardPath(1)) = %d; want 1", got)
	}
}
