package daemon

import "testing"

func TestPathFromNamespace(t *testing.T) {
	cases := []struct {
		namespace string
		want      string
	}{
		{"org.xetibo.ReSet", "/org/xetibo/ReSet/Daemon"},
		{"io.resetd", "/io/resetd/Daemon"},
		{"single", "/single/Daemon"},
	}

	for _, c := range cases {
		if got := pathFromNamespace(c.namespace); got != c.want {
			t.Errorf("pathFromNamespace(%q) = %q; want %q", c.namespace, got, c.want)
		}
	}
}
