package util

import (
	"github.com/pasteclient/mypaste/test"
	"testing"
	"time"
)

func TestDurationToHuman(t *testing.T) {
	test.StrEquals(t, "0s", DurationToHuman(0))
	test.StrEquals(t, "0s", DurationToHuman(-time.Second))
	test.StrEquals(t, "59s", DurationToHuman(59*time.Second))
	test.StrEquals(t, "1m30s", DurationToHuman(90*time.Second+200*time.Millisecond))
	test.StrEquals(t, "1d2h", DurationToHuman(26*time.Hour))
}

func TestExpandAndCollapseHome(t *testing.T) {
	t.Setenv("HOME", "/home/phil")
	test.StrEquals(t, "/home/phil/.config/paste-client", ExpandHome("~/.config/paste-client"))
	test.StrEquals(t, "~/.config/paste-client", CollapseHome("/home/phil/.config/paste-client"))
	test.StrEquals(t, "/etc/paste-client", CollapseHome("/etc/paste-client"))
}
