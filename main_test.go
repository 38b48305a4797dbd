package main

import "testing"

func TestEffectiveVersionPrefersInjected(t *testing.T) {
	if got := effectiveVersion("v1.2.3"); got != "v1.2.3" {
		t.Errorf("effectiveVersion = %q, want v1.2.3", got)
	}
}

func TestEffectiveVersionDevNotEmpty(t *testing.T) {
	if got := effectiveVersion("dev"); got == "" {
		t.Error("effectiveVersion(dev) should never be empty")
	}
}
