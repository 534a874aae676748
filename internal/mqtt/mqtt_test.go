package mqtt

import (
	"testing"

	"github.com/Mavwarf/iconset/internal/config"
)

func TestPublishBadBroker(t *testing.T) {
	// Connecting to a non-existent broker should return a connect error.
	cfg := config.MQTT{Broker: "tcp://127.0.0.1:19999", ClientID: "test-client", Topic: "test/topic"}
	if err := Publish(cfg, []byte("hello")); err == nil {
		t.Fatal("expected error for unreachable broker")
	}
}

func TestPublishBadScheme(t *testing.T) {
	// A completely invalid broker URL should fail.
	cfg := config.MQTT{Broker: "not-a-url", Topic: "test/topic"}
	if err := Publish(cfg, []byte("hello")); err == nil {
		t.Fatal("expected error for invalid broker URL")
	}
}
