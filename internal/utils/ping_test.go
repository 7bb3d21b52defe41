package utils

import (
	"net"
	"testing"
	"time"
)

func TestPingService(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}
	defer ln.Close()

	if err := PingService("http://"+ln.Addr().String(), time.Second); err != nil {
		t.Errorf("Expected reachable service, got %v", err)
	}
}

func TestPingServiceInvalid(t *testing.T) {
	if err := PingService("://bad", time.Second); err == nil {
		t.Error("Expected error for invalid URL")
	}
	if err := PingService("relative/path", time.Second); err == nil {
		t.Error("Expected error for URL without host")
	}
}
