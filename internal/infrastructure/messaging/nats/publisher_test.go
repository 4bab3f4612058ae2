package nats

import "testing"

func TestSubject(t *testing.T) {
	if got := Subject("dashboard.interactions", "pie"); got != "dashboard.interactions.pie" {
		t.Fatalf("unexpected subject: %s", got)
	}
	if got := Subject("dashboard.interactions", ""); got != "dashboard.interactions" {
		t.Fatalf("unexpected subject: %s", got)
	}
}
