package mpv

import (
	"errors"
	"testing"
)

func TestClient_Command(t *testing.T) {
	tests := []struct {
		name        string
		failCommand string
		failMessage string
		expectedErr error
	}{
		{name: "Success"},
		{
			name:        "Error Reply",
			failCommand: "set_property",
			failMessage: "property not found",
			expectedErr: ErrCommand,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, s, _ := newTestClient(t, nil)
			if tt.failCommand != "" {
				s.fail(tt.failCommand, tt.failMessage)
			}

			err := c.SetProperty("volume", 50)
			if !errors.Is(err, tt.expectedErr) {
				t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
			}
			if !contains(s.sent(), "set_property volume 50") {
				t.Errorf("expected set_property to be sent, got %v", s.sent())
			}
		})
	}
}

func TestClient_ConcurrentCommands(t *testing.T) {
	c, s, _ := newTestClient(t, nil)

	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func() { errs <- c.Exec("get_version") }()
	}
	for i := 0; i < 10; i++ {
		if err := <-errs; err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if len(s.sent()) != 10 {
		t.Errorf("expected 10 commands, got %d", len(s.sent()))
	}
}

func TestClient_EventsDispatched(t *testing.T) {
	var got []Event
	c, s, d := newTestClient(t, func(ev Event) { got = append(got, ev) })

	s.send(`{"event":"property-change","id":1,"name":"pause","data":true}`)
	s.send(`{"event":"video-reconfig"}`)

	d.waitFor(t, func() bool { return len(got) == 2 })

	if got[0].Name != "property-change" || got[0].Property != "pause" || got[0].ID != 1 {
		t.Errorf("unexpected first event %+v", got[0])
	}
	if got[1].Name != "video-reconfig" {
		t.Errorf("unexpected second event %+v", got[1])
	}

	// replies are not mistaken for events
	if err := c.Exec("get_version"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected no extra events, got %d", len(got))
	}
}

func TestClient_Closed(t *testing.T) {
	c, _, _ := newTestClient(t, nil)

	if err := c.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if err := c.Exec("get_version"); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	select {
	case <-c.Done():
	default:
		t.Error("expected Done to be closed")
	}
}
