package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/Lakarti/archive-and-delete/internal/logging"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		expr    string
		wantErr bool
	}{
		{"0 3 * * *", false},
		{"*/5 * * * *", false},
		{"@daily", false},
		{"", true},
		{"every day", true},
		{"0 3 * *", true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			err := Validate(tt.expr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate(%q) err = %v, wantErr %v", tt.expr, err, tt.wantErr)
			}
		})
	}
}

func TestStartRejectsBadExpression(t *testing.T) {
	s := New("nope", logging.Discard(), func() {})
	if err := s.Start(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if s.isRunning() {
		t.Fatal("scheduler running after failed start")
	}
}

func TestStopOnContextCancel(t *testing.T) {
	s := New("@hourly", logging.Discard(), func() {})
	ctx, cancel := context.WithCancel(context.Background())

	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !s.isRunning() {
		t.Fatal("scheduler not running")
	}

	cancel()
	deadline := time.Now().Add(time.Second)
	for s.isRunning() {
		if time.Now().After(deadline) {
			t.Fatal("scheduler did not stop")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestTickPosts(t *testing.T) {
	posted := 0
	s := New("@hourly", logging.Discard(), func() { posted++ })
	s.tick()
	s.tick()
	if posted != 2 {
		t.Fatalf("posted = %d, want 2", posted)
	}
}
