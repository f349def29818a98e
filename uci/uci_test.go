package uci

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestUCIHandshake(t *testing.T) {
	var out bytes.Buffer
	loop := NewLoop(&out)
	loop.Run(strings.NewReader("uci\nisready\nquit\n"))

	got := out.String()
	if !strings.Contains(got, "uciok") {
		t.Errorf("expected uciok in output, got %q", got)
	}
	if !strings.Contains(got, "readyok") {
		t.Errorf("expected readyok in output, got %q", got)
	}
}

func TestPositionAndGoProducesBestMove(t *testing.T) {
	var out bytes.Buffer
	loop := NewLoop(&out)
	loop.Run(strings.NewReader("position startpos\ngo depth 3\nquit\n"))

	got := out.String()
	if !strings.Contains(got, "bestmove") {
		t.Errorf("expected a bestmove line, got %q", got)
	}
}

func TestPositionWithMoves(t *testing.T) {
	var out bytes.Buffer
	loop := NewLoop(&out)
	loop.Run(strings.NewReader("position startpos moves e2e4 e7e5\ngo depth 2\nquit\n"))

	got := out.String()
	if !strings.Contains(got, "bestmove") {
		t.Errorf("expected a bestmove line, got %q", got)
	}
}

func TestSetOptionSyzygyPath(t *testing.T) {
	var out bytes.Buffer
	loop := NewLoop(&out)
	loop.handle("setoption name SyzygyPath value /tmp/syzygy")
	if got := loop.tbConfig.Path(); got != "/tmp/syzygy" {
		t.Errorf("SyzygyPath = %q, want /tmp/syzygy", got)
	}
}

func TestStopEndsSearchPromptly(t *testing.T) {
	var out bytes.Buffer
	loop := NewLoop(&out)

	loop.handle("position startpos")
	loop.handle("go infinite")

	time.Sleep(20 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		loop.handle("stop")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("stop did not return promptly")
	}

	if !strings.Contains(out.String(), "bestmove") {
		t.Errorf("expected a bestmove line after stop, got %q", out.String())
	}
}
