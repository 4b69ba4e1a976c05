package withdrawal

import (
	"context"
	"testing"
)

func TestShutdownBeforeRun(t *testing.T) {
	var s Server
	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown of an unstarted server: %v", err)
	}
}
