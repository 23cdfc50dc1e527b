package profile

import "testing"

func TestProfiler_EmptyModeIsNoop(t *testing.T) {
	s := Profiler{}.Start()
	if _, ok := s.(ignore); !ok {
		t.Fatalf("Start() with empty mode = %T, want no-op", s)
	}

	s.Stop()
	s.Stop()
}

func TestProfiler_UnknownModeIsNoop(t *testing.T) {
	s := Profiler{Mode: "bogus", Path: t.TempDir(), Quiet: true}.Start()
	defer s.Stop()

	if _, ok := s.(ignore); !ok {
		t.Fatalf("Start() with unknown mode = %T, want no-op", s)
	}
}
