// Package profile provides optional runtime profiling for the elconf command.
//
// Profiling wraps [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag:
//
//	go build -tags pprof ./...
//
// Without the tag every operation is a no-op and [Modes] returns nil, so the
// command's --pprof-mode flag is not offered.
//
// # Modes
//
//   - allocs:    memory allocation profiling (all allocations)
//   - block:     blocking profiling
//   - clock:     wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: goroutine profiling
//   - heap:      heap profiling (live allocations)
//   - mem:       general memory profiling
//   - mutex:     mutex contention profiling
//   - thread:    thread creation profiling
//   - trace:     execution trace
//
// # Usage
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/profiles"}
//	defer p.Start().Stop()
//
// Profiles are written to Path with names matching the mode, such as
// cpu.pprof or mem.pprof, and can be inspected with go tool pprof:
//
//	elconf --pprof-mode cpu fmt --json big.conf > /dev/null
//	go tool pprof -http=:8080 ~/.cache/elconf/pprof/cpu.pprof
package profile
