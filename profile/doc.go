// Package profile provides optional runtime profiling for envlit.
//
// Profiling wraps [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag:
//
//	go build -tags pprof ./cmd/envlit
//
// Without the tag, [Modes] is empty and [Profiler.Start] is a no-op.
//
// A started profiler writes one file per mode (e.g. cpu.pprof) to its
// directory; analyze it with go tool pprof:
//
//	envlit --pprof-mode=cpu gen ./...
//	go tool pprof -http=: ~/.cache/envlit/pprof/cpu.pprof
//
// Building with the tag also registers the [net/http/pprof] handlers.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
