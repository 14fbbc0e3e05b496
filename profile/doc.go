// Package profile starts and stops [github.com/pkg/profile] sessions for
// the pagebind command.
//
// Profiling is compiled in only with the pprof build tag:
//
//	go build -tags pprof .
//	pagebind --pprof-mode cpu render -s index.html -o /dev/null
//
// Without the tag, [Modes] is empty and [Profiler.Start] returns a handle
// whose Stop does nothing, so callers never need their own build tags.
//
// Profiles are written to [Profiler.Path] (by default the pprof directory
// under the pagebind cache directory) with one file per mode, for example
// cpu.pprof or mem.pprof, and can be inspected with
//
//	go tool pprof -http=: ./pagebind cpu.pprof
//
// Rendering a page is short-lived, so cpu profiles of a single run are
// sparse. Loop a render in a shell or profile the allocs and heap modes,
// which do not depend on run time.
package profile

// Tag is the build tag that enables profiling.
const Tag = `pprof`
