// Package profiler manages runtime profiling for CLI applications.
package profiler

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/spf13/pflag"
)

// Profiler controls the lifecycle of runtime profiling for a single run.
//
// Call [Profiler.Start] before the workload and [Profiler.Stop] after it to
// write all enabled profiles. Profiles with empty output paths are
// disabled, so the zero value is a no-op.
//
// Create instances with [New].
type Profiler struct {
	// Internal state.
	cpuFile *os.File

	// Output paths (empty = disabled).
	CPUProfile       string
	HeapProfile      string
	AllocsProfile    string
	GoroutineProfile string

	// Rate configuration.
	MemProfileRate int
}

// New creates a new [Profiler] with all profiles disabled.
// Use [Profiler.RegisterFlags] to add CLI flags, or set profile paths
// directly.
func New() Profiler {
	return Profiler{}
}

// RegisterFlags adds profiling flags to the given [*pflag.FlagSet].
func (c *Profiler) RegisterFlags(flags *pflag.FlagSet) {
	// Profile output paths.
	flags.StringVar(&c.CPUProfile, "cpu-profile", "", "write CPU profile to file")
	flags.StringVar(&c.HeapProfile, "heap-profile", "", "write heap profile to file")
	flags.StringVar(&c.AllocsProfile, "allocs-profile", "", "write allocs profile to file")
	flags.StringVar(&c.GoroutineProfile, "goroutine-profile", "", "write goroutine profile to file")

	// Rate configuration.
	flags.IntVar(&c.MemProfileRate, "mem-profile-rate", 524288, "memory profile rate (bytes per sample)")
}

// Start configures runtime profiling rates and starts CPU profiling if
// enabled. Call [Profiler.Stop] when the workload is complete to write
// snapshot profiles.
func (c *Profiler) Start() error {
	if c.MemProfileRate > 0 {
		runtime.MemProfileRate = c.MemProfileRate
	}

	if c.CPUProfile != "" {
		f, err := os.Create(c.CPUProfile) //nolint:gosec // Profile path from CLI flag is expected.
		if err != nil {
			return fmt.Errorf("creating CPU profile: %w", err)
		}

		c.cpuFile = f

		err = pprof.StartCPUProfile(f)
		if err != nil {
			_ = c.cpuFile.Close()
			c.cpuFile = nil

			return fmt.Errorf("starting CPU profile: %w", err)
		}
	}

	return nil
}

// Stop stops CPU profiling and writes all enabled snapshot profiles.
func (c *Profiler) Stop() error {
	if c.cpuFile != nil {
		pprof.StopCPUProfile()

		err := c.cpuFile.Close()
		if err != nil {
			return fmt.Errorf("closing CPU profile: %w", err)
		}

		c.cpuFile = nil
	}

	return c.writeSnapshots()
}

// writeSnapshots writes all enabled snapshot profiles.
func (c *Profiler) writeSnapshots() error {
	profiles := []struct {
		name string
		path string
	}{
		{"heap", c.HeapProfile},
		{"allocs", c.AllocsProfile},
		{"goroutine", c.GoroutineProfile},
	}

	for _, p := range profiles {
		if p.path == "" {
			continue
		}

		err := writeProfile(p.name, p.path)
		if err != nil {
			return err
		}
	}

	return nil
}

// writeProfile writes a single named snapshot profile to path.
func writeProfile(name, path string) error {
	f, err := os.Create(path) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("creating %s profile: %w", name, err)
	}
	defer func() {
		_ = f.Close()
	}()

	err = pprof.Lookup(name).WriteTo(f, 0)
	if err != nil {
		return fmt.Errorf("writing %s profile: %w", name, err)
	}

	return nil
}
