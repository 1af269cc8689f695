// [Profiler] adds runtime profiling capabilities to CLI applications.
//
// Adapted here to profile tlbx's compile/decompile/bin-to-json runs,
// where CPU and allocation profiles over large documents are most useful.
//
// It supports CPU, heap, allocs, goroutine, threadcreate, block, and mutex
// profiles through command-line flags.
//
// Typical usage wraps command execution with profiler lifecycle methods:
//
//	profiler := profiler.New()
//
//	rootCmd := &cobra.Command{
//	    PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
//	        return profiler.Start()
//	    },
//	}
//
//	profiler.RegisterFlags(rootCmd.PersistentFlags())
//	err := rootCmd.Execute()
//	stopErr := profiler.Stop()
//
// Users can then enable profiling via flags like --cpu-profile=cpu.prof.
package profiler
