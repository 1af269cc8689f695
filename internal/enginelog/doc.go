// Package enginelog provides structured logging handler construction for
// use with [log/slog], sized for the tlbx document engine: the parser's
// duplicate-key warnings go through the default slog logger, which
// cmd/tlbx points at a handler built here, rather than being printed
// directly.
//
// It supports multiple output formats ([FormatJSON], [FormatLogfmt], and
// [FormatText]) and severity levels ([LevelError], [LevelWarn], [LevelInfo],
// and [LevelDebug]). Use [NewHandler] to create a handler directly, or use
// [Config] with CLI flag integration via [github.com/spf13/pflag] and shell
// completion support via [github.com/spf13/cobra].
//
// Typical usage creates a [Config], registers flags, then builds a handler
// at startup:
//
//	cfg := enginelog.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	cfg.RegisterCompletions(rootCmd)
//
//	handler, err := cfg.NewHandler(os.Stderr)
//	slog.SetDefault(slog.New(handler))
//
// A [Publisher] fans out log output to multiple subscribers, for mirroring
// structured diagnostics onto a secondary writer without double-logging;
// `cmd/tlbx` does not use it:
//
//	pub := enginelog.NewPublisher()
//	handler := enginelog.NewHandler(pub, enginelog.LevelInfo, enginelog.FormatJSON)
//	logger := slog.New(handler)
//
//	sub := pub.Subscribe()
//	go func() {
//	    for entry := range sub.C() {
//	        // Deliver entry to the CLI's verbose stream.
//	    }
//	}()
package enginelog
