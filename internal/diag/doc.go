// Package diag carries the diagnostic events produced while decoding a
// fuse map.
//
// The decoder never writes to a console. It returns the events it
// produced (mode resolution, configuration bits, skipped rows, decoded
// control rows) and the caller forwards them to a Logger:
//
//	// console output via slog
//	logger := diag.NewSlogAdapter(slog.Default())
//
//	// machine-readable CBOR event file
//	file, _ := diag.NewFileLogger("run.glog")
//
//	// both
//	logger = diag.NewMultiLogger(logger, file)
//
// Event files are a stream of CBOR encoded events; Reader iterates them.
package diag
