// Package pipeline provides a framework for executing conversion steps
// in sequence.
//
// A conversion run moves through several stages: freshness check,
// archive download, decompression, extraction, and checksum save. Each
// stage is implemented as a Step that receives the accumulated RunReport
// and can modify it.
//
// Design decision: We use a pipeline pattern instead of direct function
// calls because:
//  1. It allows easy addition/removal of steps without modifying core logic
//  2. It provides consistent error handling and logging across steps
//  3. It supports cancellation via context for long-running downloads
//
// A step may return ErrSkipRun to end the run early without failing it;
// the freshness check uses this when the local output already matches
// the published export.
package pipeline
