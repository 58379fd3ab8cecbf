// Package generation sequences image generation calls.
//
// An Orchestrator runs one tool invocation at a time: it compiles prompts,
// posts each to the provider in order, extracts and checks the returned
// image, and writes it to the output directory. Items fail independently;
// the batch reports success when at least one file was written. A failure
// classified as an authentication failure stops the remaining items, since
// every later call would fail the same way.
//
// Items are never sent concurrently. Story steps in particular are issued
// in step order.
package generation
