// Package domain contains the value types of a compositing run.
//
// It has no dependencies on image codecs, the file system or logging.
//
// # Types
//
//   - [FileType]: the closed set of image extensions a run can select
//   - [Job]: the validated directory triple plus the extension
//   - [Report]: what a run did, including per-pair failures
//
// Output naming ([Stem], [OutputPath]) also lives here because it is pure
// string logic over paths.
package domain
