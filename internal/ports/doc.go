// Package ports defines the interfaces that connect the compositing pipeline
// to its infrastructure adapters.
//
// # Port Interfaces
//
//   - [Enumerator]: lazily lists image files under a directory
//   - [ImageStore]: decodes input images and writes output artifacts
//   - [DirChecker]: validates that a directory exists
//   - [ReportRepository]: persists the run report
//   - [Logger]: structured logging abstraction
//
// The application layer (internal/app) depends only on these interfaces.
// Implementations live in internal/adapters.
package ports
