// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Filters, sampling and descriptives are linear scans over in-memory
// records. They never mutate the records they are given and always
// return a new slice, so results can be passed to several consumers.
package services
