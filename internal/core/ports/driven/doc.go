// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Loader: Reads the records of one data source
//   - LoaderRegistry: Selects a loader by source name
//   - Exporter: Writes records in one file format
//   - ExporterRegistry: Selects an exporter by file extension
//   - DateParser: Turns human-readable dates into time points
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ScriptRunner: Runs external statistical scripts. Without it, analysis is disabled.
//   - DataWatcher: Watches the data directory. Without it, watch mode is disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
