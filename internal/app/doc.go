// Package app wires the registry, manifest loader and JSON codec into a
// single entry point. It defines the App struct and its configuration,
// decoupled from how the caller obtains either.
package app
