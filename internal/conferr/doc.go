// Package conferr defines the error kinds shared by the encoding and decoding
// packages. Every failure surfaced by this module wraps exactly one of these
// sentinels, so callers can branch with errors.Is regardless of which layer
// produced the error.
package conferr
