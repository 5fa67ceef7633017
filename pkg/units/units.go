// Package units holds the byte size multipliers used for input limits.
package units

// Binary size multipliers.
const (
	KiB = 1 << 10
	MiB = 1 << 20
)
