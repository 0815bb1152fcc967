// Package reader provides the record sources the viewer reads from. Every
// source follows the bufio.Scanner pattern: Scan until it returns false, then
// check Err to tell end-of-stream apart from a failure.
package reader

// Scanner yields one record, an ordered sequence of fields, per Scan call.
type Scanner interface {
	// Scan advances to the next record. It returns false at the end of the
	// input or on failure.
	Scan() bool
	// Record returns the fields of the record read by the last Scan.
	Record() []string
	// Err returns the first non-EOF error encountered by Scan.
	Err() error
}
