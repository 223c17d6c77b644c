package fsmindex

import "runtime"

// defaultSerialThreshold is the vocabulary size at or below which a scan
// runs on the calling goroutine instead of fanning out.
const defaultSerialThreshold = 1000

// Config holds tuning options for vocabulary scans and index builds.
//
// Tuning affects scheduling only. Scan and build results are identical for
// every worker count and threshold; a misconfigured Config can make a build
// slower, never different.
type Config struct {
	// Workers is the number of goroutines a vocabulary scan fans out to
	// (default: runtime.NumCPU()). Values below 1 select the default.
	Workers int

	// SerialThreshold is the vocabulary size at or below which a scan runs
	// on the calling goroutine (default: 1000). Fan-out pays for itself
	// only on larger vocabularies. Values below 1 select the default.
	SerialThreshold int
}

// applyDefaults fills in default values for unset Config fields.
func (c *Config) applyDefaults() {
	if c.Workers < 1 {
		c.Workers = runtime.NumCPU()
	}
	if c.SerialThreshold < 1 {
		c.SerialThreshold = defaultSerialThreshold
	}
}
