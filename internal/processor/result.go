package processor

// Result is the outcome of transforming one file.
type Result struct {
	// Input file path
	Input string

	// Output file path
	Output string

	// Output file size in bytes
	OutputSize int64

	// Error that stopped the file, if any
	Error error
}

// Summary totals the results of a run.
type Summary struct {
	Processed int
	Errored   int
	TotalSize int64
}
