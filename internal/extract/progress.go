package extract

// ProgressReporter receives extraction progress callbacks. Implementations
// live at the CLI boundary; the core only invokes them.
type ProgressReporter interface {
	// OnSampleStart is called before sampling begins, with the total size
	// of the VCD file in bytes.
	OnSampleStart(totalBytes int64)

	// OnSampleProgress is called as the stream is consumed, with the
	// cumulative number of bytes read.
	OnSampleProgress(readBytes int64)

	// OnSampleDone is called after sampling with the number of sample
	// groups produced.
	OnSampleDone(groups int)

	// OnWrite is called before the WaveJSON document is written to a file.
	OnWrite(target string)
}

// NopReporter discards all progress callbacks.
type NopReporter struct{}

func (NopReporter) OnSampleStart(int64)    {}
func (NopReporter) OnSampleProgress(int64) {}
func (NopReporter) OnSampleDone(int)       {}
func (NopReporter) OnWrite(string)         {}
