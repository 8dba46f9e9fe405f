package cli

import (
	"log"
	"time"

	"github.com/schollz/progressbar/v3"
)

// progressReporter implements extract.ProgressReporter with a byte-based
// progress bar over the VCD stream.
type progressReporter struct {
	bar *progressbar.ProgressBar
}

func newProgressReporter() *progressReporter {
	return &progressReporter{}
}

func (p *progressReporter) OnSampleStart(totalBytes int64) {
	p.bar = progressbar.NewOptions64(totalBytes,
		progressbar.OptionSetDescription("Sampling VCD"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowBytes(true),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionClearOnFinish(),
	)
}

func (p *progressReporter) OnSampleProgress(readBytes int64) {
	if p.bar != nil {
		p.bar.Set64(readBytes)
	}
}

func (p *progressReporter) OnSampleDone(groups int) {
	if p.bar != nil {
		p.bar.Finish()
		p.bar = nil
	}
	if verbose {
		log.Printf("Sampled %d group(s)", groups)
	}
}

func (p *progressReporter) OnWrite(target string) {
	if verbose {
		log.Printf("Writing WaveJSON file: %s", target)
	}
}
