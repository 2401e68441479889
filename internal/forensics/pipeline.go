package forensics

import (
	"context"
	"sync"

	"github.com/realitylabs/reality-check/internal/domain/analysis"
)

// Pipeline runs the four local extractors over one decoded image. The
// extractors are independent pure computations and fan out concurrently; the
// join barrier guarantees the combiner never sees a partial signal set.
type Pipeline struct {
	elaQuality  int
	neutralBits int
}

// NewPipeline derives the re-encode quality and the neutral hash fallback
// from the score calibration: a degraded signal must contribute zero points.
func NewPipeline(cfg analysis.ScoreConfig) *Pipeline {
	return &Pipeline{
		elaQuality:  cfg.ELAQuality,
		neutralBits: cfg.HashSparseBits,
	}
}

// ExtractSignals implements analysis.Extractor. An undecodable image is the
// only fatal outcome; a single failing extractor degrades to its neutral
// default and is reported in Signals.Failures.
func (p *Pipeline) ExtractSignals(_ context.Context, data []byte) (analysis.Signals, error) {
	img, err := Decode(data)
	if err != nil {
		return analysis.Signals{}, err
	}

	sig := analysis.Signals{Failures: map[string]string{}}

	var wg sync.WaitGroup
	var mu sync.Mutex
	degrade := func(signal string, err error) {
		mu.Lock()
		sig.Failures[signal] = err.Error()
		mu.Unlock()
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		sig.Metadata = Metadata(data)
	}()
	go func() {
		defer wg.Done()
		ela, err := ErrorLevel(img, p.elaQuality)
		if err != nil {
			degrade("ela", err)
			return
		}
		sig.ELAMean = ela
	}()
	go func() {
		defer wg.Done()
		sig.BlurVariance = BlurVariance(img)
	}()
	go func() {
		defer wg.Done()
		hash, bitCount, err := PerceptualHash(img)
		if err != nil {
			degrade("phash", err)
			sig.HashBits = p.neutralBits
			return
		}
		sig.Hash = hash
		sig.HashBits = bitCount
	}()
	wg.Wait()

	if len(sig.Failures) == 0 {
		sig.Failures = nil
	}
	return sig, nil
}
