package forensics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/realitylabs/reality-check/internal/domain/analysis"
)

func TestPipelineExtractsAllSignals(t *testing.T) {
	p := NewPipeline(analysis.DefaultScoreConfig())
	data := pngBytes(t, noiseImage(64, 64, 13))

	sig, err := p.ExtractSignals(context.Background(), data)
	require.NoError(t, err)

	require.NotEmpty(t, sig.Hash)
	require.GreaterOrEqual(t, sig.HashBits, 0)
	require.LessOrEqual(t, sig.HashBits, 64)
	require.Greater(t, sig.BlurVariance, 0.0)
	require.GreaterOrEqual(t, sig.ELAMean, 0.0)
	require.NotNil(t, sig.Metadata)
	require.Nil(t, sig.Failures)
}

func TestPipelineDeterministic(t *testing.T) {
	p := NewPipeline(analysis.DefaultScoreConfig())
	data := jpegBytes(t, noiseImage(64, 64, 17))

	a, err := p.ExtractSignals(context.Background(), data)
	require.NoError(t, err)
	b, err := p.ExtractSignals(context.Background(), data)
	require.NoError(t, err)

	require.Equal(t, a, b)
}

func TestPipelineUndecodableInputFatal(t *testing.T) {
	p := NewPipeline(analysis.DefaultScoreConfig())

	_, err := p.ExtractSignals(context.Background(), []byte("garbage"))
	require.Error(t, err)
}
