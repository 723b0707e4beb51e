package encoder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/backmassage/framefit/internal/config"
)

const encoderListing = ` V....D libx264              libx264 H.264 / AVC / MPEG-4 AVC
 V....D libx265              libx265 H.265 / HEVC
 V....D h264_qsv             H.264 / AVC (Intel Quick Sync Video acceleration)
 V....D h264_nvenc           NVIDIA NVENC H.264 encoder
`

func TestDetectFrom_PrefersNVENC(t *testing.T) {
	assert.Equal(t, KindNVENC, DetectFrom(encoderListing))
}

func TestDetectFrom_FallsThroughOrder(t *testing.T) {
	tests := []struct {
		name    string
		listing string
		want    Kind
	}{
		{"amf before qsv", "h264_amf\nh264_qsv\nlibx264", KindAMF},
		{"qsv only", "h264_qsv\nlibx264", KindQSV},
		{"software fallback", "libx264\nlibx265", KindX264},
		{"empty listing", "", KindX264},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFrom(tt.listing))
		})
	}
}

func TestKind_Codec(t *testing.T) {
	assert.Equal(t, "h264_nvenc", KindNVENC.Codec())
	assert.Equal(t, "h264_amf", KindAMF.Codec())
	assert.Equal(t, "h264_qsv", KindQSV.Codec())
	assert.Equal(t, "libx264", KindX264.Codec())
}

func TestKind_ArgsArePairs(t *testing.T) {
	for _, k := range []Kind{KindX264, KindNVENC, KindAMF, KindQSV} {
		args := k.Args()
		assert.NotEmpty(t, args, k.Label())
		assert.Zero(t, len(args)%2, "%s args must be flag/value pairs", k.Label())
	}
}

func TestFromChoice(t *testing.T) {
	k, ok := FromChoice(config.EncoderNVENC)
	assert.True(t, ok)
	assert.Equal(t, KindNVENC, k)

	_, ok = FromChoice(config.EncoderAuto)
	assert.False(t, ok, "auto requires detection")
}
