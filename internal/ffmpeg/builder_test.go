package ffmpeg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/framefit/internal/config"
	"github.com/backmassage/framefit/internal/encoder"
	"github.com/backmassage/framefit/internal/filter"
	"github.com/backmassage/framefit/internal/probe"
)

func specFor(t *testing.T, w, h int, sub string) filter.Spec {
	t.Helper()
	cfg := config.DefaultConfig()
	spec, err := filter.Plan(&cfg, &probe.MediaInfo{Width: w, Height: h}, sub)
	require.NoError(t, err)
	return spec
}

func TestBuild_WithFilter(t *testing.T) {
	args := Build("/in/a.mkv", "/out/a_1080p.mp4", specFor(t, 1280, 720, ""), encoder.KindNVENC)
	joined := strings.Join(args, " ")

	assert.Equal(t, "ffmpeg", args[0])
	assert.Contains(t, joined, "-i /in/a.mkv")
	assert.Contains(t, joined, "-vf scale=1920:1080")
	assert.Contains(t, joined, "-c:v h264_nvenc")
	assert.Contains(t, joined, "-c:a copy")
	assert.Contains(t, joined, "-movflags +faststart")
	assert.Equal(t, "/out/a_1080p.mp4", args[len(args)-1])
}

func TestBuild_NoFilterOmitsVF(t *testing.T) {
	args := Build("/in/a.mp4", "/out/a.mp4", filter.Spec{}, encoder.KindX264)
	assert.NotContains(t, args, "-vf")
	assert.Contains(t, args, "libx264")
}

func TestBuild_EncoderArgsIncluded(t *testing.T) {
	args := Build("/in/a.mp4", "/out/a.mp4", filter.Spec{}, encoder.KindQSV)
	joined := strings.Join(args, " ")
	assert.Contains(t, joined, "-global_quality 23")
}

func TestBuild_FilterPrecedesEncoder(t *testing.T) {
	args := Build("/in/a.mkv", "/out/a.mp4", specFor(t, 1920, 800, "/in/a.srt"), encoder.KindX264)
	joined := strings.Join(args, " ")
	vf := strings.Index(joined, "-vf")
	cv := strings.Index(joined, "-c:v")
	require.GreaterOrEqual(t, vf, 0)
	assert.Less(t, vf, cv)
	assert.Contains(t, joined, "pad=1920:1080:0:140:black,subtitles=")
}
