// Package naming derives output file names and discovers companion
// subtitle files by filename convention.
package naming

import (
	"os"
	"path/filepath"
	"strings"
)

// Suffixes appended to the input stem; the output container is always MP4.
const (
	suffixPlain = "_1080p"
	suffixSubs  = "_1080p_subs"
)

// OutputName returns the output filename for an input path: the input stem
// plus a suffix marking whether subtitles were burned in.
//
//	movie.mkv            -> movie_1080p.mp4
//	movie.mkv (with srt) -> movie_1080p_subs.mp4
func OutputName(inputPath string, withSubs bool) string {
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	if withSubs {
		return stem + suffixSubs + ".mp4"
	}
	return stem + suffixPlain + ".mp4"
}

// OutputPath joins the output directory and the derived output name.
func OutputPath(inputPath, outputDir string, withSubs bool) string {
	return filepath.Join(outputDir, OutputName(inputPath, withSubs))
}

// FindSubtitle returns the path of a same-stem .srt file next to the
// video, or "" when none exists.
func FindSubtitle(videoPath string) string {
	ext := filepath.Ext(videoPath)
	srt := strings.TrimSuffix(videoPath, ext) + ".srt"
	if _, err := os.Stat(srt); err != nil {
		return ""
	}
	return srt
}
