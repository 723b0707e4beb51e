// Command framefit batch-converts local videos to a 1920x1080 box with
// ffmpeg, preserving aspect ratio with black bars and optionally burning
// in same-stem .srt subtitles.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "framefit:", err)
		}
		os.Exit(1)
	}
}
