package video

import (
	"encoding/json"
	"fmt"
	"os"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Resolution is a video frame size in pixels, used to set the output
// script's PlayResX/PlayResY.
type Resolution struct {
	Width  int
	Height int
}

type probeOutput struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
}

// ProbeResolution reads the first video stream's dimensions via ffprobe.
func ProbeResolution(path string) (Resolution, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Resolution{}, fmt.Errorf("video file not found: %s", path)
	}

	data, err := ffmpeg.Probe(path)
	if err != nil {
		return Resolution{}, fmt.Errorf("ffprobe failed: %w", err)
	}

	var out probeOutput
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return Resolution{}, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	for _, stream := range out.Streams {
		if stream.CodecType == "video" && stream.Width > 0 && stream.Height > 0 {
			return Resolution{Width: stream.Width, Height: stream.Height}, nil
		}
	}

	return Resolution{}, fmt.Errorf("no video stream with dimensions in %s", path)
}
