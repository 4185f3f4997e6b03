package api

import (
	"github.com/rviscarra/snapcompose/internal/rdisplay"
	"github.com/rviscarra/snapcompose/internal/store"
)

type captureRequest struct {
	X      int32  `json:"x"`
	Y      int32  `json:"y"`
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

func (r captureRequest) region() rdisplay.Region {
	return rdisplay.Region{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

type screenshotPayload struct {
	ID        string          `json:"id"`
	Timestamp int64           `json:"timestamp"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	Region    rdisplay.Region `json:"region"`
	Data      string          `json:"data,omitempty"`
	Thumbnail string          `json:"thumbnail,omitempty"`
}

func newScreenshotPayload(shot store.Screenshot) screenshotPayload {
	return screenshotPayload{
		ID:        shot.ID,
		Timestamp: shot.Timestamp,
		Width:     shot.Width,
		Height:    shot.Height,
		Region:    shot.Region,
	}
}

type screenshotsResponse struct {
	Screenshots []screenshotPayload `json:"screenshots"`
}

type composeRequest struct {
	IDs       []string `json:"ids"`
	Layout    string   `json:"layout"`
	MaxWidth  uint     `json:"max_width,omitempty"`
	MaxHeight uint     `json:"max_height,omitempty"`
}

type composeResponse struct {
	Data    string   `json:"data"`
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Missing []string `json:"missing,omitempty"`
}

type monitorsResponse struct {
	Monitors []rdisplay.Monitor `json:"monitors"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}
