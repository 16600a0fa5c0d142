package rawbt

import "momir/internal/momir"

// GraphicFilterAtkinson is RawBT's Atkinson dithering filter
const GraphicFilterAtkinson = 2

// Response types sent back by the WebSocket API
const (
	ResponseProgress = "progress"
	ResponseSuccess  = "success"
	ResponseError    = "error"
)

// Job is one print request
type Job struct {
	Commands []Command `json:"commands"`
}

// Command is a single job step
type Command struct {
	Command         string           `json:"command"`
	Base64          string           `json:"base64"`
	AttributesImage *ImageAttributes `json:"attributesImage,omitempty"`
}

// ImageAttributes control how RawBT renders an image
type ImageAttributes struct {
	GraphicFilter int `json:"graphicFilter"`
}

// Response is an inbound WebSocket message
type Response struct {
	ResponseType string  `json:"responseType"`
	Progress     float64 `json:"progress"`
	ErrorMessage string  `json:"errorMessage"`
}

// NewImageJob builds a job printing img with the given graphic filter
func NewImageJob(img momir.CardImage, graphicFilter int) Job {
	return Job{
		Commands: []Command{{
			Command: "image",
			Base64:  img.Base64Payload(),
			AttributesImage: &ImageAttributes{
				GraphicFilter: graphicFilter,
			},
		}},
	}
}
