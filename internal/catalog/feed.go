package catalog

import (
	"fmt"
	"strconv"
)

// Feed is a single video stream record in the catalog. Optional fields are
// nil pointers (numeric) or empty strings (text) when the source data is
// missing or unparseable.
type Feed struct {
	ID        string
	Theater   string
	Width     *int
	Height    *int
	FrameRate *float64
	Codec     string
}

// Area returns width*height in pixels, treating missing dimensions as zero.
func (f Feed) Area() float64 {
	if f.Width == nil || f.Height == nil {
		return 0
	}
	return float64(*f.Width) * float64(*f.Height)
}

// FPS returns the frame rate, treating a missing value as zero.
func (f Feed) FPS() float64 {
	if f.FrameRate == nil {
		return 0
	}
	return *f.FrameRate
}

// Resolution renders "WxH" for display, or "-" when either dimension is missing.
func (f Feed) Resolution() string {
	if f.Width == nil || f.Height == nil {
		return "-"
	}
	return fmt.Sprintf("%dx%d", *f.Width, *f.Height)
}

// FPSLabel renders the frame rate for display, or "-" when missing.
func (f Feed) FPSLabel() string {
	if f.FrameRate == nil {
		return "-"
	}
	return strconv.FormatFloat(*f.FrameRate, 'f', -1, 64)
}

// TableColumn describes one column of the declared feed-table schema.
type TableColumn struct {
	Header        string `json:"header"`
	Type          string `json:"type"`
	AllowedValues string `json:"allowed_values,omitempty"`
	Description   string `json:"description,omitempty"`
}

// DecoderParams is the decoder capability record. Missing cap fields mean the
// corresponding limit is unbounded.
type DecoderParams struct {
	MaxThreads    *int    `json:"max_threads,omitempty"`
	DPBSize       *int    `json:"dpb_size,omitempty"`
	ReorderFrames *bool   `json:"reorder_frames,omitempty"`
	JitterBufMs   *int    `json:"jitter_buf_ms,omitempty"`
	AVSync        *string `json:"av_sync,omitempty"`
	OutputFormat  *string `json:"output_format,omitempty"`
	Deinterlace   *string `json:"deinterlace,omitempty"`
	CapMaxResW    *int    `json:"cap_max_res_w,omitempty"`
	CapMaxResH    *int    `json:"cap_max_res_h,omitempty"`
	ColorSpace    *string `json:"color_space,omitempty"`
	ChromaFormat  *string `json:"chroma_format,omitempty"`
	SkipNonref    *bool   `json:"skip_nonref,omitempty"`
	Deblock       *bool   `json:"deblock,omitempty"`
	SAO           *bool   `json:"sao,omitempty"`
}
