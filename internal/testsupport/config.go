package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"feedscope/internal/config"
)

// DefaultFeedsCSV is the feed table fixture shared across package tests. Feed
// 102 exceeds the fixture decoder caps, 105 has no optional fields at all,
// 106 runs hot at 120 fps with an off-allowlist codec.
const DefaultFeedsCSV = `FEED_ID,THEATER,RES_W,RES_H,FRRATE,CODEC
101,PAC,1920,1080,30,H264
102,EUR,3840,2160,60,H265
103,EUR,1280,720,25,h264
104,CONUS,1920,1080,59.94,AV1
105,ME,,,,
106,AFR,1920,1080,120,VP9
107,EUR,720,480,15,MPEG2
`

// DefaultTableDefsCSV mirrors the declared schema of DefaultFeedsCSV.
const DefaultTableDefsCSV = `header,type,allowed_values,description
FEED_ID,int,,Unique feed identifier
THEATER,string,PAC|CONUS|EUR|ME|AFR|ARC,Operational theater code
RES_W,int,,Horizontal resolution in pixels
RES_H,int,,Vertical resolution in pixels
FRRATE,float,,Frame rate in frames per second
CODEC,string,,Video codec name
`

// DefaultEncoderParamsJSON is a plausible encoder record.
const DefaultEncoderParamsJSON = `{
  "codec": "H265",
  "profile": "main10",
  "level": "5.1",
  "bit_depth": 10,
  "framerate": 30,
  "gop_size": 60,
  "rc_mode": "cbr",
  "bitrate_kbps": 8000,
  "maxrate_kbps": 10000,
  "vbv_buf_ms": 1500,
  "b_frames": 3,
  "ref_frames": 4,
  "chroma": "4:2:0",
  "preset": "medium"
}`

// DefaultDecoderParamsJSON caps decode at 1080p.
const DefaultDecoderParamsJSON = `{
  "max_threads": 8,
  "dpb_size": 4,
  "reorder_frames": true,
  "jitter_buf_ms": 120,
  "av_sync": "pts",
  "output_format": "nv12",
  "cap_max_res_w": 1920,
  "cap_max_res_h": 1080,
  "skip_nonref": false
}`

// DefaultEncoderSchemaJSON declares the encoder record shape.
const DefaultEncoderSchemaJSON = `{
  "required": ["codec"],
  "properties": {
    "codec": {"type": "string"},
    "profile": {"type": "string"},
    "bit_depth": {"type": "integer"},
    "framerate": {"type": "number"},
    "gop_size": {"type": "integer"},
    "bitrate_kbps": {"type": "integer"},
    "maxrate_kbps": {"type": "integer"},
    "vbv_buf_ms": {"type": "integer"},
    "b_frames": {"type": "integer"},
    "ref_frames": {"type": "integer"}
  }
}`

// DefaultDecoderSchemaJSON declares the decoder record shape.
const DefaultDecoderSchemaJSON = `{
  "required": [],
  "properties": {
    "max_threads": {"type": "integer"},
    "dpb_size": {"type": "integer"},
    "reorder_frames": {"type": "boolean"},
    "jitter_buf_ms": {"type": "integer"},
    "av_sync": {"type": "string"},
    "output_format": {"type": "string"},
    "cap_max_res_w": {"type": "integer"},
    "cap_max_res_h": {"type": "integer"},
    "skip_nonref": {"type": "boolean"}
  }
}`

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t   testing.TB
	cfg *config.Config

	files map[string]string
}

// NewConfig produces a config seeded with unique temp directories and a full
// fixture dataset written into the data directory.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.APIBind = "127.0.0.1:0"

	builder := &configBuilder{
		t:   t,
		cfg: &cfgVal,
		files: map[string]string{
			"feeds.csv":           DefaultFeedsCSV,
			"table_defs.csv":      DefaultTableDefsCSV,
			"encoder_params.json": DefaultEncoderParamsJSON,
			"decoder_params.json": DefaultDecoderParamsJSON,
			"encoder_schema.json": DefaultEncoderSchemaJSON,
			"decoder_schema.json": DefaultDecoderSchemaJSON,
		},
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := cfgVal.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	for name, content := range builder.files {
		target := filepath.Join(cfgVal.Paths.DataDir, name)
		if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
			t.Fatalf("write fixture %s: %v", name, err)
		}
	}

	return builder.cfg
}

// WithFeedsCSV replaces the feed table fixture.
func WithFeedsCSV(content string) ConfigOption {
	return func(b *configBuilder) {
		b.files["feeds.csv"] = content
	}
}

// WithDecoderParams replaces the decoder parameter fixture.
func WithDecoderParams(content string) ConfigOption {
	return func(b *configBuilder) {
		b.files["decoder_params.json"] = content
	}
}

// WithDataFile sets an arbitrary fixture file in the data directory.
func WithDataFile(name, content string) ConfigOption {
	return func(b *configBuilder) {
		b.files[name] = content
	}
}

// WithoutDataFile removes a fixture file from the generated dataset.
func WithoutDataFile(name string) ConfigOption {
	return func(b *configBuilder) {
		delete(b.files, name)
	}
}

// WithAPIToken sets the bearer token on the test config.
func WithAPIToken(token string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.APIToken = token
	}
}

// WithCatalogSource switches the configured feed table backend.
func WithCatalogSource(source string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.Source = source
	}
}
