package models

// MediaDescription is the inbound description of one media item. The numeric
// facts are informational only: the service never derives or overwrites them,
// it just feeds them into the model's context text.
type MediaDescription struct {
	// Identity
	Name string `json:"name"`

	// Meta
	Mime       string `json:"mime,omitempty"`
	SizeBytes  int64  `json:"size_bytes,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
	ModifiedAt string `json:"modified_at,omitempty"`

	// Type discriminator
	FileType string `json:"file_type"`

	// Type-specific numeric facts
	ImageWidth       int     `json:"image_width,omitempty"`
	ImageHeight      int     `json:"image_height,omitempty"`
	VideoWidth       int     `json:"video_width,omitempty"`
	VideoHeight      int     `json:"video_height,omitempty"`
	VideoDurationSec float64 `json:"video_duration_sec,omitempty"`
	VideoFPS         float64 `json:"video_fps,omitempty"`
	VideoCodec       string  `json:"video_codec,omitempty"`
	PDFPageCount     int     `json:"pdf_page_count,omitempty"`

	// Preview payloads: base64 strings, either raw or data-URL prefixed.
	ImageB64       string   `json:"image_b64,omitempty"`
	VideoFramesB64 []string `json:"video_frames_b64,omitempty"`
	PDFPage0B64    string   `json:"pdf_page0_b64,omitempty"`

	// Caller-supplied keyword hints passed into the model's context.
	RawKeywords []string `json:"raw_keywords,omitempty"`
}

// Suggested is the model's optional rename proposal.
type Suggested struct {
	Rename     string  `json:"rename"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
}

// TagResult is the normalized tagging output. Every string in the three lists
// is non-empty, trimmed, lowercase and unique within its list, in
// first-occurrence order of the model's reply.
type TagResult struct {
	Tags        []string   `json:"tags"`
	Topics      []string   `json:"topics"`
	RawKeywords []string   `json:"raw_keywords"`
	Suggested   *Suggested `json:"suggested,omitempty"`
}
