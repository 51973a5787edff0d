package services

import (
	"fmt"
	"strings"

	"taggen/internal/models"
)

// systemPrompt is sent with every tagging request. The declared rename bound
// matches tagreply.MaxRenameLen; the normalizer is the enforcement point.
const systemPrompt = `You are a media categorisation AI.

GOAL
Return a JSON object describing the media using:
- "tags": 3-8 short, free-form tags that describe the visual FORM and salient attributes. Examples of form tags (not exhaustive): photo, diagram, erd, flowchart, uml, chart, graph, table, spreadsheet, screenshot, slide, document_page, map, blueprint, poster.
- "topics": 1-4 short, free-form subject/domain topics about what it's about (e.g., sports, golf, tournament, databases, data_modeling, schema_design). Do not limit yourself to examples; invent new ones when appropriate.
- "raw_keywords": 0-12 short keywords you infer from visible text or core concepts (lowercase).
- "suggested": { "rename": string, "reason": string, "confidence": 0..1 } - snake_case, keep extension if determinable, <= 80 chars.

RULES
1) Always cover BOTH axes:
   - at least ONE FORM-oriented tag (e.g., diagram/erd/flowchart/photo/...),
   - and at least ONE DOMAIN topic (e.g., golf/tournament/databases/...).
2) Prefer lowercase; use single words or kebab_case/snake_case; no spaces.
3) Do NOT invent or change numeric metadata (width/height/duration/pages) - they're informational only.
4) Base decisions primarily on the provided pixels (and frames/pages). Ignore filename unless helpful.
5) The rename should reflect both the form and the subject when clear (e.g., golf_competition_entity_relationship_diagram.png).

OUTPUT
Return ONLY valid JSON with keys:
{"tags":[...], "topics":[...], "raw_keywords":[...], "suggested":{"rename":"...", "reason":"...", "confidence":0.0}}`

// buildContextText renders the media facts as the user-turn text. Pure
// formatting; the numeric facts are passed through exactly as received.
func buildContextText(d *models.MediaDescription) string {
	return fmt.Sprintf(
		"file_type=%s\n"+
			"mime=%s\n"+
			"size_bytes=%d\n"+
			"image_wh=%dx%d\n"+
			"video_wh=%dx%d dur=%gs fps=%g\n"+
			"pdf_page_count=%d\n"+
			"seed_keywords=%s\n"+
			"filename=%s\n"+
			"Respond with JSON only.",
		d.FileType, d.Mime, d.SizeBytes,
		d.ImageWidth, d.ImageHeight,
		d.VideoWidth, d.VideoHeight, d.VideoDurationSec, d.VideoFPS,
		d.PDFPageCount,
		strings.Join(d.RawKeywords, ", "),
		d.Name,
	)
}

// collectImages gathers the preview payloads as raw base64 strings, in order:
// the single image, up to maxFrames video frames (excess frames silently
// dropped), then the PDF first page. Payloads are not validated; malformed
// base64 is passed through to the model call.
func collectImages(d *models.MediaDescription, maxFrames int) []string {
	var images []string
	if d.ImageB64 != "" {
		images = append(images, stripDataURL(d.ImageB64))
	}

	frames := d.VideoFramesB64
	if len(frames) > maxFrames {
		frames = frames[:maxFrames]
	}
	for _, frame := range frames {
		images = append(images, stripDataURL(frame))
	}

	if d.PDFPage0B64 != "" {
		images = append(images, stripDataURL(d.PDFPage0B64))
	}
	return images
}

// stripDataURL returns the raw base64 payload when s is data-URL prefixed,
// otherwise s unchanged.
func stripDataURL(s string) string {
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i != -1 {
			return s[i+1:]
		}
	}
	return s
}
