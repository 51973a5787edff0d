package services

import (
	"context"

	log "github.com/sirupsen/logrus"

	"taggen/internal/config"
	"taggen/internal/models"
	"taggen/pkg/tagreply"
)

// TagService runs the full tagging flow for one media item: context text,
// preview collection, a single model call, tolerant parse, normalization.
// It holds no per-request state; each call is independent.
type TagService struct {
	completer VisionCompleter
	maxFrames int
}

func NewTagService(completer VisionCompleter, cfg *config.Config) *TagService {
	return &TagService{completer: completer, maxFrames: cfg.Model.MaxFrames}
}

// Tag describes the media item to the vision model and returns the normalized
// result. A failed model call or an unparseable reply fails the request; no
// retries are attempted.
func (s *TagService) Tag(ctx context.Context, desc *models.MediaDescription) (*models.TagResult, error) {
	contextText := buildContextText(desc)
	images := collectImages(desc, s.maxFrames)

	log.Debugf("Tagging %q (%s, %d preview images)", desc.Name, desc.FileType, len(images))

	reply, err := s.completer.Complete(ctx, systemPrompt, contextText, images)
	if err != nil {
		return nil, err
	}

	obj, err := tagreply.ExtractObject(reply)
	if err != nil {
		return nil, err
	}
	return tagreply.BuildResult(obj), nil
}
