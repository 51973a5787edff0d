package app

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"taggen/internal/config"
	"taggen/internal/services"
)

// App holds the process-wide wiring: the immutable config, the selected
// vision provider and the tag service built on it. It is constructed once at
// startup and shared read-only across requests.
type App struct {
	Config     *config.Config
	Completer  services.VisionCompleter
	TagService *services.TagService
}

func NewApp(cfg *config.Config) (*App, error) {
	completer, err := services.NewVisionCompleter(cfg)
	if err != nil {
		return nil, fmt.Errorf("init vision provider: %w", err)
	}

	log.Infof("Vision provider %q ready (model %s, frame cap %d, timeout %s)",
		cfg.Model.Provider, cfg.Model.Name, cfg.Model.MaxFrames, cfg.Timeout())

	return &App{
		Config:     cfg,
		Completer:  completer,
		TagService: services.NewTagService(completer, cfg),
	}, nil
}
