package cmd

import (
	"fmt"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"taggen/internal/apihandlers"
)

var (
	serveAddr string // Listen address
	servePort string // Listen port
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the tagging HTTP API server",
	Long: `Starts an HTTP server exposing the media tagging endpoint (POST /ai/tag)
and a health check (GET /health) for the configured vision model.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		router := gin.Default() // Includes logger and recovery middleware
		apihandlers.RegisterRoutes(router, apihandlers.NewAPIHandler(appInstance))

		// Flags override the configured listen address.
		addr := serveAddr
		if addr == "" {
			addr = appInstance.Config.Server.Addr
		}
		port := servePort
		if port == "" {
			port = appInstance.Config.Server.Port
		}

		listenAddr := fmt.Sprintf("%s:%s", addr, port)
		log.Infof("Starting taggen API server on http://%s (%s via %s)",
			listenAddr, appInstance.Config.Model.Name, appInstance.Config.Model.Provider)

		// router.Run blocks unless an error occurs.
		if err := router.Run(listenAddr); err != nil {
			return fmt.Errorf("failed to run API server: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (default from config, '0.0.0.0')")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (default from config, '8000')")
}
