package main

import (
	"log"
	"net/http"

	"github.com/chenBenjamin97/footscout/pkg/api"
	"github.com/chenBenjamin97/footscout/pkg/utils"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP analysis service",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("port", "", "HTTP port (default from config)")
	bindFlag("http.port", serveCmd, "port")
}

func runServe(cmd *cobra.Command, args []string) error {
	//first - create project's temp dir and clear what a previous run left in it
	if err := utils.EnsureDir(cfg.Directory.Temp); err != nil {
		return err
	}
	api.SweepStaleUploads(cfg.Directory.Temp)

	svc, closeModel, err := newService(cfg)
	if err != nil {
		return err
	}
	defer closeModel()

	server := api.NewServer(svc, api.Options{
		TempDir:              cfg.Directory.Temp,
		MaxUploadBytes:       cfg.HTTP.MaxUploadBytes(),
		DefaultMinConfidence: cfg.Validation.MinConfidence,
		CORSOrigins:          cfg.HTTP.CORSOrigins,
		RateLimit:            cfg.HTTP.RateLimit,
		RateBurst:            cfg.HTTP.RateBurst,
	})

	log.Printf("serve: Listening on port %s", cfg.HTTP.Port)
	return http.ListenAndServe(":"+cfg.HTTP.Port, server.Handler())
}
