package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/okabeworks/visatrans/internal/config"
	"github.com/okabeworks/visatrans/internal/pipeline"
	"github.com/okabeworks/visatrans/internal/server"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the translation HTTP API",
	Long: `Start the HTTP API serving POST /translate, GET /glossary, and
GET /health. Configuration comes from flags, VISATRANS_* environment
variables, and the optional --config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; absence is not an error.
		_ = godotenv.Load()

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cmd.Flags().Changed("host") {
			cfg.Server.Host = serveHost
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}

		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

		cached, closeVocab, err := buildVocabulary(cfg)
		if err != nil {
			return err
		}
		defer closeVocab()

		// A missing engine configuration must not prevent startup: the
		// service stays up and /translate answers 500 until configured.
		var pipe *pipeline.Pipeline
		engine, err := buildEngine(cfg)
		if err != nil {
			logrus.WithError(err).Warn("translation engine unconfigured; /translate will fail")
		} else {
			pipe = buildPipeline(cfg, engine, cached)
			logrus.WithFields(logrus.Fields{
				"engine": engine.Name(),
				"model":  cfg.Engine.Model,
			}).Info("translation engine ready")
		}

		handler := server.NewHandler(pipe, cached)
		srv := server.New(handler, cfg.Server)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return srv.Run(ctx, handler)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "0.0.0.0", "Listen host")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Listen port")
}
