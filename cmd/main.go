// cmd/main.go

// @title        Invoice generator API
// @version      1.0
// @description  Renders invoices to PDF.
// @BasePath     /
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/invoicing-pdf/pkg/config"
	"github.com/invoicing-pdf/pkg/generator"
	"github.com/invoicing-pdf/pkg/render"
	"github.com/invoicing-pdf/pkg/server"
	"github.com/invoicing-pdf/pkg/storage"
	"github.com/invoicing-pdf/pkg/store"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
	if err := newApp(log).Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("invoicegen failed")
	}
}

// newApp builds the CLI. render is also the default action, so --output is accepted both
// before and after the command name.
func newApp(log zerolog.Logger) *cli.App {
	var env config.Env
	outputFlag := func() cli.Flag {
		return &cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output file (default " + config.DefaultOutput + ")"}
	}

	return &cli.App{
		Name:  "invoicegen",
		Usage: "render invoices to PDF",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "invoice document (YAML); the demo invoice when empty"},
			&cli.StringFlag{Name: "env-file", Value: ".env", Usage: "dotenv file with infrastructure settings"},
			&cli.StringFlag{Name: "font-dir", Usage: "directory holding <family>-Regular.ttf and friends"},
			&cli.StringFlag{Name: "font-family", Usage: "font family name"},
			&cli.StringFlag{Name: "layout", Usage: "layout preset: classic, table or complete"},
			outputFlag(),
		},
		Before: func(c *cli.Context) error {
			var err error
			if env, err = config.LoadEnv(c.String("env-file")); err != nil {
				return err
			}
			level, err := zerolog.ParseLevel(env.LogLevel)
			if err != nil {
				return err
			}
			log = log.Level(level)
			return nil
		},
		Action: func(c *cli.Context) error {
			return renderCommand(c, env, log)
		},
		Commands: []*cli.Command{
			{
				Name:  "render",
				Usage: "write the invoice PDF to a file",
				Flags: []cli.Flag{outputFlag()},
				Action: func(c *cli.Context) error {
					return renderCommand(c, env, log)
				},
			},
			{
				Name:  "serve",
				Usage: "serve the invoice HTTP API",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "listen", Usage: "listen address (default $LISTEN_ADDR or :8080)"},
				},
				Action: func(c *cli.Context) error {
					return serveCommand(c, env, log)
				},
			},
		},
	}
}

// loadDocument reads the invoice document and applies the global flags.
func loadDocument(c *cli.Context) (config.Document, render.Options, error) {
	doc := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		if doc, err = config.Load(path); err != nil {
			return config.Document{}, render.Options{}, err
		}
	}
	if dir := c.String("font-dir"); dir != "" {
		doc.Font.Dir = dir
	}
	if family := c.String("font-family"); family != "" {
		doc.Font.Family = family
	}
	if layout := c.String("layout"); layout != "" {
		doc.Layout = config.Layout{Preset: layout}
	}
	opts, err := doc.RenderOptions()
	if err != nil {
		return config.Document{}, render.Options{}, err
	}
	return doc, opts, nil
}

// newGenerator wires the ledger and the publisher when the environment enables them.
// The returned cleanup closes the ledger.
func newGenerator(ctx context.Context, env config.Env, opts render.Options, log zerolog.Logger) (*generator.Generator, *store.Postgres, func(), error) {
	genOpts := []generator.Option{generator.WithLogger(log)}
	cleanup := func() {}

	var ledger *store.Postgres
	if env.DatabaseURL != "" {
		var err error
		if ledger, err = store.Open(ctx, env.DatabaseURL); err != nil {
			return nil, nil, nil, err
		}
		if err := ledger.Migrate(ctx); err != nil {
			ledger.Close()
			return nil, nil, nil, err
		}
		genOpts = append(genOpts, generator.WithRecorder(ledger))
		cleanup = func() { ledger.Close() }
		log.Debug().Msg("invoice ledger enabled")
	}

	if env.S3Bucket != "" {
		pub, err := storage.NewS3(storage.Config{Region: env.AWSRegion, Bucket: env.S3Bucket, Prefix: env.S3Prefix})
		if err != nil {
			cleanup()
			return nil, nil, nil, err
		}
		genOpts = append(genOpts, generator.WithPublisher(pub))
		log.Debug().Str("bucket", env.S3Bucket).Msg("s3 publishing enabled")
	}

	return generator.New(render.NewRenderer(opts), genOpts...), ledger, cleanup, nil
}

func renderCommand(c *cli.Context, env config.Env, log zerolog.Logger) error {
	doc, opts, err := loadDocument(c)
	if err != nil {
		return err
	}
	inv, err := doc.Invoice()
	if err != nil {
		return err
	}
	output := doc.OutputPath()
	if o := c.String("output"); o != "" {
		output = o
	}

	gen, _, cleanup, err := newGenerator(c.Context, env, opts, log)
	if err != nil {
		return err
	}
	defer cleanup()

	_, err = gen.Generate(c.Context, inv, output)
	return err
}

func serveCommand(c *cli.Context, env config.Env, log zerolog.Logger) error {
	_, opts, err := loadDocument(c)
	if err != nil {
		return err
	}
	addr := env.ListenAddr
	if l := c.String("listen"); l != "" {
		addr = l
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gen, ledger, cleanup, err := newGenerator(ctx, env, opts, log)
	if err != nil {
		return err
	}
	defer cleanup()

	var l server.Ledger
	if ledger != nil {
		l = ledger
	}
	return server.New(gen, opts, l, log).Run(ctx, addr)
}
