package main

import (
	"fmt"
	"io"
	"os"

	"github.com/example/hamper-shop/internal/catalog"
	"github.com/example/hamper-shop/internal/config"
	"github.com/example/hamper-shop/internal/domain/cart"
	"github.com/example/hamper-shop/internal/idgen"
	"github.com/example/hamper-shop/internal/infrastructure/kafka"
	"github.com/example/hamper-shop/internal/infrastructure/store"
	"github.com/example/hamper-shop/internal/logger"
	"github.com/example/hamper-shop/internal/metrics"
	"github.com/example/hamper-shop/internal/session"
	"github.com/example/hamper-shop/internal/whatsapp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const serviceName = "hamper"

// app carries what every subcommand needs once the root has booted.
type app struct {
	catalogPath string

	cfg *config.Config
	log zerolog.Logger
	cat *catalog.Catalog
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "hamper",
		Short: "Gift hamper storefront session tool",
		Long: `hamper drives the storefront core from the command line.

It prints the catalog, replays order scripts through a shopping session
and builds the WhatsApp links a shopper would be sent to.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.boot(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVar(&a.catalogPath, "catalog", "", "catalog YAML file (built-in catalog when empty)")

	root.AddCommand(
		newCatalogCmd(a),
		newOrderCmd(a),
		newProductCmd(a),
		newContactCmd(a),
	)
	return root
}

func (a *app) boot(stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.Format(),
		Output:      stderr,
	})

	a.cat, err = loadCatalog(a.catalogPath)
	if err != nil {
		return err
	}
	a.log.Debug().
		Str("env", cfg.App.Env).
		Int("products", len(a.cat.Products)).
		Msg("catalog loaded")
	return nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()
	return catalog.Load(f)
}

// newSession wires one shopping session. Chat links are written to out.
// The returned func releases the event publisher, if any.
func (a *app) newSession(id string, out io.Writer, reg prometheus.Registerer) (*session.Session, func(), error) {
	opts := []store.Option{
		store.WithSnapshotThreshold(a.cfg.Store.SnapshotThreshold),
		store.WithLogger(a.log),
	}
	release := func() {}
	if a.cfg.Eventing.KafkaEnabled {
		producer := kafka.NewProducer(a.cfg.Eventing.KafkaBrokers, a.cfg.Eventing.KafkaTopic, a.log)
		opts = append(opts, store.WithPublisher(producer))
		release = func() {
			if err := producer.Close(); err != nil {
				a.log.Warn().Err(err).Msg("failed to close kafka producer")
			}
		}
		a.log.Info().
			Strs("brokers", a.cfg.Eventing.KafkaBrokers).
			Str("topic", a.cfg.Eventing.KafkaTopic).
			Msg("publishing session events")
	}

	s, err := session.New(session.Deps{
		SessionID: id,
		Brand:     a.cfg.Shop.BrandName,
		Catalog:   a.cat,
		Carts:     cart.NewService(store.NewEventStore(opts...), idgen.UUID{}, a.log),
		Chat:      whatsapp.NewService(a.cfg.WhatsApp.BaseURL, a.cfg.WhatsApp.Number, whatsapp.WriterOpener{W: out}, a.log),
		Metrics:   metrics.NewSessionMetrics(reg),
		Logger:    a.log,
	})
	if err != nil {
		release()
		return nil, nil, err
	}
	return s, release, nil
}
