package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/example/hamper-shop/internal/domain/checkout"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

var ErrCheckoutIncomplete = errors.New("checkout incomplete")

func newOrderCmd(a *app) *cobra.Command {
	var showMetrics bool
	cmd := &cobra.Command{
		Use:   "order <script.yaml>",
		Short: "Replay an order script and print the WhatsApp order link",
		Long: `Replays an order script through a fresh session, walks the checkout
and prints the order summary followed by the link it is sent to.

The script adds custom and prebuilt hampers, adjusts quantities, removes
items and fills in the customer details. Checkout stops when the cart is
empty or the name or phone is missing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening script: %w", err)
			}
			defer f.Close()

			script, err := ParseScript(f)
			if err != nil {
				return err
			}

			var reg *prometheus.Registry
			if showMetrics {
				reg = prometheus.NewRegistry()
			}
			return a.runOrder(cmd, script, reg)
		},
	}
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "print session metrics after the order")
	return cmd
}

func (a *app) runOrder(cmd *cobra.Command, script *Script, reg *prometheus.Registry) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	id := script.Session
	if id == "" {
		id = uuid.NewString()
	}
	var registerer prometheus.Registerer
	if reg != nil {
		registerer = reg
	}
	s, release, err := a.newSession(id, out, registerer)
	if err != nil {
		return err
	}
	defer release()

	if err := script.Run(ctx, s); err != nil {
		return err
	}

	for s.CheckoutStep() != checkout.FinalOrder {
		moved, err := s.NextStep(ctx)
		if err != nil {
			return err
		}
		if !moved {
			return fmt.Errorf("%w: stopped at %s", ErrCheckoutIncomplete, s.CheckoutStep())
		}
	}

	summary, err := s.OrderSummary(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, summary)
	fmt.Fprintln(out)

	if _, placed, err := s.PlaceOrder(ctx); err != nil {
		return err
	} else if !placed {
		return fmt.Errorf("%w: order not placed", ErrCheckoutIncomplete)
	}

	if reg != nil {
		return writeMetrics(out, reg)
	}
	return nil
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	fmt.Fprintln(w)
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
