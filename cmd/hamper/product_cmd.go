package main

import (
	"context"

	"github.com/example/hamper-shop/internal/session"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newProductCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Send a prebuilt hamper straight to chat",
		Long: `Builds the WhatsApp link for a single prebuilt hamper without going
through the cart. Product ids are listed by "hamper catalog products".`,
	}

	cmd.AddCommand(
		newProductMessageCmd(a, "order <product-id>", "Order a prebuilt hamper now",
			func(ctx context.Context, s *session.Session, id string) (string, error) {
				return s.OrderProductNow(ctx, id)
			}),
		newProductMessageCmd(a, "enquire <product-id>", "Ask about a prebuilt hamper",
			func(ctx context.Context, s *session.Session, id string) (string, error) {
				return s.EnquireProduct(ctx, id)
			}),
	)
	return cmd
}

func newProductMessageCmd(a *app, use, short string, send func(context.Context, *session.Session, string) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, release, err := a.newSession("product-"+uuid.NewString(), cmd.OutOrStdout(), nil)
			if err != nil {
				return err
			}
			defer release()

			_, err = send(cmd.Context(), s, args[0])
			return err
		},
	}
}
