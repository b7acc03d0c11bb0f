package main

import (
	"github.com/example/hamper-shop/internal/message"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newContactCmd(a *app) *cobra.Command {
	var form message.ContactForm
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Build a contact form link",
		Long: `Builds the WhatsApp link a shopper is sent to after submitting the contact form.

Example:
  hamper contact --name Asha --phone 9800000000 --message "Need 20 corporate hampers"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, release, err := a.newSession("contact-"+uuid.NewString(), cmd.OutOrStdout(), nil)
			if err != nil {
				return err
			}
			defer release()

			s.SubmitContact(cmd.Context(), form)
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "your name")
	cmd.Flags().StringVar(&form.Email, "email", "", "email address")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&form.Occasion, "occasion", "", "occasion the hampers are for")
	cmd.Flags().StringVar(&form.Message, "message", "", "free-text message")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}
