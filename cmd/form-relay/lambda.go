package main

import (
	"context"

	"form-relay/internal/form"
	"form-relay/internal/relay"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"
)

var lambdaForm string

// startLambda never returns; the runtime exits the process.
var startLambda = lambda.StartWithOptions

var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Run as an AWS Lambda function serving one form",
	Long: `Start the Lambda runtime loop for a single form.

Example:
  form-relay lambda --form contact
  form-relay lambda --form join_us`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(context.Background())
		if err != nil {
			return err
		}

		h, err := a.handler(lambdaForm)
		if err != nil {
			a.close()
			return err
		}

		runLambda(a, h)
		return nil
	},
}

// runLambda hands h to the runtime. Telemetry and logs are flushed from the SIGTERM hook,
// since the runtime loop does not return to run deferred calls.
func runLambda(a *app, h *relay.Handler) {
	a.log.Info("Starting lambda runtime", map[string]interface{}{"form": h.Form()})
	startLambda(h.Handle, lambda.WithEnableSIGTERM(a.close))
}

func init() {
	lambdaCmd.Flags().StringVar(&lambdaForm, "form", form.NameContact, "form to serve (contact or join_us)")
}
