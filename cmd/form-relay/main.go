// cmd/form-relay/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "form-relay",
	Short: "Website form relay",
	Long: `form-relay verifies website form submissions with reCAPTCHA Enterprise,
validates them and publishes a notification to an SNS topic.

It runs either as an AWS Lambda function serving one form, or as a plain
HTTP server serving every form.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a config file (defaults to configs/config.yaml discovery)")
	rootCmd.AddCommand(lambdaCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
