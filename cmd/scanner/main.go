package main

import (
	"fmt"
	"os"

	"github.com/goran-ethernal/ChainActivity/internal/config"
	"github.com/goran-ethernal/ChainActivity/pkg/activity"
	"github.com/spf13/cobra"
)

const (
	version = "1.0.0"
	banner  = `
╔═══════════════════════════════════════════╗
║          ChainActivity v%s             ║
║   On-chain Activity Indexing Pipeline     ║
╚═══════════════════════════════════════════╝
`
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "scanner",
		Short: "ChainActivity - on-chain activity indexing pipeline",
		Long: `ChainActivity scans a block range, attributes every log to the addresses involved
in it, aggregates per-address statistics and writes them to a report and an
optional relational store.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newScanCmd(), newServeCmd(), newSchemaCmd(), newSignaturesCmd())
	return root
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema, err := config.Schema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(schema))
			return err
		},
	}
}

func newSignaturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signatures",
		Short: "List the event signatures the scanner decodes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, spec := range activity.DefaultSignatureTable().Specs() {
				if _, err := fmt.Fprintf(out, "%-24s %s\n  %s\n", spec.Name, spec.Signature, spec.Topic.Hex()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
