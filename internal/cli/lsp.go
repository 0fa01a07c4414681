package cli

import (
	"bennypowers.dev/cpsort/internal/log"
	"bennypowers.dev/cpsort/lsp"
	"github.com/spf13/cobra"
)

func newLSPCommand() *cobra.Command {
	var logLevel string
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Run the language server over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if logLevel != "" {
				level, err := log.ParseLevel(logLevel)
				if err != nil {
					return err
				}
				log.SetLevel(level)
			}

			server, err := lsp.NewServer()
			if err != nil {
				return err
			}
			defer func() { _ = server.Close() }()
			return server.RunStdio()
		},
	}
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	// accepted for editors that pass it by default
	cmd.Flags().Bool("stdio", true, "use stdio transport")
	return cmd
}
