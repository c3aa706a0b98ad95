package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Tahvohck/Planetbase-BuildingAligner/internal/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "aligner",
		Short: "Snap new structures onto radial grids around existing ones",
	}

	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(gridCmd())
	rootCmd.AddCommand(resolveCmd())
	rootCmd.AddCommand(previewCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate a project's config and scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(os.Stdout, args[0])
		},
	}
}

func gridCmd() *cobra.Command {
	var structureID string

	cmd := &cobra.Command{
		Use:   "grid [project-path]",
		Short: "Print the candidate grid of one or every structure as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runGrid(os.Stdout, args[0], structureID)
		},
	}

	cmd.Flags().StringVarP(&structureID, "structure", "s", "", "structure ID (default: all)")
	return cmd
}

func resolveCmd() *cobra.Command {
	var opts resolveOptions

	cmd := &cobra.Command{
		Use:   "resolve [project-path]",
		Short: "Snap a cursor position and print the result with its draw list",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runResolve(os.Stdout, args[0], opts)
		},
	}

	cmd.Flags().Float64VarP(&opts.X, "x", "x", 0, "cursor X")
	cmd.Flags().Float64VarP(&opts.Z, "z", "z", 0, "cursor Z")
	cmd.Flags().IntVar(&opts.Size, "size", -1, "size index of the structure being placed (default: scene)")
	cmd.Flags().StringVar(&opts.Kind, "kind", "", "kind of the structure being placed (default: scene)")
	return cmd
}

func previewCmd() *cobra.Command {
	var opts previewOptions

	cmd := &cobra.Command{
		Use:   "preview [project-path]",
		Short: "Interactive top-down preview of the overlay in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runPreview(args[0], opts)
		},
	}

	cmd.Flags().Float64VarP(&opts.X, "x", "x", 0, "starting cursor X")
	cmd.Flags().Float64VarP(&opts.Z, "z", "z", 0, "starting cursor Z")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 1, "world units per terminal column")
	return cmd
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve [project-path]",
		Short: "Start the host bridge server",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			srv, err := server.New(args[0], port)
			if err != nil {
				return err
			}
			return srv.Start()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	return cmd
}
