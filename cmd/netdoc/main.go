// Package main provides the netdoc command line tool for checking,
// formatting and importing NetDoc documentation files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set at build time)
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "netdoc",
		Short: "Work with NetDoc documentation files",
		Long: `netdoc reads and writes the TeX-like files that document diagram
elements. It checks their syntax, rewrites them in canonical form, prints
their part tree and imports documentation from other formats.`,
		Version:      version,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newCheckCmd(), newFmtCmd(), newTreeCmd(), newImportCmd())
	return rootCmd
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file...]",
		Short: "Parse files and report syntax errors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				if err := checkFile(cmd.OutOrStdout(), path); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}
			return nil
		},
	}
}

func newFmtCmd() *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Print a file in canonical form",
		Long:  "Parse a file and write it back in canonical form, to stdout or in place with -w.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return formatFile(cmd.OutOrStdout(), args[0], write)
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write result to the file instead of stdout")
	return cmd
}

func newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree [file]",
		Short: "Print the part tree of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printTree(cmd.OutOrStdout(), args[0])
		},
	}
}

func newImportCmd() *cobra.Command {
	var (
		into      string
		pdftotext bool
	)
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Convert a foreign document into a NetDoc block",
		Long: `Convert a .txt, .md, .html, .csv, .pdf, .docx or .tex file into a
NetDoc block. The block is printed, or set on the document given with
--into, replacing a block of the same name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return importFile(cmd.OutOrStdout(), args[0], into, pdftotext)
		},
	}
	cmd.Flags().StringVar(&into, "into", "", "NetDoc document to add the block to")
	cmd.Flags().BoolVar(&pdftotext, "pdftotext", true, "fall back to pdftotext for unreadable PDFs")
	return cmd
}
