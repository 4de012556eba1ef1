package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/clingen-dx/vartitle/internal/store"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the local resolution cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheList()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all cached resolutions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheClear()
		},
	})

	return cmd
}

func runCacheList() error {
	s, err := store.Open(cachePath())
	if err != nil {
		return err
	}
	defer s.Close()

	records, err := s.All()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Printf("cache is empty (%s)\n", cachePath())
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tCLINVAR\tCAR\tPREFERRED TITLE")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Key, r.ClinVarID, r.CARID, r.PreferredTitle)
	}
	return w.Flush()
}

func runCacheClear() error {
	s, err := store.Open(cachePath())
	if err != nil {
		return err
	}
	defer s.Close()

	n, err := s.Count()
	if err != nil {
		return err
	}
	if err := s.Clear(); err != nil {
		return err
	}
	fmt.Printf("cleared %d cached resolutions\n", n)
	return nil
}
