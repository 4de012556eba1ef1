package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clingen-dx/vartitle/internal/resolve"
	"github.com/clingen-dx/vartitle/internal/store"
)

func newResolveCmd() *cobra.Command {
	var (
		batchPath string
		workers   int
		useCache  bool
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "resolve [id...]",
		Short: "Fetch variants and resolve their preferred titles",
		Long: `Fetch each variant from ClinVar (numeric variation id) or the ClinGen
Allele Registry (CA id), gather its transcript consequences from Ensembl
VEP, and print the preferred title.`,
		Example: `  vartitle resolve 550731
  vartitle resolve CA501058 CA913175340
  vartitle resolve --batch ids.txt --workers 8 --cache`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := args
			if batchPath != "" {
				fromFile, err := readIDFile(batchPath)
				if err != nil {
					return err
				}
				ids = append(ids, fromFile...)
			}
			if len(ids) == 0 {
				return fmt.Errorf("no ids given; pass ids as arguments or use --batch")
			}

			e, err := endpoints()
			if err != nil {
				return err
			}
			resolver, err := resolve.New(e)
			if err != nil {
				return err
			}
			resolver.SetLogger(logger)

			var cache *store.Store
			if useCache {
				cache, err = store.Open(cachePath())
				if err != nil {
					return err
				}
				defer cache.Close()
			}

			items := make(chan resolve.WorkItem, len(ids))
			for i, id := range ids {
				items <- resolve.WorkItem{Seq: i, ID: id}
			}
			close(items)

			results := resolver.ResolveAll(cmd.Context(), items, workers)
			out := bufio.NewWriter(os.Stdout)
			defer out.Flush()

			failures := 0
			err = resolve.OrderedCollect(results, func(r resolve.WorkResult) error {
				switch {
				case r.Err != nil:
					failures++
					logger.Warn("failed to resolve variant",
						zap.String("id", r.ID), zap.Error(r.Err))
					fmt.Fprintf(out, "%s\tERROR: %v\n", r.ID, r.Err)
				case r.Variant == nil:
					fmt.Fprintf(out, "%s\tNOT FOUND\n", r.ID)
				case asJSON:
					encoded, err := json.Marshal(r.Variant)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "%s\n", encoded)
				default:
					fmt.Fprintf(out, "%s\t%s\n", r.ID, r.Variant.PreferredTitle)
				}

				if cache != nil && r.Err == nil && r.Variant != nil {
					return cache.Put(store.NewRecord(recordKey(r.ID), r.Variant))
				}
				return nil
			})
			if err != nil {
				return err
			}

			if failures > 0 {
				return fmt.Errorf("%d of %d variants failed to resolve", failures, len(ids))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&batchPath, "batch", "", "File with one variant id per line")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of concurrent resolutions (default: number of CPUs)")
	cmd.Flags().BoolVar(&useCache, "cache", false, "Record results in the local cache")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print full variant records as JSON lines")

	return cmd
}

func recordKey(id string) string {
	if strings.HasPrefix(id, "CA") {
		return "car:" + id
	}
	return "clinvar:" + id
}

func readIDFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open id file: %w", err)
	}
	defer f.Close()

	var ids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read id file: %w", err)
	}
	return ids, nil
}
