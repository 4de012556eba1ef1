package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clingen-dx/vartitle/internal/car"
	"github.com/clingen-dx/vartitle/internal/refdata"
	"github.com/clingen-dx/vartitle/internal/title"
	"github.com/clingen-dx/vartitle/internal/variant"
	"github.com/clingen-dx/vartitle/internal/vep"
)

func newTitleCmd() *cobra.Command {
	var (
		variantPath    string
		transcriptPath string
		extensionPath  string
		registryPath   string
		showNotation   string
		showPrimary    bool
	)

	cmd := &cobra.Command{
		Use:   "title",
		Short: "Compute a preferred title from local JSON files",
		Long: `Compute a variant's preferred title offline, from already-fetched
data: the variant record, and optionally the VEP transcript consequence
list, the extended ClinVar parse, and the allele registry record.`,
		Example: `  vartitle title --variant variant.json
  vartitle title --variant variant.json --transcripts vep.json --extension clinvar.json
  vartitle title --variant variant.json --notation GRCh37
  vartitle title --variant variant.json --extension clinvar.json --transcripts vep.json --primary`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var v variant.Variant
			if err := readJSONFile(variantPath, &v); err != nil {
				return err
			}

			if showNotation != "" {
				chroms, err := refdata.Chromosomes()
				if err != nil {
					return err
				}
				notation, ok := title.Notation(&v, chroms, showNotation, true)
				if !ok {
					return fmt.Errorf("no %s hgvs notation computable for variant", showNotation)
				}
				fmt.Println(notation)
				return nil
			}

			var transcripts []*vep.TranscriptConsequence
			if transcriptPath != "" {
				if err := readJSONFile(transcriptPath, &transcripts); err != nil {
					return err
				}
			}

			var ext *variant.ClinVarExtension
			if extensionPath != "" {
				ext = &variant.ClinVarExtension{}
				if err := readJSONFile(extensionPath, ext); err != nil {
					return err
				}
			}

			var registry *car.Allele
			if registryPath != "" {
				registry = &car.Allele{}
				if err := readJSONFile(registryPath, registry); err != nil {
					return err
				}
			}

			if showPrimary {
				soTerms, err := refdata.SOTerms()
				if err != nil {
					return err
				}
				var refseq []*vep.TranscriptConsequence
				for _, t := range transcripts {
					if t.Source == vep.SourceRefSeq {
						refseq = append(refseq, t)
					}
				}
				primary, err := title.PrimaryTranscript(&v, ext, refseq, soTerms)
				if err != nil {
					return err
				}
				encoded, err := json.MarshalIndent(primary, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(encoded))
				return nil
			}

			resolver := title.NewResolver()
			resolver.SetLogger(logger)
			fmt.Println(resolver.PreferredTitle(&v, transcripts, ext, registry))
			return nil
		},
	}

	cmd.Flags().StringVar(&variantPath, "variant", "", "Variant record JSON file (required)")
	cmd.Flags().StringVar(&transcriptPath, "transcripts", "", "VEP transcript_consequences JSON file")
	cmd.Flags().StringVar(&extensionPath, "extension", "", "Extended ClinVar parse JSON file")
	cmd.Flags().StringVar(&registryPath, "registry", "", "Allele registry record JSON file")
	cmd.Flags().StringVar(&showNotation, "notation", "", "Print the chromosome-form HGVS notation for the given assembly instead of a title")
	cmd.Flags().BoolVar(&showPrimary, "primary", false, "Print the primary transcript record instead of a title (requires --extension)")
	_ = cmd.MarkFlagRequired("variant")

	return cmd
}

func readJSONFile(path string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
