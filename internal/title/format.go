package title

import (
	"fmt"
	"strings"

	"github.com/clingen-dx/vartitle/internal/car"
	"github.com/clingen-dx/vartitle/internal/vep"
)

// Format renders a preferred title from its components, e.g.
// "NM_015506.3(MMACHC):c.436_450del (p.Ser146_Ile150del)".
//
// The nucleotide change is the minimum viable component: without it (or
// without a transcript id) there is no title and the second return is
// false. Missing gene or protein data degrades the layout instead:
//
//	NM_002496.4:c.64C>T                       no gene symbol
//	NM_002496.4(NDUFS8):c.64C>T               no amino acid change
//	NM_002496.4(NDUFS8):c.64C>T (p.Arg22Trp)  everything known
func Format(transcriptID, nucleotideChange, geneName, aminoAcidChange string) (string, bool) {
	if transcriptID == "" || nucleotideChange == "" {
		return "", false
	}
	if geneName == "" {
		return fmt.Sprintf("%s:%s", transcriptID, nucleotideChange), true
	}
	if aminoAcidChange == "" {
		return fmt.Sprintf("%s(%s):%s", transcriptID, geneName, nucleotideChange), true
	}
	return fmt.Sprintf("%s(%s):%s (%s)", transcriptID, geneName, nucleotideChange, aminoAcidChange), true
}

// FormatFromTranscript renders a preferred title for transcriptID using a
// VEP transcript consequence and, when available, the allele registry
// record. Registry data wins over the VEP transcript because the registry
// has more reliable protein-effect annotation, but it is not always
// present and may lack individual fields; whatever it cannot supply falls
// back to the transcript's own hgvsc/hgvsp/gene_symbol.
func FormatFromTranscript(transcriptID string, t *vep.TranscriptConsequence, geneSymbol string, registry *car.Allele) (string, bool) {
	var nucleotideChange, aminoAcidChange string

	if registry != nil {
		for _, allele := range registry.TranscriptAlleles {
			if len(allele.HGVS) == 0 {
				continue
			}
			hgvs := allele.HGVS[0]
			tokens := strings.Split(hgvs, ":")
			// Need an accession token and a change token.
			if len(tokens) < 2 {
				continue
			}
			if tokens[0] != transcriptID {
				continue
			}

			if nucleotideChange == "" {
				nucleotideChange = tokens[1]
			}
			if geneSymbol == "" {
				geneSymbol = allele.GeneSymbol
			}

			if allele.ProteinEffect != nil && allele.ProteinEffect.HGVS != "" {
				proteinTokens := strings.Split(allele.ProteinEffect.HGVS, ":")
				if len(proteinTokens) < 2 {
					// Another matching registry transcript may still
					// carry a usable protein effect.
					continue
				}
				aminoAcidChange = proteinTokens[1]
				break
			}
		}
	}

	if geneSymbol == "" {
		geneSymbol = t.GeneSymbol
	}
	if nucleotideChange == "" {
		if tokens := strings.Split(t.HGVSc, ":"); t.HGVSc != "" && len(tokens) > 1 {
			nucleotideChange = tokens[1]
		}
	}
	if aminoAcidChange == "" {
		if tokens := strings.Split(t.HGVSp, ":"); t.HGVSp != "" && len(tokens) > 1 {
			aminoAcidChange = tokens[1]
		}
	}

	if nucleotideChange == "" {
		return "", false
	}

	return Format(transcriptID, nucleotideChange, geneSymbol, aminoAcidChange)
}
