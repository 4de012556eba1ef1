// Package variant defines the data model shared by the title resolution
// core and the external service clients.
package variant

// Assembly names used throughout. Only these two genome builds carry
// NC_ genomic HGVS names in ClinVar and CAR responses.
const (
	AssemblyGRCh37 = "GRCh37"
	AssemblyGRCh38 = "GRCh38"
)

// Variation types as reported by ClinVar.
const (
	VariationTypeDeletion  = "Deletion"
	VariationTypeIndel     = "Indel"
	VariationTypeInsertion = "Insertion"
)

// HGVSNames maps assembly name to the genomic HGVS string for that build,
// with a catch-all bucket for names not tied to a reference genome.
type HGVSNames struct {
	GRCh37 string   `json:"GRCh37,omitempty"`
	GRCh38 string   `json:"GRCh38,omitempty"`
	Others []string `json:"others,omitempty"`
}

// ForAssembly returns the genomic HGVS name for the given assembly.
// The second return is false when the variant has no name for that build,
// which is an expected, common case.
func (h *HGVSNames) ForAssembly(assembly string) (string, bool) {
	if h == nil {
		return "", false
	}
	switch assembly {
	case AssemblyGRCh37:
		return h.GRCh37, h.GRCh37 != ""
	case AssemblyGRCh38:
		return h.GRCh38, h.GRCh38 != ""
	}
	return "", false
}

// Variant is the semantic variant record assembled from ClinVar or CAR.
// All fields are optional; the title core treats the record as immutable.
type Variant struct {
	ClinVarVariantID    string     `json:"clinvarVariantId,omitempty"`
	ClinVarVariantTitle string     `json:"clinvarVariantTitle,omitempty"`
	CARID               string     `json:"carId,omitempty"`
	DBSNPIDs            []string   `json:"dbSNPIds,omitempty"`
	HGVSNames           *HGVSNames `json:"hgvsNames,omitempty"`
	VariationType       string     `json:"variationType,omitempty"`
	OtherNameList       []string   `json:"otherNameList,omitempty"`
	OtherDescription    string     `json:"otherDescription,omitempty"`
	PreferredTitle      string     `json:"preferredTitle,omitempty"`
}

// NucleotideChange is one entry of a ClinVar RefSeq nucleotide or protein
// change list, e.g. HGVS "NM_015506.3:c.436_450del" with AccessionVersion
// "NM_015506.3" and Change "c.436_450del".
type NucleotideChange struct {
	HGVS             string `json:"HGVS"`
	Change           string `json:"Change"`
	AccessionVersion string `json:"AccessionVersion"`
}

// MolecularConsequence links a nucleotide HGVS to its Sequence Ontology id.
type MolecularConsequence struct {
	HGVS     string `json:"HGVS"`
	SOID     string `json:"SOid"`
	Function string `json:"Function"`
}

// RefSeqTranscripts groups the per-transcript change lists reported by
// ClinVar for a variation. List order is authoritative: first match wins
// when cross-referencing.
type RefSeqTranscripts struct {
	MolecularConsequenceList []MolecularConsequence `json:"MolecularConsequenceList"`
	NucleotideChangeList     []NucleotideChange     `json:"NucleotideChangeList"`
	ProteinChangeList        []NucleotideChange     `json:"ProteinChangeList"`
}

// Gene is the (single) gene ClinVar associates with a variation.
type Gene struct {
	ID       string `json:"id,omitempty"`
	Symbol   string `json:"symbol,omitempty"`
	FullName string `json:"full_name,omitempty"`
	HGNCID   string `json:"hgnc_id,omitempty"`
}

// SequenceLocation carries the per-assembly placement attributes from a
// ClinVar SimpleAllele Location element.
type SequenceLocation struct {
	Assembly                 string `json:"Assembly,omitempty"`
	AssemblyAccessionVersion string `json:"AssemblyAccessionVersion,omitempty"`
	AssemblyStatus           string `json:"AssemblyStatus,omitempty"`
	Chr                      string `json:"Chr,omitempty"`
	Accession                string `json:"Accession,omitempty"`
	Start                    string `json:"start,omitempty"`
	Stop                     string `json:"stop,omitempty"`
	ReferenceAllele          string `json:"referenceAllele,omitempty"`
	AlternateAllele          string `json:"alternateAllele,omitempty"`
}

// Allele holds allele-level attributes from the extended ClinVar parse.
type Allele struct {
	SequenceLocation []SequenceLocation `json:"SequenceLocation,omitempty"`
	ProteinChange    string             `json:"ProteinChange,omitempty"`
}

// ClinVarExtension is the auxiliary object produced by the extended
// ClinVar VCV parse. RefSeqTranscripts is required by consumers; a nil
// value is an upstream-contract violation, not missing data.
type ClinVarExtension struct {
	RefSeqTranscripts    *RefSeqTranscripts `json:"RefSeqTranscripts"`
	Gene                 Gene               `json:"gene"`
	Allele               Allele             `json:"allele"`
	ClinVarVariationType string             `json:"clinvarVariationType,omitempty"`
}

// PrimaryTranscript is the display record recovered by cross-referencing
// a ClinVar nucleotide change against RefSeq transcripts. Unresolvable
// fields hold the "--" placeholder rather than empty strings.
type PrimaryTranscript struct {
	Nucleotide       string `json:"nucleotide,omitempty"`
	HGVSc            string `json:"hgvsc,omitempty"`
	Exon             string `json:"exon"`
	Protein          string `json:"protein"`
	HGVSp            string `json:"hgvsp"`
	Molecular        string `json:"molecular"`
	ConsequenceTerms string `json:"consequence_terms"`
}
