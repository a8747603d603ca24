package common

// Well-known section titles on French Wikipedia pages. The splitter emits
// them verbatim; resolution configurations reference them as candidates for
// the section similarity search.
const (
	InfoboxSectionTitle   = "Données clés"
	OrphanSectionTitle    = ""
	TechnicalSheetSection = "Fiche technique"
	SynopsisSection       = "Synopsis"
	SummarySection        = "Résumé"
	DistributionSection   = "Distribution"
	BiographySection      = "Biographie"
	InfluencesSection     = "Influences"
	AnalysisSection       = "Analyse"
	ContextSection        = "Contexte"
)

// Entity type discriminators carried through queue messages and stored
// records.
const (
	EntityTypeMovie  = "movie"
	EntityTypePerson = "person"
)

// BaseInfo is the root identity of a page being processed: the canonical
// uid, the human title, the permalink and the external page id the uid was
// derived from.
//
// It is assembled once per page, before any extraction runs, and threaded
// through extractors and the composer so every produced component can be
// tied back to its parent entity.
type BaseInfo struct {
	UID        string `json:"uid"`
	Title      string `json:"title"`
	Permalink  string `json:"permalink"`
	SourceID   string `json:"source_id,omitempty"`
	EntityType string `json:"entity_type,omitempty"`
}

// Media is a single media reference found in a section: an image, video or
// audio file.
type Media struct {
	UID       string `json:"uid,omitempty"`
	Src       string `json:"src"`
	MediaType string `json:"media_type"`
}

// Section is one titled slice of a page. Sections may nest (a "Biographie"
// section with "Jeunesse" and "Carrière" children) and carry the media
// references found inside their markup.
type Section struct {
	Title    string     `json:"title"`
	Content  string     `json:"content,omitempty"`
	Children []*Section `json:"children,omitempty"`
	Media    []Media    `json:"media,omitempty"`
}
