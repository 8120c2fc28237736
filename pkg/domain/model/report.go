package model

// Report is a rendered, read-only view of one case study
type Report struct {
	Title     string        `json:"title"`
	ChildName string        `json:"childName"`
	Header    *ReportHeader `json:"header,omitempty"`
	Blocks    []ReportBlock `json:"blocks"`
	Footer    *ReportFooter `json:"footer,omitempty"`
}

type ReportHeader struct {
	OrganizationName string `json:"organizationName,omitempty"`
	Logo             string `json:"logo,omitempty"`
}

type ReportFooter struct {
	Address     string `json:"address,omitempty"`
	ContactInfo string `json:"contactInfo,omitempty"`
}

// ReportBlock is one titled section of the report. A block carries either
// fields or a table.
type ReportBlock struct {
	Title  string        `json:"title"`
	Fields []ReportField `json:"fields,omitempty"`
	Table  *ReportTable  `json:"table,omitempty"`
}

// ReportField is a labelled value. Long fields span the full width; list
// fields carry their items in Items.
type ReportField struct {
	Label string   `json:"label"`
	Value string   `json:"value"`
	Long  bool     `json:"long,omitempty"`
	Items []string `json:"items,omitempty"`
}

type ReportTable struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Locale holds the tokens used when rendering reports
type Locale struct {
	ReportTitle  string `toml:"report_title" json:"reportTitle"`
	UnnamedChild string `toml:"unnamed_child" json:"unnamedChild"`
	Yes          string `toml:"yes" json:"yes"`
	No           string `toml:"no" json:"no"`
	NotSpecified string `toml:"not_specified" json:"notSpecified"`
	None         string `toml:"none" json:"none"`
	EmptyCell    string `toml:"empty_cell" json:"emptyCell"`
}

// DefaultLocale returns the Arabic tokens of the original forms
func DefaultLocale() Locale {
	return Locale{
		ReportTitle:  "تقرير دراسة حالة",
		UnnamedChild: "طالب جديد",
		Yes:          "نعم",
		No:           "لا",
		NotSpecified: "غير محدد",
		None:         "لا يوجد",
		EmptyCell:    "-",
	}
}

// WithDefaults fills empty tokens from DefaultLocale
func (l Locale) WithDefaults() Locale {
	def := DefaultLocale()
	fill := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}
	fill(&l.ReportTitle, def.ReportTitle)
	fill(&l.UnnamedChild, def.UnnamedChild)
	fill(&l.Yes, def.Yes)
	fill(&l.No, def.No)
	fill(&l.NotSpecified, def.NotSpecified)
	fill(&l.None, def.None)
	fill(&l.EmptyCell, def.EmptyCell)
	return l
}
