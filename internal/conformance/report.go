package conformance

// Versions of the schema set and ruleset the structural rules follow
const (
	SchemaVersion  = "0.9.0"
	RulesetVersion = "1.0.1"
)

// SchemaResources names the XSD files of the tax data schema set
var SchemaResources = []string{
	"cbc-min.xsd",
	"cac-min.xsd",
	"pxs-taxdata.xsd",
}

// Assertion is one failed rule
type Assertion struct {
	// Rule identifier, e.g. TDD-04
	ID string `json:"id"`

	// Path of the offending element
	Location string `json:"location"`

	Text string `json:"text"`
}

// Report contains the outcome of a conformance run
type Report struct {
	SchemaVersion  string      `json:"schema_version"`
	RulesetVersion string      `json:"ruleset_version"`
	Passed         []string    `json:"passed"`
	Failed         []Assertion `json:"failed"`
}

// NewReport creates an empty report stamped with the resource versions
func NewReport() *Report {
	return &Report{
		SchemaVersion:  SchemaVersion,
		RulesetVersion: RulesetVersion,
		Passed:         make([]string, 0),
		Failed:         make([]Assertion, 0),
	}
}

// OK reports whether no rule failed
func (r *Report) OK() bool {
	return len(r.Failed) == 0
}

// FailedIDs returns the distinct ids of the failed rules in report order
func (r *Report) FailedIDs() []string {
	seen := make(map[string]bool)
	ids := make([]string, 0, len(r.Failed))
	for _, a := range r.Failed {
		if !seen[a.ID] {
			seen[a.ID] = true
			ids = append(ids, a.ID)
		}
	}
	return ids
}

func (r *Report) addFailure(id, location, text string) {
	r.Failed = append(r.Failed, Assertion{ID: id, Location: location, Text: text})
}

func (r *Report) addPass(id string) {
	r.Passed = append(r.Passed, id)
}
