package trials

// Params is the Filter Parameter Set sent to the trials endpoint: a mapping
// from a fixed set of field names to scalar or null values. The set of keys
// is complete after every merge; values absent from a candidate keep their
// prior value.
type Params map[string]any

// paramKeys is the declared field set. Merge only retains these keys, which
// keeps the persistent set closed over the schema regardless of what the
// oracle emits.
var paramKeys = []string{
	"search_query",
	"size",
	"from",
	"paged_request",
	"age_from",
	"age_to",
	"gender",
	"race",
	"ethnicity",
	"intervention_type",
	"study",
	"location",
	"study_posted_from_year",
	"study_posted_to_year",
	"allocation",
	"sponsor_type",
	"sponsor",
	"show_only_results",
	"searched_for_condition_intervention",
	"intervention",
	"weight_scheme",
	"exclusion_crit_text",
	"phase",
	"status_of_study",
}

// DefaultParams returns a fresh Filter Parameter Set with every declared
// field present at its default value.
func DefaultParams() Params {
	return Params{
		"search_query":                        nil,
		"size":                                10,
		"from":                                0,
		"paged_request":                       true,
		"age_from":                            "0",
		"age_to":                              "100",
		"gender":                              nil,
		"race":                                nil,
		"ethnicity":                           nil,
		"intervention_type":                   nil,
		"study":                               nil,
		"location":                            nil,
		"study_posted_from_year":              nil,
		"study_posted_to_year":                nil,
		"allocation":                          nil,
		"sponsor_type":                        nil,
		"sponsor":                             nil,
		"show_only_results":                   true,
		"searched_for_condition_intervention": nil,
		"intervention":                        nil,
		"weight_scheme":                       "reference_citations",
		"exclusion_crit_text":                 nil,
		"phase":                               nil,
		"status_of_study":                     nil,
	}
}

// Merge overwrites p key-wise with the values present in candidate. Keys
// absent from candidate retain their prior values, and so do keys the
// candidate carries as null: the oracle emits the full field list with null
// for anything the conversation has not mentioned, which must not wipe
// filters accumulated on earlier turns. Keys outside the declared field set
// are ignored so the merged set stays closed.
func (p Params) Merge(candidate Params) {
	for _, key := range paramKeys {
		if v, ok := candidate[key]; ok && v != nil {
			p[key] = v
		}
	}
}

// Clone returns a shallow copy of p. Values are scalars, so a shallow copy
// is a full copy.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Offset returns the current "from" value. JSON decoding yields float64 for
// numbers, so both int and float64 representations are accepted.
func (p Params) Offset() int {
	switch v := p["from"].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

// AdvanceOffset increments "from" by step.
func (p Params) AdvanceOffset(step int) {
	p["from"] = p.Offset() + step
}
