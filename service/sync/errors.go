package sync

// ErrorCode is one of the fixed, user-facing connectivity/transfer codes.
// The caller localizes; the engine never formats prose beyond these.
type ErrorCode string

const (
	ErrSiteUnreachable      ErrorCode = "site_unreachable"
	ErrNetworkProblem       ErrorCode = "network_problem"
	ErrAuthFailure          ErrorCode = "auth_failure"
	ErrCatalogEngineMissing ErrorCode = "catalog_engine_missing"
	ErrTransferFailure      ErrorCode = "transfer_failure"
	ErrSecurityRestriction  ErrorCode = "security_restriction"
)

var knownCodes = map[ErrorCode]bool{
	ErrSiteUnreachable:      true,
	ErrNetworkProblem:       true,
	ErrAuthFailure:          true,
	ErrCatalogEngineMissing: true,
	ErrTransferFailure:      true,
	ErrSecurityRestriction:  true,
}

// ErrorSet is an insertion-ordered, de-duplicated collection of codes.
// The zero value is an empty set; Add and Merge return a new set.
type ErrorSet []ErrorCode

func (s ErrorSet) Empty() bool {
	return len(s) == 0
}

func (s ErrorSet) Has(code ErrorCode) bool {
	for _, c := range s {
		if c == code {
			return true
		}
	}
	return false
}

func (s ErrorSet) Add(code ErrorCode) ErrorSet {
	if s.Has(code) {
		return s
	}
	out := make(ErrorSet, len(s), len(s)+1)
	copy(out, s)
	return append(out, code)
}

func (s ErrorSet) Merge(other ErrorSet) ErrorSet {
	out := s
	for _, c := range other {
		out = out.Add(c)
	}
	return out
}

func (s ErrorSet) Strings() []string {
	out := make([]string, len(s))
	for i, c := range s {
		out[i] = string(c)
	}
	return out
}

// FilterKnown intersects the set with the fixed taxonomy. A non-empty set
// that filtering empties collapses to transfer_failure so the caller never
// sees success where something went wrong.
func (s ErrorSet) FilterKnown() ErrorSet {
	var out ErrorSet
	for _, c := range s {
		if knownCodes[c] {
			out = out.Add(c)
		}
	}
	if len(s) > 0 && out.Empty() {
		out = ErrorSet{ErrTransferFailure}
	}
	return out
}
