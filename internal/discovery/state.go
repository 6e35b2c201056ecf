package discovery

// AnchorState is one anchor's position in its per-anchor discovery state
// machine (§4.4.5): Unsought → Scanning → Candidate → Validated, with a
// Candidate → Scanning retry loop on rejection and a terminal Failed state
// reached only once the search space is exhausted.
type AnchorState int

const (
	StateUnsought AnchorState = iota
	StateScanning
	StateCandidate
	StateValidated
	StateFailed
)

func (s AnchorState) String() string {
	switch s {
	case StateUnsought:
		return "Unsought"
	case StateScanning:
		return "Scanning"
	case StateCandidate:
		return "Candidate"
	case StateValidated:
		return "Validated"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// anchorMachine tracks one anchor's resolution through the fixed state
// sequence and the candidates it has tried and rejected along the way,
// used for ranked reporting to the interactive fallback.
type anchorMachine struct {
	name       string
	state      AnchorState
	candidates []Candidate
	validated  uintptr
}

func newAnchorMachine(name string) *anchorMachine {
	return &anchorMachine{name: name, state: StateUnsought}
}

// begin transitions Unsought → Scanning.
func (m *anchorMachine) begin() {
	m.state = StateScanning
}

// propose transitions Scanning/Candidate → Candidate on a structural hit.
func (m *anchorMachine) propose(c Candidate) {
	m.candidates = append(m.candidates, c)
	m.state = StateCandidate
}

// reject transitions Candidate → Scanning, resuming the search for another
// hit.
func (m *anchorMachine) reject() {
	if m.state == StateCandidate {
		m.state = StateScanning
	}
}

// promote transitions Candidate → Validated, terminal within this pass.
func (m *anchorMachine) promote(address uintptr) {
	m.validated = address
	m.state = StateValidated
}

// exhaust transitions any non-terminal state → Failed.
func (m *anchorMachine) exhaust() {
	if m.state != StateValidated {
		m.state = StateFailed
	}
}

// ranked returns this anchor's candidates sorted by descending score,
// truncated to at most n entries, for the interactive fallback's top-N
// presentation.
func (m *anchorMachine) ranked(n int) []Candidate {
	sorted := make([]Candidate, len(m.candidates))
	copy(sorted, m.candidates)

	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Score > sorted[j-1].Score; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
