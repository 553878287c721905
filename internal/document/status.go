package document

// Status of a document in the review pipeline.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusVerified Status = "VERIFIED"
)

// Aggregate status labels derived over an employee's documents. They
// are projections, never stored on any row.
const (
	AggregateNotUploaded      = "NOT_UPLOADED"
	AggregatePending          = "PENDING"
	AggregateApproved         = "APPROVED"
	AggregateRejected         = "REJECTED"
	AggregateAwaitingFinal    = "PENDING_FINAL_VERIFICATION"
	AggregateVerifiedComplete = "VERIFIED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusVerified:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition can leave s.
func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusVerified
}

// isAllowedTransition is the whole state machine. HR moves PENDING to
// APPROVED or REJECTED; final verification moves APPROVED to VERIFIED
// or still rejects it. Everything else, including re-reviewing a
// terminal document, is refused.
func isAllowedTransition(current, target Status) bool {
	switch current {
	case StatusPending:
		return target == StatusApproved || target == StatusRejected
	case StatusApproved:
		return target == StatusVerified || target == StatusRejected
	default:
		return false
	}
}

// HRSummary is the reviewer-facing projection over one employee's
// documents.
type HRSummary struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	// Status collapses the document multiset into one label with
	// precedence REJECTED > PENDING > APPROVED > NOT_UPLOADED.
	Status   string `json:"status"`
	Pending  int    `json:"pending"`
	Approved int    `json:"approved"`
	Rejected int    `json:"rejected"`
	Verified int    `json:"verified"`
	// NeedsReview is true while at least one document awaits an HR
	// decision.
	NeedsReview bool `json:"needs_review"`
}

// FinalSummary is the verifier-facing projection: only approved
// documents are actionable at this stage.
type FinalSummary struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	// Status additionally recognises PENDING_FINAL_VERIFICATION while
	// any document is approved but not yet verified; VERIFIED only when
	// every document is verified.
	Status               string `json:"status"`
	AwaitingVerification int    `json:"awaiting_verification"`
	Verified             int    `json:"verified"`
	// Complete is true once every uploaded document has passed final
	// verification.
	Complete bool `json:"complete"`
}

// HRView and FinalView are pure; they never touch storage and are safe
// to call on any snapshot of an employee's documents.
func HRView(employeeID, fullName string, docs []Document) HRSummary {
	s := HRSummary{EmployeeID: employeeID, FullName: fullName}
	for _, d := range docs {
		switch d.Status {
		case StatusPending:
			s.Pending++
		case StatusApproved:
			s.Approved++
		case StatusRejected:
			s.Rejected++
		case StatusVerified:
			s.Verified++
		}
	}
	s.NeedsReview = s.Pending > 0

	switch {
	case len(docs) == 0:
		s.Status = AggregateNotUploaded
	case s.Rejected > 0:
		s.Status = AggregateRejected
	case s.Pending > 0:
		s.Status = AggregatePending
	default:
		s.Status = AggregateApproved
	}
	return s
}

func FinalView(employeeID, fullName string, docs []Document) FinalSummary {
	s := FinalSummary{EmployeeID: employeeID, FullName: fullName}
	rejected := 0
	for _, d := range docs {
		switch d.Status {
		case StatusApproved:
			s.AwaitingVerification++
		case StatusVerified:
			s.Verified++
		case StatusRejected:
			rejected++
		}
	}
	s.Complete = len(docs) > 0 && s.Verified == len(docs)

	switch {
	case len(docs) == 0:
		s.Status = AggregateNotUploaded
	case s.Complete:
		s.Status = AggregateVerifiedComplete
	case s.AwaitingVerification > 0:
		s.Status = AggregateAwaitingFinal
	case rejected > 0:
		s.Status = AggregateRejected
	default:
		s.Status = AggregatePending
	}
	return s
}
