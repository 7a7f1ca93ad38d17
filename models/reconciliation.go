package models

// ReconciliationOp names the mutation attempted for one record during a bulk
// availability edit.
type ReconciliationOp string

const (
	ReconcileCreate ReconciliationOp = "create"
	ReconcileUpdate ReconciliationOp = "update"
	ReconcileDelete ReconciliationOp = "delete"
)

// ReconciliationFailure records one post-validation persistence failure.
// Failures are per record; records already applied are not rolled back.
type ReconciliationFailure struct {
	TemplateID string           `json:"templateId"`
	Op         ReconciliationOp `json:"op"`
	Reason     string           `json:"reason"`
}

// ReconciliationReport is the outcome of one bulk availability submission:
// which template ids were created, updated, and deleted, and which records
// failed after validation passed.
type ReconciliationReport struct {
	DoctorID string                  `json:"doctorId"`
	Created  []string                `json:"created"`
	Updated  []string                `json:"updated"`
	Deleted  []string                `json:"deleted"`
	Failures []ReconciliationFailure `json:"failures,omitempty"`
}

// Clean reports whether every scheduled mutation was applied.
func (r *ReconciliationReport) Clean() bool {
	return len(r.Failures) == 0
}
