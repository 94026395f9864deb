package domain

// Status constants used by the job state machine.
const (
	JobOpen             = "open"
	JobAssigned         = "assigned"
	JobAwaitingApproval = "awaiting-approval"
	JobCompleted        = "completed"
	JobDisputed         = "disputed"
)

// Escrow statuses.
const (
	EscrowUnfunded = "unfunded"
	EscrowFunded   = "funded"
	EscrowReleased = "released"
	EscrowRefunded = "refunded"
)

// Application statuses.
const (
	ApplicationPending  = "pending"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

var jobTransitions = map[string]map[string]struct{}{
	JobOpen: {JobAssigned: {}},
	JobAssigned: {
		JobAwaitingApproval: {},
		JobDisputed:         {},
	},
	JobAwaitingApproval: {
		JobCompleted: {},
		JobDisputed:  {},
	},
	JobCompleted: {},
	JobDisputed:  {},
}

var escrowTransitions = map[string]map[string]struct{}{
	EscrowUnfunded: {EscrowFunded: {}},
	EscrowFunded: {
		EscrowReleased: {},
		EscrowRefunded: {},
	},
	EscrowReleased: {},
	EscrowRefunded: {},
}

// CanTransitionJob returns whether a job can move from the current status to
// the target status. Same-status moves are allowed (idempotent re-submits).
func CanTransitionJob(from, to string) bool {
	if from == to {
		return true
	}
	allowed, ok := jobTransitions[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

// CanTransitionEscrow returns whether an escrow can move from the current
// status to the target status.
func CanTransitionEscrow(from, to string) bool {
	if from == to {
		return true
	}
	allowed, ok := escrowTransitions[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}
