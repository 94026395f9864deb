package domain

import "testing"

func TestCanTransitionJob(t *testing.T) {
	if !CanTransitionJob(JobOpen, JobAssigned) {
		t.Fatal("expected open -> assigned to be allowed")
	}
	if CanTransitionJob(JobOpen, JobCompleted) {
		t.Fatal("unexpected transition allowed")
	}
	if CanTransitionJob(JobOpen, JobAwaitingApproval) {
		t.Fatal("unexpected open -> awaiting-approval allowed")
	}
	if !CanTransitionJob(JobAssigned, JobAwaitingApproval) {
		t.Fatal("expected assigned -> awaiting-approval to be allowed")
	}
	if !CanTransitionJob(JobAwaitingApproval, JobCompleted) {
		t.Fatal("expected awaiting-approval -> completed to be allowed")
	}
	if !CanTransitionJob(JobAssigned, JobDisputed) {
		t.Fatal("expected assigned -> disputed to be allowed")
	}
	if !CanTransitionJob(JobAwaitingApproval, JobDisputed) {
		t.Fatal("expected awaiting-approval -> disputed to be allowed")
	}
	if CanTransitionJob(JobCompleted, JobOpen) {
		t.Fatal("completed must be terminal")
	}
	if CanTransitionJob(JobDisputed, JobCompleted) {
		t.Fatal("disputed must be terminal")
	}
	if !CanTransitionJob(JobAssigned, JobAssigned) {
		t.Fatal("same-status move must be allowed")
	}
}

func TestCanTransitionEscrow(t *testing.T) {
	if !CanTransitionEscrow(EscrowUnfunded, EscrowFunded) {
		t.Fatal("expected unfunded -> funded to be allowed")
	}
	if !CanTransitionEscrow(EscrowFunded, EscrowReleased) {
		t.Fatal("expected funded -> released to be allowed")
	}
	if !CanTransitionEscrow(EscrowFunded, EscrowRefunded) {
		t.Fatal("expected funded -> refunded to be allowed")
	}
	if CanTransitionEscrow(EscrowUnfunded, EscrowReleased) {
		t.Fatal("release without funding must not be allowed")
	}
	if CanTransitionEscrow(EscrowReleased, EscrowFunded) {
		t.Fatal("released must be terminal")
	}
	if CanTransitionEscrow(EscrowRefunded, EscrowFunded) {
		t.Fatal("refunded must be terminal")
	}
}
