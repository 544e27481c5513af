package sync

import (
	"reflect"
	"testing"
)

func TestErrorSetAddDeduplicatesAndPreservesOrder(t *testing.T) {
	var s ErrorSet
	s = s.Add(ErrNetworkProblem)
	s = s.Add(ErrAuthFailure)
	s = s.Add(ErrNetworkProblem)

	want := []string{"network_problem", "auth_failure"}
	if !reflect.DeepEqual(s.Strings(), want) {
		t.Fatalf("got %v, want %v", s.Strings(), want)
	}
}

func TestErrorSetAddDoesNotMutateReceiver(t *testing.T) {
	base := ErrorSet{ErrSiteUnreachable}
	grown := base.Add(ErrAuthFailure)

	if len(base) != 1 {
		t.Fatalf("receiver mutated: %v", base)
	}
	if len(grown) != 2 {
		t.Fatalf("Add result wrong: %v", grown)
	}
}

func TestErrorSetMerge(t *testing.T) {
	a := ErrorSet{ErrSiteUnreachable, ErrAuthFailure}
	b := ErrorSet{ErrAuthFailure, ErrTransferFailure}

	got := a.Merge(b)
	want := []string{"site_unreachable", "auth_failure", "transfer_failure"}
	if !reflect.DeepEqual(got.Strings(), want) {
		t.Fatalf("got %v, want %v", got.Strings(), want)
	}
}

func TestErrorSetHasAndEmpty(t *testing.T) {
	var s ErrorSet
	if !s.Empty() {
		t.Fatal("zero value should be empty")
	}
	s = s.Add(ErrCatalogEngineMissing)
	if s.Empty() || !s.Has(ErrCatalogEngineMissing) {
		t.Fatalf("set broken: %v", s)
	}
	if s.Has(ErrAuthFailure) {
		t.Fatal("Has reported a code that was never added")
	}
}

func TestFilterKnownDropsStrays(t *testing.T) {
	s := ErrorSet{ErrAuthFailure, ErrorCode("made_up_code")}
	got := s.FilterKnown()
	if len(got) != 1 || got[0] != ErrAuthFailure {
		t.Fatalf("got %v", got)
	}
}

func TestFilterKnownCollapsesToTransferFailure(t *testing.T) {
	s := ErrorSet{ErrorCode("made_up_code")}
	got := s.FilterKnown()
	if len(got) != 1 || got[0] != ErrTransferFailure {
		t.Fatalf("non-empty set must not filter to empty, got %v", got)
	}

	if got := (ErrorSet{}).FilterKnown(); !got.Empty() {
		t.Fatalf("empty set must stay empty, got %v", got)
	}
}
