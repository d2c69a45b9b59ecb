package rbac

import "testing"

func TestDefaultPolicy(t *testing.T) {
	c := NewChecker(nil)

	if !c.Has("student", "report:view-own") {
		t.Fatalf("student should view own report")
	}
	if c.Has("student", "report:view-any") {
		t.Fatalf("student must not view other reports")
	}
	if !c.Has("teacher", "report:view-any") {
		t.Fatalf("teacher should view any report")
	}
	if !c.Has("admin", "report:view-any") {
		t.Fatalf("admin wildcard should match")
	}
	if c.Has("", "report:view-own") || c.Has("nobody", "catalog:view") {
		t.Fatalf("unknown roles must have nothing")
	}
	if !c.Any("student", "report:view-any", "report:view-own") {
		t.Fatalf("Any should match the second permission")
	}
}

func TestMatchPerm(t *testing.T) {
	if !matchPerm("report:*", "report:view-own") {
		t.Fatalf("prefix wildcard should match")
	}
	if matchPerm("report:*", "catalog:view") {
		t.Fatalf("prefix wildcard must not cross namespaces")
	}
}
