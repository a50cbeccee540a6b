package query

import "testing"

func TestOrder_Expr(t *testing.T) {
	if got := Asc("$.rank").Expr(); got != "json_extract(body, '$.rank')" {
		t.Fatalf("Expr = %q", got)
	}
	if got := Desc("rank").Expr(); got != "[rank]" {
		t.Fatalf("Expr = %q", got)
	}
}

func TestOrder_Direction(t *testing.T) {
	if got := Asc("$.rank").Direction(); got != "ASC" {
		t.Fatalf("Direction = %q", got)
	}
	if got := Desc("$.rank").Direction(); got != "DESC" {
		t.Fatalf("Direction = %q", got)
	}
}

func TestOrder_IsZero(t *testing.T) {
	var o Order
	if !o.IsZero() {
		t.Fatalf("zero Order not IsZero")
	}
	if Asc("$.rank").IsZero() {
		t.Fatalf("Asc order reported zero")
	}
}
