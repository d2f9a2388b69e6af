package testutil

import "testing"

func TestPtr(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		p := Ptr("max")
		if p == nil || *p != "max" {
			t.Fatalf("expected pointer to %q, got %v", "max", p)
		}
	})

	t.Run("int", func(t *testing.T) {
		p := Ptr(3400)
		if p == nil || *p != 3400 {
			t.Fatalf("expected pointer to %d, got %v", 3400, p)
		}
	})

	t.Run("distinct pointers", func(t *testing.T) {
		a, b := Ptr(1), Ptr(1)
		if a == b {
			t.Fatal("expected distinct pointers for separate calls")
		}
	})
}
