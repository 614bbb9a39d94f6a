package browsertest

import (
	"context"
	"testing"
)

func TestSetVisitsStoresChronologically(t *testing.T) {
	f := New("root________")
	f.SetVisits("https://a.example.com", 100, 300, 200)

	visits, err := f.Visits(context.Background(), "https://a.example.com")
	if err != nil {
		t.Fatalf("Visits() error = %v", err)
	}
	want := []int64{100, 200, 300}
	for i, w := range want {
		if visits[i].VisitTime != w {
			t.Fatalf("visits = %v, want ascending %v", visits, want)
		}
	}

	f.ReverseVisits = true
	visits, err = f.Visits(context.Background(), "https://a.example.com")
	if err != nil {
		t.Fatalf("Visits() error = %v", err)
	}
	for i, w := range []int64{300, 200, 100} {
		if visits[i].VisitTime != w {
			t.Fatalf("reversed visits = %v, want descending", visits)
		}
	}
}
