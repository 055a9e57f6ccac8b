package wizard

import "testing"

func TestStepOrdering(t *testing.T) {
	if next(StepAddItem) != StepPrice {
		t.Fatal("expected add_item -> price")
	}
	if next(StepPhotos) != StepPack {
		t.Fatal("expected photos -> pack")
	}
	if next(StepPack) != StepPack {
		t.Fatal("expected pack to be terminal")
	}
}

func TestOnlyPhotosSkippable(t *testing.T) {
	for st := firstStep; st <= lastStep; st++ {
		if skippable(st) != (st == StepPhotos) {
			t.Fatalf("unexpected skippable result for %s", st)
		}
	}
}

func TestStepNames(t *testing.T) {
	want := map[Step]string{
		StepAddItem:  "add_item",
		StepPrice:    "price",
		StepOptimize: "optimize",
		StepPhotos:   "photos",
		StepPack:     "pack",
	}
	for st, name := range want {
		if st.String() != name {
			t.Fatalf("expected %q, got %q", name, st.String())
		}
	}
}
