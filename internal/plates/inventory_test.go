package plates

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

// TestPerSideHalvesCounts verifies pairs are split across the two sides and
// an odd plate is dropped.
func TestPerSideHalvesCounts(t *testing.T) {
	inv := Inventory{MustKg(20): 4, MustKg(10): 3, MustKg(0.25): 1}
	got := inv.PerSide()
	want := kgs(20, 20, 10)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PerSide() = %v, want %v", got, want)
	}
}

// TestPerSideOrder verifies the flat list runs heaviest class first.
func TestPerSideOrder(t *testing.T) {
	got := defaultInventory().PerSide()
	want := kgs(20, 20, 20, 10, 5, 5, 2.5, 2.5, 1.25, 1.25, 0.5, 0.25)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PerSide() = %v, want %v", got, want)
	}
}

// TestParseInventory verifies kilogram labels map onto catalog classes.
func TestParseInventory(t *testing.T) {
	inv, err := ParseInventory(map[string]int{"20": 6, "2.5": 4, "0.25": 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv[MustKg(20)] != 6 || inv[MustKg(2.5)] != 4 || inv[MustKg(0.25)] != 2 {
		t.Errorf("inventory = %v", inv.Labels())
	}
}

// TestParseInventoryRejects verifies unknown classes and negative counts fail.
func TestParseInventoryRejects(t *testing.T) {
	if _, err := ParseInventory(map[string]int{"7": 2}); !errors.Is(err, ErrUnknownClass) {
		t.Errorf("unknown class err = %v, want ErrUnknownClass", err)
	}
	if _, err := ParseInventory(map[string]int{"heavy": 2}); !errors.Is(err, ErrUnknownClass) {
		t.Errorf("bad label err = %v, want ErrUnknownClass", err)
	}
	if _, err := ParseInventory(map[string]int{"20": -2}); !errors.Is(err, ErrNegativeCount) {
		t.Errorf("negative count err = %v, want ErrNegativeCount", err)
	}
	if _, err := ParseInventory(map[string]int{"0.25": 1 << 40}); !errors.Is(err, ErrCountTooLarge) {
		t.Errorf("huge count err = %v, want ErrCountTooLarge", err)
	}
	if _, err := ParseInventory(map[string]int{"0.25": MaxCount}); err != nil {
		t.Errorf("count at MaxCount: unexpected error: %v", err)
	}
}

// TestInventoryJSON verifies the API shape uses kilogram labels.
func TestInventoryJSON(t *testing.T) {
	var inv Inventory
	if err := json.Unmarshal([]byte(`{"20": 6, "1.25": 4}`), &inv); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if inv[MustKg(20)] != 6 || inv[MustKg(1.25)] != 4 {
		t.Errorf("inventory = %v", inv.Labels())
	}
	data, err := json.Marshal(inv)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back map[string]int
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal labels: %v", err)
	}
	if back["20"] != 6 || back["1.25"] != 4 {
		t.Errorf("labels = %v", back)
	}
}

// TestClasses verifies only stocked classes are listed, heaviest first.
func TestClasses(t *testing.T) {
	inv := Inventory{MustKg(5): 2, MustKg(25): 2, MustKg(10): 0}
	want := kgs(25, 5)
	if got := inv.Classes(); !reflect.DeepEqual(got, want) {
		t.Errorf("Classes() = %v, want %v", got, want)
	}
}
