package domain

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestDiff(t *testing.T) {
	fraud := LensFraud
	aml := LensAML
	nodeTab := TabNode

	tests := []struct {
		name     string
		old      *ViewState
		new      *ViewState
		wantDiff *StateDiff
	}{
		{
			name: "Initial Load (Old is Nil)",
			old:  nil,
			new: &ViewState{
				SessionID:  "sess-1",
				ScenarioID: "ring-a",
				Lens:       LensFraud,
			},
			wantDiff: &StateDiff{
				SessionID:  "sess-1",
				ScenarioID: &[]string{"ring-a"}[0],
				Lens:       &fraud,
			},
		},
		{
			name:     "No Changes",
			old:      &ViewState{SessionID: "sess-1", ScenarioID: "ring-a", Lens: LensFraud},
			new:      &ViewState{SessionID: "sess-1", ScenarioID: "ring-a", Lens: LensFraud},
			wantDiff: nil,
		},
		{
			name: "Lens Change",
			old:  &ViewState{SessionID: "sess-1", Lens: LensFraud},
			new:  &ViewState{SessionID: "sess-1", Lens: LensAML},
			wantDiff: &StateDiff{
				SessionID: "sess-1",
				Lens:      &aml,
			},
		},
		{
			name: "Node Click",
			old:  &ViewState{SessionID: "sess-1", ActiveTab: TabSummary},
			new: &ViewState{
				SessionID:      "sess-1",
				ActiveTab:      TabNode,
				SelectedNodeID: "b1",
				NodeText:       "Bank 1 is a payout / bank node",
			},
			wantDiff: &StateDiff{
				SessionID:      "sess-1",
				ActiveTab:      &nodeTab,
				SelectedNodeID: &[]string{"b1"}[0],
				NodeText:       &[]string{"Bank 1 is a payout / bank node"}[0],
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.old, tt.new)
			if !reflect.DeepEqual(got, tt.wantDiff) {
				gotJSON, _ := json.Marshal(got)
				wantJSON, _ := json.Marshal(tt.wantDiff)
				t.Errorf("Diff() = %s, want %s", gotJSON, wantJSON)
			}
		})
	}
}

func TestDiff_NilNew(t *testing.T) {
	if Diff(&ViewState{}, nil) != nil {
		t.Error("expected nil diff for nil new state")
	}
}

func TestDiff_JSONOmitsUnchanged(t *testing.T) {
	d := Diff(&ViewState{SessionID: "s", Lens: LensFraud}, &ViewState{SessionID: "s", Lens: LensTS})
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"lens":"ts"`) {
		t.Errorf("expected lens in diff, got %s", s)
	}
	if strings.Contains(s, "scenario_id") {
		t.Errorf("unchanged fields must be omitted, got %s", s)
	}
}
