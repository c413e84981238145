package models

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestGoalValueBareNumber(t *testing.T) {
	var g GoalValue
	if err := json.Unmarshal([]byte(`140`), &g); err != nil {
		t.Fatal(err)
	}
	if g.Target != 140 || g.Short != "" {
		t.Errorf("GoalValue = %+v, want target 140", g)
	}

	out, err := json.Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "140" {
		t.Errorf("marshal = %s, want the bare-number form back", out)
	}
}

func TestGoalValueObjectForm(t *testing.T) {
	var g GoalValue
	if err := json.Unmarshal([]byte(`{"target": 100, "short": "Bench"}`), &g); err != nil {
		t.Fatal(err)
	}
	if g.Target != 100 || g.Short != "Bench" {
		t.Errorf("GoalValue = %+v", g)
	}
	if g.ShortName("Bench Press") != "Bench" {
		t.Errorf("ShortName = %q, want override", g.ShortName("Bench Press"))
	}
	if (GoalValue{Target: 100}).ShortName("Bench Press") != "Bench Press" {
		t.Error("ShortName without override should fall back to the lift name")
	}
}

func TestGoalMapPreservesOrder(t *testing.T) {
	data := []byte(`{"Squat": 140, "Bench Press": 100, "OHP": 60, "Seated Cable Row": 95}`)
	var m GoalMap
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	want := []string{"Squat", "Bench Press", "OHP", "Seated Cable Row"}
	if !reflect.DeepEqual(m.Names(), want) {
		t.Errorf("Names() = %v, want document order %v", m.Names(), want)
	}

	out, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"Squat":140,"Bench Press":100,"OHP":60,"Seated Cable Row":95}` {
		t.Errorf("marshal = %s, order lost", out)
	}
}

func TestGoalMapRejectsNonObject(t *testing.T) {
	var m GoalMap
	if err := json.Unmarshal([]byte(`[1,2]`), &m); err == nil {
		t.Error("expected error for non-object goals")
	}
}

func TestGoalEntryValidate(t *testing.T) {
	valid := GoalEntry{
		TargetDate: "2026-06-01",
		Goals: NewGoalMap([]string{"Squat"}, map[string]GoalValue{
			"Squat": {Target: 140},
		}),
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate(valid) = %v", err)
	}

	noGoals := GoalEntry{TargetDate: "2026-06-01"}
	if err := noGoals.Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("Validate(no goals) = %v, want ErrValidation", err)
	}

	noDate := GoalEntry{Goals: valid.Goals}
	if err := noDate.Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("Validate(no target date) = %v, want ErrValidation", err)
	}
}
