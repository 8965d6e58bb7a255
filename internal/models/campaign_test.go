package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func validTask() Task {
	return Task{
		Name:         "Tweet",
		Description:  "Post about launch",
		Proof:        "screenshot",
		PointsEarned: ParseNumber("10"),
		Price:        ParseNumber("0"),
	}
}

func TestCampaignValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Campaign)
		fields []string
	}{
		{"valid", func(c *Campaign) {}, nil},
		{"no tasks", func(c *Campaign) { c.Tasks = nil }, nil},
		{"empty description allowed", func(c *Campaign) { c.Description = "" }, nil},
		{"empty name", func(c *Campaign) { c.Name = "" }, []string{"name"}},
		{"blank name", func(c *Campaign) { c.Name = "   " }, []string{"name"}},
		{"task without name", func(c *Campaign) { c.Tasks[0].Name = "" }, []string{"tasks[0].name"}},
		{"task without description", func(c *Campaign) { c.Tasks[0].Description = "" }, []string{"tasks[0].description"}},
		{"points not numeric", func(c *Campaign) { c.Tasks[0].PointsEarned = ParseNumber("ten") }, []string{"tasks[0].pointsEarned"}},
		{"points empty", func(c *Campaign) { c.Tasks[0].PointsEarned = ParseNumber("") }, []string{"tasks[0].pointsEarned"}},
		{"points negative", func(c *Campaign) { c.Tasks[0].PointsEarned = NewNumber(-1) }, []string{"tasks[0].pointsEarned"}},
		{"points NaN", func(c *Campaign) { c.Tasks[0].PointsEarned = ParseNumber("NaN") }, []string{"tasks[0].pointsEarned"}},
		{"price empty means zero", func(c *Campaign) { c.Tasks[0].Price = ParseNumber("") }, nil},
		{"price non-zero", func(c *Campaign) { c.Tasks[0].Price = ParseNumber("5") }, []string{"tasks[0].price"}},
		{"price not numeric", func(c *Campaign) { c.Tasks[0].Price = ParseNumber("free") }, []string{"tasks[0].price"}},
		{
			"several problems",
			func(c *Campaign) {
				c.Name = ""
				c.Tasks = append(c.Tasks, Task{PointsEarned: ParseNumber("x")})
			},
			[]string{"name", "tasks[1].name", "tasks[1].description", "tasks[1].pointsEarned"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Campaign{Name: "Spring Launch", Description: "Q2 push", Tasks: []Task{validTask()}}
			tt.mutate(&c)

			err := c.Validate()
			if tt.fields == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(verr.Fields) != len(tt.fields) {
				t.Fatalf("expected fields %v, got %+v", tt.fields, verr.Fields)
			}
			for i, f := range tt.fields {
				if verr.Fields[i].Field != f {
					t.Errorf("field %d: expected %q, got %q", i, f, verr.Fields[i].Field)
				}
			}
		})
	}
}

func TestNumberUnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		valid   bool
		value   float64
		encoded string
	}{
		{`10`, true, 10, `10`},
		{`"10"`, true, 10, `10`},
		{`" 2.50 "`, true, 2.5, `2.5`},
		{`0`, true, 0, `0`},
		{`"abc"`, false, 0, `"abc"`},
		{`true`, false, 0, `"true"`},
		{`""`, false, 0, `""`},
		{`null`, false, 0, `""`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var n Number
			if err := json.Unmarshal([]byte(tt.in), &n); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			v, err := n.Float64()
			if tt.valid != (err == nil) {
				t.Fatalf("valid = %v, err = %v", tt.valid, err)
			}
			if tt.valid && v != tt.value {
				t.Errorf("expected %v, got %v", tt.value, v)
			}
			out, err := json.Marshal(n)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(out) != tt.encoded {
				t.Errorf("expected %s, got %s", tt.encoded, out)
			}
		})
	}
}

func TestCampaignNormalized(t *testing.T) {
	c := Campaign{Name: "n", Tasks: []Task{{
		Name:         "t",
		Description:  "d",
		PointsEarned: ParseNumber("010.50"),
	}}}

	got := c.Normalized()
	if got.Tasks[0].PointsEarned.String() != "10.5" {
		t.Errorf("points = %q", got.Tasks[0].PointsEarned.String())
	}
	if got.Tasks[0].Price.String() != "0" {
		t.Errorf("price = %q", got.Tasks[0].Price.String())
	}
	if c.Tasks[0].PointsEarned.String() != "010.50" {
		t.Error("Normalized must not modify the receiver")
	}

	empty := Campaign{Name: "n"}.Normalized()
	if empty.Tasks == nil {
		t.Error("expected non-nil tasks")
	}
}

func TestNewCollectionEncodesEmptyArray(t *testing.T) {
	data, err := json.Marshal(NewCollection(nil))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"campaigns":[]}` {
		t.Errorf("got %s", data)
	}
}

func TestCollectionFind(t *testing.T) {
	col := NewCollection([]Campaign{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}})
	c, ok := col.Find("b")
	if !ok || c.Name != "B" {
		t.Fatalf("Find(b) = %+v, %v", c, ok)
	}
	if _, ok := col.Find("z"); ok {
		t.Error("expected miss")
	}
}

func TestTotalPoints(t *testing.T) {
	c := Campaign{Tasks: []Task{
		{PointsEarned: NewNumber(10)},
		{PointsEarned: ParseNumber("2.5")},
		{PointsEarned: ParseNumber("bad")},
	}}
	if got := c.TotalPoints(); got != 12.5 {
		t.Errorf("TotalPoints = %v", got)
	}
}
