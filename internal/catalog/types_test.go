package catalog

import (
	"encoding/json"
	"testing"
)

func TestImageSpecShapes(t *testing.T) {
	tests := []struct {
		name string
		json string
		want ImageSpec
	}{
		{"flat", `{"image_url":"https://img/a.jpg"}`, ImageSpec{Kind: ImageFlat, URL: "https://img/a.jpg"}},
		{"split", `{"image_url":{"list":"l","cover":"c"}}`, ImageSpec{Kind: ImageSplit, List: "l", Cover: "c"}},
		{"split cover only", `{"image_url":{"cover":"c"}}`, ImageSpec{Kind: ImageSplit, Cover: "c"}},
		{"empty string", `{"image_url":""}`, ImageSpec{}},
		{"null", `{"image_url":null}`, ImageSpec{}},
		{"absent", `{}`, ImageSpec{}},
		{"array", `{"image_url":[]}`, ImageSpec{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec ContentRecord
			if err := json.Unmarshal([]byte(tt.json), &rec); err != nil {
				t.Fatalf("Unmarshal() error: %v", err)
			}
			if rec.Image != tt.want {
				t.Errorf("Image = %+v, want %+v", rec.Image, tt.want)
			}
		})
	}
}

func TestFlexInt(t *testing.T) {
	tests := []struct {
		json string
		want FlexInt
	}{
		{`{"duration":183}`, 183},
		{`{"duration":"95"}`, 95},
		{`{"duration":null}`, 0},
		{`{"duration":"n/a"}`, 0},
		{`{"duration":12.0}`, 12},
	}

	for _, tt := range tests {
		t.Run(tt.json, func(t *testing.T) {
			var rec ContentRecord
			if err := json.Unmarshal([]byte(tt.json), &rec); err != nil {
				t.Fatalf("Unmarshal() error: %v", err)
			}
			if rec.Duration != tt.want {
				t.Errorf("Duration = %d, want %d", rec.Duration, tt.want)
			}
		})
	}
}

func TestGenreValuesTolerateBadShapes(t *testing.T) {
	var rec ContentRecord
	if err := json.Unmarshal([]byte(`{"genre":"Drama","genres":[{"value":"Comedy"},{"value":""}]}`), &rec); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	got := rec.GenreValues()
	if len(got) != 1 || got[0] != "Comedy" {
		t.Errorf("GenreValues() = %v, want [Comedy]", got)
	}
}

func TestPageHasNext(t *testing.T) {
	tests := []struct {
		page Page
		want bool
	}{
		{Page{Page: 2, Limit: 25, Total: 60}, true},
		{Page{Page: 3, Limit: 25, Total: 60}, false},
		{Page{Page: 2, Limit: 25, Total: 50}, false},
		{Page{}, false},
	}

	for _, tt := range tests {
		if got := tt.page.HasNext(); got != tt.want {
			t.Errorf("%+v.HasNext() = %v, want %v", tt.page, got, tt.want)
		}
	}
}
