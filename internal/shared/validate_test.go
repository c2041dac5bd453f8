package shared

import (
	"strings"
	"testing"
)

type listing struct {
	Title string `yaml:"title" validate:"required"`
	Body  string `yaml:"body" validate:"notblank"`
	Area  struct {
		Value float64 `yaml:"value" validate:"gt=0"`
		Unit  string  `yaml:"unit" validate:"omitempty,oneof=sqm sqft"`
	} `yaml:"area"`
	Rooms []string `yaml:"rooms" validate:"min=1"`
	Note  string   `validate:"required"`
}

func TestIssues_YAMLPathsAndWording(t *testing.T) {
	var l listing
	l.Body = "   "
	l.Area.Unit = "acres"

	got := Issues(&l, map[string]string{"area.value": "area"}, map[string]string{"rooms": "at least one room is required"})
	want := []string{
		"title is required",
		"body is required",
		"area is required",
		`area.unit "acres" must be sqm or sqft`,
		"at least one room is required",
		"Note is required",
	}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("issues =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestIssues_ValidValue(t *testing.T) {
	l := listing{Title: "Mansarda", Body: "Sotto il tetto", Rooms: []string{"camera"}, Note: "n"}
	l.Area.Value = 85
	if got := Issues(l, nil, nil); got != nil {
		t.Fatalf("unexpected issues: %v", got)
	}
	if err := Struct(l); err != nil {
		t.Fatal(err)
	}
}
