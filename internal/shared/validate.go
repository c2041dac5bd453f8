package shared

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("notblank", validators.NotBlank)
	// report fields by their yaml key, e.g. "images.hero"
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// Struct runs the validate tags on v.
func Struct(v any) error { return validate.Struct(v) }

// Issues validates v and returns one line per failed field, e.g.
// "images.hero is required". labels renames a field path; messages replaces
// the whole line for a path.
func Issues(v any, labels, messages map[string]string) []string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []string{err.Error()}
	}

	out := make([]string, 0, len(ve))
	for _, fe := range ve {
		path := fe.Namespace()
		if _, rest, ok := strings.Cut(path, "."); ok {
			path = rest
		}
		if m, ok := messages[path]; ok {
			out = append(out, m)
			continue
		}
		if l, ok := labels[path]; ok {
			path = l
		}
		switch fe.Tag() {
		case "oneof":
			out = append(out, fmt.Sprintf("%s %q must be %s", path, fmt.Sprint(fe.Value()), strings.ReplaceAll(fe.Param(), " ", " or ")))
		default:
			out = append(out, path+" is required")
		}
	}
	return out
}
