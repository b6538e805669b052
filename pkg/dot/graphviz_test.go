package dot

import (
	"context"
	"strings"
	"testing"

	"github.com/rohan-flutterint/graphviz/pkg/errors"
)

func TestValidate(t *testing.T) {
	ctx := context.Background()
	if err := Validate(ctx, []byte("digraph G { a -> b }")); err != nil {
		t.Errorf("Validate(valid) error: %v", err)
	}
	if err := Validate(ctx, []byte("digraph G { a -> ")); !errors.Is(err, errors.ErrCodeInvalidDOT) {
		t.Errorf("Validate(invalid) error = %v, want %s", err, errors.ErrCodeInvalidDOT)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := `<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00"><g/></svg>`
	out := string(normalizeViewBox([]byte(in)))
	if !strings.Contains(out, `viewBox="0 0 62.00 116.00" width="62" height="116"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}

	plain := `<svg><g/></svg>`
	if got := string(normalizeViewBox([]byte(plain))); got != plain {
		t.Errorf("normalizeViewBox() changed svg without viewBox: %s", got)
	}
}
