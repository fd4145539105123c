package cmd

import (
	"errors"
	"testing"

	"github.com/ardnew/envlit/lit"
	"github.com/ardnew/envlit/source"
)

func TestLit(t *testing.T) {
	env := source.NewMap().
		Set("PORT", "9090").
		Set("MASK", "1").
		Set("NAME", "ab").
		Build()

	tests := []struct {
		name    string
		cmd     Lit
		want    string
		wantErr error
	}{
		{name: "hit", cmd: Lit{Key: "PORT", Default: "8080"}, want: "9090\n"},
		{name: "miss", cmd: Lit{Key: "SIZE", Default: "[3]int{1, 2, 3}"}, want: "[3]int{1, 2, 3}\n"},
		{name: "typed", cmd: Lit{Key: "MASK", Default: "uint32(0)"}, want: "uint32(1)\n"},
		{name: "invalid default", cmd: Lit{Key: "PORT", Default: "1 +"}, wantErr: ErrInvalidDefault},
		{name: "synthesis", cmd: Lit{Key: "NAME", Default: "'a'"}, wantErr: lit.ErrCharCount},
		{name: "unsupported", cmd: Lit{Key: "PORT", Default: "x + 1"}, wantErr: lit.ErrClassification},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := testContext(t, env)

			err := tt.cmd.Run(ctx)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatal(err)
			}

			if out.String() != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}
