// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		wantDebug bool
	}{
		{name: "quiet drops debug", verbose: false, wantDebug: false},
		{name: "verbose keeps debug", verbose: true, wantDebug: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(&buf, tt.verbose)
			log.Debug().Int("line", 3).Msg("skipped line")
			log.Info().Msg("done")

			out := buf.String()
			assert.Contains(t, out, "done")
			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("skipped line")))
		})
	}
}

func TestNop(t *testing.T) {
	log := Nop()
	// Must not panic and must not write anywhere.
	log.Error().Msg("ignored")
}
