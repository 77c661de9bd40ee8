package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEmbedding(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []float32
	}{
		{"batch object", `{"embeddings":[[0.1,0.2,0.3]]}`, []float32{0.1, 0.2, 0.3}},
		{"single object", `{"embedding":[0.4,0.5]}`, []float32{0.4, 0.5}},
		{"tensor object", `{"data":[1,2,3,4],"dims":[1,4]}`, []float32{1, 2, 3, 4}},
		{"nested array", `[[9,8,7]]`, []float32{9, 8, 7}},
		{"flat array", `[5,6]`, []float32{5, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeEmbedding([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeEmbedding_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unrelated object", `{"foo":1}`},
		{"string", `"hello"`},
		{"number", `42`},
		{"empty batch", `{"embeddings":[]}`},
		{"empty array", `[]`},
		{"not json", `oops`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeEmbedding([]byte(tt.body))
			assert.Error(t, err)
		})
	}
}
