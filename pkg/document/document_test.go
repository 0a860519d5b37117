package document_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/did-coop/wasupdoc/pkg/document"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	testCases := []struct {
		name       string
		controller string
		expected   string
	}{
		{
			name:       "did",
			controller: "did:example:abc",
			expected:   "{\n\t\"controller\": \"did:example:abc\"\n}\n",
		},
		{
			name:       "no html escaping",
			controller: "did:example:<a&b>",
			expected:   "{\n\t\"controller\": \"did:example:<a&b>\"\n}\n",
		},
		{
			name:       "quotes escaped",
			controller: `did:example:"q"`,
			expected:   "{\n\t\"controller\": \"did:example:\\\"q\\\"\"\n}\n",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, document.Write(&buf, document.New(tc.controller)))
			require.Equal(t, tc.expected, buf.String())

			var fields map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &fields))
			require.Equal(t, map[string]any{"controller": tc.controller}, fields)
		})
	}
}
