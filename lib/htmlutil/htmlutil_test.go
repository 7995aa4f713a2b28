package htmlutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestGetText(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(
		`<div><label>Distance</label><span>8.00 <b>Mile(s)</b></span></div>`,
	))
	require.NoError(t, err)
	require.Equal(t, "Distance8.00 Mile(s)", GetText(doc))
}

func TestCleanText(t *testing.T) {
	testCases := []struct {
		in       string
		expected string
	}{
		{"  Easy run\n", "Easy run"},
		{"00:07:30.12   /mile", "00:07:30.12 /mile"},
		{"\tSaturday\n\n Run ", "Saturday Run"},
		{"", ""},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, CleanText(test.in))
	}
}
