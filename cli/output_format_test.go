package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ghodss/yaml"
	"github.com/krancour/usersapi/sdk/users"
	"github.com/stretchr/testify/require"
)

var testUsers = []users.User{
	{ID: 1, Name: "Ann", Email: "ann@x.com"},
	{ID: 2, Name: "Bob", Email: "bob@x.com"},
}

func TestValidateOutputFormat(t *testing.T) {
	for _, format := range []string{"table", "yaml", "json", "JSON"} {
		require.NoError(t, validateOutputFormat(format))
	}
	err := validateOutputFormat("xml")
	require.Error(t, err)
	require.Contains(t, err.Error(), "xml")
}

func TestPrintUsers(t *testing.T) {
	testCases := []struct {
		name         string
		outputFormat string
		assertions   func(*testing.T, string, error)
	}{
		{
			name:         "table",
			outputFormat: outputFormatTable,
			assertions: func(t *testing.T, output string, err error) {
				require.NoError(t, err)
				lines := strings.Split(strings.TrimSpace(output), "\n")
				require.Len(t, lines, 3)
				require.Equal(t, []string{"ID", "NAME", "EMAIL"}, strings.Fields(lines[0]))
				require.Equal(t, []string{"1", "Ann", "ann@x.com"}, strings.Fields(lines[1]))
				require.Equal(t, []string{"2", "Bob", "bob@x.com"}, strings.Fields(lines[2]))
			},
		},
		{
			name:         "yaml",
			outputFormat: outputFormatYAML,
			assertions: func(t *testing.T, output string, err error) {
				require.NoError(t, err)
				usrs := []users.User{}
				require.NoError(t, yaml.Unmarshal([]byte(output), &usrs))
				require.Equal(t, testUsers, usrs)
				require.Contains(t, output, "kind: User")
			},
		},
		{
			name:         "json",
			outputFormat: outputFormatJSON,
			assertions: func(t *testing.T, output string, err error) {
				require.NoError(t, err)
				usrs := []users.User{}
				require.NoError(t, json.Unmarshal([]byte(output), &usrs))
				require.Equal(t, testUsers, usrs)
			},
		},
		{
			name:         "unknown",
			outputFormat: "xml",
			assertions: func(t *testing.T, output string, err error) {
				require.Error(t, err)
				require.Empty(t, output)
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			err := printUsers(buf, testCase.outputFormat, testUsers)
			testCase.assertions(t, buf.String(), err)
		})
	}
}
