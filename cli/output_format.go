package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/gosuri/uitable"
	"github.com/krancour/usersapi/sdk/users"
	"github.com/pkg/errors"
)

const (
	outputFormatJSON  = "json"
	outputFormatTable = "table"
	outputFormatYAML  = "yaml"
)

func validateOutputFormat(outputFormat string) error {
	switch strings.ToLower(outputFormat) {
	case outputFormatTable:
	case outputFormatYAML:
	case outputFormatJSON:
	default:
		return errors.Errorf("unknown output format %q", outputFormat)
	}
	return nil
}

func printUsers(
	w io.Writer,
	outputFormat string,
	usrs []users.User,
) error {
	if usrs == nil {
		usrs = []users.User{}
	}
	switch strings.ToLower(outputFormat) {
	case outputFormatTable:
		table := uitable.New()
		table.AddRow("ID", "NAME", "EMAIL")
		for _, user := range usrs {
			table.AddRow(user.ID, user.Name, user.Email)
		}
		fmt.Fprintln(w, table)
	case outputFormatYAML:
		yamlBytes, err := yaml.Marshal(usrs)
		if err != nil {
			return errors.Wrap(err, "error formatting users as yaml")
		}
		fmt.Fprintln(w, string(yamlBytes))
	case outputFormatJSON:
		prettyJSON, err := json.MarshalIndent(usrs, "", "  ")
		if err != nil {
			return errors.Wrap(err, "error formatting users as json")
		}
		fmt.Fprintln(w, string(prettyJSON))
	default:
		return errors.Errorf("unknown output format %q", outputFormat)
	}
	return nil
}
