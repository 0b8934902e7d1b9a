package main

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path"

	"github.com/krancour/usersapi/internal/file"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

type config struct {
	APIAddress string `json:"apiAddress"`
	APIToken   string `json:"apiToken"`
}

func getConfig() (*config, error) {
	usersHome, err := getUsersHome()
	if err != nil {
		return nil, errors.Wrapf(err, "error finding users home")
	}
	usersConfigFile := path.Join(usersHome, "config")
	if !file.Exists(usersConfigFile) {
		return nil, errors.Errorf(
			"no configuration was found at %s; please use "+
				"`users login` to continue",
			usersConfigFile,
		)
	}

	configBytes, err := ioutil.ReadFile(usersConfigFile)
	if err != nil {
		return nil, errors.Wrapf(
			err,
			"error reading config file at %s",
			usersConfigFile,
		)
	}

	config := &config{}
	if err := json.Unmarshal(configBytes, config); err != nil {
		return nil, errors.Wrapf(
			err,
			"error parsing config file at %s",
			usersConfigFile,
		)
	}

	return config, nil
}

func saveConfig(config *config) error {
	usersHome, err := getUsersHome()
	if err != nil {
		return errors.Wrapf(err, "error finding users home")
	}
	if err = os.MkdirAll(usersHome, 0755); err != nil {
		return errors.Wrapf(err, "error creating users home at %s", usersHome)
	}
	usersConfigFile := path.Join(usersHome, "config")

	configBytes, err := json.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "error marshaling config")
	}
	// The file holds an API token
	if err :=
		ioutil.WriteFile(usersConfigFile, configBytes, 0600); err != nil {
		return errors.Wrapf(err, "error writing to %s", usersConfigFile)
	}
	return nil
}

func deleteConfig() error {
	usersHome, err := getUsersHome()
	if err != nil {
		return errors.Wrapf(err, "error finding users home")
	}
	usersConfigFile := path.Join(usersHome, "config")

	if err := os.Remove(usersConfigFile); err != nil {
		return errors.Wrap(err, "error deleting configuration")
	}

	return nil
}

func getUsersHome() (string, error) {
	homeDir, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "error locating user's home directory")
	}
	return path.Join(homeDir, ".users"), nil
}
