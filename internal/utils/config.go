package utils

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"reflect"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
)

func createConfigDir(configDirPath string) error {
	if _, err := os.Stat(configDirPath); os.IsNotExist(err) {
		sessionsDir := filepath.Join(configDirPath, "sessions")
		if err := os.MkdirAll(sessionsDir, os.ModePerm); err != nil {
			return fmt.Errorf("failed to create .olm + .olm/sessions directory: %w", err)
		}
		ancli.PrintOK(fmt.Sprintf("created .olm directory at: '%v'\n", configDirPath))
	}
	return nil
}

func createDefaultConfigFile[T any](configDirPath, configFileName string, dflt *T) error {
	configFilePath := filepath.Join(configDirPath, configFileName)
	if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
		if misc.Truthy(os.Getenv("DEBUG")) {
			ancli.PrintOK(fmt.Sprintf("attempting to create file: '%v'\n", configFilePath))
		}
		err := CreateFile(configFilePath, dflt)
		if err != nil {
			return fmt.Errorf("failed to write config: '%v', error: %w", configFileName, err)
		}
	}
	return nil
}

// LoadConfigFromFile from the .olm dotdir inside placeConfigPath, creating
// both the dotdir and a default config file on first run.
func LoadConfigFromFile[T any](placeConfigPath, configFileName string, dflt *T) (T, error) {
	configDirPath := fmt.Sprintf("%v/.olm/", placeConfigPath)
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK(fmt.Sprintf("attempting to load file: %v%v\n", configDirPath, configFileName))
	}

	err := createConfigDir(configDirPath)
	if err != nil {
		var nilVal T
		return nilVal, err
	}

	err = createDefaultConfigFile(configDirPath, configFileName, dflt)
	if err != nil {
		var nilVal T
		return nilVal, err
	}

	configPath := path.Join(configDirPath, configFileName)
	var conf T
	err = ReadAndUnmarshal(configPath, &conf)
	if err != nil {
		return conf, fmt.Errorf("failed to unmarshal config '%v', error: %v", configFileName, err)
	}

	// Append any new fields from default config, in case of config extension
	hasChanged := setNonZeroValueFields(&conf, dflt)

	if hasChanged {
		err = CreateFile(configPath, &conf)
		if err != nil {
			return conf, fmt.Errorf("failed to write config '%v' post zero-field appendage, error: %v", configFileName, err)
		}
		ancli.PrintOK(fmt.Sprintf("appended new fields and updated config file: %v\n", configPath))
	}

	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK(fmt.Sprintf("found config: %+v\n", conf))
	}
	return conf, nil
}

// setNonZeroValueFields on a using b as template
func setNonZeroValueFields[T any](a, b *T) bool {
	hasChanged := false
	t := reflect.TypeOf(*a)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		aVal := reflect.ValueOf(a).Elem().FieldByName(f.Name)
		bVal := reflect.ValueOf(b).Elem().FieldByName(f.Name)
		if f.IsExported() && aVal.IsZero() && !bVal.IsZero() {
			hasChanged = true
			aVal.Set(bVal)
		}
	}
	return hasChanged
}
