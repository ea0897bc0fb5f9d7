package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile is a saved identity that can replace the user section of the
// config with --profile.
type Profile struct {
	Name string `yaml:"name"`
	ID   int    `yaml:"id"`
	Role string `yaml:"role"`
}

// User converts the profile into the config form.
func (p Profile) User() UserConfig {
	return UserConfig{ID: p.ID, Name: p.Name, Role: p.Role}
}

// ErrInvalidProfileName is returned for names that would leave the
// profiles directory.
var ErrInvalidProfileName = errors.New("invalid profile name")

func checkProfileName(name string) error {
	if name == "" {
		return fmt.Errorf("profile name is required")
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return fmt.Errorf("%w: %q", ErrInvalidProfileName, name)
	}
	return nil
}

func GetProfilesDir() (string, error) {
	dir := filepath.Join(Dir(), "profiles")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

func SaveProfile(p Profile) error {
	if err := checkProfileName(p.Name); err != nil {
		return err
	}
	dir, err := GetProfilesDir()
	if err != nil {
		return err
	}

	filename := filepath.Join(dir, p.Name+".yaml")
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}

func LoadProfile(name string) (*Profile, error) {
	if err := checkProfileName(name); err != nil {
		return nil, err
	}
	dir, err := GetProfilesDir()
	if err != nil {
		return nil, err
	}

	filename := filepath.Join(dir, name+".yaml")
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("profile '%s' not found", name)
		}
		return nil, err
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	if p.Name == "" {
		p.Name = name
	}
	return &p, nil
}

func ListProfiles() ([]string, error) {
	dir, err := GetProfilesDir()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".yaml" {
			names = append(names, e.Name()[:len(e.Name())-5])
		}
	}
	return names, nil
}

func DeleteProfile(name string) error {
	if err := checkProfileName(name); err != nil {
		return err
	}
	dir, err := GetProfilesDir()
	if err != nil {
		return err
	}

	filename := filepath.Join(dir, name+".yaml")
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return fmt.Errorf("profile '%s' not found", name)
	}

	return os.Remove(filename)
}
