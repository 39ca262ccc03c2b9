// Package seed reads the initial user accounts created on an empty store.
package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// User is one account to create when the users table is empty.
type User struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

type file struct {
	Users []User `yaml:"users"`
}

// DefaultUsers are the demo accounts shipped with the tool.
func DefaultUsers() []User {
	return []User{
		{Username: "admin", Password: "admin123", Role: "admin"},
		{Username: "applicant1", Password: "test123", Role: "applicant"},
		{Username: "stockman1", Password: "test123", Role: "stockman"},
		{Username: "manager1", Password: "test123", Role: "manager"},
	}
}

// Load returns the users listed in path, or DefaultUsers when path is empty.
func Load(path string) ([]User, error) {
	if path == "" {
		return DefaultUsers(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	for i, u := range f.Users {
		if u.Username == "" || u.Password == "" || u.Role == "" {
			return nil, fmt.Errorf("seed user #%d: username, password and role are required", i+1)
		}
	}
	return f.Users, nil
}
