//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/stretchr/testify/require"
)

const configName = ".selectsync.toml"

const fruitConfig = `version = 1
title = "Fruit"
multiselect = %t
value_field = "id"
display_field = "name"
selected = [%s]

[[candidates]]
id = 1
name = "Apple"

[[candidates]]
id = 2
name = "Banana"

[[candidates]]
id = 3
name = "Cherry"
`

// WriteConfig writes content as the workspace config file
func (s *appSession) WriteConfig(content string) {
	s.t.Helper()
	path := filepath.Join(s.workspace, configName)
	require.NoError(s.t, os.WriteFile(path, []byte(content), 0644), "failed to write config")
}

// WriteFruitConfig writes the three-fruit config with the given mode and
// persisted selection
func (s *appSession) WriteFruitConfig(multi bool, selected ...int) {
	s.t.Helper()
	parts := make([]string, 0, len(selected))
	for _, id := range selected {
		parts = append(parts, fmt.Sprint(id))
	}
	s.WriteConfig(fmt.Sprintf(fruitConfig, multi, strings.Join(parts, ", ")))
}

// ConfigHas polls the workspace config until it contains want, ignoring
// spaces
func (s *appSession) ConfigHas(want string) bool {
	s.t.Helper()
	want = strings.ReplaceAll(want, " ", "")
	path := filepath.Join(s.workspace, configName)
	deadline := time.Now().Add(2 * time.Second)
	for {
		data, err := os.ReadFile(path)
		if err == nil && strings.Contains(strings.ReplaceAll(string(data), " ", ""), want) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(25 * time.Millisecond)
	}
}
