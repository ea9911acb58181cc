package config_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/walteh/linepatch/pkg/config"
)

func ExampleLoad_yaml() {
	configYAML := `
patches:
  - file: data/level12.json
    search: queue_free
    insert: ",\n\t\t\t\t\t\t\"start_disabled\": false"
backup: true
`

	dir, err := os.MkdirTemp("", "linepatch-example")
	if err != nil {
		fmt.Printf("Error creating temp dir: %v\n", err)
		return
	}
	defer os.RemoveAll(dir)

	configPath := filepath.Join(dir, ".linepatch.yaml")
	if err := os.WriteFile(configPath, []byte(configYAML), 0644); err != nil {
		fmt.Printf("Error writing config: %v\n", err)
		return
	}

	cfg, err := config.Load(context.Background(), configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return
	}

	fmt.Printf("Loaded %d patches\n", len(cfg.Patches))
	fmt.Printf("First patch: %s\n", cfg.Patches[0])
	fmt.Printf("Backup: %v\n", cfg.Backup)

	// Output:
	// Loaded 1 patches
	// First patch: data/level12.json: "queue_free" += ",\n\t\t\t\t\t\t\"start_disabled\": false"
	// Backup: true
}
