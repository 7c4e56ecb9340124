package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/debemdeboas/swipestate/internal/config"
)

const header = "swipestate configuration example\nCopy this file to config.yaml (or config.toml) and customize as needed"

func render(cfg *config.Config, format string) (string, error) {
	var b strings.Builder
	for _, line := range strings.Split(header, "\n") {
		b.WriteString("# " + line + "\n")
	}
	b.WriteString("\n")

	switch format {
	case "toml":
		if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
			return "", err
		}
	default:
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return "", err
		}
		b.Write(data)
	}
	return b.String(), nil
}

func main() {
	// Create a config with defaults applied
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)

	outputFile := "config.example.yaml"
	if len(os.Args) > 1 {
		outputFile = os.Args[1]
	}

	format := "yaml"
	if strings.EqualFold(filepath.Ext(outputFile), ".toml") {
		format = "toml"
	}

	output, err := render(cfg, format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating %s: %v\n", format, err)
		os.Exit(1)
	}

	if outputFile == "-" {
		fmt.Print(output)
		return
	}

	if err := os.WriteFile(outputFile, []byte(output), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated example config: %s\n", outputFile)
}
