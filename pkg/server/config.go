package server

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds server tuning knobs, grounded on the teacher's flag-built
// Config/DefaultConfig pair (cmd/server/main.go), extended with an optional
// YAML file (gopkg.in/yaml.v3) that a flag can point at.
type Config struct {
	Address      string `yaml:"address"`
	MapHeight    uint16 `yaml:"map_height"` // used only when MapWidth is also non-zero; otherwise both are randomly generated per world.MinSize/MaxSize
	MapWidth     uint16 `yaml:"map_width"`  // used only when MapHeight is also non-zero; otherwise both are randomly generated
	Radius       uint8  `yaml:"radius"`
	HP           uint8  `yaml:"hp"`
	WeaponRange  uint8  `yaml:"weapon_range"`
	WeaponDamage uint8  `yaml:"weapon_damage"`
	SpawnRetries int    `yaml:"spawn_retries"`
}

// DefaultConfig returns the values named throughout spec 3/9.2.
func DefaultConfig() Config {
	return Config{
		Address:      "0.0.0.0:42069",
		Radius:       5,
		HP:           10,
		WeaponRange:  5,
		WeaponDamage: 1,
		SpawnRetries: 16,
	}
}

// LoadConfig reads a YAML file at path and overlays it onto DefaultConfig.
// A field absent from the file keeps its default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
