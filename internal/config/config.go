package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port string `toml:"port"`
}

type LogConfig struct {
	Mode string `toml:"mode"` // "dev" or "prod"
}

type EthicsConfig struct {
	Guidelines    []string `toml:"guidelines"`
	BiasMarkers   []string `toml:"bias_markers"`
	PenaltyFactor float32  `toml:"penalty_factor"`
	ScoreFloor    float32  `toml:"score_floor"`
}

type AssimilationConfig struct {
	GeneralizedMarker string `toml:"generalized_marker"`
}

type RecommenderConfig struct {
	AnchorID string `toml:"anchor_id"`
}

type ExtractionConfig struct {
	// Abstraction selects the percept model: "placeholder" or "embedding".
	Abstraction string `toml:"abstraction"`
	// Symbolic enables LLM-backed symbolic form extraction.
	Symbolic bool   `toml:"symbolic"`
	Prompt   string `toml:"prompt"`
	// MemorySize bounds the short-term context memory.
	MemorySize int `toml:"memory_size"`
}

type ClustersConfig struct {
	// Algorithm is "lpa" (label propagation) or "components".
	Algorithm string `toml:"algorithm"`
}

type LLMConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	EmbeddingModel string `toml:"embedding_model"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type BadgerConfig struct {
	Path     string `toml:"path"`
	InMemory bool   `toml:"in_memory"`
}

type StoreConfig struct {
	// Backend is "none", "memgraph" or "badger".
	Backend string `toml:"backend"`
	// LoadOnStart restores the last snapshot into the graph at boot.
	LoadOnStart bool `toml:"load_on_start"`
	// SaveOnShutdown persists the graph when the server stops.
	SaveOnShutdown bool `toml:"save_on_shutdown"`
}

type Config struct {
	Server       ServerConfig       `toml:"server"`
	Log          LogConfig          `toml:"log"`
	Ethics       EthicsConfig       `toml:"ethics"`
	Assimilation AssimilationConfig `toml:"assimilation"`
	Recommender  RecommenderConfig  `toml:"recommender"`
	Extraction   ExtractionConfig   `toml:"extraction"`
	Clusters     ClustersConfig     `toml:"clusters"`
	LLM          LLMConfig          `toml:"llm"`
	Memgraph     MemgraphConfig     `toml:"memgraph"`
	Badger       BadgerConfig       `toml:"badger"`
	Store        StoreConfig        `toml:"store"`
}

const DefaultSymbolicPrompt = `Extract abstract concepts ("forms") and the relations between them from the following input.
Return a JSON object with keys "forms" (list of {"id", "description"}) and "relations"
(list of {"source_form_id", "target_form_id", "relation_type", "strength"}).
Relation types are IS_A, PART_OF, CAUSES or ANALOGOUS_TO.

Recent context:
%s

Input:
%s`

// Default returns a configuration that runs fully in memory.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		Log:    LogConfig{Mode: "dev"},
		Ethics: EthicsConfig{
			Guidelines:    []string{"no_adversarial", "ensure_fairness"},
			BiasMarkers:   []string{"gender_stereotype"},
			PenaltyFactor: 0.7,
			ScoreFloor:    0.1,
		},
		Assimilation: AssimilationConfig{GeneralizedMarker: "generalized"},
		Recommender:  RecommenderConfig{AnchorID: "GEN_Objectness"},
		Extraction: ExtractionConfig{
			Abstraction: "placeholder",
			Prompt:      DefaultSymbolicPrompt,
			MemorySize:  32,
		},
		Clusters: ClustersConfig{Algorithm: "lpa"},
		LLM: LLMConfig{
			Provider: "ollama",
			Model:    "gpt-oss:latest",
			BaseURL:  "http://localhost:11434",
		},
		Memgraph: MemgraphConfig{URI: "bolt://localhost:7687"},
		Badger:   BadgerConfig{Path: "data/graph"},
		Store:    StoreConfig{Backend: "none"},
	}
}

// Load reads a TOML file on top of Default, so omitted keys keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file '%s': %w", path, err)
	}

	return cfg, nil
}

// Validate rejects settings that would only fail later at request time.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Clusters.Algorithm) {
	case "", "lpa", "components":
	default:
		return fmt.Errorf("unknown clusters algorithm %q", c.Clusters.Algorithm)
	}
	if c.Extraction.Prompt != "" {
		if err := validatePrompt(c.Extraction.Prompt); err != nil {
			return fmt.Errorf("extraction prompt: %w", err)
		}
	}
	return nil
}

// validatePrompt requires exactly two %s verbs (context, then input) and no
// other formatting verbs. Literal percent signs must be written as %%.
func validatePrompt(prompt string) error {
	rest := strings.ReplaceAll(prompt, "%%", "")
	if n := strings.Count(rest, "%s"); n != 2 {
		return fmt.Errorf("want 2 %%s verbs (context, input), found %d", n)
	}
	if strings.Contains(strings.ReplaceAll(rest, "%s", ""), "%") {
		return errors.New("only %s verbs are allowed, escape other percent signs as %%")
	}
	return nil
}

// ApplyEnv overrides configuration with environment variables when set.
func (c *Config) ApplyEnv() {
	setString(&c.Server.Port, "PORT")
	setString(&c.Log.Mode, "LOG_MODE")

	if v := os.Getenv("ETHICS_GUIDELINES"); v != "" {
		c.Ethics.Guidelines = splitList(v)
	}
	setString(&c.Recommender.AnchorID, "ANCHOR_ID")
	setString(&c.Extraction.Abstraction, "EXTRACTION_ABSTRACTION")
	setString(&c.Clusters.Algorithm, "CLUSTERS_ALGORITHM")

	setString(&c.LLM.Provider, "LLM_PROVIDER")
	setString(&c.LLM.Model, "LLM_MODEL")
	setString(&c.LLM.EmbeddingModel, "LLM_EMBEDDING_MODEL")
	setString(&c.LLM.APIKey, "LLM_API_KEY")
	setString(&c.LLM.BaseURL, "LLM_BASE_URL")

	setString(&c.Memgraph.URI, "MEMGRAPH_URI")
	setString(&c.Memgraph.User, "MEMGRAPH_USER")
	setString(&c.Memgraph.Password, "MEMGRAPH_PASSWORD")

	setString(&c.Badger.Path, "BADGER_PATH")
	setString(&c.Store.Backend, "STORE_BACKEND")
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
