package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadYAMLConfigRules(t *testing.T) {
	initLogger("ERROR")

	configYAML := `
server:
  port: "9090"
logging:
  level: DEBUG
redis:
  host: redis.internal
  channel: github-events
rules:
  - channel: "#eng"
    display_name: Eng
    query:
      repo: "^acme/"
      label: urgent
  - channel: "#qa"
    display_name: QA
    query: {}
    exclude_query:
      title: "wip"
`

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	yamlConfig := loadYAMLConfig(path)

	if yamlConfig.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %q", yamlConfig.Server.Port)
	}
	if yamlConfig.Logging.Level != "DEBUG" {
		t.Errorf("expected level DEBUG, got %q", yamlConfig.Logging.Level)
	}
	if len(yamlConfig.Rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(yamlConfig.Rules))
	}

	eng := yamlConfig.Rules[0]
	if eng.Channel != "#eng" || eng.DisplayName != "Eng" {
		t.Errorf("unexpected first rule: %+v", eng)
	}
	if eng.Query.Repo == nil || *eng.Query.Repo != "^acme/" {
		t.Errorf("expected repo pattern ^acme/, got %v", eng.Query.Repo)
	}
	if eng.Query.Title != nil {
		t.Errorf("expected absent title pattern, got %v", eng.Query.Title)
	}
	if eng.ExcludeQuery != nil {
		t.Errorf("expected no exclude query, got %+v", eng.ExcludeQuery)
	}

	qa := yamlConfig.Rules[1]
	if qa.ExcludeQuery == nil || qa.ExcludeQuery.Title == nil || *qa.ExcludeQuery.Title != "wip" {
		t.Errorf("expected exclude title wip, got %+v", qa.ExcludeQuery)
	}

	// The loaded rules must compile cleanly.
	if _, err := CompileRules(yamlConfig.Rules); err != nil {
		t.Errorf("expected rules to compile, got %v", err)
	}
}

func TestYAMLDistinguishesEmptyFromAbsentPattern(t *testing.T) {
	initLogger("ERROR")

	configYAML := `
rules:
  - channel: "#eng"
    display_name: Eng
    query:
      body: ""
`

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	yamlConfig := loadYAMLConfig(path)
	if len(yamlConfig.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(yamlConfig.Rules))
	}

	q := yamlConfig.Rules[0].Query
	if q.Body == nil || *q.Body != "" {
		t.Fatalf("expected present-but-empty body pattern, got %v", q.Body)
	}
	if q.Repo != nil {
		t.Errorf("expected absent repo pattern, got %v", q.Repo)
	}

	// Present-but-empty compiles (load-time is lenient about it) but never
	// matches at evaluation time.
	rules, err := CompileRules(yamlConfig.Rules)
	if err != nil {
		t.Fatalf("CompileRules failed: %v", err)
	}
	if matches := matchRules(testIssueEvent(), rules); len(matches) != 0 {
		t.Errorf("expected empty pattern to never match, got %v", matches)
	}
}

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name      string
		envValue  string
		yamlValue string
		expected  string
	}{
		{
			name:      "env wins over yaml",
			envValue:  "from-env",
			yamlValue: "from-yaml",
			expected:  "from-env",
		},
		{
			name:      "yaml wins over default",
			envValue:  "",
			yamlValue: "from-yaml",
			expected:  "from-yaml",
		},
		{
			name:      "default when nothing set",
			envValue:  "",
			yamlValue: "",
			expected:  "fallback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "HUBHOOK_TEST_VALUE"
			if tt.envValue != "" {
				t.Setenv(key, tt.envValue)
			}
			if got := getEnvOrDefault(key, tt.yamlValue, "fallback"); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
