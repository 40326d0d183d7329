package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"resume-match-go/internal/config"
	"resume-match-go/internal/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsInTestEnv(t *testing.T) {
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.NotEmpty(t, cfg.Server.Address)
	assert.Equal(t, constants.MinTextLength, cfg.Extractor.MinTextLength)
	assert.Equal(t, int64(constants.MaxResumeFileSize), cfg.Extractor.MaxFileSizeBytes)

	skill, education, experience, location := cfg.DefaultWeights()
	assert.InDelta(t, constants.DefaultSkillWeight, skill, 0.001)
	assert.InDelta(t, constants.DefaultEducationWeight, education, 0.001)
	assert.InDelta(t, constants.DefaultExperienceWeight, experience, 0.001)
	assert.InDelta(t, constants.DefaultLocationWeight, location, 0.001)
	assert.InDelta(t, 1.0, skill+education+experience+location, 0.001)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `server:
  address: ":9090"
matcher:
  skill_weight: 0.4
  education_weight: 0.2
  experience_weight: 0.3
  location_weight: 0.1
  max_keywords: 12
extractor:
  min_text_length: 50
taxonomy:
  file_path: "custom.yaml"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.InDelta(t, 0.4, cfg.Matcher.SkillWeight, 0.001)
	assert.Equal(t, 12, cfg.Matcher.MaxKeywords)
	assert.Equal(t, 50, cfg.Extractor.MinTextLength)
	assert.Equal(t, "custom.yaml", cfg.Taxonomy.FilePath)

	// 未覆盖的字段保持默认值
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  address: \":8080\"\n"), 0644))

	t.Setenv("RESUME_MATCH_API_KEY", "secret-key")
	t.Setenv("RESUME_MATCH_REDIS_ADDR", "redis.internal:6379")
	t.Setenv("RESUME_MATCH_TAXONOMY", "/etc/resume-match/taxonomy.yaml")

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "secret-key", cfg.Server.APIKey)
	assert.Equal(t, "redis.internal:6379", cfg.Redis.Address)
	assert.Equal(t, "/etc/resume-match/taxonomy.yaml", cfg.Taxonomy.FilePath)
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 30*time.Second, config.GetDuration("30s", time.Minute))
	assert.Equal(t, time.Hour, config.GetDuration("1h", time.Minute))
	assert.Equal(t, time.Minute, config.GetDuration("", time.Minute))
	assert.Equal(t, time.Minute, config.GetDuration("not-a-duration", time.Minute))
}
