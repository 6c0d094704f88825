package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const validConfig = `
telegram:
  token: "123456:test-token"
  admin_user_id: 42
  group_chat_id: -100123
  personal_chat_id: 99
`

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	require.NoError(t, err)

	require.Equal(t, "123456:test-token", cfg.Telegram.Token)
	require.Equal(t, int64(42), cfg.Telegram.AdminUserID)
	require.Equal(t, int64(-100123), cfg.Telegram.GroupChatID)

	// Defaults fill in everything else.
	require.Equal(t, "Europe/Amsterdam", cfg.Timezone)
	require.NotNil(t, cfg.Location)
	require.Equal(t, "Others", cfg.DefaultGroup)
	require.Equal(t, "birthdays.json", cfg.Store.Path)
	require.Equal(t, float64(1000), cfg.Bitcoin.ThresholdStep)

	task, ok := cfg.Scheduler.Tasks[TaskBirthdayReminder]
	require.True(t, ok)
	require.True(t, task.Enabled)
	require.Equal(t, "0 8 * * *", task.Schedule)
	require.ElementsMatch(t, []string{DestinationGroup, DestinationPersonal}, task.Destinations)
}

func TestLoadConfigMissingRequired(t *testing.T) {
	// Token and chat ids absent: must fail fast, not start degraded.
	_, err := LoadConfig(writeConfig(t, "timezone: Europe/Amsterdam\n"))
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestLoadConfigUnknownTimezone(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, validConfig+"timezone: Mars/Olympus\n"))
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestLoadConfigBadDestination(t *testing.T) {
	cfg := validConfig + `
scheduler:
  tasks:
    birthday_reminder:
      enabled: true
      schedule: "0 8 * * *"
      destinations: ["everyone"]
`
	_, err := LoadConfig(writeConfig(t, cfg))
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestChatID(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	require.NoError(t, err)

	id, ok := cfg.ChatID(DestinationGroup)
	require.True(t, ok)
	require.Equal(t, int64(-100123), id)

	id, ok = cfg.ChatID(DestinationPersonal)
	require.True(t, ok)
	require.Equal(t, int64(99), id)

	_, ok = cfg.ChatID("nowhere")
	require.False(t, ok)
}
