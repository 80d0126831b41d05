package config_test

import (
	"os"
	"testing"

	"github.com/km-arc/go-inject/framework/config"
	"github.com/sirupsen/logrus"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func setEnv(t *testing.T, key, val string) {
	t.Helper()
	t.Setenv(key, val) // automatically restored after test
}

// unsetEnv clears key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

// ── Load ─────────────────────────────────────────────────────────────────────

func TestLoad_Defaults(t *testing.T) {
	// No env set → verify all defaults
	cfg := config.Load("testdata/empty.env")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"App.Name", cfg.App.Name, "GoInject"},
		{"App.Env", cfg.App.Env, "local"},
		{"Container.RootScope", cfg.Container.RootScope, "app"},
		{"Container.LogLevel", cfg.Container.LogLevel, "info"},
		{"Debug.Addr", cfg.Debug.Addr, ":8000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
	if cfg.Container.StrictBindings {
		t.Error("StrictBindings should default to false")
	}
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	setEnv(t, "APP_NAME", "MyApp")
	setEnv(t, "APP_ENV", "production")
	setEnv(t, "INJECT_ROOT_SCOPE", "root")
	setEnv(t, "INJECT_STRICT_BINDINGS", "true")
	setEnv(t, "DEBUG_ADDR", ":9000")

	cfg := config.Load("testdata/empty.env")

	if cfg.App.Name != "MyApp" {
		t.Errorf("App.Name: got %q want %q", cfg.App.Name, "MyApp")
	}
	if cfg.App.Env != "production" {
		t.Errorf("App.Env: got %q want %q", cfg.App.Env, "production")
	}
	if cfg.Container.RootScope != "root" {
		t.Errorf("Container.RootScope: got %q want %q", cfg.Container.RootScope, "root")
	}
	if !cfg.Container.StrictBindings {
		t.Error("Container.StrictBindings: want true")
	}
	if cfg.Debug.Addr != ":9000" {
		t.Errorf("Debug.Addr: got %q want %q", cfg.Debug.Addr, ":9000")
	}
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	for _, k := range []string{"APP_NAME", "INJECT_ROOT_SCOPE", "INJECT_STRICT_BINDINGS"} {
		unsetEnv(t, k)
	}

	cfg := config.Load("testdata/app.env")

	if cfg.App.Name != "FromFile" {
		t.Errorf("App.Name: got %q want FromFile", cfg.App.Name)
	}
	if cfg.Container.RootScope != "file-root" {
		t.Errorf("Container.RootScope: got %q want file-root", cfg.Container.RootScope)
	}
	if !cfg.Container.StrictBindings {
		t.Error("Container.StrictBindings: want true from file")
	}
}

func TestLoad_AppDebugFalse(t *testing.T) {
	setEnv(t, "APP_DEBUG", "false")
	cfg := config.Load("testdata/empty.env")
	if cfg.App.Debug {
		t.Error("expected App.Debug to be false")
	}
}

func TestContainerConfig_Level(t *testing.T) {
	tests := []struct {
		in   string
		want logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"warn", logrus.WarnLevel},
		{"nonsense", logrus.InfoLevel},
	}
	for _, tt := range tests {
		c := config.ContainerConfig{LogLevel: tt.in}
		if got := c.Level(); got != tt.want {
			t.Errorf("Level(%q): got %v want %v", tt.in, got, tt.want)
		}
	}
}

// ── Get / GetInt / GetBool ───────────────────────────────────────────────────

func TestGet_ReturnsValue(t *testing.T) {
	setEnv(t, "CUSTOM_KEY", "hello")
	if got := config.Get("CUSTOM_KEY", "default"); got != "hello" {
		t.Errorf("got %q want %q", got, "hello")
	}
}

func TestGet_ReturnsFallback(t *testing.T) {
	unsetEnv(t, "MISSING_KEY")
	if got := config.Get("MISSING_KEY", "fallback"); got != "fallback" {
		t.Errorf("got %q want %q", got, "fallback")
	}
}

func TestGetInt_ReturnsInt(t *testing.T) {
	setEnv(t, "SOME_INT", "42")
	if got := config.GetInt("SOME_INT", 0); got != 42 {
		t.Errorf("got %d want %d", got, 42)
	}
}

func TestGetInt_ReturnsFallbackOnInvalid(t *testing.T) {
	setEnv(t, "SOME_INT", "notanint")
	if got := config.GetInt("SOME_INT", 99); got != 99 {
		t.Errorf("got %d want %d", got, 99)
	}
}

func TestGetBool_True(t *testing.T) {
	for _, val := range []string{"true", "1", "True", "TRUE"} {
		setEnv(t, "BOOL_KEY", val)
		if !config.GetBool("BOOL_KEY", false) {
			t.Errorf("expected true for %q", val)
		}
	}
}

func TestGetBool_ReturnsFallbackOnInvalid(t *testing.T) {
	setEnv(t, "BOOL_KEY", "notabool")
	if config.GetBool("BOOL_KEY", true) != true {
		t.Error("expected fallback true")
	}
}
