package toastconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jongio/toastnotifier/toast"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "toast.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	opts, err := Load("", map[string]any{"app_id": "build"})
	require.NoError(t, err)

	assert.Equal(t, "build", opts.AppID)
	assert.Equal(t, DefaultTimeout, opts.Timeout)
	assert.True(t, opts.FailOnError)
	assert.Equal(t, "toastnotifier", opts.AppIDPrefix)
	assert.Equal(t, FormatDefault, opts.Format)
	assert.Equal(t, "none", opts.Browser)
	assert.False(t, opts.ImportMode())
	assert.False(t, opts.ExportMode())
}

func TestLoad_Precedence(t *testing.T) {
	path := writeConfig(t, `{
		"app_id": "from-file",
		"text_lines": ["Hello", "World"],
		"template": "ToastText02",
		"timeout": "10s",
		"format": "json"
	}`)
	t.Setenv("TOAST_APP_ID", "from-env")
	t.Setenv("TOAST_TIMEOUT", "45s")

	opts, err := Load(path, map[string]any{"app_id": "from-flag"})
	require.NoError(t, err)

	assert.Equal(t, "from-flag", opts.AppID)
	assert.Equal(t, 45*time.Second, opts.Timeout)
	assert.Equal(t, []string{"Hello", "World"}, opts.TextLines)
	assert.Equal(t, "ToastText02", opts.Template)
	assert.Equal(t, FormatJSON, opts.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `{"app_id": "from-file", "sound": "Mail"}`)
	t.Setenv("TOAST_SOUND", "Alarm;3")

	opts, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "from-file", opts.AppID)
	assert.Equal(t, "Alarm;3", opts.Sound)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]any
		contains  string
	}{
		{
			name:      "too many lines",
			overrides: map[string]any{"text_lines": []string{"1", "2", "3", "4"}},
			contains:  "text_lines allows at most 3 values",
		},
		{
			name:      "unknown browser",
			overrides: map[string]any{"browser": "chrome"},
			contains:  "browser must be one of",
		},
		{
			name:      "unknown output format",
			overrides: map[string]any{"format": "xml"},
			contains:  "format must be one of",
		},
		{
			name: "export and import",
			overrides: map[string]any{
				"template_file_path":        "in.xml",
				"output_template_file_path": "out.xml",
			},
			contains: "output_template_file_path cannot be combined with template_file_path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load("", tt.overrides)
			require.Error(t, err)
			assert.ErrorIs(t, err, toast.ErrValidation)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestCheckNotification(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]any
		contains  string
	}{
		{
			name:     "missing app id",
			contains: "app_id is required",
		},
		{
			name:      "invalid app id",
			overrides: map[string]any{"app_id": "bad'id"},
			contains:  "invalid application id",
		},
		{
			name:      "unsupported image scheme",
			overrides: map[string]any{"app_id": "a", "image": "ftp://example.com/a.png"},
			contains:  "unsupported image scheme",
		},
		{
			name:      "launch must be a web url when opened",
			overrides: map[string]any{"app_id": "a", "launch": "file:///etc/passwd", "browser": "default"},
			contains:  "launch",
		},
		{
			name: "import with builder options",
			overrides: map[string]any{
				"app_id":             "a",
				"template_file_path": "in.xml",
				"text_lines":         []string{"Hello"},
				"sound":              "Mail",
			},
			contains: "template_file_path cannot be combined with text_lines, sound",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := Load("", tt.overrides)
			require.NoError(t, err)

			err = opts.CheckNotification()
			require.Error(t, err)
			assert.ErrorIs(t, err, toast.ErrValidation)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}

	opts, err := Load("", map[string]any{"app_id": "Contoso.App"})
	require.NoError(t, err)
	assert.NoError(t, opts.CheckNotification())
}

func TestDocument(t *testing.T) {
	opts, err := Load("", map[string]any{
		"app_id":     "a",
		"text_lines": []string{"Title", "Body"},
		"template":   "ToastText02",
	})
	require.NoError(t, err)

	doc, err := opts.Document()
	require.NoError(t, err)
	assert.Equal(t, "ToastText02", doc.TemplateName())
	assert.Equal(t, []string{"Title", "Body"}, doc.Lines())

	data, err := doc.XML()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "stored.xml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	opts, err = Load("", map[string]any{"app_id": "a", "template_file_path": path})
	require.NoError(t, err)
	stored, err := opts.Document()
	require.NoError(t, err)
	assert.Equal(t, doc.String(), stored.String())
}

func TestLoad_BadConfigFile(t *testing.T) {
	_, err := Load(writeConfig(t, `{not json`), map[string]any{"app_id": "a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config file")

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"), map[string]any{"app_id": "a"})
	assert.Error(t, err)
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("toastnotifier", pflag.ContinueOnError)
	fs.StringP("app-id", "a", "", "")
	fs.StringArrayP("text-lines", "t", nil, "")
	fs.BoolP("long-display-duration", "l", false, "")
	fs.Duration("timeout", DefaultTimeout, "")
	fs.StringP("sound", "s", "", "")
	return fs
}

func TestFlagOverrides(t *testing.T) {
	fs := newFlagSet()
	require.NoError(t, fs.Parse([]string{"-a", "build", "-t", "Hello", "-t", "World, again", "-l", "--timeout", "5s"}))

	overrides := FlagOverrides(fs)
	assert.Equal(t, map[string]any{
		"app_id":                "build",
		"text_lines":            []string{"Hello", "World, again"},
		"long_display_duration": true,
		"timeout":               5 * time.Second,
	}, overrides)

	opts, err := Load("", overrides)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello", "World, again"}, opts.TextLines)
	assert.True(t, opts.LongDisplay)
	assert.Equal(t, 5*time.Second, opts.Timeout)
}

func TestFlagOverrides_UnsetFlagsDoNotOverride(t *testing.T) {
	t.Setenv("TOAST_SOUND", "IM")
	fs := newFlagSet()
	require.NoError(t, fs.Parse([]string{"-a", "build"}))

	opts, err := Load("", FlagOverrides(fs))
	require.NoError(t, err)
	assert.Equal(t, "IM", opts.Sound)
	assert.Equal(t, DefaultTimeout, opts.Timeout)
}

func TestRequest(t *testing.T) {
	opts := Options{
		TextLines:   []string{"Hello"},
		Image:       "https://example.com/a.png",
		Template:    "ToastImageAndText01",
		LongDisplay: true,
		Sound:       "Call;3",
		SoundRepeat: true,
	}
	assert.Equal(t, toast.Request{
		Lines:        []string{"Hello"},
		Image:        "https://example.com/a.png",
		Template:     "ToastImageAndText01",
		LongDuration: true,
		Sound:        "Call;3",
		LoopSound:    true,
	}, opts.Request())
}

func TestReadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toast.xml")
	xml := `<toast><visual><binding template="ToastText01"><text id="1">Stored</text></binding></visual></toast>`
	require.NoError(t, os.WriteFile(path, []byte(xml), 0o600))

	opts := Options{InputPath: path}
	assert.True(t, opts.ImportMode())
	doc, err := opts.ReadDocument()
	require.NoError(t, err)
	assert.Equal(t, []string{"Stored"}, doc.Lines())
	assert.Equal(t, xml, doc.String())

	opts.InputPath = filepath.Join(t.TempDir(), "missing.xml")
	_, err = opts.ReadDocument()
	assert.Error(t, err)
}
