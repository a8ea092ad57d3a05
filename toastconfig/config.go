package toastconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jongio/toastnotifier/fileutil"
	"github.com/jongio/toastnotifier/logutil"
	"github.com/jongio/toastnotifier/security"
	"github.com/jongio/toastnotifier/toast"
	"github.com/jongio/toastnotifier/urlutil"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "TOAST_"

// DefaultTimeout bounds how long a shown notification is waited for.
const DefaultTimeout = 30 * time.Second

// Output formats.
const (
	FormatDefault = "default"
	FormatJSON    = "json"
	FormatYAML    = "yaml"
)

// Options is everything one run of the notifier needs.
type Options struct {
	AppID       string   `koanf:"app_id"`
	TextLines   []string `koanf:"text_lines" validate:"max=3"`
	Image       string   `koanf:"image"`
	Template    string   `koanf:"template"`
	LongDisplay bool     `koanf:"long_display_duration"`
	Sound       string   `koanf:"sound"`
	SoundRepeat bool     `koanf:"sound_repeat"`
	// Launch is the activation argument written into the document.
	Launch string `koanf:"launch"`
	// Browser opens the launch URL of an activated notification unless "none".
	Browser string `koanf:"browser" validate:"oneof=default none"`

	// OutputPath exports the document instead of showing it.
	OutputPath string `koanf:"output_template_file_path" validate:"excluded_with=InputPath"`
	// InputPath shows a stored document instead of building one.
	InputPath string `koanf:"template_file_path"`

	Timeout     time.Duration `koanf:"timeout" validate:"min=0"`
	FailOnError bool          `koanf:"fail_on_error"`
	AppIDPrefix string        `koanf:"app_id_prefix"`

	Format      string `koanf:"format" validate:"oneof=default json yaml"`
	LogFormat   string `koanf:"log_format" validate:"oneof=text json"`
	Debug       bool   `koanf:"debug"`
	MetricsFile string `koanf:"metrics_file"`
}

// ErrConflictingOptions is returned for option combinations that cannot
// be used together.
var ErrConflictingOptions = fmt.Errorf("%w: conflicting options", toast.ErrValidation)

// Defaults returns the default option values keyed like the config file.
func Defaults() map[string]any {
	return map[string]any{
		"timeout":       DefaultTimeout,
		"fail_on_error": true,
		"app_id_prefix": "toastnotifier",
		"format":        FormatDefault,
		"log_format":    "text",
		"browser":       "none",
	}
}

var log = logutil.NewLogger("config")

// Load merges defaults, the JSON file at path (skipped when path is empty),
// the environment and overrides, then validates the result.
func Load(path string, overrides map[string]any) (*Options, error) {
	k := koanf.New(".")

	for key, value := range Defaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to set default %s: %w", key, err)
		}
	}

	if path != "" {
		if err := security.ValidateFilePermissions(path); err != nil {
			if !errors.Is(err, security.ErrInsecureFilePermissions) {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
			log.Warn("config file is writable by other users", "path", path)
		}
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	for key, value := range overrides {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to apply option %s: %w", key, err)
		}
	}

	var opts Options
	if err := k.Unmarshal("", &opts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &opts, nil
}

// envTransform converts environment variable names to config keys.
// Example: TOAST_APP_ID -> app_id
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// FlagKey returns the config key of a command line flag.
func FlagKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// FlagOverrides returns the values of the flags in fs that were set on the
// command line, keyed like the config file.
func FlagOverrides(fs *pflag.FlagSet) map[string]any {
	overrides := make(map[string]any)
	fs.Visit(func(f *pflag.Flag) {
		key := FlagKey(f.Name)
		switch f.Value.Type() {
		case "stringArray":
			if v, err := fs.GetStringArray(f.Name); err == nil {
				overrides[key] = v
			}
		case "stringSlice":
			if v, err := fs.GetStringSlice(f.Name); err == nil {
				overrides[key] = v
			}
		case "bool":
			if v, err := fs.GetBool(f.Name); err == nil {
				overrides[key] = v
			}
		case "duration":
			if v, err := fs.GetDuration(f.Name); err == nil {
				overrides[key] = v
			}
		default:
			overrides[key] = f.Value.String()
		}
	})
	return overrides
}

var validate = validator.New()

// Validate checks the option values after merging.
func (o *Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s", toast.ErrValidation, describe(verrs[0]))
		}
		return fmt.Errorf("%w: %w", toast.ErrValidation, err)
	}
	return nil
}

// CheckNotification checks the options needed to build, show or export a
// notification.
func (o *Options) CheckNotification() error {
	if o.AppID == "" {
		return fmt.Errorf("%w: app_id is required", toast.ErrValidation)
	}
	if err := security.ValidateAppID(o.AppID); err != nil {
		return fmt.Errorf("%w: %w", toast.ErrValidation, err)
	}

	if o.Image != "" && urlutil.IsURL(o.Image) {
		if err := urlutil.ValidateImage(o.Image); err != nil {
			return fmt.Errorf("%w: image: %w", toast.ErrValidation, err)
		}
	}

	if o.Launch != "" && o.Browser != "none" {
		if err := urlutil.Validate(o.Launch); err != nil {
			return fmt.Errorf("%w: launch: %w", toast.ErrValidation, err)
		}
	}

	if o.InputPath != "" {
		if used := o.builderOptions(); len(used) > 0 {
			return fmt.Errorf("%w: template_file_path cannot be combined with %s", ErrConflictingOptions, strings.Join(used, ", "))
		}
	}
	return nil
}

// Document returns the stored document in import mode and builds one from
// the builder options otherwise.
func (o *Options) Document() (*toast.Document, error) {
	if o.ImportMode() {
		return o.ReadDocument()
	}
	b, err := toast.NewBuilderFromRequest(o.Request())
	if err != nil {
		return nil, err
	}
	return b.Build(), nil
}

func (o *Options) builderOptions() []string {
	var used []string
	if len(o.TextLines) > 0 {
		used = append(used, "text_lines")
	}
	if o.Image != "" {
		used = append(used, "image")
	}
	if o.Template != "" {
		used = append(used, "template")
	}
	if o.LongDisplay {
		used = append(used, "long_display_duration")
	}
	if o.Sound != "" {
		used = append(used, "sound")
	}
	if o.SoundRepeat {
		used = append(used, "sound_repeat")
	}
	if o.Launch != "" {
		used = append(used, "launch")
	}
	return used
}

func describe(fe validator.FieldError) string {
	key := fieldKeys[fe.StructField()]
	switch fe.Tag() {
	case "max":
		return fmt.Sprintf("%s allows at most %s values", key, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", key, fe.Param())
	case "excluded_with":
		return fmt.Sprintf("%s cannot be combined with %s", key, fieldKeys[fe.Param()])
	}
	return fmt.Sprintf("%s is invalid (%s)", key, fe.Tag())
}

var fieldKeys = map[string]string{
	"TextLines":  "text_lines",
	"OutputPath": "output_template_file_path",
	"InputPath":  "template_file_path",
	"Timeout":    "timeout",
	"Format":     "format",
	"LogFormat":  "log_format",
	"Browser":    "browser",
}

// Request converts the builder options.
func (o *Options) Request() toast.Request {
	return toast.Request{
		Lines:        o.TextLines,
		Image:        o.Image,
		Template:     o.Template,
		LongDuration: o.LongDisplay,
		Sound:        o.Sound,
		LoopSound:    o.SoundRepeat,
		Launch:       o.Launch,
	}
}

// ImportMode reports whether a stored document is shown.
func (o *Options) ImportMode() bool {
	return o.InputPath != ""
}

// ExportMode reports whether the document is written instead of shown.
func (o *Options) ExportMode() bool {
	return o.OutputPath != ""
}

// ReadDocument loads the stored document named by InputPath.
func (o *Options) ReadDocument() (*toast.Document, error) {
	data, err := fileutil.ReadFileLimit(o.InputPath, fileutil.MaxDocumentSize)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}
	return toast.ParseDocument(data)
}
