package main

import (
	"fmt"
	"strings"

	"github.com/jongio/toastnotifier/browser"
	"github.com/jongio/toastnotifier/cache"
	"github.com/jongio/toastnotifier/cliout"
	"github.com/jongio/toastnotifier/logutil"
	"github.com/jongio/toastnotifier/notify"
	"github.com/jongio/toastnotifier/toast"
	"github.com/jongio/toastnotifier/toastconfig"
	"github.com/jongio/toastnotifier/version"
	"github.com/spf13/cobra"
)

var log = logutil.NewLogger("cli")

// app holds the state shared by the commands of one invocation.
type app struct {
	newDelivery func(notify.Config) notify.Delivery
	configPath  string
	opts        *toastconfig.Options
}

func newRootCommand(newDelivery func(notify.Config) notify.Delivery) *cobra.Command {
	a := &app{newDelivery: newDelivery}
	info := version.New("toastnotifier")

	cmd := &cobra.Command{
		Use:   "toastnotifier",
		Short: "Show a toast notification and wait for the user",
		Long: `Show a toast notification and wait for the user

Builds a notification from text lines, an image and a sound, shows it and
waits until it is activated, dismissed, fails or the timeout expires. With
--output-template-file-path the notification is saved as a template file
instead, which --template-file-path shows later.`,
		Example: `  # Two lines with the Mail sound
  toastnotifier -a Build -t "Build finished" -t "All tests passed" --template ToastText02 -s Mail

  # Long display with a repeating alarm
  toastnotifier -a Alarm -t "Wake up" -l -s "Alarm;3" -r

  # Save a template and show it later
  toastnotifier -a Build -t "Deploy done" -o deploy.xml
  toastnotifier -a Build --template-file-path deploy.xml`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              noArgs,
		PersistentPreRunE: a.load,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	flags := cmd.Flags()
	flags.StringP("app-id", "a", "", "A system unique string to identify the sender of the notification")
	flags.StringArrayP("text-lines", "t", nil, "Line of text to display; repeat for up to 3 lines")
	flags.StringP("image", "i", "", "Image to display: a local file path or an image URL")
	flags.String("template", "", fmt.Sprintf("Standard notification template to use (available: %s)", templateNames()))
	flags.BoolP("long-display-duration", "l", false, "Display the notification for 25s instead of 7s")
	flags.StringP("sound", "s", "", "Sound to play: Default, IM, Mail, Reminder, SMS, Alarm;1-10, Call;1-10 or Off")
	flags.BoolP("sound-repeat", "r", false, "Repeat the sound while the notification is displayed")
	flags.String("launch", "", "Activation argument of the notification, typically a URL")
	flags.String("browser", "none", fmt.Sprintf("Open the launch URL when the notification is activated (%s)", browser.FormatValidTargets()))
	flags.StringP("output-template-file-path", "o", "", "Save the notification as a template file instead of displaying it")
	flags.String("template-file-path", "", "Show a template file saved with --output-template-file-path")
	flags.Duration("timeout", toastconfig.DefaultTimeout, "How long to wait for the user; 0 waits forever")
	flags.Bool("fail-on-error", true, "Exit with an error when the notification fails")
	flags.String("app-id-prefix", "toastnotifier", "Prefix joined to the application id with a dot")

	persistent := cmd.PersistentFlags()
	persistent.StringVarP(&a.configPath, "config", "c", "", "Path to a JSON config file")
	persistent.String("format", toastconfig.FormatDefault, "Output format: default, json or yaml")
	persistent.BoolP("debug", "d", false, "Enable debug logging")
	persistent.String("log-format", "text", "Log format: text or json")
	persistent.String("metrics-file", "", "Write notification metrics to this file in Prometheus text format")

	cmd.AddCommand(newCheckCommand(a), newMCPCommand(a, info), version.NewCommand(info))
	return cmd
}

func noArgs(_ *cobra.Command, args []string) error {
	if len(args) > 0 {
		return &usageError{err: fmt.Errorf("unexpected argument %q", args[0])}
	}
	return nil
}

// load merges config file, environment and flags, then applies the logging
// and output settings.
func (a *app) load(cmd *cobra.Command, _ []string) error {
	opts, err := toastconfig.Load(a.configPath, toastconfig.FlagOverrides(cmd.Flags()))
	if err != nil {
		return err
	}
	logutil.SetupLogger(opts.Debug || logutil.IsDebugEnabled(), logutil.ParseFormat(opts.LogFormat))
	if err := cliout.SetFormat(opts.Format); err != nil {
		return err
	}
	a.opts = opts
	log.Debug("options loaded", "config", a.configPath, "format", opts.Format)
	return nil
}

// notifyConfig returns the delivery configuration for the loaded options.
func (a *app) notifyConfig() notify.Config {
	cfg := notify.DefaultConfig()
	cfg.AppIDPrefix = a.opts.AppIDPrefix
	cfg.Images = cache.NewManager(cache.Options{TTL: cache.DefaultTTL})
	return cfg
}

func templateNames() string {
	catalog := toast.Catalog()
	names := make([]string, 0, len(catalog))
	for _, info := range catalog {
		names = append(names, info.Name)
	}
	return strings.Join(names, ", ")
}
