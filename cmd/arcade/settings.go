package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mini-arcade/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings [key] [value]",
	Short: "Show or change preferences",
	Long: `Without arguments, print all preferences. With a key, print it.
With a key and a value, change it.

Keys:
  theme  - ` + strings.Join(settings.Themes, ", ") + `
  audio  - on or off

Examples:
  arcade settings
  arcade settings theme neon
  arcade settings audio off`,
	Args: cobra.MaximumNArgs(2),
	RunE: runSettings,
}

func runSettings(cmd *cobra.Command, args []string) error {
	svc, runs := openServices()
	if runs != nil {
		defer runs.Close()
	} else {
		logger.Warn("no database, changes will not be saved")
	}
	s := svc.Settings
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		fmt.Fprintf(out, "theme = %s\n", s.Theme())
		fmt.Fprintf(out, "audio = %s\n", onOff(s.AudioEnabled()))
		return nil
	}

	key := args[0]
	switch key {
	case "theme":
		if len(args) == 2 {
			if err := s.SetTheme(args[1]); err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "theme = %s\n", s.Theme())
	case "audio":
		if len(args) == 2 {
			on, err := parseOnOff(args[1])
			if err != nil {
				return err
			}
			s.SetAudioEnabled(on)
		}
		fmt.Fprintf(out, "audio = %s\n", onOff(s.AudioEnabled()))
	default:
		return fmt.Errorf("unknown setting %q (theme, audio)", key)
	}
	return nil
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func parseOnOff(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	on, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid audio value %q: use on or off", v)
	}
	return on, nil
}
