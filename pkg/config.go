package pkg

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/qnkhuat/dragchess/pkg/gui"
)

// Config is the optional JSON config file. Flags override it.
type Config struct {
	EnginePath  string         `json:"enginePath"`
	ThinkTime   Duration       `json:"thinkTime"`
	TimeControl string         `json:"timeControl"`
	Mode        string         `json:"mode"`
	Theme       string         `json:"theme"`
	Themes      []gui.ThemeHex `json:"themes"`
	WhiteName   string         `json:"whiteName"`
	BlackName   string         `json:"blackName"`
	AssetDir    string         `json:"assetDir"`
}

// Duration reads "2s" style strings from JSON
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"2s\": %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func DefaultConfig() Config {
	return Config{
		EnginePath:  DefaultEnginePath,
		ThinkTime:   Duration(DefaultThinkTime),
		TimeControl: DefaultTimeControl.Label,
		Mode:        "hvh",
		Theme:       gui.ThemeBasic.Name,
	}
}

// LoadConfig reads path on top of DefaultConfig. An empty path returns the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve turns the config into controller options. Layout, engine and
// logger are left for the caller.
func (cfg Config) Resolve() (Options, error) {
	var opts Options
	tc, err := ParseTimeControl(cfg.TimeControl)
	if err != nil {
		return opts, err
	}
	mode, err := ParseMode(cfg.Mode)
	if err != nil {
		return opts, err
	}
	theme, err := gui.ImportThemes(cfg.Theme, cfg.Themes)
	if err != nil {
		return opts, fmt.Errorf("%w: %q", err, cfg.Theme)
	}
	if cfg.ThinkTime <= 0 {
		return opts, fmt.Errorf("think time must be positive, got %s", time.Duration(cfg.ThinkTime))
	}

	opts.TimeControl = tc
	opts.Mode = mode
	opts.Theme = theme
	opts.ThinkTime = time.Duration(cfg.ThinkTime)
	opts.Players = NewPlayers(cfg.WhiteName, cfg.BlackName)
	return opts, nil
}

// Dump writes cfg as a config file. The selected theme is written out in
// full so it can be edited.
func (cfg Config) Dump(w io.Writer) error {
	theme, err := gui.ImportThemes(cfg.Theme, cfg.Themes)
	if err != nil {
		return fmt.Errorf("%w: %q", err, cfg.Theme)
	}
	cfg.Themes = []gui.ThemeHex{theme.Hex()}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}

// FlagValues are the command line overrides shared by the binaries
type FlagValues struct {
	fs *flag.FlagSet

	ConfigPath  string
	LogPath     string
	EnginePath  string
	ThinkTime   time.Duration
	TimeControl string
	Mode        string
	Theme       string
	WhiteName   string
	BlackName   string
	DumpConfig  bool
}

func BindFlags(fs *flag.FlagSet, defaultLog string) *FlagValues {
	fv := &FlagValues{fs: fs}
	fs.StringVar(&fv.ConfigPath, "config", "", "path to JSON config file")
	fs.StringVar(&fv.LogPath, "log", defaultLog, "path to log file")
	fs.StringVar(&fv.EnginePath, "engine", DefaultEnginePath, "UCI engine binary")
	fs.DurationVar(&fv.ThinkTime, "think", DefaultThinkTime, "engine thinking time per move")
	fs.StringVar(&fv.TimeControl, "time", DefaultTimeControl.Label, "time control as minutes+increment")
	fs.StringVar(&fv.Mode, "mode", "hvh", "game mode: hvh or hva")
	fs.StringVar(&fv.Theme, "theme", gui.ThemeBasic.Name, "color theme")
	fs.StringVar(&fv.WhiteName, "white", "", "white player's name")
	fs.StringVar(&fv.BlackName, "black", "", "black player's name")
	fs.BoolVar(&fv.DumpConfig, "dump-config", false, "print the effective config as JSON and exit")
	return fv
}

// Apply copies the flags that were set explicitly onto cfg
func (fv *FlagValues) Apply(cfg *Config) {
	fv.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "engine":
			cfg.EnginePath = fv.EnginePath
		case "think":
			cfg.ThinkTime = Duration(fv.ThinkTime)
		case "time":
			cfg.TimeControl = fv.TimeControl
		case "mode":
			cfg.Mode = fv.Mode
		case "theme":
			cfg.Theme = fv.Theme
		case "white":
			cfg.WhiteName = fv.WhiteName
		case "black":
			cfg.BlackName = fv.BlackName
		}
	})
}
