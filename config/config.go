// Package config loads the settings for a match from a TOML file. Anything
// the file leaves out keeps its default.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mo-shahab/go-hockey/game"
	"github.com/mo-shahab/go-hockey/protocol"
	"github.com/mo-shahab/go-hockey/session"
)

var ErrInvalid = errors.New("invalid config")

// Duration is a time.Duration written as a string such as "90s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type Network struct {
	// Addr is where the host listens, and where the guest dials.
	Addr  string `toml:"addr"`
	Codec string `toml:"codec"`
	// WaitTimeout bounds how long a host keeps its room open for a guest.
	WaitTimeout Duration `toml:"wait_timeout"`
	DialTimeout Duration `toml:"dial_timeout"`
}

type Match struct {
	WinScore      int     `toml:"win_score"`
	FrameRate     int     `toml:"frame_rate"`
	FollowSpeed   float64 `toml:"follow_speed"`
	Interpolation float64 `toml:"interpolation"`
}

type Config struct {
	Network Network     `toml:"network"`
	Physics game.Tuning `toml:"physics"`
	Match   Match       `toml:"match"`
}

func Default() Config {
	return Config{
		Network: Network{
			Addr:        "localhost:8080",
			Codec:       protocol.DefaultCodec,
			WaitTimeout: Duration{90 * time.Second},
			DialTimeout: Duration{10 * time.Second},
		},
		Physics: game.DefaultTuning(),
		Match: Match{
			WinScore:      7,
			FrameRate:     60,
			FollowSpeed:   0.5,
			Interpolation: session.DefaultInterpolation,
		},
	}
}

// Load reads path over the defaults. Unknown keys are an error so a typo
// does not silently fall back to a default.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%w: %s: unknown keys %v", ErrInvalid, path, undecoded)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Network.Addr == "" {
		return fmt.Errorf("%w: network.addr is empty", ErrInvalid)
	}
	if _, err := protocol.CodecByName(c.Network.Codec); err != nil {
		return fmt.Errorf("%w: network.codec: %v", ErrInvalid, err)
	}
	if c.Network.WaitTimeout.Duration < 0 || c.Network.DialTimeout.Duration < 0 {
		return fmt.Errorf("%w: timeouts must not be negative", ErrInvalid)
	}
	if c.Match.WinScore < 1 {
		return fmt.Errorf("%w: match.win_score must be at least 1, got %d", ErrInvalid, c.Match.WinScore)
	}
	if c.Match.FrameRate < 1 || c.Match.FrameRate > 1000 {
		return fmt.Errorf("%w: match.frame_rate must be in [1, 1000], got %d", ErrInvalid, c.Match.FrameRate)
	}
	if !(c.Match.FollowSpeed > 0 && c.Match.FollowSpeed <= 1) {
		return fmt.Errorf("%w: match.follow_speed must be in (0, 1], got %v", ErrInvalid, c.Match.FollowSpeed)
	}
	if !(c.Match.Interpolation > 0 && c.Match.Interpolation <= 1) {
		return fmt.Errorf("%w: match.interpolation must be in (0, 1], got %v", ErrInvalid, c.Match.Interpolation)
	}
	if err := c.Physics.Validate(); err != nil {
		return fmt.Errorf("%w: physics: %v", ErrInvalid, err)
	}
	return nil
}

// Session returns the frame loop settings, logging under name.
func (c Config) Session(name string) session.Config {
	return session.Config{
		Name:        name,
		FrameRate:   c.Match.FrameRate,
		FollowSpeed: c.Match.FollowSpeed,
		WinScore:    c.Match.WinScore,
	}
}
