// Command vcam streams a static image as a virtual camera source. Without a
// real session-manager connection it runs the negotiation against the
// in-process host double, which exercises the full format and buffer
// exchange end to end.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/oy3o/vcam"
	"github.com/oy3o/vcam/internal/hostsim"
	"github.com/oy3o/vcam/internal/imaging"
)

func main() {
	app := &cli.App{
		Name:  "vcam",
		Usage: "stream a static image as a virtual camera source",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "TOML config file"},
			&cli.StringFlag{Name: "image", Aliases: []string{"i"}, Usage: "PNG or JPEG to stream; a test pattern is rendered when omitted"},
			&cli.IntFlag{Name: "width", Usage: "frame width"},
			&cli.IntFlag{Name: "height", Usage: "frame height"},
			&cli.IntFlag{Name: "fps", Usage: "frame rate"},
			&cli.StringFlag{Name: "node-name", Usage: "node name presented to the session manager"},
			&cli.IntFlag{Name: "ticks", Value: 3, Usage: "capture ticks to run"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "debug logging"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	level := zerolog.InfoLevel
	if c.Bool("verbose") {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()

	cfg := defaultConfig()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = loadConfig(path, cfg); err != nil {
			return err
		}
	}
	if c.IsSet("image") {
		cfg.Image = c.String("image")
	}
	if c.IsSet("width") {
		cfg.Width = c.Int("width")
	}
	if c.IsSet("height") {
		cfg.Height = c.Int("height")
	}
	if c.IsSet("fps") {
		cfg.FPS = c.Int("fps")
	}
	if c.IsSet("node-name") {
		cfg.NodeName = c.String("node-name")
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	var frame []byte
	if cfg.Image != "" {
		var err error
		if frame, err = imaging.Load(cfg.Image, cfg.Width, cfg.Height); err != nil {
			return err
		}
		log.Info().Str("image", cfg.Image).Msg("image loaded")
	} else {
		frame = imaging.TestPattern(cfg.Width, cfg.Height)
		log.Info().Msg("no image given, using test pattern")
	}

	host := hostsim.New(log)
	stream, err := vcam.New(host, frame, vcam.Config{
		Format: vcam.VideoFormat{
			Width:   uint32(cfg.Width),
			Height:  uint32(cfg.Height),
			RateNum: uint32(cfg.FPS),
			RateDen: 1,
		},
		NodeName: cfg.NodeName,
		Logger:   log,
		OnStateChanged: func(old, next vcam.State) {
			log.Info().Stringer("from", old).Stringer("to", next).Msg("stream state")
		},
	})
	if err != nil {
		// A camera that cannot advertise any mode has no reason to run.
		return cli.Exit(err.Error(), 1)
	}

	region, err := host.RunNegotiation(stream, c.Int("ticks"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	log.Info().
		Stringer("state", stream.State()).
		Int("frame_bytes", len(region)).
		Int("param_updates", len(host.Updates())).
		Msg("negotiation complete, frames delivered")
	return nil
}
