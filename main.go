package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mo-shahab/go-hockey/audio"
	"github.com/mo-shahab/go-hockey/client"
	"github.com/mo-shahab/go-hockey/config"
	"github.com/mo-shahab/go-hockey/field"
	"github.com/mo-shahab/go-hockey/input"
	"github.com/mo-shahab/go-hockey/protocol"
	"github.com/mo-shahab/go-hockey/session"
	"github.com/mo-shahab/go-hockey/tui"
	"github.com/mo-shahab/go-hockey/wsserver"
)

func main() {
	os.Exit(run())
}

// run plays one match and returns the process exit code. Everything that
// needs undoing is deferred here, so it runs before the process exits.
func run() int {
	var (
		host      = flag.Bool("host", false, "open a room and wait for a guest")
		join      = flag.String("join", "", "join the room with this id")
		addr      = flag.String("addr", "", "listen address for -host, host address for -join")
		codecName = flag.String("codec", "", "wire codec: json, msgpack or proto")
		cfgPath   = flag.String("config", "", "TOML config file")
		useTUI    = flag.Bool("tui", false, "draw the rink in the terminal")
		useBot    = flag.Bool("bot", false, "let the computer move your paddle")
		sound     = flag.Bool("sound", false, "play sound effects")
		logPath   = flag.String("log", "", "write logs to this file")
		seed      = flag.Int64("seed", 0, "seed for the serve, 0 picks one")
	)
	flag.Parse()

	if *host == (*join != "") {
		fmt.Fprintln(os.Stderr, "exactly one of -host or -join <room> is required")
		flag.Usage()
		return 2
	}

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Print(err)
			return 1
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.Network.Addr = *addr
	}
	if *codecName != "" {
		cfg.Network.Codec = *codecName
	}
	if err := cfg.Validate(); err != nil {
		log.Print(err)
		return 1
	}
	codec, err := protocol.CodecByName(cfg.Network.Codec)
	if err != nil {
		log.Print(err)
		return 1
	}

	switch {
	case *logPath != "":
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Printf("open log file: %v", err)
			return 1
		}
		defer f.Close()
		log.SetOutput(f)
	case *useTUI:
		// the view owns the terminal
		log.SetOutput(io.Discard)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// printed after the terminal view is torn down
	var summary string
	defer func() {
		if summary != "" {
			fmt.Println(summary)
		}
	}()

	var (
		link *client.Client
		role session.Role
		name string
	)
	if *host {
		name = "host"
		link, err = hostMatch(ctx, cfg, codec)
		if err != nil {
			log.Printf("[host] %v", err)
			return 1
		}
		rng := rand.New(rand.NewSource(*seed))
		if *seed == 0 {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		role = session.NewAuthority(field.SideLeft, cfg.Physics, rng)
	} else {
		name = "guest"
		dialCtx, cancel := context.WithTimeout(ctx, cfg.Network.DialTimeout.Duration)
		link, err = wsserver.Dial(dialCtx, cfg.Network.Addr, *join, codec)
		cancel()
		if err != nil {
			log.Printf("[guest] %v", err)
			return 1
		}
		role = session.NewFollower(field.SideRight, cfg.Match.Interpolation)
	}
	defer link.Close()

	var src input.Source = input.NewBot()
	var observers []session.Observer

	if *useTUI {
		view, err := tui.New(role.Side())
		if err != nil {
			log.Printf("[%s] open terminal: %v", name, err)
			return 1
		}
		defer view.Close()
		go view.Run(ctx)
		go func() {
			<-view.Quit()
			stop()
		}()
		observers = append(observers, view)
		if !*useBot {
			src = view
		}
	}

	if *sound {
		player := audio.NewPlayer()
		if err := player.Init(); err != nil {
			log.Printf("[%s] Sound disabled: %v", name, err)
		} else {
			defer player.Close()
			observers = append(observers, player)
		}
	}

	link.Start()
	coord := session.New(role, link, src, cfg.Session(name), observers...)
	res, err := coord.Run(ctx)

	code := 0
	switch {
	case errors.Is(err, session.ErrPeerGone):
		summary = fmt.Sprintf("The other player left. Score %d-%d", res.Scores.Left, res.Scores.Right)
		code = 1
	case err != nil && !errors.Is(err, context.Canceled):
		log.Printf("[%s] %v", name, err)
		code = 1
	case res.Winner != field.SideNone:
		summary = fmt.Sprintf("%s wins %d-%d", res.Winner, res.Scores.Left, res.Scores.Right)
	default:
		summary = fmt.Sprintf("Stopped at %d-%d", res.Scores.Left, res.Scores.Right)
	}
	return code
}

// hostMatch serves the peer endpoint, opens a room and waits for a guest
// to take the other seat.
func hostMatch(ctx context.Context, cfg config.Config, codec protocol.Codec) (*client.Client, error) {
	h := wsserver.NewHandler()
	rm := h.OpenRoom("host", codec)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- h.ListenAndServe(ctx, cfg.Network.Addr)
	}()

	fmt.Printf("Room %s open on %s (codec %s). Join with: -join %s -addr %s -codec %s\n",
		rm.ID, cfg.Network.Addr, codec.Name(), rm.ID, cfg.Network.Addr, codec.Name())

	waitCtx, cancel := context.WithTimeout(ctx, cfg.Network.WaitTimeout.Duration)
	defer cancel()

	type joined struct {
		c   *client.Client
		err error
	}
	guest := make(chan joined, 1)
	go func() {
		c, err := rm.WaitForGuest(waitCtx)
		guest <- joined{c, err}
	}()

	select {
	case err := <-serveErr:
		if err == nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("serve %s: %w", cfg.Network.Addr, err)
	case j := <-guest:
		if j.err != nil {
			h.RoomManager.Close(rm.ID)
			return nil, j.err
		}
		log.Printf("[host] Guest %s joined room %s", j.c.ID, rm.ID)
		return j.c, nil
	}
}
