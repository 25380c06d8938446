package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/edvin/dokdash/internal/cli"
	"github.com/edvin/dokdash/internal/config"
	"github.com/edvin/dokdash/internal/dokploy"
	"github.com/edvin/dokdash/internal/inventory"
	"github.com/edvin/dokdash/internal/logging"
	"github.com/edvin/dokdash/internal/view"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if os.Getenv("LOG_LEVEL") == "" {
		cfg.LogLevel = zerolog.LevelErrorValue
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch os.Args[1] {
	case "login":
		err = cmdLogin(ctx, cfg, os.Args[2:])
	case "logout":
		err = cmdLogout(cfg, os.Args[2:])
	case "show":
		err = cmdShow(ctx, cfg, os.Args[2:])
	case "ids":
		err = cmdIDs(ctx, cfg, os.Args[2:])
	case "copy":
		err = cmdCopy(ctx, cfg, os.Args[2:])
	case "status":
		err = cmdStatus(cfg, os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// errReported marks failures the terminal view has already printed.
var errReported = errors.New("reported")

// connection holds the flags shared by every command that talks to Dokploy.
type connection struct {
	url      string
	key      string
	viaProxy string
}

func connectionFlags(fs *flag.FlagSet, cfg *config.Config) *connection {
	c := &connection{}
	fs.StringVar(&c.url, "url", cfg.DokployURL, "Dokploy URL")
	fs.StringVar(&c.key, "key", "", "Dokploy API key (default: stored key, then VITE_DOKPLOY_API_KEY)")
	fs.StringVar(&c.viaProxy, "via-proxy", "", "Dashboard URL whose /api/dokploy relay forwards the requests")
	return c
}

// loader fetches directly from Dokploy, or through a dashboard's relay
// when -via-proxy is set.
func (c *connection) loader(cfg *config.Config) view.Loader {
	opts := []dokploy.Option{dokploy.WithTimeout(cfg.UpstreamTimeout)}
	if c.viaProxy != "" {
		opts = append(opts, dokploy.WithAPIRoot(strings.TrimRight(c.viaProxy, "/")+"/api/dokploy"))
	}
	return func(ctx context.Context, baseURL, apiKey string) ([]dokploy.Project, error) {
		return dokploy.FetchProjects(ctx, baseURL, apiKey, opts...)
	}
}

// apiKey picks the -key flag, then the stored key, then the environment.
func (c *connection) apiKey(ctrl *view.Controller, cfg *config.Config) string {
	if c.key != "" {
		return c.key
	}
	if key, ok := ctrl.StoredKey(); ok {
		return key
	}
	return cfg.DokployAPIKey
}

type session struct {
	ctrl    *view.Controller
	term    *cli.Terminal
	storage *cli.StateFile
}

func newSession(cfg *config.Config, load view.Loader, out io.Writer) (*session, error) {
	storage, err := cli.NewStateFile(cfg.StateDir)
	if err != nil {
		return nil, err
	}
	term := cli.NewTerminal(out, os.Stderr)
	ctrl := view.NewController(term, storage, load,
		view.WithLogger(logging.New(os.Stderr, cfg)),
		view.WithTimeout(cfg.UpstreamTimeout),
		view.WithAfterFunc(func(_ time.Duration, _ func()) {}),
	)
	return &session{ctrl: ctrl, term: term, storage: storage}, nil
}

func (s *session) load(ctx context.Context, conn *connection, cfg *config.Config, remember bool, target view.State) error {
	key := conn.apiKey(s.ctrl, cfg)
	err := s.ctrl.Submit(ctx, conn.url, key, remember, target)
	if errors.Is(err, view.ErrMissingCredentials) {
		return errors.New("no API key: run 'dokctl login -key KEY', pass -key or set VITE_DOKPLOY_API_KEY")
	}
	if err != nil {
		return errReported
	}
	return nil
}

func cmdLogin(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	conn := connectionFlags(fs, cfg)
	fs.Parse(args)

	if conn.key == "" {
		return errors.New("usage: dokctl login -key KEY [-url URL] [-via-proxy URL]")
	}

	s, err := newSession(cfg, conn.loader(cfg), io.Discard)
	if err != nil {
		return err
	}
	if err := s.load(ctx, conn, cfg, true, view.StateData); err != nil {
		return err
	}

	fmt.Printf("API key verified and saved to %s\n", s.storage.Path())
	return nil
}

func cmdLogout(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("logout", flag.ExitOnError)
	fs.Parse(args)

	s, err := newSession(cfg, nil, os.Stdout)
	if err != nil {
		return err
	}
	if err := s.ctrl.Forget(); err != nil {
		return err
	}

	fmt.Println("Stored API key removed")
	return nil
}

func cmdShow(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	conn := connectionFlags(fs, cfg)
	fs.Parse(args)

	s, err := newSession(cfg, conn.loader(cfg), os.Stdout)
	if err != nil {
		return err
	}
	return s.load(ctx, conn, cfg, false, view.StateData)
}

func cmdIDs(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("ids", flag.ExitOnError)
	conn := connectionFlags(fs, cfg)
	category := fs.String("category", "", "Only show one category (projects, environments, applications, compose, postgres, mysql, mariadb, mongo, redis, domains, githubIds, registryIds, serverIds)")
	fs.Parse(args)

	s, err := newSession(cfg, conn.loader(cfg), os.Stdout)
	if err != nil {
		return err
	}
	if *category != "" {
		c, ok := inventory.ParseCategory(*category)
		if !ok {
			return fmt.Errorf("unknown category %q", *category)
		}
		s.term.Category = c
	}
	return s.load(ctx, conn, cfg, false, view.StateIDs)
}

func cmdCopy(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("copy", flag.ExitOnError)
	label := fs.String("label", "ID", "Name shown in the confirmation")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return errors.New("usage: dokctl copy [-label LABEL] <value>")
	}

	s, err := newSession(cfg, nil, os.Stdout)
	if err != nil {
		return err
	}
	if err := s.ctrl.Copy(ctx, cli.NewOSC52(os.Stdout), fs.Arg(0), *label); err != nil {
		return errReported
	}
	return nil
}

func cmdStatus(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	fs.Parse(args)

	s, err := newSession(cfg, nil, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Printf("State file:  %s\n", s.storage.Path())
	fmt.Printf("Dokploy URL: %s\n", cfg.DokployURL)
	if key, ok := s.ctrl.StoredKey(); ok {
		fmt.Printf("API key:     stored (%s)\n", mask(key))
	} else if cfg.HasAPIKey() {
		fmt.Println("API key:     from VITE_DOKPLOY_API_KEY")
	} else {
		fmt.Println("API key:     not set")
	}
	fmt.Printf("Sidebar:     %s\n", map[bool]string{true: "collapsed", false: "expanded"}[s.ctrl.Nav().Collapsed])
	return nil
}

func mask(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: dokctl <command> [flags]

Commands:
  login -key KEY       Verify and save an API key
  logout               Remove the saved API key
  show                 Print the project dashboard
  ids [-category C]    Print all identifiers, optionally one category
  copy <value>         Copy a value to the clipboard (OSC 52)
  status               Show the saved state

Connection flags (login, show, ids):
  -url URL             Dokploy URL (default: VITE_DOKPLOY_URL or https://app.dokploy.com)
  -key KEY             API key (default: saved key, then VITE_DOKPLOY_API_KEY)
  -via-proxy URL       Go through a dashboard's /api/dokploy relay`)
}
