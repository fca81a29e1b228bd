package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/scott-cotton/cli"

	"github.com/go-xframes/xframes/pkg/boundary"
	"github.com/go-xframes/xframes/pkg/config"
	"github.com/go-xframes/xframes/pkg/errors"
	"github.com/go-xframes/xframes/pkg/native"
	"github.com/go-xframes/xframes/pkg/rendertest"
	"github.com/go-xframes/xframes/pkg/session"
)

type MainConfig struct {
	Config  string `cli:"name=config aliases=c desc='configuration file'"`
	Assets  string `cli:"name=assets desc='assets directory, overrides the configuration'"`
	DryRun  bool   `cli:"name=dry-run aliases=n desc='use the in-memory renderer and print the tree'"`
	Verbose bool   `cli:"name=verbose aliases=v desc='log debug details'"`

	Main *cli.Command
}

func MainCommand() *cli.Command {
	cfg := &MainConfig{Config: config.FileName}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "xframes-hello").
		WithSynopsis("xframes-hello [opts]").
		WithDescription("xframes-hello shows a hello-world tree in the xframes renderer and logs its events.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return helloMain(cfg, cc, args)
		})
}

func helloMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: unexpected arguments %q", cli.ErrUsage, args)
	}

	log := newLogger(cc.Out, cfg.Verbose)
	errors.SetHandler(errors.NewLogHandler(cfg.Verbose))

	res, err := config.Resolve(cfg.Config)
	if err != nil {
		return errors.Report(errors.New("config.Resolve", errors.KindConfig, err))
	}
	if cfg.Assets != "" {
		res.Assets = cfg.Assets
	}
	if res.Path != "" {
		log.Debug("loaded configuration", "path", res.Path)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defer logReportSummary(log)
	if cfg.DryRun {
		return dryRun(ctx, cc.Out, res, log)
	}
	return runNative(ctx, cc.Out, cc.In, res, log)
}

// logReportSummary logs how many bridge errors of each kind were reported.
func logReportSummary(log *slog.Logger) {
	counts := errors.Counts()
	if len(counts) == 0 {
		return
	}
	kinds := make([]errors.ErrorKind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	attrs := make([]any, 0, 2*len(kinds))
	for _, k := range kinds {
		attrs = append(attrs, k.String(), counts[k])
	}
	log.Warn("errors reported", attrs...)
}

func newSession(r boundary.Renderer, res *config.Resolved, log *slog.Logger) *session.Session {
	s := session.New(r,
		session.WithIDFormat(res.IDFormat),
		session.WithLogger(log),
		session.WithOnInit(buildHello),
	)
	logEvents(s.Router(), log)
	return s
}

// dryRun builds the tree against the in-memory renderer and prints it.
func dryRun(ctx context.Context, w io.Writer, res *config.Resolved, log *slog.Logger) error {
	if _, err := res.CheckFonts(); err != nil {
		log.Warn("font preflight failed", "err", err)
	}
	start, err := res.StartConfig()
	if err != nil {
		return errors.Report(errors.New("config.StartConfig", errors.KindConfig, err))
	}

	r := rendertest.New()
	s := newSession(r, res, log)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx, start) }()

	select {
	case <-s.Ready():
	case err := <-errc:
		return err
	}
	fmt.Fprint(w, r.Dump())
	cancel()
	return <-errc
}

// runNative runs the session against the native renderer until Enter is read
// from in or ctx is done.
func runNative(ctx context.Context, w io.Writer, in io.Reader, res *config.Resolved, log *slog.Logger) error {
	fonts, err := res.CheckFonts()
	if err != nil {
		return errors.Report(errors.New("config.CheckFonts", errors.KindConfig, err))
	}
	for _, f := range fonts {
		log.Debug("font", "name", f.Def.Name, "size", f.Def.Size, "family", f.Family, "glyphs", f.Glyphs)
	}
	start, err := res.StartConfig()
	if err != nil {
		return errors.Report(errors.New("config.StartConfig", errors.KindConfig, err))
	}

	s := newSession(native.New(), res, log)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx, start) }()

	fmt.Fprintln(w, "Press Enter to exit...")
	go func() {
		bufio.NewReader(in).ReadString('\n')
		cancel()
	}()

	err = <-errc
	fmt.Fprintln(w, "Exiting...")
	return err
}
