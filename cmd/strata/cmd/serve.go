package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-drift/strata/pkg/engine"
)

func init() {
	RegisterCommand(&Command{
		Name:  "serve",
		Short: "Serve the debug endpoints of a mounted schema",
		Long: `Mount a schema headlessly and serve the engine debug endpoints on the
loopback interface until interrupted.

Endpoints: /health, /debug, /layout and /frames.

Flags:
  --port N               Port to bind (default from strata.yaml, else 9930;
                         0 picks a free port)
  -w, --width N          Surface width
  -H, --height N         Surface height
  --mount SLOT=FILE      Mount another schema into a holder slot (repeatable)`,
		Usage: "strata serve <schema.yaml> [--port N]",
		Run:   runServe,
	})
}

// interrupted is replaced by tests.
var interrupted = func() <-chan os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	return sigCh
}

func runServe(args []string) error {
	positional, opts, err := parseRunOptions(args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("exactly one schema is required\n\nUsage: strata serve <schema.yaml> [--port N]")
	}
	p, err := loadProject(positional[0])
	if err != nil {
		return err
	}
	if !opts.portSet {
		opts.port = p.cfg.DebugPort
	}

	m, err := p.mount(positional[0], opts, engine.WithFrameTrace(engine.NewFrameTraceBuffer(0, 0)))
	if err != nil {
		return err
	}
	server, err := engine.StartDebugServer(m.rt, opts.port)
	if err != nil {
		return err
	}
	defer server.Stop()

	fmt.Fprintf(stdout, "%s %s on http://127.0.0.1:%d (Ctrl+C to stop)\n",
		paint(stdout, ansiGreen, "serving"), m.root.Schema().Name(), server.Port())
	<-interrupted()
	fmt.Fprintln(stdout, "stopping")
	return nil
}
