package main

import (
    "context"
    "encoding/json"
    "errors"
    "flag"
    "fmt"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/AIAleph/fogo_early_checker/internal/checker"
    cfgpkg "github.com/AIAleph/fogo_early_checker/internal/config"
    "github.com/AIAleph/fogo_early_checker/internal/logging"
    "github.com/AIAleph/fogo_early_checker/internal/svm"
    "github.com/AIAleph/fogo_early_checker/internal/web"
)

type walletChecker interface {
    Check(ctx context.Context, raw string) checker.Result
}

var (
    // version is set via -ldflags "-X main.version=..."
    version = "dev"
    // exit is aliased to os.Exit to allow overriding in tests.
    exit = os.Exit
    // function variables allow tests to inject stubs
    newChecker func(opts checker.Options) walletChecker
    serve      func(ctx context.Context, addr string, h http.Handler) error
)

func defaultNewChecker(opts checker.Options) walletChecker {
    return checker.New(opts)
}

// defaultServe runs the HTTP server until ctx ends, then shuts it down gracefully.
func defaultServe(ctx context.Context, addr string, h http.Handler) error {
    srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 10 * time.Second}
    errCh := make(chan error, 1)
    go func() { errCh <- srv.ListenAndServe() }()
    select {
    case err := <-errCh:
        if errors.Is(err, http.ErrServerClosed) {
            return nil
        }
        return err
    case <-ctx.Done():
        shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        return srv.Shutdown(shutdownCtx)
    }
}

func wireDefaults() {
    newChecker = defaultNewChecker
    serve = defaultServe
}

func init() { wireDefaults() }

// printUsage prints a detailed CLI help with env mappings and examples.
func printUsage() {
    out := flag.CommandLine.Output()
    fmt.Fprintf(out, "\nUsage:\n  %s --address <base58> [flags]\n  %s --serve [--listen :8501] [flags]\n\n", os.Args[0], os.Args[0])
    fmt.Fprintln(out, "Flags:")
    flag.PrintDefaults()
    fmt.Fprintln(out, "\nEnvironment variables (defaults; also read from ./.env):")
    fmt.Fprintln(out, "  FOGO_RPC_URL   RPC endpoint (default https://testnet.fogo.io)")
    fmt.Fprintln(out, "  CHECK_TIMEOUT  Bounded wait per check (default 30s, 1s..5m)")
    fmt.Fprintln(out, "  HISTORY_LIMIT  Signatures fetched per check (default 1000, max 1000)")
    fmt.Fprintln(out, "  LISTEN_ADDR    Web UI listen address (default :8501)")
    fmt.Fprintln(out, "  LOG_LEVEL      debug|info|warn|error (default info)")
    fmt.Fprintln(out, "\nExamples:")
    fmt.Fprintln(out, "  Check one wallet and print the JSON result:")
    fmt.Fprintln(out, "    fogo-checker --address So11111111111111111111111111111111111111112")
    fmt.Fprintln(out, "  Serve the web UI on port 8080:")
    fmt.Fprintln(out, "    fogo-checker --serve --listen :8080")
}

func main() {
    // Real environment wins over .env.
    if err := cfgpkg.LoadDotEnv(); err != nil {
        fmt.Fprintf(os.Stderr, "warning: ignoring .env: %v\n", err)
    }
    defaults := cfgpkg.Load()
    var (
        address      string
        serveUI      bool
        listen       string
        rpcURL       string
        timeout      time.Duration
        historyLimit int
        logLevel     string
        dryRun       bool
        showVersion  bool
    )

    flag.Usage = printUsage
    flag.StringVar(&address, "address", "", "Wallet address to check (base58)")
    flag.BoolVar(&serveUI, "serve", false, "Run the web UI instead of a one-shot check")
    flag.StringVar(&listen, "listen", defaults.ListenAddr, "Listen address for --serve (LISTEN_ADDR)")
    flag.StringVar(&rpcURL, "rpc", defaults.RPCURL, "Fogo RPC endpoint (FOGO_RPC_URL)")
    flag.DurationVar(&timeout, "timeout", defaults.CheckTimeout, "Bounded wait per check (CHECK_TIMEOUT)")
    flag.IntVar(&historyLimit, "history-limit", defaults.HistoryLimit, "Signatures fetched per check, 1..1000 (HISTORY_LIMIT)")
    flag.StringVar(&logLevel, "log-level", defaults.LogLevel, "Log level: debug|info|warn|error (LOG_LEVEL)")
    flag.BoolVar(&dryRun, "dry-run", false, "Print plan and exit")
    flag.BoolVar(&showVersion, "version", false, "Print version and exit")
    flag.Parse()

    if showVersion {
        fmt.Println(version)
        return
    }

    // stdout carries results; logs go to stderr.
    logging.SetLogger(logging.New(os.Stderr, logging.ParseLevel(logLevel)))

    if address == "" && !serveUI {
        fmt.Fprintln(os.Stderr, "missing --address or --serve; see --help")
        exit(2)
    }
    if address != "" && serveUI {
        fmt.Fprintln(os.Stderr, "--address and --serve are mutually exclusive")
        exit(2)
    }
    if timeout <= 0 {
        fmt.Fprintln(os.Stderr, "--timeout must be > 0")
        exit(2)
    }
    if historyLimit < 1 || historyLimit > svm.MaxHistoryLimit {
        fmt.Fprintf(os.Stderr, "--history-limit must be within 1..%d\n", svm.MaxHistoryLimit)
        exit(2)
    }

    opts := checker.Options{
        Endpoint:     rpcURL,
        Timeout:      timeout,
        HistoryLimit: historyLimit,
    }

    if dryRun {
        mode := "check"
        if serveUI {
            mode = "serve"
        }
        plan := map[string]any{
            "mode":          mode,
            "address":       address,
            "listen":        listen,
            // Avoid printing API keys embedded in the endpoint.
            "rpc":           cfgpkg.RedactURL(rpcURL),
            "timeout":       timeout.String(),
            "history_limit": historyLimit,
            "log_level":     logLevel,
        }
        enc := json.NewEncoder(os.Stdout)
        enc.SetIndent("", "  ")
        _ = enc.Encode(plan)
        return
    }

    chk := newChecker(opts)

    if serveUI {
        ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
        defer stop()
        logging.Logger().Info("listening", "component", "cmd", "addr", listen, "provider", cfgpkg.RedactURL(rpcURL))
        if err := serve(ctx, listen, web.NewServer(chk)); err != nil {
            fmt.Fprintf(os.Stderr, "server error: %v\n", err)
            exit(1)
        }
        return
    }

    res := chk.Check(context.Background(), address)
    enc := json.NewEncoder(os.Stdout)
    enc.SetIndent("", "  ")
    enc.SetEscapeHTML(false)
    _ = enc.Encode(res)
    if res.Err != nil {
        exit(1)
    }
}
