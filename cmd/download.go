package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/brogergvhs/noveld/internal/config"
	"github.com/brogergvhs/noveld/internal/crawler"
	"github.com/brogergvhs/noveld/internal/novel"
	"github.com/brogergvhs/noveld/internal/ui"
	"github.com/brogergvhs/noveld/internal/util"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var (
	// crawl target
	flagURL string

	// runtime
	flagOutput   string
	flagDelay    time.Duration
	flagTimeout  time.Duration
	flagMaxPages int
	flagDryRun   bool

	// headers/auth
	flagCookie     string
	flagCookieFile string
	flagUserAgent  string
	flagCFBypass   bool
)

func init() {
	downloadCmd := &cobra.Command{
		Use:   "download",
		Short: "Crawl a paginated novel and save it as a single TXT file. Uses the defaults from the selected config, overwritten by CLI flags",
		RunE:  runDownload,
	}

	// crawl target
	downloadCmd.Flags().StringVar(&flagURL, "url", "", "first page URL of the novel (prompted for when omitted)")

	// runtime
	downloadCmd.Flags().StringVar(&flagOutput, "output", "", "output folder for the TXT file")
	downloadCmd.Flags().DurationVar(&flagDelay, "delay", 0, "politeness delay between page fetches (default 1s)")
	downloadCmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "per-request timeout (default 15s)")
	downloadCmd.Flags().IntVar(&flagMaxPages, "max-pages", 0, "stop after this many pages (0 = follow links until the end)")
	downloadCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "crawl without writing the output file")

	// headers/auth
	downloadCmd.Flags().StringVar(&flagCookie, "cookie", "", "cookie string, e.g. \"key=value; other=123\"")
	downloadCmd.Flags().StringVar(&flagCookieFile, "cookie-file", "", "path to a text file with cookies (one header line)")
	downloadCmd.Flags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent (\"random\" draws one per run)")
	downloadCmd.Flags().BoolVar(&flagCFBypass, "cf-bypass", false, "add browser-like headers for Cloudflare-fronted sites")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(_ *cobra.Command, _ []string) error {
	cfg, usedPath, err := config.LoadMerged(config.Options{
		IgnoreConfig: flagIgnoreConfig,
		Debug:        flagDebug,
		Output:       flagOutput,
		Delay:        flagDelay,
		Timeout:      flagTimeout,
		MaxPages:     flagMaxPages,
		DefaultURL:   flagURL,
		Cookie:       flagCookie,
		CookieFile:   flagCookieFile,
		UserAgent:    flagUserAgent,
		CFBypass:     flagCFBypass,
	})
	if err != nil {
		return err
	}

	logSvc := ui.NewLogger(cfg.Debug)
	if usedPath != "" {
		fmt.Printf("Config file: %s\n", usedPath)
	}

	if cfg.Output == "" {
		cfg.Output = "."
	}
	if err := os.MkdirAll(cfg.Output, 0755); err != nil {
		return fmt.Errorf("cannot create output folder: %w", err)
	}

	fmt.Println("Full config:")
	cfg.Print()
	fmt.Println()

	startURL := cfg.DefaultURL
	if startURL == "" {
		startURL, err = promptURL()
		if err != nil {
			fmt.Println("No URL provided. Nothing to do.")
			return nil
		}
	}

	client, err := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:     cfg.TimeoutDuration(),
		UserAgent:   util.PickUserAgent(cfg.UserAgent),
		Cookie:      cfg.Cookie,
		CookieFile:  cfg.CookieFile,
		CFBypass:    cfg.CFBypass,
		DebugLogger: logSvc,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	util.SetupInterruptHandler(cancel)

	scr := novel.NewScraper(client, logSvc)

	var pm *ui.MPBProgressManager
	var handle *ui.ProgressHandle
	if !cfg.Debug {
		pm = ui.NewProgressManager()
		defer pm.Close()
		handle = pm.Register(hostLabel(startURL))
	}

	stats := &ui.Stats{}
	cr := crawler.New(scr, logSvc, stats, handle, crawler.Options{
		OutputDir: cfg.Output,
		Delay:     cfg.DelayDuration(),
		MaxPages:  cfg.MaxPages,
		DryRun:    flagDryRun,
	})

	start := time.Now()
	res := cr.Run(ctx, startURL)

	if pm != nil {
		pm.Close()
	}

	fmt.Println()
	fmt.Println("Crawl Summary:")
	switch {
	case res.OutputPath != "":
		fmt.Printf("Output:     %s\n", res.OutputPath)
	case flagDryRun:
		fmt.Println("Output:     none (dry run)")
	default:
		fmt.Println("Output:     none created")
	}
	fmt.Printf("Pages:      %d\n", stats.TotalPages.Load())
	fmt.Printf("Paragraphs: %d\n", stats.TotalParagraphs.Load())
	fmt.Printf("Data:       %s\n", util.Human(stats.TotalBytes.Load()))
	fmt.Printf("Time:       %s\n", time.Since(start).Round(time.Second))
	if res.Err != nil {
		fmt.Printf("Stopped on: %s (%v)\n", res.Reason, res.Err)
	} else if res.Reason != "" {
		fmt.Printf("Stopped on: %s\n", res.Reason)
	}
	fmt.Println("\nAll done.")

	return nil
}

// promptURL asks for the first page interactively. An empty answer or an
// interrupted prompt aborts before any network activity.
func promptURL() (string, error) {
	p := promptui.Prompt{Label: "Novel URL"}

	raw, err := p.Run()
	if err != nil {
		return "", err
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty URL")
	}

	return raw, nil
}

func hostLabel(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		return u.Host
	}

	return "crawl"
}
