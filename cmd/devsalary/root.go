package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/fr4nk3nst1ner/devsalary/internal/client"
	"github.com/fr4nk3nst1ner/devsalary/internal/config"
	"github.com/fr4nk3nst1ner/devsalary/internal/errors"
	"github.com/fr4nk3nst1ner/devsalary/internal/logging"
	"github.com/fr4nk3nst1ner/devsalary/internal/models"
	"github.com/fr4nk3nst1ner/devsalary/internal/scraper"
	"github.com/fr4nk3nst1ner/devsalary/internal/stats"
	"github.com/fr4nk3nst1ner/devsalary/internal/ui"
	"github.com/fr4nk3nst1ner/devsalary/internal/utils"
	"github.com/go-resty/resty/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	vacancies      []string
	period         int
	source         string
	combined       bool
	keepEmpty      bool
	workers        int
	retries        int
	timeout        time.Duration
	proxy          string
	onlyWithSalary bool
	configPath     string
	envFile        string
	logFile        string
	debug          bool
	color          bool
	russian        bool
	silence        bool
	noBanner       bool
	examples       bool
	noProgress     bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "devsalary [keyword...]",
		Short: "devsalary averages developer salaries advertised on HeadHunter and SuperJob.",
		Long: `devsalary queries the HeadHunter and SuperJob vacancy APIs for every keyword,
estimates a salary for each listing and prints one table per job board with the
number of vacancies found, the number used for the estimate and the average salary.

SuperJob needs an application key in the API_KEY_SUPERJOB environment variable
(a .env file in the working directory is read as well).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

			ui.PrintBanner(stdout, opts.silence || opts.noBanner)
			if opts.examples {
				printExamples(stdout)
				return nil
			}

			cfg, err := buildConfig(cmd, opts, args)
			if err != nil {
				return err
			}

			logger, closeLog, err := logging.New(cfg.LogFile, opts.debug)
			if err != nil {
				return err
			}
			defer closeLog()

			r := &runner{
				cfg:      cfg,
				opts:     opts,
				logger:   logger,
				stdout:   stdout,
				stderr:   stderr,
				progress: !opts.noProgress,
			}
			if err := r.run(cmd.Context()); err != nil {
				logFatal(logger, err)
				return err
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVarP(&opts.vacancies, "vacancy", "v", nil, "Keywords to search for, comma separated or repeated (default: popular languages)")
	flags.IntVarP(&opts.period, "period", "p", 30, "Only vacancies published during the last N days")
	flags.StringVar(&opts.source, "source", "all", "Job board to query: all, hh or superjob")
	flags.BoolVar(&opts.combined, "combined", false, "Also print a table merging every job board")
	flags.BoolVar(&opts.keepEmpty, "keep-empty", false, "Show keywords without any salary as zero rows")
	flags.IntVar(&opts.workers, "workers", 1, "Number of keywords fetched concurrently")
	flags.IntVar(&opts.retries, "retries", 0, "Retry failed requests (transport errors, 429 and 5xx) this many times")
	flags.DurationVar(&opts.timeout, "timeout", 30*time.Second, "HTTP request timeout")
	flags.StringVar(&opts.proxy, "proxy", "", "Proxy URL to use")
	flags.BoolVar(&opts.onlyWithSalary, "only-with-salary", false, "Ask HeadHunter for listings with a salary only")
	flags.StringVar(&opts.configPath, "config", "devsalary.json5", "Optional JSON5 config file")
	flags.StringVar(&opts.envFile, "env-file", ".env", "Optional file with environment variables")
	flags.StringVar(&opts.logFile, "log-file", "logs.log", "File receiving warnings and errors, truncated on start")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flags.BoolVar(&opts.color, "color", false, "Colour average salaries by bracket")
	flags.BoolVar(&opts.russian, "russian", false, "Use Russian table headers")
	flags.BoolVar(&opts.noProgress, "no-progress", false, "Hide the progress bars")
	flags.BoolVar(&opts.examples, "examples", false, "Show usage examples")

	// Banner control flags (two aliases for the same functionality)
	flags.BoolVar(&opts.silence, "silence", false, "Silence the banner")
	flags.BoolVar(&opts.noBanner, "nobanner", false, "Silence the banner (alias for --silence)")

	return cmd
}

// buildConfig layers defaults, the config file, explicitly set flags and the
// environment, in that order
func buildConfig(cmd *cobra.Command, opts *options, args []string) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, errors.InvalidInput("failed to read config", err)
	}

	flags := cmd.Flags()
	if keywords := utils.NormalizeKeywords(append(append([]string(nil), opts.vacancies...), args...)); len(keywords) > 0 {
		cfg.Keywords = keywords
	} else {
		cfg.Keywords = utils.NormalizeKeywords(cfg.Keywords)
	}
	if flags.Changed("period") {
		cfg.Period = opts.period
	}
	if flags.Changed("workers") {
		cfg.Workers = opts.workers
	}
	if flags.Changed("retries") {
		cfg.Retries = opts.retries
	}
	if flags.Changed("timeout") {
		cfg.Timeout = opts.timeout.String()
	}
	if flags.Changed("proxy") {
		cfg.Proxy = opts.proxy
	}
	if flags.Changed("keep-empty") {
		cfg.KeepEmpty = opts.keepEmpty
	}
	if flags.Changed("only-with-salary") {
		cfg.HeadHunter.OnlyWithSalary = opts.onlyWithSalary
	}
	if flags.Changed("log-file") {
		cfg.LogFile = opts.logFile
	}

	if !utils.IsValidSource(opts.source) {
		return cfg, errors.InvalidInput(fmt.Sprintf("invalid source %q, must be one of: all, hh, superjob", opts.source), nil)
	}

	if err := cfg.LoadEnv(opts.envFile); err != nil {
		return cfg, errors.InvalidInput("failed to load environment", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.InvalidInput("invalid configuration", err)
	}
	return cfg, nil
}

type runner struct {
	cfg      config.Config
	opts     *options
	logger   *zap.Logger
	stdout   io.Writer
	stderr   io.Writer
	progress bool
}

func (r *runner) run(ctx context.Context) error {
	timeout, _ := r.cfg.TimeoutDuration()
	httpClient := client.CreateHTTPClient(client.Options{
		Timeout:   timeout,
		ProxyURL:  r.cfg.Proxy,
		Retries:   r.cfg.Retries,
		UserAgent: r.cfg.UserAgent,
		Logger:    r.logger,
	})

	fetchers := r.fetchers(httpClient)
	if len(fetchers) == 0 {
		return errors.InvalidInput("no job board left to query", nil)
	}

	tableOpts := ui.TableOptions{Russian: r.opts.russian, Colorize: r.opts.color}
	statsOpts := stats.Options{
		Workers:   r.cfg.Workers,
		KeepEmpty: r.cfg.KeepEmpty,
		Logger:    r.logger,
	}

	var all [][]models.FetchResult
	var reports []models.VendorReport
	for _, fetcher := range fetchers {
		results, err := r.collect(ctx, fetcher, statsOpts)
		if err != nil {
			return err
		}
		all = append(all, results)

		report := stats.Summarize(fetcher.Name(), fetcher.Name(), results, statsOpts)
		reports = append(reports, report)
		fmt.Fprintln(r.stdout, ui.RenderTable(report, report.Title, tableOpts))
	}

	if r.opts.combined {
		report := stats.Summarize(models.VendorCombined, combinedTitle(fetchers), stats.Merge(all...), statsOpts)
		reports = append(reports, report)
		fmt.Fprintln(r.stdout, ui.RenderTable(report, report.Title, tableOpts))
	}

	r.printSummary(reports)
	return nil
}

// fetchers builds the vendor clients selected by --source, SuperJob first.
// SuperJob is skipped when no application key is configured.
func (r *runner) fetchers(httpClient *resty.Client) []scraper.Fetcher {
	var fetchers []scraper.Fetcher
	for _, vendor := range utils.NormalizeSource(r.opts.source) {
		switch vendor {
		case models.VendorSuperJob:
			if r.cfg.SuperJobKey == "" {
				r.logger.Warn("skipping SuperJob, no application key", zap.String("env", config.SuperJobKeyEnv))
				pterm.Warning.WithWriter(r.stderr).Printfln("SuperJob skipped: %s is not set", config.SuperJobKeyEnv)
				continue
			}
			fetchers = append(fetchers, scraper.NewSuperJob(httpClient, r.cfg.SuperJob, r.cfg.SuperJobKey, r.cfg.MaxPages, r.logger))
		case models.VendorHeadHunter:
			fetchers = append(fetchers, scraper.NewHeadHunter(httpClient, r.cfg.HeadHunter, r.cfg.MaxPages, r.logger))
		}
	}
	return fetchers
}

// combinedTitle names the merged table after the vendors that actually ran
func combinedTitle(fetchers []scraper.Fetcher) string {
	names := make([]string, 0, len(fetchers))
	for _, fetcher := range fetchers {
		names = append(names, fetcher.Name())
	}
	return strings.Join(names, " + ")
}

// collect fetches every keyword for one vendor, driving a progress bar on stderr
func (r *runner) collect(ctx context.Context, fetcher scraper.Fetcher, opts stats.Options) ([]models.FetchResult, error) {
	if r.progress {
		bar := pb.Simple.New(len(r.cfg.Keywords)).
			SetWriter(r.stderr).
			Set("prefix", fetcher.Name()+" ")
		bar.Start()
		defer bar.Finish()
		opts.OnKeyword = func(string) { bar.Increment() }
	}

	return stats.Collect(ctx, fetcher, r.cfg.Keywords, r.cfg.Period, opts)
}

// printSummary reports the best paid keyword of every table
func (r *runner) printSummary(reports []models.VendorReport) {
	info := pterm.Info.WithWriter(r.stderr)
	for _, report := range reports {
		var best *models.KeywordStats
		for i := range report.Stats {
			if best == nil || report.Stats[i].Average > best.Average {
				best = &report.Stats[i]
			}
		}
		if best == nil || best.Average <= 0 {
			info.Printfln("%s: no salary data", report.Title)
			continue
		}
		info.Printfln("%s: %s pays best, %s on average over %d vacancies",
			report.Title, best.Keyword, utils.FormatSalary(best.Average), best.Processed)
	}
}

func logFatal(logger *zap.Logger, err error) {
	fields := []zap.Field{zap.String("type", string(errors.TypeOf(err))), zap.Error(err)}
	var domainErr *errors.DomainError
	if stderrors.As(err, &domainErr) && len(domainErr.StackTrace()) > 0 {
		fields = append(fields, zap.ByteString("stack", domainErr.StackTrace()))
	}
	logger.Error("run failed", fields...)
}
