package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Adda-Baaj/ssll-wrapper/internal/config"
	"github.com/Adda-Baaj/ssll-wrapper/internal/domain"
	"github.com/Adda-Baaj/ssll-wrapper/internal/logger"
	"github.com/Adda-Baaj/ssll-wrapper/internal/storage"
	"github.com/Adda-Baaj/ssll-wrapper/pkg/httpclient"
	"github.com/Adda-Baaj/ssll-wrapper/pkg/publishers"
	"github.com/Adda-Baaj/ssll-wrapper/pkg/ssllabs"
	"github.com/google/uuid"
)

// Runner executes one configured API operation, archives the report, fans it
// out to publishers and writes the result to out.
type Runner struct {
	cfg     *config.Config
	service *ssllabs.Service
	store   storage.Store
	fanout  *publishers.Fanout
	log     logger.Logger
	out     io.Writer
	now     func() time.Time
}

// NewRunner builds the runtime from config.
func NewRunner(ctx context.Context, cfg *config.Config, log logger.Logger, out io.Writer) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = os.Stdout
	}

	client := httpclient.NewRestyClientWithOptions(httpclient.Options{
		Timeout:   cfg.HTTPTimeout,
		UserAgent: cfg.UserAgent,
	})
	service := ssllabs.NewService(cfg.APIURL, ssllabs.WithHTTPClient(client), ssllabs.WithLogger(log))

	fanout, err := buildFanout(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{
		ReportTTL:       cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"report_ttl_seconds":       int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	return &Runner{
		cfg:     cfg,
		service: service,
		store:   store,
		fanout:  fanout,
		log:     log,
		out:     out,
		now:     time.Now,
	}, nil
}

// buildFanout loads the optional publishers registry; no file means no publishers.
func buildFanout(ctx context.Context, cfg *config.Config, log logger.Logger) (*publishers.Fanout, error) {
	if strings.TrimSpace(cfg.PublishersFile) == "" {
		return publishers.NewFanout(nil), nil
	}

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}

	enabled := publisherReg.Enabled()
	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, pubCfg := range enabled {
		summaries = append(summaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})
	return publishers.NewFanout(pubClients), nil
}

// Run executes the configured operation once. ok is false when the result
// carries errors; err reports failures of the runner itself (archive,
// delivery, output).
func (r *Runner) Run(ctx context.Context) (ok bool, err error) {
	if r == nil || r.service == nil {
		return false, fmt.Errorf("runner is not initialized")
	}
	defer r.close()

	if r.cfg.Operation == config.OperationHistory {
		return r.history()
	}

	start := r.now()
	res, target := r.execute(ctx)

	payload, err := json.Marshal(res)
	if err != nil {
		return false, fmt.Errorf("encode result: %w", err)
	}

	hasErr := res.Base().HasErrorOccurred
	report := domain.Report{
		ID:               uuid.NewString(),
		Operation:        r.cfg.Operation,
		Target:           target,
		HasErrorOccurred: hasErr,
		Result:           payload,
		CollectedAt:      start.UTC(),
	}
	r.log.InfoObj("operation completed", "operation_meta", map[string]any{
		"report_id":  report.ID,
		"operation":  report.Operation,
		"target":     report.Target,
		"has_errors": hasErr,
		"elapsed_ms": r.now().Sub(start).Milliseconds(),
	})

	var errs []error
	if err := r.store.SaveReport(report); err != nil {
		r.log.ErrorObj("report archive failed", "error", err)
		errs = append(errs, fmt.Errorf("archive report: %w", err))
	}
	if delivered, err := r.fanout.Publish(ctx, publishers.NewEvent(report)); err != nil {
		r.log.ErrorObj("report delivery failed", "delivery_error", map[string]any{
			"delivered": delivered,
			"error":     err.Error(),
		})
		errs = append(errs, fmt.Errorf("publish report: %w", err))
	}

	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		errs = append(errs, fmt.Errorf("write result: %w", err))
	}

	return !hasErr, errors.Join(errs...)
}

// history prints the archived reports for the configured host, oldest first.
// It never calls the API and ok is false only when nothing is archived.
func (r *Runner) history() (bool, error) {
	reports, err := r.store.Reports(r.cfg.Host)
	if err != nil {
		return false, fmt.Errorf("list archived reports: %w", err)
	}
	r.log.InfoObj("archived reports listed", "history_meta", map[string]any{
		"target": r.cfg.Host,
		"count":  len(reports),
	})
	if reports == nil {
		reports = []domain.Report{}
	}

	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(reports); err != nil {
		return false, fmt.Errorf("write history: %w", err)
	}
	return len(reports) > 0, nil
}

// execute dispatches the configured operation and returns its result with the
// report target.
func (r *Runner) execute(ctx context.Context) (ssllabs.ResultModel, string) {
	switch r.cfg.Operation {
	case config.OperationAnalyze:
		opts := ssllabs.AnalyzeOptions{
			Publish:    ssllabs.Publish(r.cfg.Publish),
			ClearCache: ssllabs.ClearCache(r.cfg.ClearCache),
			FromCache:  ssllabs.FromCache(r.cfg.FromCache),
			All:        ssllabs.All(r.cfg.All),
		}
		return r.service.Analyze(ctx, r.cfg.Host, opts), r.cfg.Host
	case config.OperationEndpoint:
		opts := ssllabs.EndpointOptions{FromCache: ssllabs.FromCache(r.cfg.FromCache)}
		return r.service.GetEndpointData(ctx, r.cfg.Host, r.cfg.Endpoint, opts), r.cfg.Host
	case config.OperationStatusCodes:
		return r.service.GetStatusCodes(ctx), ""
	default:
		return r.service.Info(ctx), ""
	}
}

// close releases storage and publisher resources, logging any errors encountered.
func (r *Runner) close() {
	if err := r.store.Close(); err != nil {
		r.log.ErrorObj("storage close failed", "error", err)
	}
	if err := r.fanout.Close(); err != nil {
		r.log.ErrorObj("publisher close failed", "error", err)
	}
}
