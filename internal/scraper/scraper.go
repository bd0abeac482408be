// This file implements a standalone metrics forwarder for the skylook
// service. It runs as its own small container next to the main process,
// triggered periodically by an external scheduler: each trigger scrapes the
// service's Prometheus /metrics endpoint, converts the exposition-format
// samples into Google Cloud Monitoring TimeSeries, and ingests them through
// the Managed Service for Prometheus. Keeping it out of the main binary
// means a broken metrics pipeline can never take lookups down with it.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"os"
	"time"

	monitoring "cloud.google.com/go/monitoring/apiv3/v2"
	"cloud.google.com/go/monitoring/apiv3/v2/monitoringpb"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/genproto/googleapis/api/distribution"
	"google.golang.org/genproto/googleapis/api/metric"
	"google.golang.org/genproto/googleapis/api/monitoredres"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// scraperConfig carries the environment-provided settings for one scrape.
type scraperConfig struct {
	metricsURL string
	projectID  string
	location   string
	logger     *slog.Logger
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("starting scraper", "port", port)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		scrapeHandler(w, r, logger)
	})

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	if err := server.ListenAndServe(); err != nil {
		logger.Error("failed to start server", "error", err)
		os.Exit(1)
	}
}

// scrapeHandler handles one scheduler trigger and reports the outcome.
func scrapeHandler(w http.ResponseWriter, r *http.Request, logger *slog.Logger) {
	logger.Info("scrape request received")

	cfg, err := configFromEnv(logger)
	if err != nil {
		logger.Error("scraper misconfigured", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := cfg.scrapeAndIngest(r.Context()); err != nil {
		logger.Error("error during scrape and ingest", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	logger.Info("successfully scraped and ingested metrics")
	fmt.Fprintln(w, "Success")
}

func configFromEnv(logger *slog.Logger) (*scraperConfig, error) {
	metricsURL := os.Getenv("METRICS_URL")
	if metricsURL == "" {
		return nil, fmt.Errorf("environment variable METRICS_URL must be set")
	}
	projectID := os.Getenv("PROJECT_ID")
	if projectID == "" {
		return nil, fmt.Errorf("environment variable PROJECT_ID must be set")
	}
	location := os.Getenv("METRICS_LOCATION")
	if location == "" {
		location = "asia-southeast2"
	}
	return &scraperConfig{
		metricsURL: metricsURL,
		projectID:  projectID,
		location:   location,
		logger:     logger,
	}, nil
}

// scrapeAndIngest fetches the service's metrics, converts every sample it
// understands, and writes the batch to Cloud Monitoring. A scrape that finds
// nothing to ingest is not an error.
func (cfg *scraperConfig) scrapeAndIngest(ctx context.Context) error {
	timeSeries, err := cfg.fetchTimeSeries(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch and convert metrics: %w", err)
	}

	if len(timeSeries) == 0 {
		cfg.logger.Info("no metric samples found to ingest")
		return nil
	}

	if err := cfg.ingest(ctx, timeSeries); err != nil {
		return fmt.Errorf("failed to ingest metrics: %w", err)
	}
	return nil
}

// fetchTimeSeries scrapes the Prometheus endpoint and converts counters,
// gauges, untyped samples and histograms to Cloud Monitoring TimeSeries.
// Summaries have no Cloud Monitoring counterpart and are skipped.
func (cfg *scraperConfig) fetchTimeSeries(ctx context.Context) ([]*monitoringpb.TimeSeries, error) {
	httpClient := &http.Client{Timeout: 10 * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.metricsURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("metrics request failed with status code %d", resp.StatusCode)
	}

	var parser expfmt.TextParser
	metricFamilies, err := parser.TextToMetricFamilies(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse prometheus metrics: %w", err)
	}

	resource := &monitoredres.MonitoredResource{
		Type: "prometheus_target",
		Labels: map[string]string{
			"project_id": cfg.projectID,
			"location":   cfg.location,
			"cluster":    "__gce__",
			"namespace":  "skylook",
			"job":        "skylook",
			"instance":   cfg.metricsURL,
		},
	}

	var timeSeriesList []*monitoringpb.TimeSeries
	now := timestamppb.New(time.Now())

	for name, mf := range metricFamilies {
		for _, m := range mf.GetMetric() {
			labels := make(map[string]string)
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}

			var point *monitoringpb.Point
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				point = scalarPoint(now, m.GetCounter().GetValue())
			case dto.MetricType_GAUGE:
				point = scalarPoint(now, m.GetGauge().GetValue())
			case dto.MetricType_UNTYPED:
				point = scalarPoint(now, m.GetUntyped().GetValue())
			case dto.MetricType_HISTOGRAM:
				point = distributionPoint(now, m.GetHistogram(), cfg.logger)
			case dto.MetricType_SUMMARY:
				cfg.logger.Debug("skipping summary metric", "metric", name)
				continue
			default:
				cfg.logger.Warn("skipping metric with unhandled type", "metric", name, "type", mf.GetType())
				continue
			}

			timeSeriesList = append(timeSeriesList, &monitoringpb.TimeSeries{
				Metric: &metric.Metric{
					Type:   "prometheus.googleapis.com/" + name,
					Labels: labels,
				},
				Resource: resource,
				Points:   []*monitoringpb.Point{point},
			})
		}
	}
	return timeSeriesList, nil
}

// scalarPoint builds a TimeSeries point with a double value, used for
// counters, gauges and untyped samples.
func scalarPoint(timestamp *timestamppb.Timestamp, value float64) *monitoringpb.Point {
	return &monitoringpb.Point{
		Interval: &monitoringpb.TimeInterval{
			EndTime: timestamp,
		},
		Value: &monitoringpb.TypedValue{
			Value: &monitoringpb.TypedValue_DoubleValue{
				DoubleValue: value,
			},
		},
	}
}

// distributionPoint converts a Prometheus histogram into a Cloud Monitoring
// distribution. Prometheus reports cumulative bucket counts; Cloud
// Monitoring wants per-bucket counts, so consecutive buckets are differenced.
func distributionPoint(timestamp *timestamppb.Timestamp, h *dto.Histogram, logger *slog.Logger) *monitoringpb.Point {
	promBuckets := h.GetBucket()
	bounds := make([]float64, len(promBuckets)-1)
	bucketCounts := make([]int64, len(promBuckets))
	var lastCumulativeCount uint64

	for i, b := range promBuckets {
		// The final Prometheus bucket is +Inf and contributes no bound.
		if i < len(promBuckets)-1 {
			bounds[i] = b.GetUpperBound()
		}
		cumulativeCount := b.GetCumulativeCount()
		countInBucket := cumulativeCount - lastCumulativeCount
		if countInBucket > math.MaxInt64 {
			logger.Warn("histogram bucket count exceeds MaxInt64, capping value", "bucket", i, "value", countInBucket)
			bucketCounts[i] = math.MaxInt64
		} else {
			bucketCounts[i] = int64(countInBucket)
		}
		lastCumulativeCount = cumulativeCount
	}

	sampleCount := h.GetSampleCount()
	var finalSampleCount int64
	if sampleCount > math.MaxInt64 {
		logger.Warn("histogram sample count exceeds MaxInt64, capping value", "value", sampleCount)
		finalSampleCount = math.MaxInt64
	} else {
		finalSampleCount = int64(sampleCount)
	}

	dist := &distribution.Distribution{
		Count: finalSampleCount,
		Mean:  h.GetSampleSum() / float64(h.GetSampleCount()),
		BucketOptions: &distribution.Distribution_BucketOptions{
			Options: &distribution.Distribution_BucketOptions_ExplicitBuckets{
				ExplicitBuckets: &distribution.Distribution_BucketOptions_Explicit{
					Bounds: bounds,
				},
			},
		},
		BucketCounts: bucketCounts,
	}

	return &monitoringpb.Point{
		Interval: &monitoringpb.TimeInterval{
			EndTime: timestamp,
		},
		Value: &monitoringpb.TypedValue{
			Value: &monitoringpb.TypedValue_DistributionValue{
				DistributionValue: dist,
			},
		},
	}
}

// ingest writes the TimeSeries batch to the Cloud Monitoring API.
func (cfg *scraperConfig) ingest(ctx context.Context, timeSeries []*monitoringpb.TimeSeries) error {
	client, err := monitoring.NewMetricClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create monitoring client: %w", err)
	}
	defer client.Close()

	req := &monitoringpb.CreateTimeSeriesRequest{
		Name:       "projects/" + cfg.projectID,
		TimeSeries: timeSeries,
	}

	if err := client.CreateTimeSeries(ctx, req); err != nil {
		return fmt.Errorf("failed to write time series data: %w", err)
	}
	return nil
}
