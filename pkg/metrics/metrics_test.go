package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	metrics "github.com/eventease/insights/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func gatheredNames(reg *prometheus.Registry) map[string]bool {
	families, err := reg.Gather()
	So(err, ShouldBeNil)
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	return names
}

func TestNewManager(t *testing.T) {
	Convey("Given a metrics manager on a fresh registry", t, func() {
		reg := prometheus.NewRegistry()
		m := metrics.NewManager(metrics.WithPrometheusRegistry(reg))

		Convey("Then all metric families register under the service namespace", func() {
			So(m, ShouldNotBeNil)
			names := gatheredNames(reg)

			for _, name := range []string{
				"eventease_insights_recommendations_generated_total",
				"eventease_insights_recommendation_latency_milliseconds",
				"eventease_insights_profile_builds_total",
				"eventease_insights_cold_start_profiles_total",
				"eventease_insights_schedule_plans_total",
				"eventease_insights_feedback_analyses_total",
				"eventease_insights_records_ingested_total",
				"eventease_insights_ingest_duplicates_total",
				"eventease_insights_queue_size",
				"eventease_insights_queue_capacity",
				"eventease_insights_queue_utilization",
				"eventease_insights_worker_active_count",
				"eventease_insights_store_shard_count",
				"eventease_insights_system_memory_bytes",
				"eventease_insights_system_goroutines",
			} {
				So(names[name], ShouldBeTrue)
			}
		})
	})

	Convey("Given custom namespace and subsystem options", t, func() {
		reg := prometheus.NewRegistry()
		metrics.NewManager(
			metrics.WithPrometheusRegistry(reg),
			metrics.WithNamespace("acme"),
			metrics.WithSubsystem("pipeline"),
		)

		Convey("Then metric names carry the override", func() {
			names := gatheredNames(reg)
			So(names["acme_pipeline_recommendations_generated_total"], ShouldBeTrue)
			So(names["eventease_insights_recommendations_generated_total"], ShouldBeFalse)
		})
	})

	Convey("Given custom histogram buckets", t, func() {
		reg := prometheus.NewRegistry()
		metrics.NewManager(
			metrics.WithPrometheusRegistry(reg),
			metrics.WithHistogramBuckets([]float64{1, 10, 100}),
		)

		Convey("Then histograms register without conflict", func() {
			names := gatheredNames(reg)
			So(names["eventease_insights_recommendation_latency_milliseconds"], ShouldBeTrue)
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the package-level helpers", t, func() {
		Convey("When recording through them", func() {
			// The helpers hit the process-global manager; the only
			// observable contract here is that they never panic and the
			// shared registry keeps serving.
			So(func() {
				metrics.RecordRecommendationsGenerated()
				metrics.RecordRecommendationLatency(12.5)
				metrics.RecordProfileBuild()
				metrics.RecordColdStartProfile()
				metrics.RecordSchedulePlan()
				metrics.RecordFeedbackAnalysis()
				metrics.RecordRecordIngested()
				metrics.RecordIngestDuplicate()
				metrics.UpdateQueueSize(3)
				metrics.UpdateQueueCapacity(100)
				metrics.UpdateQueueUtilization(0.03)
				metrics.RecordQueueEnqueue()
				metrics.RecordQueueDequeue()
				metrics.RecordQueueEnqueueError()
				metrics.UpdateWorkerActiveCount(4)
				metrics.RecordWorkerProcessingLatency(0.8)
				metrics.RecordWorkerError()
				metrics.UpdateStoreShardCount(8)
				metrics.UpdateStoreEvents(10)
				metrics.UpdateStoreParticipants(25)
				metrics.RecordStoreUpdateLatency(0.2)
				metrics.RecordStoreQueryLatency(0.1)
				metrics.RecordHTTPRequest("events", "POST", "202")
				metrics.RecordHTTPRequestDuration("events", "POST", "202", 4.2)
				metrics.RecordErrorByComponent("queue", "queue_full")
				metrics.RecordErrorByType("client_error", "warning")
				metrics.RecordErrorByEndpoint("events", "POST", "client_error")
				metrics.RecordErrorLatency("api", "client_error", 1.1)
				metrics.UpdateSystemMemoryUsage(1 << 20)
				metrics.UpdateSystemGoroutineCount(42)
				metrics.RecordSystemGCPauseTime(0.05)
			}, ShouldNotPanic)
		})

		Convey("Then the shared registry still gathers", func() {
			families, err := metrics.GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}
