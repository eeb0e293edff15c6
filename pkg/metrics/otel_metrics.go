package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetrics OpenTelemetry 指标集合
type OTelMetrics struct {
	// 提交流程指标
	SubmissionsTotal        metric.Int64Counter
	SubmissionDuration      metric.Float64Histogram
	ValidationFailuresTotal metric.Int64Counter

	// 布局配置指标
	ConfigReplacesTotal  metric.Int64Counter
	ConfigRejectsTotal   metric.Int64Counter
	ConfigCacheHitsTotal metric.Int64Counter
	ConfigFallbackTotal  metric.Int64Counter
}

var (
	metrics *OTelMetrics
	meter   = otel.Meter("signmeup")
)

// InitMetrics 初始化 OpenTelemetry 指标
func InitMetrics() error {
	var err error

	metrics = &OTelMetrics{}

	metrics.SubmissionsTotal, err = meter.Int64Counter(
		"onboarding_submissions_total",
		metric.WithDescription("Total number of onboarding submissions by outcome"),
		metric.WithUnit("{submission}"),
	)
	if err != nil {
		return err
	}

	metrics.SubmissionDuration, err = meter.Float64Histogram(
		"onboarding_submission_duration_seconds",
		metric.WithDescription("Time spent processing an onboarding submission"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	metrics.ValidationFailuresTotal, err = meter.Int64Counter(
		"onboarding_validation_failures_total",
		metric.WithDescription("Total number of schema validation failures by field"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return err
	}

	metrics.ConfigReplacesTotal, err = meter.Int64Counter(
		"wizard_config_replaces_total",
		metric.WithDescription("Total number of persisted wizard configuration replacements"),
		metric.WithUnit("{replace}"),
	)
	if err != nil {
		return err
	}

	metrics.ConfigRejectsTotal, err = meter.Int64Counter(
		"wizard_config_rejects_total",
		metric.WithDescription("Total number of rejected wizard configuration payloads by code"),
		metric.WithUnit("{reject}"),
	)
	if err != nil {
		return err
	}

	metrics.ConfigCacheHitsTotal, err = meter.Int64Counter(
		"wizard_config_cache_hits_total",
		metric.WithDescription("Total number of configuration reads served from Redis"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return err
	}

	metrics.ConfigFallbackTotal, err = meter.Int64Counter(
		"wizard_config_fallback_total",
		metric.WithDescription("Total number of submissions that used the all-steps fallback"),
		metric.WithUnit("{fallback}"),
	)
	if err != nil {
		return err
	}

	return nil
}

// Get 返回全局指标实例，未初始化时返回 nil，调用方需要判空。
func Get() *OTelMetrics {
	return metrics
}

// RecordSubmission 记录一次提交结果
func RecordSubmission(ctx context.Context, outcome string, seconds float64) {
	if metrics == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	metrics.SubmissionsTotal.Add(ctx, 1, attrs)
	metrics.SubmissionDuration.Record(ctx, seconds, attrs)
}

// RecordValidationFailure 按字段记录校验失败
func RecordValidationFailure(ctx context.Context, field string) {
	if metrics == nil {
		return
	}
	metrics.ValidationFailuresTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.String("field", field)))
}

// RecordConfigReplace 记录一次布局替换
func RecordConfigReplace(ctx context.Context) {
	if metrics == nil {
		return
	}
	metrics.ConfigReplacesTotal.Add(ctx, 1)
}

// RecordConfigReject 按错误码记录被拒绝的布局
func RecordConfigReject(ctx context.Context, code string) {
	if metrics == nil {
		return
	}
	metrics.ConfigRejectsTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.String("code", code)))
}

// RecordConfigCacheHit 记录缓存命中
func RecordConfigCacheHit(ctx context.Context) {
	if metrics == nil {
		return
	}
	metrics.ConfigCacheHitsTotal.Add(ctx, 1)
}

// RecordConfigFallback 记录一次全量步骤兜底
func RecordConfigFallback(ctx context.Context) {
	if metrics == nil {
		return
	}
	metrics.ConfigFallbackTotal.Add(ctx, 1)
}
