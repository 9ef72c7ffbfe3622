package server

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "gitlab.com/yelinaung/expense-api/internal/server"

type metrics struct {
	expensesCreated  metric.Int64Counter
	exportsGenerated metric.Int64Counter
}

func newMetrics() *metrics {
	meter := otel.Meter(meterName)
	m := &metrics{}
	// Errors only arise from invalid instrument names.
	m.expensesCreated, _ = meter.Int64Counter("expenses.created",
		metric.WithDescription("Expenses recorded"))
	m.exportsGenerated, _ = meter.Int64Counter("exports.generated",
		metric.WithDescription("Expense exports generated"))
	return m
}

func (m *metrics) expenseCreated(ctx context.Context, category string) {
	if m.expensesCreated == nil {
		return
	}
	m.expensesCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("category", category)))
}

func (m *metrics) exportGenerated(ctx context.Context, format string) {
	if m.exportsGenerated == nil {
		return
	}
	m.exportsGenerated.Add(ctx, 1, metric.WithAttributes(attribute.String("format", format)))
}
