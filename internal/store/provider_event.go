package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const eventsTable = "provider_events"

var eventColumns = []string{
	"id", "created_at", "kind", "provider", "model", "purpose",
	"input_tokens", "output_tokens", "audio_bytes", "latency_ms",
	"success", "error_message", "request_body", "response_body",
}

// eventRepo implements EventRepo with the ent SQL builder.
type eventRepo struct {
	drv *entsql.Driver
	now func() time.Time
}

func (r *eventRepo) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

func (r *eventRepo) AppendProviderEvent(ctx context.Context, d ProviderEventData) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(eventsTable).
		Columns(eventColumns[1:]...).
		Values(
			r.clock().UnixMilli(), d.Kind, d.Provider, d.Model, d.Purpose,
			d.InputTokens, d.OutputTokens, d.AudioBytes, d.LatencyMs,
			d.Success, d.ErrorMessage, d.RequestBody, d.ResponseBody,
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save provider event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryProviderEvents(ctx context.Context, opts QueryOpts) ([]ProviderEvent, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(eventColumns...).
		From(entsql.Table(eventsTable)).
		OrderBy(entsql.Desc("id"))
	if opts.After > 0 {
		sel.Where(entsql.GT("id", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("id", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("created_at", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("created_at", opts.To.UnixMilli()))
	}
	if opts.Kind != "" {
		sel.Where(entsql.EQ("kind", opts.Kind))
	}
	if opts.Purpose != "" {
		sel.Where(entsql.EQ("purpose", opts.Purpose))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query provider events: %w", err)
	}
	defer rows.Close()

	var out []ProviderEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) GetProviderEvent(ctx context.Context, id int64) (*ProviderEvent, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(eventColumns...).
		From(entsql.Table(eventsTable)).
		Where(entsql.EQ("id", id)).
		Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("get provider event: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	e, err := scanEvent(rows)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *eventRepo) UsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(
			"purpose",
			entsql.As(entsql.Count("*"), "calls"),
			"SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END)",
			entsql.As(entsql.Sum("input_tokens"), "input_tokens"),
			entsql.As(entsql.Sum("output_tokens"), "output_tokens"),
			entsql.As(entsql.Sum("audio_bytes"), "audio_bytes"),
			entsql.As(entsql.Avg("latency_ms"), "avg_latency"),
		).
		From(entsql.Table(eventsTable)).
		GroupBy("purpose").
		OrderBy("purpose").
		Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query usage by purpose: %w", err)
	}
	defer rows.Close()

	var out []PurposeUsage
	for rows.Next() {
		var u PurposeUsage
		var avg float64
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.Failures, &u.InputTokens, &u.OutputTokens, &u.AudioBytes, &avg); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		u.AvgLatencyMs = int64(avg)
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *eventRepo) UsageByModel(ctx context.Context) ([]ModelUsage, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(
			"model",
			entsql.As(entsql.Count("*"), "calls"),
			entsql.As(entsql.Sum("input_tokens"), "input_tokens"),
			entsql.As(entsql.Sum("output_tokens"), "output_tokens"),
		).
		From(entsql.Table(eventsTable)).
		Where(entsql.EQ("kind", KindLLM)).
		GroupBy("model").
		OrderBy("model").
		Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query usage by model: %w", err)
	}
	defer rows.Close()

	var out []ModelUsage
	for rows.Next() {
		var u ModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan model usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func scanEvent(rows *entsql.Rows) (ProviderEvent, error) {
	var e ProviderEvent
	var createdAt int64
	err := rows.Scan(
		&e.ID, &createdAt, &e.Kind, &e.Provider, &e.Model, &e.Purpose,
		&e.InputTokens, &e.OutputTokens, &e.AudioBytes, &e.LatencyMs,
		&e.Success, &e.ErrorMessage, &e.RequestBody, &e.ResponseBody,
	)
	if err != nil {
		return ProviderEvent{}, fmt.Errorf("scan provider event: %w", err)
	}
	e.Timestamp = time.UnixMilli(createdAt).UTC()
	return e, nil
}
