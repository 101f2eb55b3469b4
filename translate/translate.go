// Package translate implements the translation pipeline: single-string
// translation tasks against a LibreTranslate-style HTTP endpoint and the
// orchestrator that fans tasks out over a bounded worker pool while
// keeping results in catalog order.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/lokalize-tools/potrans/extract"
	"github.com/lokalize-tools/potrans/transport"
)

// FailureMarker is written in place of a translation when a task fails
// and continue-on-error is enabled.
const FailureMarker = "<ERROR>"

// DefaultMaxTextLen is the ceiling, in bytes, above which input text is
// truncated before transmission.
const DefaultMaxTextLen = 5000

// DefaultWorkers is the default worker pool size.
const DefaultWorkers = 4

// responseKeys are the accepted translated-text field names, probed in
// priority order. LibreTranslate uses "translatedText"; the others cover
// compatible backends.
var responseKeys = []string{"translatedText", "translation", "text"}

// Options controls the pipeline behavior.
type Options struct {
	// Endpoint is the translation service URL.
	Endpoint string
	// Source and Target are the locale tags for the request.
	Source string
	Target string
	// APIKey, when set, is sent with every request.
	APIKey string
	// Workers is the worker pool size (default 4).
	Workers int
	// ContinueOnError records failures as FailureMarker instead of
	// aborting the batch.
	ContinueOnError bool
	// MaxTextLen is the truncation ceiling in bytes (default 5000).
	MaxTextLen int
	// OnLog emits informational messages.
	OnLog func(format string, args ...any)
	// OnError emits error messages.
	OnError func(format string, args ...any)
	// Verbose enables per-task logging.
	Verbose bool
}

func (o *Options) log(format string, args ...any) {
	if o.OnLog != nil {
		o.OnLog(format, args...)
	}
}

func (o *Options) logError(format string, args ...any) {
	if o.OnError != nil {
		o.OnError(format, args...)
	} else if o.OnLog != nil {
		o.OnLog(format, args...)
	}
}

func (o *Options) effectiveWorkers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return DefaultWorkers
}

func (o *Options) effectiveMaxTextLen() int {
	if o.MaxTextLen > 0 {
		return o.MaxTextLen
	}
	return DefaultMaxTextLen
}

// Record pairs an original string with its translation outcome, in
// catalog order.
type Record struct {
	// Source is the original text.
	Source string
	// Translation holds the translated text, or FailureMarker when
	// Failed is set.
	Translation string
	// Failed marks a task that yielded no result.
	Failed bool
}

// AbortError reports the first failing entry when continue-on-error is
// disabled.
type AbortError struct {
	// Ordinal is the position of the failing entry.
	Ordinal int
	// Text is the original string that failed.
	Text string
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("translation failed for entry %d: %.40q", e.Ordinal, e.Text)
}

// outcome is the tagged result of one translation task: a translated
// string or nothing.
type outcome struct {
	text string
	ok   bool
}

// request is the JSON body of one translation call.
type request struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

// translateText performs a single translation call. Transport and
// response-shape failures never escape: they are logged and reported as
// a failed outcome. Empty input short-circuits to an empty translation
// without a network call.
func translateText(ctx context.Context, client *transport.Client, opts *Options, text string) outcome {
	if text == "" {
		return outcome{text: "", ok: true}
	}

	if max := opts.effectiveMaxTextLen(); len(text) > max {
		opts.logError("text too long (%d bytes), truncating to %d", len(text), max)
		text = truncateText(text, max)
	}

	body, err := client.PostJSON(ctx, opts.Endpoint, request{
		Q:      text,
		Source: opts.Source,
		Target: opts.Target,
		Format: "text",
		APIKey: opts.APIKey,
	})
	if err != nil {
		opts.logError("translation request failed: %v", err)
		return outcome{}
	}

	translated, ok := pickTranslation(body)
	if !ok {
		opts.logError("unexpected response for %.60q: %s", text, truncate(string(body), 200))
		return outcome{}
	}
	return outcome{text: translated, ok: true}
}

// pickTranslation extracts the translated text from a response body,
// trying the accepted key names in priority order. The first non-empty
// string wins, trimmed of surrounding whitespace.
func pickTranslation(body []byte) (string, bool) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", false
	}
	for _, key := range responseKeys {
		if s, ok := raw[key].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s, true
			}
		}
	}
	return "", false
}

// truncateText cuts s to at most max bytes, backing up to a rune
// boundary so the result stays valid UTF-8.
func truncateText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}

// Run translates all entries over a bounded worker pool and returns one
// Record per entry in submission order.
//
// Completions are awaited in submission order, so the output sequence is
// deterministic regardless of which worker finishes first. When a task
// yields no result and continue-on-error is disabled, no further tasks
// are submitted, in-flight workers are drained, and an AbortError is
// returned; results past the failing entry are discarded.
func Run(ctx context.Context, client *transport.Client, entries []extract.SourceEntry, opts Options) ([]Record, error) {
	n := len(entries)
	if n == 0 {
		return nil, nil
	}

	workers := opts.effectiveWorkers()
	if workers > n {
		workers = n
	}

	// One result slot per entry, written exactly once by the task that
	// owns the index and read only after its done channel closes.
	results := make([]outcome, n)
	done := make([]chan struct{}, n)
	for i := range done {
		done[i] = make(chan struct{})
	}

	jobs := make(chan int)
	var aborted atomic.Bool
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if opts.Verbose {
					opts.log("translating entry %d/%d", i+1, n)
				}
				results[i] = translateText(ctx, client, &opts, entries[i].Text)
				close(done[i])
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := 0; i < n; i++ {
			if aborted.Load() {
				return
			}
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	records := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		select {
		case <-done[i]:
		case <-ctx.Done():
			aborted.Store(true)
			wg.Wait()
			return nil, ctx.Err()
		}

		out := results[i]
		if !out.ok {
			if ctx.Err() != nil {
				aborted.Store(true)
				wg.Wait()
				return nil, ctx.Err()
			}
			opts.logError("translation failed for: %.40q", entries[i].Text)
			if !opts.ContinueOnError {
				aborted.Store(true)
				wg.Wait()
				return nil, &AbortError{Ordinal: entries[i].Ordinal, Text: entries[i].Text}
			}
			records = append(records, Record{Source: entries[i].Text, Translation: FailureMarker, Failed: true})
			continue
		}
		records = append(records, Record{Source: entries[i].Text, Translation: out.text})
	}

	wg.Wait()
	return records, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
