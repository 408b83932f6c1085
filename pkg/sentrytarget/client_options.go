package sentrytarget

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/getsentry/sentry-go"
)

type optionSetter func(o *sentry.ClientOptions, v any) error

// clientOptionSetters maps normalized option keys to ClientOptions fields.
var clientOptionSetters = map[string]optionSetter{
	"environment": stringOption(func(o *sentry.ClientOptions, s string) { o.Environment = s }),
	"release":     stringOption(func(o *sentry.ClientOptions, s string) { o.Release = s }),
	"dist":        stringOption(func(o *sentry.ClientOptions, s string) { o.Dist = s }),
	"servername":  stringOption(func(o *sentry.ClientOptions, s string) { o.ServerName = s }),
	"httpproxy":   stringOption(func(o *sentry.ClientOptions, s string) { o.HTTPProxy = s }),
	"httpsproxy":  stringOption(func(o *sentry.ClientOptions, s string) { o.HTTPSProxy = s }),

	"debug":            boolOption(func(o *sentry.ClientOptions, b bool) { o.Debug = b }),
	"attachstacktrace": boolOption(func(o *sentry.ClientOptions, b bool) { o.AttachStacktrace = b }),
	"senddefaultpii":   boolOption(func(o *sentry.ClientOptions, b bool) { o.SendDefaultPII = b }),
	"enabletracing":    boolOption(func(o *sentry.ClientOptions, b bool) { o.EnableTracing = b }),
	"enablelogs":       boolOption(func(o *sentry.ClientOptions, b bool) { o.EnableLogs = b }),

	"samplerate":       rateOption(func(o *sentry.ClientOptions, f float64) { o.SampleRate = f }),
	"tracessamplerate": rateOption(func(o *sentry.ClientOptions, f float64) { o.TracesSampleRate = f }),

	"maxbreadcrumbs": intOption(func(o *sentry.ClientOptions, n int) { o.MaxBreadcrumbs = n }),
	"maxerrordepth":  intOption(func(o *sentry.ClientOptions, n int) { o.MaxErrorDepth = n }),
	"maxspans":       intOption(func(o *sentry.ClientOptions, n int) { o.MaxSpans = n }),

	"ignoreerrors":       stringsOption(func(o *sentry.ClientOptions, s []string) { o.IgnoreErrors = s }),
	"ignoretransactions": stringsOption(func(o *sentry.ClientOptions, s []string) { o.IgnoreTransactions = s }),

	"tags": func(o *sentry.ClientOptions, v any) error {
		m, ok := tagMap(v)
		if !ok {
			return fmt.Errorf("expected mapping, got %T", v)
		}
		o.Tags = make(map[string]string, len(m))
		for k, val := range m {
			o.Tags[k] = tagValue(val)
		}
		return nil
	},
}

// applyClientOptions copies pass-through options onto o. Keys are applied in
// sorted order so that aliases of the same option resolve deterministically.
func applyClientOptions(o *sentry.ClientOptions, raw map[string]any) error {
	for _, key := range slices.Sorted(maps.Keys(raw)) {
		setter, ok := clientOptionSetters[normalizeOptionKey(key)]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownClientOption, key)
		}
		if err := setter(o, raw[key]); err != nil {
			return fmt.Errorf("%w: %q: %w", ErrInvalidClientOption, key, err)
		}
	}
	return nil
}

func normalizeOptionKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	return strings.NewReplacer("_", "", "-", "").Replace(key)
}

func stringOption(set func(*sentry.ClientOptions, string)) optionSetter {
	return func(o *sentry.ClientOptions, v any) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", v)
		}
		set(o, s)
		return nil
	}
}

func boolOption(set func(*sentry.ClientOptions, bool)) optionSetter {
	return func(o *sentry.ClientOptions, v any) error {
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", v)
		}
		set(o, b)
		return nil
	}
}

func rateOption(set func(*sentry.ClientOptions, float64)) optionSetter {
	return func(o *sentry.ClientOptions, v any) error {
		f, ok := toFloat(v)
		if !ok {
			return fmt.Errorf("expected number, got %T", v)
		}
		if f < 0 || f > 1 {
			return fmt.Errorf("rate %v out of range [0, 1]", f)
		}
		set(o, f)
		return nil
	}
}

func intOption(set func(*sentry.ClientOptions, int)) optionSetter {
	return func(o *sentry.ClientOptions, v any) error {
		f, ok := toFloat(v)
		if !ok || f != math.Trunc(f) {
			return fmt.Errorf("expected integer, got %v", v)
		}
		set(o, int(f))
		return nil
	}
}

func stringsOption(set func(*sentry.ClientOptions, []string)) optionSetter {
	return func(o *sentry.ClientOptions, v any) error {
		switch x := v.(type) {
		case []string:
			set(o, slices.Clone(x))
			return nil
		case []any:
			out := make([]string, 0, len(x))
			for _, item := range x {
				s, ok := item.(string)
				if !ok {
					return fmt.Errorf("expected list of strings, got %T item", item)
				}
				out = append(out, s)
			}
			set(o, out)
			return nil
		default:
			return fmt.Errorf("expected list of strings, got %T", v)
		}
	}
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float64:
		return x, true
	case float32:
		return float64(x), true
	default:
		return 0, false
	}
}
