package i18n

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"

	"go.uber.org/zap"
)

// BundleFile is the file name of a locale's bundle inside its directory.
const BundleFile = "translation.json"

//go:embed locales/*/translation.json
var embeddedBundles embed.FS

// EmbeddedBundles returns the bundles compiled into the binary, laid out as
// "<locale>/translation.json".
func EmbeddedBundles() fs.FS {
	sub, err := fs.Sub(embeddedBundles, "locales")
	if err != nil {
		panic(err)
	}
	return sub
}

// Messages maps dotted keys ("home.features.ssr") to translated strings.
type Messages map[string]string

// Keys returns the message keys in sorted order.
func (m Messages) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParseBundle decodes a nested JSON bundle and flattens it to dotted keys.
func ParseBundle(data []byte) (Messages, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var root map[string]interface{}
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}

	out := make(Messages)
	flatten(out, "", root)
	return out, nil
}

func flatten(out Messages, prefix string, val interface{}) {
	join := func(k string) string {
		if prefix == "" {
			return k
		}
		return prefix + "." + k
	}

	switch v := val.(type) {
	case map[string]interface{}:
		for k, child := range v {
			flatten(out, join(k), child)
		}
	case []interface{}:
		for i, child := range v {
			flatten(out, join(strconv.Itoa(i)), child)
		}
	case string:
		out[prefix] = v
	case json.Number:
		out[prefix] = v.String()
	case bool:
		out[prefix] = strconv.FormatBool(v)
	}
}

// LoadBundle reads "<locale>/translation.json" from fsys.
func LoadBundle(fsys fs.FS, locale string) (Messages, error) {
	raw, err := fs.ReadFile(fsys, path.Join(locale, BundleFile))
	if err != nil {
		return nil, fmt.Errorf("read bundle %s: %w", locale, err)
	}
	msgs, err := ParseBundle(raw)
	if err != nil {
		return nil, fmt.Errorf("bundle %s: %w", locale, err)
	}
	return msgs, nil
}

// BundleCache stores parsed bundles between requests.
type BundleCache interface {
	Get(ctx context.Context, locale string) (Messages, bool, error)
	Set(ctx context.Context, locale string, msgs Messages) error
}

// Loader resolves bundles for rendering. Load never fails; a bundle that
// cannot be read or parsed is treated as empty.
type Loader struct {
	FS     fs.FS
	Cache  BundleCache
	Logger *zap.Logger
}

func (l *Loader) Load(ctx context.Context, locale string) Messages {
	logger := l.logger()

	if l.Cache != nil {
		msgs, ok, err := l.Cache.Get(ctx, locale)
		if err != nil {
			logger.Warn("bundle cache read failed", zap.String("locale", locale), zap.Error(err))
		} else if ok {
			return msgs
		}
	}

	msgs, err := LoadBundle(l.FS, locale)
	if err != nil {
		logger.Error("error loading translation", zap.String("locale", locale), zap.Error(err))
		return Messages{}
	}

	if l.Cache != nil {
		if err := l.Cache.Set(ctx, locale, msgs); err != nil {
			logger.Warn("bundle cache write failed", zap.String("locale", locale), zap.Error(err))
		}
	}
	return msgs
}

// Raw returns the bundle file exactly as stored, for client-side loading.
func (l *Loader) Raw(locale string) ([]byte, error) {
	return fs.ReadFile(l.FS, path.Join(locale, BundleFile))
}

func (l *Loader) logger() *zap.Logger {
	if l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}

// Diff compares other against base and returns the keys other lacks and the
// keys only other has, both sorted.
func Diff(base, other Messages) (missing, extra []string) {
	for _, k := range base.Keys() {
		if _, ok := other[k]; !ok {
			missing = append(missing, k)
		}
	}
	for _, k := range other.Keys() {
		if _, ok := base[k]; !ok {
			extra = append(extra, k)
		}
	}
	return missing, extra
}
