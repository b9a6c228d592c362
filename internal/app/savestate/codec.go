package savestate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"idletycoon/internal/app/ports"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type Codec struct {
	Store     ports.SaveStore
	KeyPrefix string
	Versions  []SchemaVersion
}

// Loaded is a successfully decoded record plus where it came from.
type Loaded struct {
	Record  Record
	Version int
	Key     string
}

func NewCodec(store ports.SaveStore) Codec {
	return Codec{Store: store, KeyPrefix: DefaultKeyPrefix, Versions: DefaultVersions}
}

func (c Codec) CurrentKey() string {
	return c.versions()[0].Key(c.prefix())
}

// Save writes rec under the current version's key, overwriting any previous
// record there. Older keys are never touched.
func (c Codec) Save(ctx context.Context, rec Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode save record: %w", err)
	}
	if err := c.Store.Put(ctx, c.CurrentKey(), b); err != nil {
		return fmt.Errorf("write %s: %w", c.CurrentKey(), err)
	}
	return nil
}

// Load probes every known version newest first. Missing, unreadable and
// malformed records are all treated as absent. The second return value is
// false when no version yielded a usable record.
func (c Codec) Load(ctx context.Context) (Loaded, bool) {
	prefix := c.prefix()
	for _, v := range c.versions() {
		key := v.Key(prefix)
		raw, err := c.Store.Get(ctx, key)
		if err != nil {
			if !errors.Is(err, ports.ErrNotFound) {
				hlog.CtxWarnf(ctx, "save load: read %s failed, treating as absent: %v", key, err)
			}
			continue
		}
		rec, err := decodeRecord(raw)
		if err != nil {
			hlog.CtxWarnf(ctx, "save load: %s is malformed, treating as absent: %v", key, err)
			continue
		}
		v.normalize(&rec)
		return Loaded{Record: rec, Version: v.Version, Key: key}, true
	}
	return Loaded{}, false
}

func (c Codec) prefix() string {
	if c.KeyPrefix == "" {
		return DefaultKeyPrefix
	}
	return c.KeyPrefix
}

func (c Codec) versions() []SchemaVersion {
	if len(c.Versions) == 0 {
		return DefaultVersions
	}
	return c.Versions
}
