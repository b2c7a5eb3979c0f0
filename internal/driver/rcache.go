package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"dartlint/internal/diag"
	"dartlint/internal/directive"
	"dartlint/internal/ordering"
	"dartlint/internal/source"
)

// Increment when the payload format changes.
const cacheSchemaVersion uint16 = 1

// Digest keys a cache entry: content hash mixed with the check
// configuration and package identity, so a config change invalidates
// stale findings.
type Digest [32]byte

// CacheKey derives the cache digest for one file run.
func CacheKey(contentHash [32]byte, checks ordering.Config, ctx *directive.PackageContext) Digest {
	h := sha256.New()
	h.Write(contentHash[:])
	fmt.Fprintf(h, "|schema=%d|checks=%v|", cacheSchemaVersion, checks)
	if ctx != nil {
		h.Write([]byte(ctx.Name))
	}
	var out Digest
	h.Sum(out[:0])
	return out
}

type cachedFinding struct {
	Code    uint16
	Sev     uint8
	Start   uint32
	End     uint32
	Message string
}

type cachePayload struct {
	Schema   uint16
	Findings []cachedFinding
}

// ResultCache persists per-file lint findings on disk, keyed by Digest.
// Safe for concurrent use.
type ResultCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenResultCache initializes a cache at the standard XDG location.
func OpenResultCache(app string) (*ResultCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ResultCache{dir: dir}, nil
}

// OpenResultCacheAt initializes a cache rooted at an explicit directory.
func OpenResultCacheAt(dir string) (*ResultCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ResultCache{dir: dir}, nil
}

func (c *ResultCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Findings live under a subdirectory for easy manual cleanup.
	return filepath.Join(c.dir, "findings", hexKey+".mp")
}

// Store serializes the bag's findings under key. Write errors are
// swallowed: the cache is an optimization, never a correctness concern.
func (c *ResultCache) Store(key Digest, bag *diag.Bag) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload := cachePayload{
		Schema:   cacheSchemaVersion,
		Findings: make([]cachedFinding, 0, bag.Len()),
	}
	for _, d := range bag.Items() {
		payload.Findings = append(payload.Findings, cachedFinding{
			Code:    uint16(d.Code),
			Sev:     uint8(d.Severity),
			Start:   d.Primary.Start,
			End:     d.Primary.End,
			Message: d.Message,
		})
	}

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return
	}
	tmpName := f.Name()

	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpName)
		return
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpName)
		return
	}
	// Atomic replace.
	if err := os.Rename(tmpName, p); err != nil {
		_ = os.Remove(tmpName)
	}
}

// Lookup reconstructs a bag for the given key, rebinding spans to file.
// A miss, a read error or a schema mismatch all report !ok.
func (c *ResultCache) Lookup(key Digest, file source.FileID, maxDiagnostics int) (*diag.Bag, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		return nil, false
	}
	defer func() { _ = f.Close() }()

	// A corrupt or stale entry is just a miss; the next Store replaces it
	// atomically, so nothing is deleted under the read lock.
	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil || payload.Schema != cacheSchemaVersion {
		return nil, false
	}

	bag := diag.NewBag(maxDiagnostics)
	for _, finding := range payload.Findings {
		bag.Add(diag.Diagnostic{
			Severity: diag.Severity(finding.Sev),
			Code:     diag.Code(finding.Code),
			Message:  finding.Message,
			Primary: source.Span{
				File:  file,
				Start: finding.Start,
				End:   finding.End,
			},
		})
	}
	return bag, true
}
