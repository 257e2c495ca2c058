package migration

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"jobtrack/internal/database"

	"go.uber.org/zap"
)

const advisoryLockKey int64 = 746295115

type Runner struct {
	FS     fs.FS
	Logger *zap.Logger
}

type Migration struct {
	Version  int64
	Name     string
	Filename string
	SQL      string
	Checksum string
}

type Result struct {
	Applied []Migration
	Skipped int
}

var fileRe = regexp.MustCompile(`^V(\d+)__([A-Za-z0-9_.-]+)\.sql$`)

// Run applies every pending migration in one transaction guarded by a
// transaction-scoped advisory lock, so concurrent starts serialise.
func (r Runner) Run(ctx context.Context, db database.DB) (Result, error) {
	if db == nil {
		return Result{}, database.ErrNilDB
	}
	if r.FS == nil {
		return Result{}, errors.New("nil migrations fs")
	}

	migs, err := Load(r.FS)
	if err != nil {
		return Result{}, err
	}
	if len(migs) == 0 {
		return Result{}, nil
	}

	if _, err := db.Exec(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version BIGINT PRIMARY KEY,
	name TEXT NOT NULL,
	checksum TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return Result{}, fmt.Errorf("ensure schema_migrations: %w", err)
	}

	var res Result
	err = database.WithTx(ctx, db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, advisoryLockKey); err != nil {
			return fmt.Errorf("advisory lock: %w", err)
		}

		applied, err := getApplied(ctx, tx)
		if err != nil {
			return err
		}

		pending, skipped, err := Pending(migs, applied)
		if err != nil {
			return err
		}
		res.Skipped = skipped

		for _, m := range pending {
			if _, err := tx.Exec(ctx, m.SQL); err != nil {
				return fmt.Errorf("apply migration failed: version=%d file=%s: %w", m.Version, m.Filename, err)
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO schema_migrations (version, name, checksum, applied_at) VALUES ($1, $2, $3, $4)`,
				m.Version, m.Name, m.Checksum, time.Now().UTC(),
			); err != nil {
				return err
			}
			res.Applied = append(res.Applied, m)
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	if r.Logger != nil {
		for _, m := range res.Applied {
			r.Logger.Info("migration applied", zap.Int64("version", m.Version), zap.String("name", m.Name))
		}
		r.Logger.Info("migrations complete", zap.Int("applied", len(res.Applied)), zap.Int("skipped", res.Skipped))
	}
	return res, nil
}

// Load reads V<version>__<name>.sql files from the root of fsys, sorted by version.
func Load(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	migs := make([]Migration, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		m := fileRe.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		v, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid migration version: %s", name)
		}

		b, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, err
		}
		sqlText := strings.TrimSpace(string(b))
		if sqlText == "" {
			return nil, fmt.Errorf("empty migration file: %s", name)
		}

		h := sha256.Sum256([]byte(sqlText))
		migs = append(migs, Migration{
			Version:  v,
			Name:     m[2],
			Filename: name,
			SQL:      sqlText,
			Checksum: hex.EncodeToString(h[:]),
		})
	}

	sort.Slice(migs, func(i, j int) bool { return migs[i].Version < migs[j].Version })
	for i := 1; i < len(migs); i++ {
		if migs[i].Version == migs[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version: %d", migs[i].Version)
		}
	}

	return migs, nil
}

// Pending filters out applied migrations and fails when an applied file was edited.
func Pending(migs []Migration, applied map[int64]string) ([]Migration, int, error) {
	out := make([]Migration, 0, len(migs))
	skipped := 0
	for _, m := range migs {
		if checksum, ok := applied[m.Version]; ok {
			if checksum != m.Checksum {
				return nil, 0, fmt.Errorf("migration checksum mismatch: version=%d name=%s", m.Version, m.Name)
			}
			skipped++
			continue
		}
		out = append(out, m)
	}
	return out, skipped, nil
}

func getApplied(ctx context.Context, q database.Querier) (map[int64]string, error) {
	rows, err := q.Query(ctx, `SELECT version, checksum FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int64]string{}
	for rows.Next() {
		var v int64
		var c string
		if err := rows.Scan(&v, &c); err != nil {
			return nil, err
		}
		out[v] = c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
