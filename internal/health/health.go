// Package health runs the checks behind `sagepkm doctor`.
package health

import (
	"fmt"
	"os"

	"github.com/jeanpaul/sagepkm/internal/config"
	"github.com/jeanpaul/sagepkm/internal/seed"
)

type Status struct {
	Name   string
	OK     bool
	Detail string
}

// Check verifies that the configuration is usable: it validates, every
// seed file parses, and the export and log destinations are writable.
func Check(cfg *config.Config) []Status {
	var out []Status

	if err := cfg.Validate(); err != nil {
		out = append(out, Status{Name: "config", Detail: err.Error()})
	} else {
		out = append(out, Status{Name: "config", OK: true, Detail: fmt.Sprintf("user %s (%s)", cfg.User.Name, cfg.User.Role)})
	}

	out = append(out, checkSeeds(cfg.Seeds)...)
	out = append(out, checkWritableDir("export_dir", cfg.ExportDir))

	if cfg.Log.File != "" {
		out = append(out, checkLogFile(cfg.Log.File))
	}
	return out
}

// Healthy reports whether every status passed.
func Healthy(statuses []Status) bool {
	for _, s := range statuses {
		if !s.OK {
			return false
		}
	}
	return true
}

func checkSeeds(patterns []string) []Status {
	if len(patterns) == 0 {
		return []Status{{Name: "seeds", OK: true, Detail: "none configured"}}
	}

	files, err := seed.Expand(patterns)
	if err != nil {
		return []Status{{Name: "seeds", Detail: err.Error()}}
	}
	if len(files) == 0 {
		return []Status{{Name: "seeds", OK: true, Detail: "no files match"}}
	}

	entries, err := seed.Load(patterns)
	if err != nil {
		return []Status{{Name: "seeds", Detail: err.Error()}}
	}
	return []Status{{Name: "seeds", OK: true, Detail: fmt.Sprintf("%d file(s), %d node(s)", len(files), len(entries))}}
}

func checkWritableDir(name, dir string) Status {
	info, err := os.Stat(dir)
	if err != nil {
		return Status{Name: name, Detail: err.Error()}
	}
	if !info.IsDir() {
		return Status{Name: name, Detail: dir + " is not a directory"}
	}

	f, err := os.CreateTemp(dir, ".sagepkm-doctor-*")
	if err != nil {
		return Status{Name: name, Detail: "not writable: " + err.Error()}
	}
	f.Close()
	os.Remove(f.Name())
	return Status{Name: name, OK: true, Detail: dir}
}

func checkLogFile(path string) Status {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return Status{Name: "log", Detail: err.Error()}
	}
	f.Close()
	return Status{Name: "log", OK: true, Detail: path}
}
