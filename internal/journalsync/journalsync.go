// Package journalsync reconciles a user's journal sources into the session
// store. Each source is a local directory or a git repository containing
// .journal files; parsed entries are appended unless their fingerprint was
// imported before. The store is append-only, so removing an entry from a
// journal never removes the session it produced.
package journalsync

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"studytrack/internal/fingerprint"
	"studytrack/internal/journal"
	"studytrack/internal/storage"
)

const journalSuffix = ".journal"

// Result summarizes one sync run.
type Result struct {
	Parsed   int
	Imported int
	Skipped  int
	Errors   int
}

// SourceType classifies a source path the way the web form accepts it.
func SourceType(path string) string {
	if strings.HasSuffix(path, ".git") || strings.HasPrefix(path, "git@") ||
		strings.HasPrefix(path, "https://") || strings.HasPrefix(path, "http://") {
		return "git"
	}
	return "local"
}

// Run reconciles every journal source registered for the user.
func Run(db *storage.DB, userID, reposDir string) (Result, error) {
	slog.Info("Starting journal sync", "user_id", userID)

	sources, err := db.GetJournalSourcesByUser(userID)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load journal sources: %w", err)
	}
	if len(sources) == 0 {
		slog.Info("No journal sources configured", "user_id", userID)
		return Result{}, nil
	}

	if err := os.MkdirAll(reposDir, os.ModePerm); err != nil {
		return Result{}, fmt.Errorf("failed to create repos directory: %w", err)
	}

	var total Result
	for _, source := range sources {
		slog.Info("Syncing journal source", "id", source.ID, "type", source.Type, "path", source.Path)

		dir := source.Path
		if source.Type == "git" {
			localRepoPath, err := gitURLToLocalPath(reposDir, source.Path)
			if err != nil {
				slog.Error("Error determining local path for git journal", "url", source.Path, "error", err)
				total.Errors++
				continue
			}
			if err := syncGitSource(source.Path, localRepoPath); err != nil {
				slog.Error("Error syncing git journal", "url", source.Path, "error", err)
				total.Errors++
				continue
			}
			dir = localRepoPath
		}

		res := reconcileDir(db, userID, dir)
		total.Parsed += res.Parsed
		total.Imported += res.Imported
		total.Skipped += res.Skipped
		total.Errors += res.Errors

		if err := db.UpdateJournalSourceLastScanned(source.ID); err != nil {
			slog.Warn("Failed to update last scanned for source", "source_id", source.ID, "error", err)
		}
	}

	slog.Info("Journal sync complete",
		"user_id", userID,
		"parsed", total.Parsed,
		"imported", total.Imported,
		"already_present", total.Skipped,
		"errors", total.Errors,
	)
	return total, nil
}

func reconcileDir(db *storage.DB, userID, dir string) Result {
	var res Result

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), journalSuffix) {
			return nil
		}

		sessions, lineErrs, parseErr := journal.ParseFile(path)
		if parseErr != nil {
			slog.Error("Error reading journal file", "path", path, "error", parseErr)
			res.Errors++
			return nil
		}
		for _, lineErr := range lineErrs {
			slog.Warn("Skipping malformed journal entry", "path", path, "error", lineErr)
			res.Errors++
		}

		for _, s := range sessions {
			res.Parsed++
			fprint := fingerprint.Hash(s)

			exists, err := db.HasFingerprint(userID, fprint)
			if err != nil {
				slog.Error("Fingerprint check failed", "path", path, "error", err)
				res.Errors++
				continue
			}
			if exists {
				res.Skipped++
				continue
			}

			s.CreatedAt = time.Now().UTC()
			if err := db.InsertSession(userID, s, fprint); err != nil {
				slog.Error("Failed to import journal entry", "path", path, "error", err)
				res.Errors++
				continue
			}
			res.Imported++
		}
		return nil
	})

	if walkErr != nil {
		slog.Error("Error walking journal directory", "path", dir, "error", walkErr)
		res.Errors++
	}
	return res
}

func gitURLToLocalPath(baseDir, repoURL string) (string, error) {
	parsedURL, err := url.Parse(repoURL)
	if err != nil || (parsedURL.Scheme != "https" && parsedURL.Scheme != "http") {
		if strings.Contains(repoURL, "@") {
			parts := strings.Split(repoURL, ":")
			if len(parts) == 2 {
				hostAndUser := strings.Split(parts[0], "@")
				if len(hostAndUser) == 2 {
					host := hostAndUser[1]
					repoPath := strings.TrimSuffix(parts[1], ".git")
					return filepath.Join(baseDir, host, repoPath), nil
				}
			}
		}
		return "", fmt.Errorf("could not parse git URL: %s", repoURL)
	}

	sanitizedPath := strings.TrimSuffix(parsedURL.Path, ".git")
	return filepath.Join(baseDir, parsedURL.Host, sanitizedPath), nil
}
