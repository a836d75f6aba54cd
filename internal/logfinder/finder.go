// Package logfinder locates Second Life viewer chat log directories and
// the per-avatar chat.txt files inside them.
//
// Viewers keep one subdirectory per avatar in the chat log folder, named
// after the account in lower case with spaces replaced by underscores:
//
//	<chat log dir>/jane_doe/chat.txt
//	<chat log dir>/jane_doe/bob_resident.txt   (IM)
package logfinder

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// EnvLogDir is the environment variable name for specifying the chat log
// directory.
const EnvLogDir = "SLCHATLOG_LOGDIR"

// ChatLogName is the file a viewer writes local chat to.
const ChatLogName = "chat.txt"

// chatLogGlob matches chat.txt directly in a directory or one avatar
// directory below it.
const chatLogGlob = "{" + ChatLogName + ",*/" + ChatLogName + "}"

// Sentinel errors.
var (
	ErrLogDirNotFound = errors.New("log directory not found")
	ErrNoLogFiles     = errors.New("no log files found")
)

var viewerDirs = []string{"Firestorm_x64", "Firestorm", "SecondLife"}

// DefaultLogDirs returns candidate chat log directories in priority order
// for the current OS.
func DefaultLogDirs() []string {
	var base string
	lower := false
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("APPDATA")
		if base == "" {
			if profile := os.Getenv("USERPROFILE"); profile != "" {
				base = filepath.Join(profile, "AppData", "Roaming")
			}
		}
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil {
			base = filepath.Join(home, "Library", "Application Support")
		}
	default:
		if home, err := os.UserHomeDir(); err == nil {
			base = home
			lower = true
		}
	}
	if base == "" {
		return nil
	}

	dirs := make([]string, 0, len(viewerDirs))
	for _, name := range viewerDirs {
		if lower {
			name = "." + strings.ToLower(name)
		}
		dirs = append(dirs, filepath.Join(base, name))
	}
	return dirs
}

// FindLogDir returns the chat log directory.
//
// Priority:
//  1. explicit (if non-empty)
//  2. SLCHATLOG_LOGDIR environment variable
//  3. Auto-detect from DefaultLogDirs()
//
// An explicit or environment directory only has to exist, so a watcher
// can wait for the first chat.txt. Auto-detected directories must
// already hold a chat log. Returns ErrLogDirNotFound otherwise. The
// returned path has symlinks resolved.
func FindLogDir(explicit string) (string, error) {
	if explicit != "" {
		if resolved := resolveAndValidateLogDir(explicit, false); resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: specified directory does not exist", ErrLogDirNotFound)
	}

	if envDir := os.Getenv(EnvLogDir); envDir != "" {
		if resolved := resolveAndValidateLogDir(envDir, false); resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: %s environment variable points to invalid directory", ErrLogDirNotFound, EnvLogDir)
	}

	for _, dir := range DefaultLogDirs() {
		if resolved := resolveAndValidateLogDir(dir, true); resolved != "" {
			return resolved, nil
		}
	}
	return "", ErrLogDirNotFound
}

// AvatarDirName returns the directory name a viewer uses for an avatar:
// "Jane Doe" becomes "jane_doe".
func AvatarDirName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// logCandidate holds a log file path and its cached modification time.
type logCandidate struct {
	path    string
	modTime int64
}

// FindChatLogs returns every chat.txt in dir, newest first.
// Returns ErrNoLogFiles if there are none.
func FindChatLogs(dir string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), chatLogGlob, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("globbing chat logs: %w", err)
	}

	// Stat each file once; files may disappear while the viewer rotates.
	candidates := make([]logCandidate, 0, len(matches))
	for _, m := range matches {
		path := filepath.Join(dir, filepath.FromSlash(m))
		info, err := os.Lstat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		candidates = append(candidates, logCandidate{path: path, modTime: info.ModTime().UnixNano()})
	}
	if len(candidates) == 0 {
		return nil, ErrNoLogFiles
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].modTime > candidates[j].modTime
	})
	paths := make([]string, len(candidates))
	for i, c := range candidates {
		paths[i] = c.path
	}
	return paths, nil
}

// FindChatLog returns the chat.txt for avatar in dir. With an empty
// avatar it returns the most recently modified chat.txt.
func FindChatLog(dir, avatar string) (string, error) {
	if avatar == "" {
		paths, err := FindChatLogs(dir)
		if err != nil {
			return "", err
		}
		return paths[0], nil
	}

	path := filepath.Join(dir, AvatarDirName(avatar), ChatLogName)
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: no chat log for %q", ErrNoLogFiles, avatar)
	}
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s is not a regular file", ErrNoLogFiles, path)
	}
	return path, nil
}

// ExpandGlobs expands file arguments that may contain ** patterns.
// Arguments without glob metacharacters are returned unchanged, so a
// missing file is reported by whoever opens it.
func ExpandGlobs(patterns []string) ([]string, error) {
	var out []string
	for _, p := range patterns {
		if !strings.ContainsAny(p, "*?[{") {
			out = append(out, p)
			continue
		}
		matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", p, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %q matched nothing", ErrNoLogFiles, p)
		}
		out = append(out, matches...)
	}
	return out, nil
}

// resolveAndValidateLogDir resolves symlinks and, with requireLogs, checks
// that the directory holds at least one chat log. Returns "" otherwise.
func resolveAndValidateLogDir(dir string, requireLogs bool) string {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return ""
	}

	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return ""
	}
	if requireLogs && !isValidLogDir(resolved) {
		return ""
	}
	return resolved
}

func isValidLogDir(dir string) bool {
	matches, err := doublestar.Glob(os.DirFS(dir), chatLogGlob, doublestar.WithFilesOnly())
	return err == nil && len(matches) > 0
}
