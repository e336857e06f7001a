// Package probe decides whether a command-line token names a program on disk.
package probe

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/doeshing/explain-go/internal/ports"
)

// PathProber checks the token itself and every directory on the search path.
type PathProber struct {
	getenv func(string) string
	stat   func(string) (os.FileInfo, error)
	suffix string
}

// NewPathProber builds a prober over the real environment and filesystem.
func NewPathProber() *PathProber {
	return &PathProber{
		getenv: os.Getenv,
		stat:   os.Stat,
		suffix: executableSuffix(runtime.GOOS),
	}
}

// IsExecutable implements ports.ExecutableProber.
func (p *PathProber) IsExecutable(token string) bool {
	_, ok := p.Resolve(token)
	return ok
}

// Resolve returns the token when it is an existing file, otherwise the first
// search-path candidate that exists.
func (p *PathProber) Resolve(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	if p.isFile(token) {
		return token, true
	}
	for _, dir := range filepath.SplitList(p.getenv("PATH")) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, token+p.suffix)
		if p.isFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func (p *PathProber) isFile(path string) bool {
	info, err := p.stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func executableSuffix(goos string) string {
	if goos == "windows" {
		return ".exe"
	}
	return ""
}

var _ ports.ExecutableProber = (*PathProber)(nil)
