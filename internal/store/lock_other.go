//go:build !unix

package store

import "os"

// fileLock only creates the sidecar file on platforms without flock(2);
// cross-process exclusion there relies on a single writer process.
type fileLock struct {
	f *os.File
}

func lockFile(path string, _ bool) (*fileLock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, err
	}
	return &fileLock{f: f}, nil
}

func (l *fileLock) unlock() error { return l.f.Close() }
