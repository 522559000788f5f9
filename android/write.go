package android

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/Abhimanyu14/material-symbols/session"
)

type staged struct {
	tmp    string
	final  string
	backup string
}

type transaction struct {
	files   []*staged
	targets map[string]bool
}

// RunAtomicWrite stages every WriteFile made by action in temp files next to
// their targets. They are renamed into place only when action succeeds; any
// failure, including a failed rename, leaves the previous files untouched.
// Transactions are serialized.
func (p *Project) RunAtomicWrite(ctx context.Context, action func(ctx context.Context) error) error {
	p.txMu.Lock()
	defer p.txMu.Unlock()

	tx := &transaction{targets: make(map[string]bool)}
	p.mu.Lock()
	p.tx = tx
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.tx = nil
		p.mu.Unlock()
	}()

	err := action(ctx)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		tx.discard()
		return err
	}
	return tx.commit()
}

// WriteFile writes content to dir/name. Inside RunAtomicWrite the write is
// staged; otherwise it goes through a temp file and a rename immediately.
func (p *Project) WriteFile(dir session.Dir, name, content string) (session.File, error) {
	if name == "" || filepath.Base(name) != name {
		return session.File{}, fmt.Errorf("invalid file name %q", name)
	}
	final := filepath.Join(dir.Path, name)
	if !p.Overwrite && fileExists(final) {
		return session.File{}, fmt.Errorf("%s: %w", final, os.ErrExist)
	}

	p.mu.Lock()
	tx := p.tx
	if tx != nil {
		if tx.targets[final] {
			p.mu.Unlock()
			return session.File{}, fmt.Errorf("%s written twice", name)
		}
		tx.targets[final] = true
	}
	p.mu.Unlock()

	tmp, err := writeTemp(dir.Path, name, content)
	if err != nil {
		return session.File{}, err
	}

	if tx != nil {
		p.mu.Lock()
		tx.files = append(tx.files, &staged{tmp: tmp, final: final})
		p.mu.Unlock()
	} else if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return session.File{}, fmt.Errorf("failed to write %s: %w", final, err)
	}

	return session.File{Name: name, Path: final, Size: len(content)}, nil
}

func writeTemp(dir, name, content string) (string, error) {
	f, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(f.Name(), 0o644); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to set permissions: %w", err)
	}
	return f.Name(), nil
}

func (tx *transaction) discard() {
	for _, s := range tx.files {
		if err := os.Remove(s.tmp); err != nil && !errors.Is(err, os.ErrNotExist) {
			logrus.WithError(err).WithField("file", s.tmp).Warn("failed to remove staged file")
		}
	}
}

func (tx *transaction) commit() error {
	for i, s := range tx.files {
		if err := s.install(); err != nil {
			tx.rollback(i)
			return fmt.Errorf("failed to install %s: %w", s.final, err)
		}
	}
	for _, s := range tx.files {
		if s.backup != "" {
			_ = os.Remove(s.backup)
		}
	}
	return nil
}

func (s *staged) install() error {
	if fileExists(s.final) {
		s.backup = s.tmp + ".bak"
		if err := os.Rename(s.final, s.backup); err != nil {
			s.backup = ""
			return err
		}
	}
	if err := os.Rename(s.tmp, s.final); err != nil {
		if s.backup != "" {
			_ = os.Rename(s.backup, s.final)
			s.backup = ""
		}
		return err
	}
	return nil
}

// rollback undoes the first n installs and drops the remaining staged files.
func (tx *transaction) rollback(n int) {
	for i := n - 1; i >= 0; i-- {
		s := tx.files[i]
		_ = os.Remove(s.final)
		if s.backup != "" {
			_ = os.Rename(s.backup, s.final)
		}
	}
	for _, s := range tx.files[n:] {
		_ = os.Remove(s.tmp)
	}
}
