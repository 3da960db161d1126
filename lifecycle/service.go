// MIT License
//
// Copyright 2018 Canonical Ledgers, LLC
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS
// IN THE SOFTWARE.

// Package lifecycle starts and stops local factomd and factom-walletd
// processes for users who do not run them as system services.
//
// Nothing in the factom or engine packages depends on lifecycle. A Client
// only needs the services to be reachable.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/Factom-Asset-Tokens/factom-wrapper/factom"
	_log "github.com/Factom-Asset-Tokens/factom-wrapper/log"
	"github.com/hashicorp/go-multierror"
)

var log = _log.New("lifecycle")

// ErrNotRunning is returned by Stop if the Service was not started.
var ErrNotRunning = errors.New("not running")

// Service is a child process serving an HTTP API on Endpoint.
type Service struct {
	// Name is used for logging and errors, e.g. "factomd".
	Name string
	// Path of the binary. A bare name is looked up in PATH.
	Path string
	Args []string
	// Endpoint is the URL the service listens on, used by IsUp.
	Endpoint string
	// Output receives the child's stdout and stderr. If nil, output is
	// discarded.
	Output io.Writer

	mu   sync.Mutex
	cmd  *exec.Cmd
	done chan struct{}
	err  error
}

// NewService returns a Service running the binary name found in binPath, or
// in PATH if binPath is empty.
func NewService(name, binPath, endpoint string, args ...string) *Service {
	path := name
	if len(binPath) > 0 {
		path = filepath.Join(binPath, name)
	}
	return &Service{Name: name, Path: path, Args: args, Endpoint: endpoint}
}

// Start launches the process. It returns an error if the binary cannot be
// found or started, or if the Service is already running. The process runs
// until Stop is called or it exits on its own.
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running() {
		return fmt.Errorf("%v: already running", s.Name)
	}
	cmd := exec.Command(s.Path, s.Args...)
	if s.Output != nil {
		cmd.Stdout, cmd.Stderr = s.Output, s.Output
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%v: %w", s.Name, err)
	}
	log.Infof("Started %v (pid %v).", s.Name, cmd.Process.Pid)
	done := make(chan struct{})
	s.cmd, s.done, s.err = cmd, done, nil
	go func() {
		err := cmd.Wait()
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		close(done)
		log.Debugf("%v exited: %v", s.Name, err)
	}()
	return nil
}

// Running reports whether the process was started and has not exited.
func (s *Service) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running()
}

func (s *Service) running() bool {
	if s.done == nil {
		return false
	}
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

// Stop kills the process and waits for it to exit.
func (s *Service) Stop() error {
	s.mu.Lock()
	if !s.running() {
		s.mu.Unlock()
		return fmt.Errorf("%v: %w", s.Name, ErrNotRunning)
	}
	cmd, done := s.cmd, s.done
	s.mu.Unlock()

	if err := cmd.Process.Kill(); err != nil &&
		!errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("%v: %w", s.Name, err)
	}
	<-done
	log.Infof("Stopped %v.", s.Name)
	return nil
}

// IsUp reports whether a TCP connection to the Endpoint can be made.
func (s *Service) IsUp(ctx context.Context) bool {
	addr, err := hostPort(s.Endpoint)
	if err != nil {
		return false
	}
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// WaitUp polls IsUp every interval until it succeeds or ctx is done. It
// gives up early if the Service was started and has since exited.
func (s *Service) WaitUp(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if s.IsUp(ctx) {
			return nil
		}
		s.mu.Lock()
		started, exited, err := s.done != nil, !s.running(), s.err
		s.mu.Unlock()
		if started && exited {
			return fmt.Errorf("%v exited: %v", s.Name, err)
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%v: %w", s.Name, ctx.Err())
		case <-ticker.C:
		}
	}
}

func hostPort(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}
	if len(u.Host) == 0 {
		return "", fmt.Errorf("invalid endpoint: %q", endpoint)
	}
	if len(u.Port()) > 0 {
		return u.Host, nil
	}
	port := "80"
	if u.Scheme == "https" {
		port = "443"
	}
	return net.JoinHostPort(u.Hostname(), port), nil
}

// Manager starts and stops the daemon and the wallet together. Either
// Service may be nil.
type Manager struct {
	Factomd *Service
	Walletd *Service
}

// NewManager returns a Manager for the services selected by startFactomd and
// startWalletd, with binaries in binPath and endpoints taken from c.
func NewManager(c *factom.Client, binPath string,
	startFactomd, startWalletd bool) *Manager {
	var m Manager
	if startFactomd {
		m.Factomd = NewService(factom.Factomd, binPath, c.FactomdServer)
	}
	if startWalletd {
		m.Walletd = NewService(factom.Walletd, binPath, c.WalletdServer)
	}
	return &m
}

func (m *Manager) services() []*Service {
	var services []*Service
	for _, s := range []*Service{m.Factomd, m.Walletd} {
		if s != nil {
			services = append(services, s)
		}
	}
	return services
}

// Start starts every Service and waits for each to accept connections. If
// any fails, those already started are stopped. The ctx only bounds the wait;
// the processes keep running after it is done, until Stop.
func (m *Manager) Start(ctx context.Context, interval time.Duration) error {
	var started []*Service
	for _, s := range m.services() {
		err := s.Start()
		if err == nil {
			started = append(started, s)
			err = s.WaitUp(ctx, interval)
		}
		if err != nil {
			for _, s := range started {
				s.Stop()
			}
			return err
		}
	}
	return nil
}

// Stop stops every running Service and returns all errors encountered.
func (m *Manager) Stop() error {
	var result *multierror.Error
	for _, s := range m.services() {
		if !s.Running() {
			continue
		}
		if err := s.Stop(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
