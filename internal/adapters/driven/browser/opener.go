// Package browser opens links with the platform's default handler.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/custodia-labs/spsearch/internal/core/ports/driven"
)

// Ensure Opener implements the interface.
var _ driven.URLOpener = (*Opener)(nil)

// Operating system identifiers.
const (
	osDarwin  = "darwin"
	osLinux   = "linux"
	osWindows = "windows"
)

// Opener launches the system browser.
type Opener struct {
	goos  string
	start func(name string, args ...string) error
}

// NewOpener creates an opener for the running platform.
func NewOpener() *Opener {
	return &Opener{
		goos:  runtime.GOOS,
		start: startCommand,
	}
}

// Open launches url without waiting for the browser to exit.
func (o *Opener) Open(url string) error {
	name, args, err := command(o.goos, url)
	if err != nil {
		return err
	}
	return o.start(name, args...)
}

// command returns the launcher invocation for goos.
func command(goos, url string) (string, []string, error) {
	switch goos {
	case osDarwin:
		return "open", []string{url}, nil
	case osLinux, "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{url}, nil
	case osWindows:
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

func startCommand(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch %s: %w", name, err)
	}
	// Reap the launcher in the background.
	go func() { _ = cmd.Wait() }()
	return nil
}
