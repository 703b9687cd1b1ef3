package navigation

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// SystemLauncher hands the URL to the desktop's default browser.
type SystemLauncher struct {
	GOOS string
	// Command overrides the platform launcher, mostly for tests.
	Command func(ctx context.Context, name string, args ...string) *exec.Cmd
}

func (l SystemLauncher) Open(ctx context.Context, url string) error {
	name, args, err := launchCommand(l.goos(), url)
	if err != nil {
		return err
	}
	command := exec.CommandContext
	if l.Command != nil {
		command = l.Command
	}
	cmd := command(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	// The launcher exits quickly; reap it so no zombie is left behind.
	go func() { _ = cmd.Wait() }()
	return nil
}

func (l SystemLauncher) goos() string {
	if l.GOOS != "" {
		return l.GOOS
	}
	return runtime.GOOS
}

func launchCommand(goos, url string) (string, []string, error) {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{url}, nil
	case "darwin":
		return "open", []string{url}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}, nil
	default:
		return "", nil, fmt.Errorf("no browser launcher for %s", goos)
	}
}
