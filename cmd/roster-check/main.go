package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/mergington/internal/rostercheck"
)

const defaultRunTimeout = 5 * time.Minute

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:8000", "Base URL of the service")
		students = flag.Int("students", rostercheck.DefaultStudents, "Number of students to generate")
		workers  = flag.Int("workers", rostercheck.DefaultWorkers, "Number of concurrent workers")
		timeout  = flag.Duration("timeout", rostercheck.DefaultTimeout, "HTTP request timeout")
		activity = flag.String("activity", "", "Only target this activity (default: all)")
		domain   = flag.String("domain", rostercheck.DefaultDomain, "Email domain for generated students")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		rostercheck.ShowHelp(os.Stdout)
		return
	}

	if err := rostercheck.SetupLogging(os.Stdout, *verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultRunTimeout)
	defer cancel()

	config := &rostercheck.Config{
		BaseURL:  *baseURL,
		Students: *students,
		Workers:  *workers,
		Timeout:  *timeout,
		Activity: *activity,
		Domain:   *domain,
		Verbose:  *verbose,
	}

	if _, err := rostercheck.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Roster check failed: " + err.Error() + "\n")
		cancel()
		stop()
		os.Exit(1)
	}
}
