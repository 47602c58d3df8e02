package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ramarlina/lqa-cli/pkg/client"
	"github.com/ramarlina/lqa-cli/pkg/config"
	"github.com/ramarlina/lqa-cli/pkg/context"
	"github.com/ramarlina/lqa-cli/pkg/output"
	"github.com/ramarlina/lqa-cli/pkg/session"
)

// getOutputPrinter creates an output printer based on global flags
func getOutputPrinter() *output.Printer {
	format := output.FormatHuman
	if flagJSON {
		format = output.FormatJSON
	} else if flagRaw {
		format = output.FormatRaw
	}

	return output.New(format, flagQuiet, flagNoANSI)
}

// getClient creates an API client backed by the saved session. Failures are
// shown through out and a 401 clears the session and the conversation.
func getClient(out *output.Printer) *client.Client {
	return client.New(config.GetAPIUrl(),
		client.WithSession(session.Provider{Logger: logger, OnLogout: context.Clear}),
		client.WithNotifier(out),
		client.WithLogger(logger),
	)
}

// requireSession fails early for commands the server rejects anonymously.
func requireSession() error {
	if !session.IsAuthenticated() {
		return fmt.Errorf("not logged in (run 'lqa login')")
	}
	return nil
}

// readInput returns the file contents, or stdin for "" or "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// decodeInput reads a JSON document into v.
func decodeInput(path string, stdin io.Reader, v any) error {
	data, err := readInput(path, stdin)
	if err != nil {
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return fmt.Errorf("empty input")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse input: %w", err)
	}
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id: %s", s)
	}
	return id, nil
}

// truncate shortens s to one line of at most n runes.
func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) > n {
		return string(r[:n-3]) + "..."
	}
	return s
}

func confirm(out *output.Printer, prompt string) bool {
	if flagYes || out.IsJSON() {
		return true
	}
	fmt.Fprintf(os.Stderr, "%s (y/N): ", prompt)
	var response string
	fmt.Scanln(&response)
	return response == "y" || response == "Y"
}
