package monitors

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	// DefaultSysPath is where the kernel exposes per-connector EDID blobs.
	DefaultSysPath = "/sys/class/drm"
	// DefaultDecoderBin is the edid-decode binary used to render a blob as text.
	DefaultDecoderBin = "/usr/bin/edid-decode"
)

// Decoder renders the EDID blob at path as human-readable text. Returning an
// empty string with a nil error means the output exists but nothing is
// attached to it.
type Decoder func(path string) (string, error)

// CommandDecoder returns a Decoder that runs the given edid-decode binary.
// edid-decode exits non-zero and prints "EDID of '<path>' was empty" for
// connectors with nothing attached, so only a failure to run the binary at
// all is an error.
func CommandDecoder(bin string) Decoder {
	return func(path string) (string, error) {
		out, err := exec.Command(bin, path).Output()
		text := string(out)
		if strings.HasPrefix(text, fmt.Sprintf("EDID of '%s' was empty", path)) {
			return "", nil
		}
		if err != nil && text == "" {
			return "", fmt.Errorf("failed to run %s on %s: %w", bin, path, err)
		}
		return text, nil
	}
}

// Scanner discovers currently attached monitors from the DRM sysfs tree.
type Scanner struct {
	SysPath string
	Decode  Decoder
	Logger  *slog.Logger
}

// NewScanner returns a Scanner over the default sysfs tree and decoder.
func NewScanner(logger *slog.Logger) *Scanner {
	return &Scanner{
		SysPath: DefaultSysPath,
		Decode:  CommandDecoder(DefaultDecoderBin),
		Logger:  logger,
	}
}

// Scan walks the sysfs tree and returns an identified Monitor per connector
// with something attached. Connectors without an edid file (entries like
// "version") and connectors whose descriptor cannot be identified are
// skipped, not errors.
func (s *Scanner) Scan(builtIn Identity) ([]Monitor, error) {
	entries, err := os.ReadDir(s.SysPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.SysPath, err)
	}

	var mons []Monitor
	for _, ent := range entries {
		path := filepath.Join(s.SysPath, ent.Name(), "edid")
		if _, err := os.Stat(path); err != nil {
			continue
		}

		text, err := s.Decode(path)
		if err != nil {
			return nil, err
		}
		if text == "" {
			continue
		}

		mon, ok := ParseDescriptor(text, builtIn)
		if !ok {
			s.Logger.Debug("unidentifiable EDID descriptor", "path", path)
			continue
		}
		s.Logger.Debug("identified monitor", "path", path, "monitor", mon.String())
		mons = append(mons, mon)
	}

	return mons, nil
}
