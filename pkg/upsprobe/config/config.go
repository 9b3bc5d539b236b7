// Package config resolves the probe's runtime configuration from three layers:
// built-in defaults, environment variables, and an optional YAML defaults
// file, with explicit command-line flags overriding all of them.
//
// Configuration errors are fatal: the probe exits with the unknown verdict
// before any SNMP traffic happens.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"github.com/vpbank/ups_probe/models"
	"github.com/vpbank/ups_probe/snmp/session"
	"github.com/vpbank/ups_probe/snmp/upsmib"
)

// ─────────────────────────────────────────────────────────────────────────────
// Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the fully resolved probe configuration.
type Config struct {
	Session session.Config

	// Thresholds holds the parsed output-load warning/critical pairs.
	// nil when no thresholds were configured. The list length must be 1 or
	// equal to the device's output line count — the latter is validated by the
	// probe once the count has been fetched.
	Thresholds []models.Threshold

	// IgnoreAlarms is the set of alarm identifiers (normalised, no leading
	// dot) excluded from the critical alarm verdict.
	IgnoreAlarms map[string]struct{}

	// SuppressTestResults drops warning/error/aborted self-test fragments.
	SuppressTestResults bool

	// NoPerfData suppresses metric emission entirely.
	NoPerfData bool

	LogLevel  string
	LogFormat string
}

// envDefaults is the environment layer. Credentials belong here rather than on
// the command line, where they would be visible in the process list.
type envDefaults struct {
	Community string `env:"UPSPROBE_COMMUNITY" env-default:"public"`
	Port      int    `env:"UPSPROBE_PORT" env-default:"161"`
	TimeoutMs int    `env:"UPSPROBE_TIMEOUT_MS" env-default:"5000"`
	AuthPass  string `env:"UPSPROBE_AUTH_PASS"`
	PrivPass  string `env:"UPSPROBE_PRIV_PASS"`
}

// fileDefaults is the YAML defaults-file layer (-defaults). Field semantics
// match the corresponding flags; zero values mean "not set".
type fileDefaults struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Version   string `yaml:"version"`
	Community string `yaml:"community"`
	TimeoutMs int    `yaml:"timeout_ms"`
	Retries   *int   `yaml:"retries"`

	User         string `yaml:"user"`
	AuthProtocol string `yaml:"auth_protocol"`
	AuthPass     string `yaml:"auth_pass"`
	PrivProtocol string `yaml:"priv_protocol"`
	PrivPass     string `yaml:"priv_pass"`
}

// ─────────────────────────────────────────────────────────────────────────────
// FromArgs
// ─────────────────────────────────────────────────────────────────────────────

// FromArgs parses the command line (excluding the program name) into a
// resolved Config. Flag usage output goes to errOut.
func FromArgs(args []string, errOut io.Writer) (*Config, error) {
	var env envDefaults
	if err := cleanenv.ReadEnv(&env); err != nil {
		return nil, fmt.Errorf("environment defaults: %w", err)
	}

	fs := flag.NewFlagSet("upsprobe", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var (
		host      = fs.String("host", "", "UPS address (required)")
		port      = fs.Int("port", env.Port, "SNMP agent port")
		version   = fs.String("version", "2c", "SNMP version: 1, 2c, 3")
		community = fs.String("community", env.Community, "SNMP community (v1/v2c)")
		timeout   = fs.Duration("timeout", time.Duration(env.TimeoutMs)*time.Millisecond, "Per-request timeout")
		retries   = fs.Int("retries", 1, "SNMP request retries")

		user      = fs.String("user", "", "SNMPv3 USM user name")
		authProto = fs.String("auth-proto", "", "SNMPv3 auth protocol: md5, sha, sha224, sha256, sha384, sha512")
		authPass  = fs.String("auth-pass", env.AuthPass, "SNMPv3 auth passphrase")
		privProto = fs.String("priv-proto", "", "SNMPv3 privacy protocol: des, aes, aes192, aes256, aes192c, aes256c")
		privPass  = fs.String("priv-pass", env.PrivPass, "SNMPv3 privacy passphrase")

		defaultsFile = fs.String("defaults", "", "YAML file with session defaults")

		warning  = fs.String("warning", "", "Comma-separated warning ranges for output load")
		critical = fs.String("critical", "", "Comma-separated critical ranges for output load")
		ignore   = fs.String("ignore-alarms", "", "Comma-separated alarms to ignore (name, number, or identifier)")

		suppressTests = fs.Bool("suppress-test-results", false, "Do not report failed/aborted self-test results")
		noPerfData    = fs.Bool("no-perfdata", false, "Suppress performance data output")

		logLevel = fs.String("log.level", "error", "Log level: debug, info, warn, error")
		logFmt   = fs.String("log.fmt", "text", "Log format: json, text")
	)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("surplus operand %q", fs.Arg(0))
	}

	// Overlay the defaults file for every flag the user did not set explicitly.
	if *defaultsFile != "" {
		fd, err := loadDefaultsFile(*defaultsFile)
		if err != nil {
			return nil, err
		}
		set := make(map[string]bool)
		fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

		overlayString(set, "host", host, fd.Host)
		overlayInt(set, "port", port, fd.Port)
		overlayString(set, "version", version, fd.Version)
		overlayString(set, "community", community, fd.Community)
		if !set["timeout"] && fd.TimeoutMs != 0 {
			*timeout = time.Duration(fd.TimeoutMs) * time.Millisecond
		}
		if !set["retries"] && fd.Retries != nil {
			*retries = *fd.Retries
		}
		overlayString(set, "user", user, fd.User)
		overlayString(set, "auth-proto", authProto, fd.AuthProtocol)
		overlayString(set, "auth-pass", authPass, fd.AuthPass)
		overlayString(set, "priv-proto", privProto, fd.PrivProtocol)
		overlayString(set, "priv-pass", privPass, fd.PrivPass)
	}

	if *host == "" {
		return nil, fmt.Errorf("missing required -host")
	}
	switch *version {
	case "1", "2c", "3":
	default:
		return nil, fmt.Errorf("unsupported SNMP version %q", *version)
	}
	if *port < 1 || *port > 65535 {
		return nil, fmt.Errorf("port %d out of range", *port)
	}

	cfg := &Config{
		Session: session.Config{
			Host:           *host,
			Port:           uint16(*port),
			Timeout:        *timeout,
			Retries:        *retries,
			Version:        *version,
			Community:      *community,
			User:           *user,
			AuthProtocol:   *authProto,
			AuthPassphrase: *authPass,
			PrivProtocol:   *privProto,
			PrivPassphrase: *privPass,
		},
		SuppressTestResults: *suppressTests,
		NoPerfData:          *noPerfData,
		LogLevel:            *logLevel,
		LogFormat:           *logFmt,
	}

	if (*warning == "") != (*critical == "") {
		return nil, fmt.Errorf("-warning and -critical must be given together")
	}
	if *warning != "" {
		thresholds, err := models.ParseThresholds(*warning, *critical)
		if err != nil {
			return nil, err
		}
		cfg.Thresholds = thresholds
	}

	ignoreSet, err := ParseIgnoreAlarms(*ignore)
	if err != nil {
		return nil, err
	}
	cfg.IgnoreAlarms = ignoreSet

	return cfg, nil
}

func overlayString(set map[string]bool, name string, dst *string, fileVal string) {
	if !set[name] && fileVal != "" {
		*dst = fileVal
	}
}

func overlayInt(set map[string]bool, name string, dst *int, fileVal int) {
	if !set[name] && fileVal != 0 {
		*dst = fileVal
	}
}

func loadDefaultsFile(path string) (*fileDefaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("defaults file: %w", err)
	}
	var fd fileDefaults
	if err := yaml.Unmarshal(data, &fd); err != nil {
		return nil, fmt.Errorf("defaults file %s: %w", path, err)
	}
	return &fd, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Alarm-ignore token resolution
// ─────────────────────────────────────────────────────────────────────────────

// ParseIgnoreAlarms resolves a comma-separated ignore list into a set of
// canonical alarm identifiers. Three token forms are accepted and equivalent:
// a well-known alarm name (case-insensitive), its 1-based index in the
// well-known namespace, or a full dotted identifier. Anything else is a
// configuration error.
func ParseIgnoreAlarms(list string) (map[string]struct{}, error) {
	out := make(map[string]struct{})
	if strings.TrimSpace(list) == "" {
		return out, nil
	}
	for _, token := range strings.Split(list, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		oid, err := resolveIgnoreToken(token)
		if err != nil {
			return nil, err
		}
		out[oid] = struct{}{}
	}
	return out, nil
}

func resolveIgnoreToken(token string) (string, error) {
	if n, err := strconv.Atoi(token); err == nil {
		oid := upsmib.WellKnownAlarmOID(n)
		if oid == "" {
			return "", fmt.Errorf("alarm number %d outside the well-known range 1-%d",
				n, upsmib.NumWellKnownAlarms)
		}
		return oid, nil
	}
	if isDottedOID(token) {
		return strings.TrimPrefix(token, "."), nil
	}
	if oid := upsmib.AlarmOIDForName(token); oid != "" {
		return oid, nil
	}
	return "", fmt.Errorf("unsupported alarm ignore token %q", token)
}

// isDottedOID reports whether s is a dotted-integer identifier with at least
// two labels.
func isDottedOID(s string) bool {
	s = strings.TrimPrefix(s, ".")
	labels := strings.Split(s, ".")
	if len(labels) < 2 {
		return false
	}
	for _, l := range labels {
		if l == "" {
			return false
		}
		for _, c := range l {
			if c < '0' || c > '9' {
				return false
			}
		}
	}
	return true
}
