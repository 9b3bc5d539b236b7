// Package session implements the SNMP transport boundary of the probe. It
// converts target configuration into a live gosnmp session and executes the
// batched Get requests that populate the probe's value store.
package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"
)

// ─────────────────────────────────────────────────────────────────────────────
// Config — target description
// ─────────────────────────────────────────────────────────────────────────────

// Config describes one SNMP target. The zero value is not usable; Host and
// Version must be set by the caller.
type Config struct {
	Host    string
	Port    uint16
	Timeout time.Duration
	Retries int

	// Version selects the protocol: "1", "2c", or "3".
	Version   string
	Community string

	// SNMPv3 USM credentials, ignored for v1/v2c.
	User           string
	AuthProtocol   string // md5, sha, sha224, sha256, sha384, sha512
	AuthPassphrase string
	PrivProtocol   string // des, aes, aes192, aes256, aes192c, aes256c
	PrivPassphrase string
}

// ─────────────────────────────────────────────────────────────────────────────
// Session factory — Config → *gosnmp.GoSNMP
// ─────────────────────────────────────────────────────────────────────────────

// New creates and connects a gosnmp session for the given target. The caller
// is responsible for calling Conn.Close when the session is no longer needed.
func New(cfg Config) (*gosnmp.GoSNMP, error) {
	g := &gosnmp.GoSNMP{
		Target:  cfg.Host,
		Port:    cfg.Port,
		Timeout: cfg.Timeout,
		Retries: cfg.Retries,
		MaxOids: MaxOIDsPerRequest,
	}

	switch cfg.Version {
	case "1":
		g.Version = gosnmp.Version1
		g.Community = cfg.Community
	case "2c":
		g.Version = gosnmp.Version2c
		g.Community = cfg.Community
	case "3":
		g.Version = gosnmp.Version3
		g.SecurityModel = gosnmp.UserSecurityModel
		g.MsgFlags = snmpv3MsgFlags(cfg)
		g.SecurityParameters = &gosnmp.UsmSecurityParameters{
			UserName:                 cfg.User,
			AuthenticationProtocol:   mapAuthProto(cfg.AuthProtocol),
			AuthenticationPassphrase: cfg.AuthPassphrase,
			PrivacyProtocol:          mapPrivProto(cfg.PrivProtocol),
			PrivacyPassphrase:        cfg.PrivPassphrase,
		}
	default:
		return nil, fmt.Errorf("unsupported SNMP version %q", cfg.Version)
	}

	if err := g.Connect(); err != nil {
		return nil, fmt.Errorf("snmp connect %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	return g, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// SNMPv3 helpers
// ─────────────────────────────────────────────────────────────────────────────

func snmpv3MsgFlags(cfg Config) gosnmp.SnmpV3MsgFlags {
	hasAuth := cfg.AuthProtocol != "" &&
		!strings.EqualFold(cfg.AuthProtocol, "noauth")
	hasPriv := cfg.PrivProtocol != "" &&
		!strings.EqualFold(cfg.PrivProtocol, "nopriv")

	switch {
	case hasAuth && hasPriv:
		return gosnmp.AuthPriv
	case hasAuth:
		return gosnmp.AuthNoPriv
	default:
		return gosnmp.NoAuthNoPriv
	}
}

func mapAuthProto(s string) gosnmp.SnmpV3AuthProtocol {
	switch strings.ToLower(s) {
	case "md5":
		return gosnmp.MD5
	case "sha":
		return gosnmp.SHA
	case "sha224":
		return gosnmp.SHA224
	case "sha256":
		return gosnmp.SHA256
	case "sha384":
		return gosnmp.SHA384
	case "sha512":
		return gosnmp.SHA512
	default:
		return gosnmp.NoAuth
	}
}

func mapPrivProto(s string) gosnmp.SnmpV3PrivProtocol {
	switch strings.ToLower(s) {
	case "des":
		return gosnmp.DES
	case "aes":
		return gosnmp.AES
	case "aes192":
		return gosnmp.AES192
	case "aes256":
		return gosnmp.AES256
	case "aes192c":
		return gosnmp.AES192C
	case "aes256c":
		return gosnmp.AES256C
	default:
		return gosnmp.NoPriv
	}
}
