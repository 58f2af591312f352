// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses configuration flags from args (without the program name).
//
// Flags:
//
//	-a server listen address in format [host]:[port]
//	-d backend database DSN
//	-l local SQLite file
//	-s backend URL used by the client
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-sync-interval client refresh interval
//	-user-id signed-in user id
//	-access-token bearer token
//	-log-file client log file path
//	-provision-defaults create starter categories for new users
//
// The first positional argument, if any, is returned as Command.
func ParseFlags(args []string) (*StructuredConfig, error) {
	var listenAddress NetAddress
	var databaseDSN, localDSN, serverURL string
	var jsonConfigPath string
	var tokenSignKey, tokenIssuer string
	var tokenDuration, requestTimeout, syncInterval time.Duration
	var userID, accessToken string
	var logFile string
	var provisionDefaults bool

	fs := flag.NewFlagSet("life-keeper", flag.ContinueOnError)
	fs.Var(&listenAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&localDSN, "l", "", "Local SQLite file")
	fs.StringVar(&serverURL, "s", "", "Backend URL")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Refresh interval (e.g., 1m)")
	fs.StringVar(&userID, "user-id", "", "Signed-in user id")
	fs.StringVar(&accessToken, "access-token", "", "Bearer token")
	fs.StringVar(&logFile, "log-file", "", "Client log file")
	fs.BoolVar(&provisionDefaults, "provision-defaults", false, "Create starter categories for new users")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:      tokenSignKey,
			TokenIssuer:       tokenIssuer,
			TokenDuration:     tokenDuration,
			ProvisionDefaults: provisionDefaults,
		},
		Storage: Storage{
			DB:    DB{DSN: databaseDSN},
			Local: Local{DSN: localDSN},
		},
		Server: Server{
			HTTPAddress:    listenAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    serverURL,
			RequestTimeout: requestTimeout,
		},
		Session: Session{
			UserID:      userID,
			AccessToken: accessToken,
		},
		Workers:      Workers{SyncInterval: syncInterval},
		Log:          Log{File: logFile},
		JSONFilePath: jsonConfigPath,
		Command:      fs.Arg(0),
	}, nil
}

// String returns a canonical host:port string for a NetAddress,
// or "" when neither part is set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in 1..65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
