// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// AppBuildInfo carries build-time metadata injected with linker flags.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

// NewAppBuildInfo constructs [AppBuildInfo]; empty values become "N/A".
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: orNA(buildVersion),
		buildDate:    orNA(buildDate),
		buildCommit:  orNA(buildCommit),
	}
}

func (a AppBuildInfo) BuildVersion() string { return a.buildVersion }
func (a AppBuildInfo) BuildDate() string    { return a.buildDate }
func (a AppBuildInfo) BuildCommit() string  { return a.buildCommit }

// String renders the build info on one line.
func (a AppBuildInfo) String() string {
	return fmt.Sprintf("version %s (%s, commit %s)", a.buildVersion, a.buildDate, a.buildCommit)
}

// VersionResponse is the body of GET /api/version.
type VersionResponse struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

// Response returns the JSON view of the build info.
func (a AppBuildInfo) Response() VersionResponse {
	return VersionResponse{Version: a.buildVersion, Date: a.buildDate, Commit: a.buildCommit}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
