package domain

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// RepositoryRef identifies a configuration repository on the control plane.
type RepositoryRef struct {
	ID int64 `json:"id"`

	Name string `json:"name"`

	// Branch is the commit reference the control plane tracks. A looked-up
	// repository is only accepted when this equals the local branch.
	Branch string `json:"commit_reference"`

	// SourceURL is the git remote the control plane fetches from, always
	// in HTTPS form.
	SourceURL string `json:"source_url"`

	// SucceededCommit is the SHA of the last commit the control plane
	// imported successfully. Empty until the first import completes.
	SucceededCommit string `json:"succeeded_commit"`
}

// DeriveRepositoryName builds the canonical remote repository name from a
// local working directory and branch: "<dir-base>_<branch>". Characters the
// control plane rejects in names are replaced with underscores.
func DeriveRepositoryName(workdir, branch string) string {
	base := filepath.Base(filepath.Clean(workdir))
	return sanitizeName(fmt.Sprintf("%s_%s", base, branch))
}

var nameUnsafe = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

func sanitizeName(s string) string {
	return nameUnsafe.ReplaceAllString(s, "_")
}

// NormalizeRemoteURL rewrites SSH-style git remote URLs into the HTTPS form
// the control plane requires. HTTPS URLs pass through unchanged.
//
//	git@host:org/repo.git   -> https://host/org/repo.git
//	ssh://git@host/org/repo -> https://host/org/repo
func NormalizeRemoteURL(remote string) string {
	if strings.HasPrefix(remote, "ssh://") {
		rest := strings.TrimPrefix(remote, "ssh://")
		if at := strings.Index(rest, "@"); at >= 0 {
			rest = rest[at+1:]
		}
		return "https://" + rest
	}
	if at := strings.Index(remote, "@"); at >= 0 && !strings.Contains(remote, "://") {
		hostPath := remote[at+1:]
		if colon := strings.Index(hostPath, ":"); colon >= 0 {
			return "https://" + hostPath[:colon] + "/" + hostPath[colon+1:]
		}
	}
	return remote
}
