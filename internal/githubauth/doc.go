// Package githubauth resolves the static GitHub API credential used by reapclone.
package githubauth
