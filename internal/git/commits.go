package git

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// commitRefPattern matches task references in commit messages: a hash sign
// followed by a task ID (#T001). The #T + three digits form is a stable
// wire contract; changing it requires a migration plan.
var commitRefPattern = regexp.MustCompile(`#(T[0-9]{3})\b`)

// ExtractTaskIDs scans a commit message for #Tddd references and returns a
// sorted, de-duplicated list of the task IDs found.
func ExtractTaskIDs(message string) []string {
	matches := commitRefPattern.FindAllStringSubmatch(message, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var unique []string
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			unique = append(unique, m[1])
		}
	}
	sort.Strings(unique)
	return unique
}

// Commit is one entry from the git log.
type Commit struct {
	Hash    string
	Subject string
}

// Scanner reads commit history from a repository.
type Scanner struct {
	runner CommandRunner
	dir    string
}

// NewScanner creates a Scanner for the repository at dir.
func NewScanner(dir string) *Scanner {
	return &Scanner{runner: NewExecRunner(), dir: dir}
}

// NewScannerWithRunner creates a Scanner with a custom CommandRunner.
func NewScannerWithRunner(dir string, runner CommandRunner) *Scanner {
	return &Scanner{runner: runner, dir: dir}
}

// Log returns up to limit commits, newest first.
func (s *Scanner) Log(limit int) ([]Commit, error) {
	out, err := s.runner.Run(s.dir, "git", "log",
		"--pretty=format:%H%x09%s", "-n", strconv.Itoa(limit))
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}

	var commits []Commit
	for _, line := range strings.Split(out, "\n") {
		hash, subject, ok := strings.Cut(line, "\t")
		if !ok {
			continue
		}
		commits = append(commits, Commit{Hash: hash, Subject: subject})
	}
	return commits, nil
}

// TaskCommits scans up to limit commits and groups their hashes by the task
// IDs referenced in their subjects. Hashes appear newest first, once per
// task even when a subject repeats a reference.
func (s *Scanner) TaskCommits(limit int) (map[string][]string, error) {
	commits, err := s.Log(limit)
	if err != nil {
		return nil, err
	}

	byTask := make(map[string][]string)
	for _, c := range commits {
		for _, id := range ExtractTaskIDs(c.Subject) {
			byTask[id] = append(byTask[id], c.Hash)
		}
	}
	return byTask, nil
}
