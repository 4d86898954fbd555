package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/spf13/viper"
)

type Config struct {
	RepoPath      string `mapstructure:"repo_path"`
	Branch        string `mapstructure:"branch"`
	Remote        string `mapstructure:"remote"`
	TagPattern    string `mapstructure:"tag_pattern"`
	TagMessage    string `mapstructure:"tag_message"`
	CommitMessage string `mapstructure:"commit_message"`
	CommitAuthor  string `mapstructure:"commit_author"`
	StateDir      string `mapstructure:"state_dir"`
	GithubToken   string `mapstructure:"github_token"`
	GithubOwner   string `mapstructure:"github_owner"`
	GithubRepo    string `mapstructure:"github_repo"`
}

// DefaultConfig returns a Config with default values. The commit message and
// author are a compatibility surface: downstream tooling matches on them to
// recognize automated build commits.
func DefaultConfig() *Config {
	return &Config{
		RepoPath:      ".",
		Remote:        "origin",
		TagMessage:    "Build script tag",
		CommitMessage: "Automated build commit",
		CommitAuthor:  "SirKnightly <SirKnightlySCP@gmail.com>",
		StateDir:      ".releasetag-state",
	}
}

// commitAuthorRegex matches the "Name <email>" identity format git expects.
var commitAuthorRegex = regexp.MustCompile(`^[^<>]+ <[^<>\s]+@[^<>\s]+>$`)

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.RepoPath == "" {
		return fmt.Errorf("repo_path cannot be empty")
	}
	if c.Branch == "" {
		return fmt.Errorf("branch cannot be empty and could not be derived from the repository")
	}
	if c.Remote == "" {
		return fmt.Errorf("remote cannot be empty")
	}
	if c.CommitAuthor != "" && !commitAuthorRegex.MatchString(c.CommitAuthor) {
		return fmt.Errorf("invalid commit_author format: %s (expected: Name <email>)", c.CommitAuthor)
	}
	if strings.Contains(c.StateDir, "..") {
		return fmt.Errorf("state_dir contains invalid path traversal")
	}
	// GitHub settings are optional - only validate when a token is provided
	if c.GithubToken != "" {
		if err := ValidateGitHubToken(c.GithubToken); err != nil {
			return fmt.Errorf("invalid github_token: %w", err)
		}
		if err := ValidateGitHubOwnerRepo(c.GithubOwner, c.GithubRepo); err != nil {
			return fmt.Errorf("invalid github configuration: %w", err)
		}
	}
	return nil
}

// ValidateGitHubToken validates GitHub token format (exported for reuse)
func ValidateGitHubToken(token string) error {
	token = strings.TrimSpace(token)
	if len(token) < 40 {
		return fmt.Errorf("token too short: expected at least 40 characters")
	}
	classicPAT := regexp.MustCompile(`^[a-fA-F0-9]{40}$`)
	fineGrainedPAT := regexp.MustCompile(`^github_pat_[a-zA-Z0-9_]{82}$`)
	appToken := regexp.MustCompile(`^ghs_[a-zA-Z0-9]{36}$`)
	oauthToken := regexp.MustCompile(`^gho_[a-zA-Z0-9]{36}$`)
	if !classicPAT.MatchString(token) &&
		!fineGrainedPAT.MatchString(token) &&
		!appToken.MatchString(token) &&
		!oauthToken.MatchString(token) {
		return fmt.Errorf("invalid token format")
	}
	return nil
}

// ValidateGitHubOwnerRepo validates GitHub owner and repository names (exported for reuse)
func ValidateGitHubOwnerRepo(owner, repo string) error {
	if owner == "" {
		return fmt.Errorf("owner cannot be empty")
	}
	if repo == "" {
		return fmt.Errorf("repository cannot be empty")
	}
	validName := regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-_.]*[a-zA-Z0-9]$|^[a-zA-Z0-9]$`)
	if !validName.MatchString(owner) {
		return fmt.Errorf("invalid owner format: %s", owner)
	}
	if len(owner) > 39 {
		return fmt.Errorf("owner too long: maximum 39 characters")
	}
	if !validName.MatchString(repo) {
		return fmt.Errorf("invalid repository format: %s", repo)
	}
	if len(repo) > 100 {
		return fmt.Errorf("repository too long: maximum 100 characters")
	}
	return nil
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".releasetag")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	// Configure environment variables
	viper.SetEnvPrefix("RELEASETAG")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// Explicitly bind environment variables; BindEnv checks them in order
	bindings := map[string][]string{
		"repo_path":      {"RELEASETAG_REPO_PATH"},
		"branch":         {"RELEASETAG_BRANCH"},
		"remote":         {"RELEASETAG_REMOTE"},
		"tag_pattern":    {"RELEASETAG_TAG_PATTERN"},
		"tag_message":    {"RELEASETAG_TAG_MESSAGE"},
		"commit_message": {"RELEASETAG_COMMIT_MESSAGE"},
		"commit_author":  {"RELEASETAG_COMMIT_AUTHOR"},
		"state_dir":      {"RELEASETAG_STATE_DIR"},
		"github_token":   {"GITHUB_TOKEN", "RELEASETAG_GITHUB_TOKEN"},
		"github_owner":   {"GITHUB_OWNER", "RELEASETAG_GITHUB_OWNER"},
		"github_repo":    {"GITHUB_REPO", "RELEASETAG_GITHUB_REPO"},
	}
	for key, envs := range bindings {
		if err := viper.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s env: %w", key, err)
		}
	}
	// Set defaults
	defaults := DefaultConfig()
	viper.SetDefault("repo_path", defaults.RepoPath)
	viper.SetDefault("remote", defaults.Remote)
	viper.SetDefault("tag_message", defaults.TagMessage)
	viper.SetDefault("commit_message", defaults.CommitMessage)
	viper.SetDefault("commit_author", defaults.CommitAuthor)
	viper.SetDefault("state_dir", defaults.StateDir)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if err := populateRepositoryDefaults(&config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}

// populateRepositoryDefaults fills in the branch and GitHub slug from the
// repository itself when they were not configured.
func populateRepositoryDefaults(cfg *Config) error {
	if cfg.Branch != "" && cfg.GithubOwner != "" && cfg.GithubRepo != "" {
		return nil
	}
	repo, err := git.PlainOpen(cfg.RepoPath)
	if err != nil {
		// Leave the fields alone; Validate decides whether that is fatal.
		return nil
	}
	if cfg.Branch == "" {
		if head, err := repo.Head(); err == nil && head.Name().IsBranch() {
			cfg.Branch = head.Name().Short()
		}
	}
	if cfg.GithubOwner == "" || cfg.GithubRepo == "" {
		if remote, err := repo.Remote(cfg.Remote); err == nil {
			urls := remote.Config().URLs
			if len(urls) > 0 {
				owner, name, err := ParseGitRemoteURL(urls[0])
				if err == nil {
					if cfg.GithubOwner == "" {
						cfg.GithubOwner = owner
					}
					if cfg.GithubRepo == "" {
						cfg.GithubRepo = name
					}
				}
			}
		}
	}
	return nil
}

// ParseGitRemoteURL extracts the owner and repository name from an https,
// ssh, or plain-path remote URL.
func ParseGitRemoteURL(url string) (string, string, error) {
	trimmed := strings.TrimSuffix(url, ".git")
	if idx := strings.Index(trimmed, ":"); idx >= 0 && !strings.Contains(trimmed[:idx], "/") {
		// ssh form: git@host:owner/repo
		trimmed = trimmed[idx+1:]
	} else {
		trimmed = strings.TrimPrefix(trimmed, "https://")
		trimmed = strings.TrimPrefix(trimmed, "http://")
		if idx := strings.Index(trimmed, "/"); idx >= 0 && strings.Contains(trimmed[:idx], ".") {
			// strip the host of an https URL
			trimmed = trimmed[idx+1:]
		}
	}
	parts := strings.Split(strings.Trim(trimmed, "/"), "/")
	if len(parts) < 2 {
		return "", "", fmt.Errorf("cannot parse owner/repo from remote URL: %s", url)
	}
	return parts[len(parts)-2], parts[len(parts)-1], nil
}
