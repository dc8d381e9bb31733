package policy

import (
	"fmt"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

// Policy is the per-deployment configuration loaded from policy.yaml.
type Policy struct {
	Affiliations        []string `yaml:"affiliations"`
	Categories          []string `yaml:"categories"`
	PermanentBanEnabled bool     `yaml:"permanent_ban_enabled"`
	DefaultBanDays      int      `yaml:"default_ban_days"`
	BannedWords         []string `yaml:"banned_words"`
}

// Default mirrors the shipped policy.yaml.
func Default() Policy {
	return Policy{
		Affiliations:        []string{"boys", "girls"},
		Categories:          []string{"electronics", "clothing", "bags", "keys-wallets", "documents", "others"},
		PermanentBanEnabled: false,
		DefaultBanDays:      7,
	}
}

type Registry struct {
	mu     sync.RWMutex
	policy Policy
}

func NewRegistry(p Policy) *Registry {
	r := &Registry{}
	r.Set(p)
	return r
}

func LoadFromFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}

	p := Default()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse policy file: %w", err)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return NewRegistry(p), nil
}

func (p Policy) validate() error {
	if len(p.Categories) == 0 {
		return fmt.Errorf("policy: at least one category is required")
	}
	for _, a := range p.Affiliations {
		if a == "" || a == "public" {
			return fmt.Errorf("policy: invalid affiliation %q", a)
		}
	}
	if p.DefaultBanDays <= 0 {
		return fmt.Errorf("policy: default_ban_days must be positive")
	}
	return nil
}

func (r *Registry) Set(p Policy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.policy = p
}

func (r *Registry) Get() Policy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.policy
}

func (r *Registry) IsAffiliation(tag string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Contains(r.policy.Affiliations, tag)
}

// IsVisibility accepts "public" and every configured affiliation.
func (r *Registry) IsVisibility(v string) bool {
	return v == "public" || r.IsAffiliation(v)
}

func (r *Registry) IsCategory(c string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Contains(r.policy.Categories, c)
}

// Scopes lists every valid visibility value, "public" first.
func (r *Registry) Scopes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string{"public"}, r.policy.Affiliations...)
}

func (r *Registry) PermanentBanEnabled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.policy.PermanentBanEnabled
}

func (r *Registry) DefaultBanDays() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.policy.DefaultBanDays
}

func (r *Registry) BannedWords() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.policy.BannedWords
}
