package pager

import "os"

// Environment variables and config key consulted when choosing a pager.
const (
	EnvGitPager = "GIT_PAGER"
	EnvPager    = "PAGER"
	ConfigKey   = "core.pager"
)

const (
	// DefaultPager is used when nothing else names a pager.
	DefaultPager = "less"
	// Passthrough is the conventional "don't page" pager.
	Passthrough = "cat"
)

// Source records where a pager choice came from.
type Source string

// Pager choice sources, highest precedence first.
const (
	SourceGitPager Source = EnvGitPager
	SourceConfig   Source = ConfigKey
	SourcePager    Source = EnvPager
	SourceDefault  Source = "default"
)

// ConfigGetter is the part of the tool configuration the selector reads.
type ConfigGetter interface {
	GetString(key string) string
}

// LookupEnvFunc has the signature of os.LookupEnv.
type LookupEnvFunc func(key string) (string, bool)

// Select returns the pager command to run. It never fails; an empty string or
// "cat" means no paging was requested (see Disabled).
func Select(lookupEnv LookupEnvFunc, cfg ConfigGetter) string {
	choice, _ := SelectWithSource(lookupEnv, cfg)
	return choice
}

// SelectWithSource is Select that also reports which input won.
//
// GIT_PAGER and PAGER win whenever they are present, even if empty. The
// configured core.pager is only used when it is non-empty.
func SelectWithSource(lookupEnv LookupEnvFunc, cfg ConfigGetter) (string, Source) {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}

	if v, ok := lookupEnv(EnvGitPager); ok {
		return v, SourceGitPager
	}
	if cfg != nil {
		if v := cfg.GetString(ConfigKey); v != "" {
			return v, SourceConfig
		}
	}
	if v, ok := lookupEnv(EnvPager); ok {
		return v, SourcePager
	}
	return DefaultPager, SourceDefault
}

// Disabled reports whether choice means "don't page".
func Disabled(choice string) bool {
	return choice == "" || choice == Passthrough
}
