//go:build pprof

package profile

import "github.com/pkg/profile"

// option appends settings to the list handed to [profile.Start].
type option func([]func(*profile.Profile)) []func(*profile.Profile)

func withMode(m string) option {
	return func(c []func(*profile.Profile)) []func(*profile.Profile) {
		if fn, ok := mode[m]; ok {
			c = append(c, fn)
		}

		return c
	}
}

func withPath(p string) option {
	return func(c []func(*profile.Profile)) []func(*profile.Profile) {
		if p != "" {
			c = append(c, profile.ProfilePath(p))
		}

		return c
	}
}

func withQuiet(v bool) option {
	return func(c []func(*profile.Profile)) []func(*profile.Profile) {
		if v {
			c = append(c, profile.Quiet)
		}

		return c
	}
}

func apply(opts ...option) []func(*profile.Profile) {
	var c []func(*profile.Profile)
	for _, opt := range opts {
		c = opt(c)
	}

	return c
}
