//go:build darwin || linux || freebsd || openbsd || solaris || aix

package system

const loadAverageSupported = true
